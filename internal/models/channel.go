package models

// Channel holds channel-level metadata, fetched once per analysis run
// and read-only thereafter.
type Channel struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Subscribers       int64  `json:"subscriberCount"`
	VideoCount        int64  `json:"videoCount"`
	ViewCount         int64  `json:"viewCount"`
	UploadsPlaylistID string `json:"uploadsPlaylistId"`
}
