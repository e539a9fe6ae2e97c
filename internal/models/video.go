package models

import "time"

// Video is one fetched video with its raw YouTube metadata plus the
// derived fields computed during analysis. The fetched fields are never
// mutated; analyzers that need derived values work on augmented copies.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published"`
	Duration    string    `json:"duration"` // raw ISO-8601, e.g. "PT12M34S"
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
	Tags        []string  `json:"tags"`

	// Derived during analysis.
	Minutes    float64 `json:"minutes,omitempty"`
	Engagement float64 `json:"engagement,omitempty"` // likes/views as a percentage
}

// EngagementRate returns likes/views as a percentage, 0 when views is 0.
func (v Video) EngagementRate() float64 {
	if v.Views == 0 {
		return 0
	}
	return float64(v.Likes) / float64(v.Views) * 100
}

// URL returns the public watch URL for the video.
func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}
