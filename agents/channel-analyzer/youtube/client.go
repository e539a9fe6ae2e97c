// Package youtube wraps the YouTube Data API v3 calls the analyzer
// needs: channel metadata and the recent uploads of a channel.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"channelscope/internal/models"
	"channelscope/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrChannelNotFound is returned when the API knows nothing about the
// requested channel ID.
var ErrChannelNotFound = errors.New("channel not found")

// videoBatchSize is the API maximum for a single videos.list call.
const videoBatchSize = 50

type Client struct {
	service *youtube.Service
}

// NewClient builds a YouTube client. An API key is enough for the
// public read calls this package makes; when no key is configured it
// falls back to the OAuth device flow with the configured client
// credentials.
func NewClient(cfg *config.YouTubeConfig) (*Client, error) {
	ctx := context.Background()

	if cfg.APIKey != "" {
		service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service: %w", err)
		}
		return &Client{service: service}, nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		Endpoint:     google.Endpoint,
	}

	token, err := getToken(oauthConfig, cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth token: %w", err)
	}

	tokenSource := &tokenSaver{
		config:    oauthConfig,
		token:     token,
		tokenFile: cfg.TokenFile,
	}
	httpClient := oauth2.NewClient(ctx, tokenSource)

	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// FetchChannel loads a channel's metadata and resolves its uploads
// playlist.
func (c *Client) FetchChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	call := c.service.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrChannelNotFound)
	}

	return channelFromItem(resp.Items[0]), nil
}

func channelFromItem(item *youtube.Channel) *models.Channel {
	channel := &models.Channel{ID: item.Id}
	if item.Snippet != nil {
		channel.Title = item.Snippet.Title
		channel.Description = item.Snippet.Description
	}
	if item.Statistics != nil {
		channel.Subscribers = int64(item.Statistics.SubscriberCount)
		channel.VideoCount = int64(item.Statistics.VideoCount)
		channel.ViewCount = int64(item.Statistics.ViewCount)
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		channel.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}
	return channel
}

// FetchVideos pages through the uploads playlist and returns up to
// count videos, newest first, with statistics attached. Channels with
// fewer uploads than requested return what exists.
func (c *Client) FetchVideos(ctx context.Context, playlistID string, count int) ([]models.Video, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("uploads playlist ID is required")
	}

	videoIDs, err := c.collectVideoIDs(ctx, playlistID, count)
	if err != nil {
		return nil, err
	}
	if len(videoIDs) == 0 {
		return []models.Video{}, nil
	}

	videos := make([]models.Video, 0, len(videoIDs))
	for i := 0; i < len(videoIDs); i += videoBatchSize {
		end := i + videoBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		call := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(strings.Join(videoIDs[i:end], ",")).
			Context(ctx)
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video details: %w", err)
		}

		for _, item := range resp.Items {
			videos = append(videos, videoFromItem(item))
		}
	}

	log.Printf("Fetched %d videos from playlist %s", len(videos), playlistID)
	return videos, nil
}

func (c *Client) collectVideoIDs(ctx context.Context, playlistID string, count int) ([]string, error) {
	var ids []string
	pageToken := ""

	for len(ids) < count {
		pageSize := int64(count - len(ids))
		if pageSize > videoBatchSize {
			pageSize = videoBatchSize
		}

		call := c.service.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list playlist %s: %w", playlistID, err)
		}

		for _, item := range resp.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				ids = append(ids, item.ContentDetails.VideoId)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" || len(resp.Items) == 0 {
			break
		}
	}

	if len(ids) > count {
		ids = ids[:count]
	}
	return ids, nil
}

// videoFromItem maps one API item onto the internal video model.
// Missing statistics read as zero rather than failing the fetch.
func videoFromItem(item *youtube.Video) models.Video {
	video := models.Video{ID: item.Id}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Tags = item.Snippet.Tags
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		}
	}
	if item.ContentDetails != nil {
		video.Duration = item.ContentDetails.Duration
	}
	if item.Statistics != nil {
		video.Views = int64(item.Statistics.ViewCount)
		video.Likes = int64(item.Statistics.LikeCount)
		video.Comments = int64(item.Statistics.CommentCount)
	}

	return video
}

// tokenSaver wraps an oauth2.TokenSource to persist refreshed tokens
// so they survive restarts.
type tokenSaver struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	mu        sync.Mutex
}

func (ts *tokenSaver) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	tokenSource := ts.config.TokenSource(context.Background(), ts.token)
	newToken, err := tokenSource.Token()
	if err != nil {
		return nil, err
	}

	if newToken.AccessToken != ts.token.AccessToken {
		log.Println("Token refreshed, saving to file")
		ts.token = newToken
		if err := saveToken(ts.tokenFile, newToken); err != nil {
			log.Printf("Warning: Failed to save refreshed token: %v", err)
		}
	}

	return newToken, nil
}

// getToken loads a cached token, preferring any token that carries a
// refresh token even when expired; the tokenSaver refreshes it on
// first use. Only when nothing usable is cached does it run the
// device flow.
func getToken(config *oauth2.Config, tokenFile string) (*oauth2.Token, error) {
	tok, err := tokenFromFile(tokenFile)
	if err == nil {
		if tok.RefreshToken != "" {
			log.Printf("Loaded token from file (expires: %v)", tok.Expiry)
			return tok, nil
		}
		if tok.Valid() {
			return tok, nil
		}
	}

	log.Println("Getting new token via device authorization...")
	tok, err = getTokenWithDeviceFlow(config)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			log.Printf("Device authorization response failed (%s): %s", retrieveErr.Response.Status, strings.TrimSpace(string(retrieveErr.Body)))
		}
		return nil, fmt.Errorf("device authorization failed: %w. Ensure your OAuth client is created as 'TVs and Limited Input devices' and that the YouTube Data API v3 is enabled.", err)
	}

	if err := saveToken(tokenFile, tok); err != nil {
		log.Printf("Warning: Failed to save token: %v", err)
	}
	return tok, nil
}

func getTokenWithDeviceFlow(config *oauth2.Config) (*oauth2.Token, error) {
	ctx := context.Background()

	resp, err := config.DeviceAuth(ctx, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("unable to start device authorization: %w", err)
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 80))
	fmt.Printf("YOUTUBE DEVICE AUTHORIZATION REQUIRED\n")
	fmt.Printf("%s\n", strings.Repeat("=", 80))
	fmt.Printf("1. Visit %s in your browser (any device works).\n", resp.VerificationURI)
	fmt.Printf("2. Enter this code when prompted: %s\n\n", resp.UserCode)
	fmt.Printf("Waiting for authorization to complete... (Ctrl+C to cancel)\n")
	fmt.Printf("%s\n", strings.Repeat("-", 80))

	tok, err := config.DeviceAccessToken(ctx, resp, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("device authorization did not complete: %w", err)
	}

	fmt.Printf("\nAuthorization successful.\n%s\n\n", strings.Repeat("=", 80))
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode oauth token: %w", err)
	}
	return nil
}
