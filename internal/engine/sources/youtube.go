package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

const ytDataAPIBase = "https://www.googleapis.com/youtube/v3"

// ErrNoAPIKey is returned by YouTube calls when no Data API key is configured.
var ErrNoAPIKey = errors.New("youtube: YOUTUBE_API_KEY not set")

// --- YouTube Data API v3 types ---

type ytPlaylistItemsResp struct {
	Items []ytPlaylistItem `json:"items"`
}

type ytPlaylistItem struct {
	Snippet struct {
		Title       string `json:"title"`
		PublishedAt string `json:"publishedAt"`
		ResourceID  struct {
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
	} `json:"snippet"`
}

type ytPlaylistsResp struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

// PlaylistInfo is the display metadata of a playlist.
type PlaylistInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
}

// YouTube reads playlists through the Data API.
type YouTube struct {
	f      *engine.Fetcher
	apiKey string
	// BaseURL overrides the API root.
	BaseURL string
}

func NewYouTube(f *engine.Fetcher) *YouTube {
	return &YouTube{f: f, apiKey: f.Config().YouTubeAPIKey, BaseURL: ytDataAPIBase}
}

// PlaylistVideos returns up to 50 items of a playlist. Items without a video
// ID are dropped and items with an unreadable publish time are kept undated.
func (y *YouTube) PlaylistVideos(ctx context.Context, playlistID string) ([]engine.Item, error) {
	if y.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", "50")
	params.Set("key", y.apiKey)

	engine.IncrYouTubeAPIRequests()
	var resp ytPlaylistItemsResp
	if err := y.f.GetJSON(ctx, y.BaseURL+"/playlistItems?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("youtube playlistItems %s: %w", playlistID, err)
	}

	source := "youtube:" + playlistID
	items := make([]engine.Item, 0, len(resp.Items))
	for _, it := range resp.Items {
		id := it.Snippet.ResourceID.VideoID
		if id == "" {
			continue
		}
		published, err := time.Parse(time.RFC3339, it.Snippet.PublishedAt)
		if err != nil {
			published = time.Time{}
		}
		items = append(items, engine.Item{
			ID:          id,
			Source:      source,
			Title:       it.Snippet.Title,
			URL:         "https://www.youtube.com/watch?v=" + id,
			PublishedAt: published.UTC(),
			Payload:     map[string]any{"playlist_id": playlistID},
		})
	}
	return items, nil
}

// PlaylistInfo looks up the title and channel of a playlist.
func (y *YouTube) PlaylistInfo(ctx context.Context, playlistID string) (PlaylistInfo, error) {
	if y.apiKey == "" {
		return PlaylistInfo{}, ErrNoAPIKey
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", playlistID)
	params.Set("key", y.apiKey)

	engine.IncrYouTubeAPIRequests()
	var resp ytPlaylistsResp
	if err := y.f.GetJSON(ctx, y.BaseURL+"/playlists?"+params.Encode(), nil, &resp); err != nil {
		return PlaylistInfo{}, fmt.Errorf("youtube playlists %s: %w", playlistID, err)
	}
	if len(resp.Items) == 0 {
		return PlaylistInfo{}, fmt.Errorf("youtube playlist %s: not found", playlistID)
	}
	p := resp.Items[0]
	return PlaylistInfo{ID: p.ID, Title: p.Snippet.Title, ChannelTitle: p.Snippet.ChannelTitle}, nil
}

// Playlist wraps one playlist as an extractor named "youtube:<id>".
func (y *YouTube) Playlist(playlistID string) engine.Extractor {
	name := "youtube:" + playlistID
	return engine.ExtractorFunc{
		SourceName: name,
		Fn: func(ctx context.Context) ([]engine.Item, error) {
			items, err := y.PlaylistVideos(ctx, playlistID)
			if err != nil {
				return nil, engine.Transient(name, err)
			}
			return items, nil
		},
	}
}
