package digestserver

import (
	"time"

	"github.com/anatolykoptev/go_digest/internal/engine"
	"github.com/anatolykoptev/go_digest/internal/engine/sources"
)

// ItemView is the wire form of an engine.Item. Times are RFC 3339 strings.
type ItemView struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Title       string         `json:"title"`
	URL         string         `json:"url"`
	PublishedAt string         `json:"published_at,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// SourceView is one source's slot in a batch.
type SourceView struct {
	Source string     `json:"source"`
	Items  []ItemView `json:"items"`
	Error  string     `json:"error,omitempty"`
}

func viewItems(items []engine.Item) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		v := ItemView{ID: it.ID, Source: it.Source, Title: it.Title, URL: it.URL, Payload: it.Payload}
		if it.Dated() {
			v.PublishedAt = it.PublishedAt.Format(time.RFC3339)
		}
		out = append(out, v)
	}
	return out
}

func viewResult(name string, r engine.SourceResult) SourceView {
	return SourceView{Source: name, Items: viewItems(r.Items), Error: r.Error}
}

// --- dashboard_overview ---

type OverviewInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"bypass the 5 minute cache"`
}

type PlaylistSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title,omitempty"`
	UnseenCount  int    `json:"unseen_count"`
	Error        string `json:"error,omitempty"`
}

type EpisodeCount struct {
	Category string `json:"category"`
	Unheard  int    `json:"unheard"`
	Error    string `json:"error,omitempty"`
}

type OverviewOutput struct {
	Playlists   []PlaylistSummary `json:"playlists"`
	Episodes    []EpisodeCount    `json:"episodes"`
	Sources     []SourceView      `json:"sources"`
	Subreddits  []string          `json:"subreddits"`
	GeneratedAt string            `json:"generated_at"`
}

// --- playlists ---

type PlaylistUnseenInput struct {
	PlaylistID string `json:"playlist_id" jsonschema:"YouTube playlist ID"`
}

type PlaylistAddInput struct {
	PlaylistID string `json:"playlist_id" jsonschema:"YouTube playlist ID to track"`
}

type PlaylistAddOutput struct {
	PlaylistID string               `json:"playlist_id"`
	Info       sources.PlaylistInfo `json:"info"`
	Tracked    int                  `json:"tracked"`
}

// --- seen sets ---

type MarkSeenInput struct {
	Category string   `json:"category" jsonschema:"videos or episodes"`
	IDs      []string `json:"ids" jsonschema:"video IDs or episode audio URLs"`
}

type MarkSeenOutput struct {
	Category string `json:"category"`
	Written  int    `json:"written"`
}

type EpisodesInput struct {
	Category string `json:"category" jsonschema:"air-spotlight, air-insight, air-money-talk or air-current-affairs"`
}

// ItemsOutput is a flat item list.
type ItemsOutput struct {
	Items []ItemView `json:"items"`
	Count int        `json:"count"`
}

func itemsOutput(items []engine.Item) ItemsOutput {
	v := viewItems(items)
	return ItemsOutput{Items: v, Count: len(v)}
}

// --- pib_documents ---

type PIBInput struct {
	Kind     string `json:"kind" jsonschema:"backgrounders or factsheets"`
	Ministry string `json:"ministry,omitempty" jsonschema:"ministry dropdown value, 0 for all"`
	Year     string `json:"year,omitempty" jsonschema:"four digit year, defaults to the current year"`
	Month    string `json:"month,omitempty" jsonschema:"1-12, 0 for all"`
	Day      string `json:"day,omitempty" jsonschema:"1-31, 0 for all"`
}

// --- source_items ---

type SourceItemsInput struct {
	Source string `json:"source" jsonschema:"extractor name, youtube:<playlist> or reddit:<subreddit>"`
}

// --- article_read ---

type ArticleInput struct {
	URL    string `json:"url" jsonschema:"article URL"`
	Reader string `json:"reader,omitempty" jsonschema:"generic (default), insights, hindu or forumias"`
}

// --- reddit_posts ---

type RedditInput struct {
	Subreddits []string `json:"subreddits,omitempty" jsonschema:"subreddit names, defaults to the configured list"`
	Sort       string   `json:"sort,omitempty" jsonschema:"hot (default), new or top"`
	Limit      int      `json:"limit,omitempty" jsonschema:"posts per subreddit, default 10"`
}
