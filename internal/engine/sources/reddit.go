package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

const (
	redditBase       = "https://www.reddit.com"
	redditExcerptLen = 300
)

// RedditSorts are the listing orders accepted by Subreddit.
var RedditSorts = []string{"hot", "new", "top"}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Flair       string  `json:"link_flair_text"`
	Over18      bool    `json:"over_18"`
	Spoiler     bool    `json:"spoiler"`
}

// Reddit reads public subreddit listings.
type Reddit struct {
	f  *engine.Fetcher
	ua string
	// BaseURL overrides the listing host.
	BaseURL string
}

func NewReddit(f *engine.Fetcher) *Reddit {
	return &Reddit{f: f, ua: f.Config().RedditUserAgent, BaseURL: redditBase}
}

// NormalizeSort maps an unknown sort to "hot".
func NormalizeSort(sort string) string {
	sort = strings.ToLower(strings.TrimSpace(sort))
	for _, s := range RedditSorts {
		if s == sort {
			return s
		}
	}
	return "hot"
}

// Posts fetches up to limit posts of sub in the given order.
func (r *Reddit) Posts(ctx context.Context, sub, sort string, limit int) ([]engine.Item, error) {
	if limit <= 0 {
		limit = 10
	}
	sort = NormalizeSort(sort)
	u := fmt.Sprintf("%s/r/%s/%s.json?limit=%d", r.BaseURL, url.PathEscape(sub), sort, limit)

	engine.IncrRedditRequests()
	var listing redditListing
	if err := r.f.GetJSON(ctx, u, map[string]string{"User-Agent": r.ua}, &listing); err != nil {
		return nil, fmt.Errorf("reddit r/%s: %w", sub, err)
	}

	source := "reddit:" + sub
	items := make([]engine.Item, 0, len(listing.Data.Children))
	for _, c := range listing.Data.Children {
		p := c.Data
		if p.Permalink == "" {
			continue
		}
		link := "https://reddit.com" + p.Permalink
		author := p.Author
		if author == "" {
			author = "[deleted]"
		}
		flair := p.Flair
		if flair == "" {
			flair = "No flair"
		}
		var created time.Time
		if p.CreatedUTC > 0 {
			created = time.Unix(int64(p.CreatedUTC), 0).UTC()
		}
		items = append(items, engine.Item{
			ID:          link,
			Source:      source,
			Title:       p.Title,
			URL:         link,
			PublishedAt: created,
			Payload: map[string]any{
				"subreddit":    sub,
				"url":          p.URL,
				"author":       author,
				"score":        p.Score,
				"num_comments": p.NumComments,
				"created_utc":  p.CreatedUTC,
				"selftext":     engine.TruncateRunes(p.Selftext, redditExcerptLen, "..."),
				"flair":        flair,
				"nsfw":         p.Over18,
				"spoiler":      p.Spoiler,
			},
		})
	}
	return items, nil
}

// Subreddit wraps one listing as an extractor named "reddit:<sub>".
func (r *Reddit) Subreddit(sub, sort string, limit int) engine.Extractor {
	name := "reddit:" + sub
	return engine.ExtractorFunc{
		SourceName: name,
		Fn: func(ctx context.Context) ([]engine.Item, error) {
			items, err := r.Posts(ctx, sub, sort, limit)
			if err != nil {
				return nil, engine.Transient(name, err)
			}
			return items, nil
		},
	}
}

// Many fetches several subreddits concurrently. A failing subreddit
// contributes no posts; its error is logged by the orchestrator.
func (r *Reddit) Many(ctx context.Context, subs []string, sort string, limit int) []engine.Item {
	extractors := make([]engine.Extractor, 0, len(subs))
	for _, s := range subs {
		extractors = append(extractors, r.Subreddit(s, sort, limit))
	}
	batch := engine.RunAll(ctx, extractors)
	var all []engine.Item
	for _, s := range subs {
		all = append(all, batch.Items("reddit:"+s)...)
	}
	return all
}
