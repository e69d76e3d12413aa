package engine

import (
	"context"
	"time"
)

// Item is the normalized shape every extractor produces.
type Item struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Title       string         `json:"title"`
	URL         string         `json:"url"`
	PublishedAt time.Time      `json:"published_at,omitzero"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// Dated reports whether the item carries a usable publication time.
func (it Item) Dated() bool { return !it.PublishedAt.IsZero() }

// Extractor turns one external source into items.
// Implementations return an empty slice (not an error) when the page is
// reachable but the expected structure is missing.
type Extractor interface {
	Name() string
	Extract(ctx context.Context) ([]Item, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc struct {
	SourceName string
	Fn         func(ctx context.Context) ([]Item, error)
}

func (f ExtractorFunc) Name() string { return f.SourceName }

func (f ExtractorFunc) Extract(ctx context.Context) ([]Item, error) { return f.Fn(ctx) }

// SourceResult is one slot of a FetchBatch: items, or an empty list and the failure reason.
type SourceResult struct {
	Items []Item `json:"items"`
	Error string `json:"error,omitempty"`
}

// FetchBatch maps extractor name to its result for one orchestration run.
type FetchBatch map[string]SourceResult

// Items returns the items for name, or nil when the slot is absent or failed.
func (b FetchBatch) Items(name string) []Item {
	return b[name].Items
}

// Failed lists the sources whose slot carries an error.
func (b FetchBatch) Failed() []string {
	var out []string
	for name, r := range b {
		if r.Error != "" {
			out = append(out, name)
		}
	}
	return out
}
