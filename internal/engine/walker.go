package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Walker follows "next page" links on a date-ordered listing until it
// reaches items older than the cutoff.
type Walker struct {
	Source string
	// Fetch loads one page.
	Fetch func(ctx context.Context, pageURL string) (*goquery.Document, error)
	// Parse maps a page to items. found=false means the listing container
	// was missing.
	Parse func(doc *goquery.Document, pageURL string) (items []Item, found bool)
	// Next returns the absolute next-page URL, or "" on the last page.
	Next     func(doc *goquery.Document, pageURL string) string
	MaxPages int
	Delay    time.Duration
}

// Walk returns every at-or-after-cutoff item from start onward. The first
// page holding an item older than cutoff is the last page read. Fetch
// failures, missing structure, a missing next link or the page cap end the
// walk with whatever was accumulated.
func (w *Walker) Walk(ctx context.Context, start string, cutoff time.Time) []Item {
	maxPages := w.MaxPages
	if maxPages <= 0 {
		maxPages = MaxPages
	}
	limit := rate.Inf
	if w.Delay > 0 {
		limit = rate.Every(w.Delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	var all []Item
	visited := make(map[string]bool)
	pageURL := start

	for page := 1; pageURL != "" && page <= maxPages; page++ {
		if visited[pageURL] {
			slog.Warn("walker: next link cycles", slog.String("source", w.Source), slog.String("url", pageURL))
			break
		}
		visited[pageURL] = true

		if err := limiter.Wait(ctx); err != nil {
			break
		}

		doc, err := w.Fetch(ctx, pageURL)
		if err != nil {
			slog.Warn("walker: fetch failed", slog.String("source", w.Source),
				slog.String("url", pageURL), slog.Any("error", err))
			break
		}
		metrics.PagesWalked.Add(1)

		items, found := w.Parse(doc, pageURL)
		if !found {
			slog.Warn("walker: listing not found", slog.String("source", w.Source), slog.String("url", pageURL))
			break
		}

		sawOld := false
		for _, it := range items {
			if !it.Dated() || it.PublishedAt.Before(cutoff) {
				if it.Dated() {
					sawOld = true
				}
				continue
			}
			all = append(all, it)
		}
		if sawOld {
			slog.Debug("walker: reached cutoff", slog.String("source", w.Source), slog.Int("page", page))
			break
		}

		pageURL = w.Next(doc, pageURL)
	}
	return all
}
