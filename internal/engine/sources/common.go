package sources

import (
	"context"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

// page is the shared state of a single-URL HTML extractor.
type page struct {
	name string
	url  string
	f    *engine.Fetcher
	now  func() time.Time
}

func newPage(f *engine.Fetcher, name, url string) page {
	return page{name: name, url: url, f: f, now: time.Now}
}

// Name returns the extractor name used as the FetchBatch key.
func (p *page) Name() string { return p.name }

// SetURL points the extractor at a different listing URL.
func (p *page) SetURL(u string) { p.url = u }

// SetClock replaces the time source used for recency cutoffs.
func (p *page) SetClock(now func() time.Time) { p.now = now }

func (p *page) origin() string { return engine.Origin(p.url) }

// document fetches the listing page. Fetch failures come back as transient
// extraction errors.
func (p *page) document(ctx context.Context) (*goquery.Document, error) {
	doc, err := p.f.GetDocument(ctx, p.url)
	if err != nil {
		return nil, engine.Transient(p.name, err)
	}
	return doc, nil
}

// missing logs a structural mismatch. The caller returns an empty result.
func (p *page) missing(what string) []engine.Item {
	slog.Warn(p.name+": structure not found",
		slog.String("source", p.name), slog.String("url", p.url),
		slog.Any("error", engine.Structural(p.name, what)))
	return []engine.Item{}
}

// skip logs a single unparseable item.
func (p *page) skip(title string, err error) {
	slog.Debug(p.name+": item skipped",
		slog.String("source", p.name), slog.String("title", title),
		slog.Any("error", engine.ItemError(p.name, err)))
}

// undated logs an item kept without a publication time.
func (p *page) undated(title string, err error) {
	slog.Debug(p.name+": item undated",
		slog.String("source", p.name), slog.String("title", title), slog.Any("error", err))
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return v
}
