package sources

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

const meaURL = "https://www.mea.gov.in/bilateral-documents.htm?53/Bilateral/Multilateral_Documents"

// MEA walks the bilateral documents listing page by page until it passes
// documents older than Window days.
type MEA struct {
	page
	Window   int
	Delay    time.Duration
	MaxPages int
}

func NewMEA(f *engine.Fetcher) *MEA {
	return &MEA{
		page:     newPage(f, "mea", meaURL),
		Window:   90,
		Delay:    f.Config().PageDelay,
		MaxPages: engine.MaxPages,
	}
}

func (m *MEA) Extract(ctx context.Context) ([]engine.Item, error) {
	origin := m.origin()
	cutoff := engine.Cutoff(m.now().UTC(), m.Window).Truncate(24 * time.Hour)

	var fetchErr error
	w := &engine.Walker{
		Source: m.name,
		Fetch: func(ctx context.Context, pageURL string) (*goquery.Document, error) {
			doc, err := m.f.GetDocument(ctx, pageURL)
			if err != nil && fetchErr == nil && pageURL == m.url {
				fetchErr = engine.Transient(m.name, err)
			}
			return doc, err
		},
		Parse: func(doc *goquery.Document, _ string) ([]engine.Item, bool) {
			return m.parsePage(doc, origin)
		},
		Next: func(doc *goquery.Document, _ string) string {
			return engine.ResolveURL(origin+"/bilateral-documents", attr(doc.Find("a.next").First(), "href"))
		},
		MaxPages: m.MaxPages,
		Delay:    m.Delay,
	}

	items := w.Walk(ctx, m.url, cutoff)
	if fetchErr != nil {
		return nil, fetchErr
	}
	if items == nil {
		items = []engine.Item{}
	}
	return items, nil
}

func (m *MEA) parsePage(doc *goquery.Document, origin string) ([]engine.Item, bool) {
	list := doc.Find("ul.commonListing").First()
	if list.Length() == 0 {
		return nil, false
	}
	var items []engine.Item
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a.searchContent").First()
		date := li.Find("span.date").First()
		if link.Length() == 0 || date.Length() == 0 {
			return
		}
		title := engine.Text(link)
		href := engine.ResolveURL(origin, attr(link, "href"))
		if title == "" || href == "" {
			return
		}
		published, err := engine.ParseDate(engine.Text(date), time.UTC, "January 2, 2006")
		if err != nil {
			m.skip(title, err)
			return
		}
		items = append(items, engine.Item{
			ID:          href,
			Source:      m.name,
			Title:       title,
			URL:         href,
			PublishedAt: published,
			Payload:     map[string]any{"date": published.Format("January 2, 2006")},
		})
	})
	return items, true
}
