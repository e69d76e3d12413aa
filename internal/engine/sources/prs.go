package sources

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

const prsURL = "https://prsindia.org"

var prsCardClassRe = regexp.MustCompile(`^col-\w*-6$`)

// PRS extracts the highlight cards from the PRS India home page banner.
type PRS struct {
	page
}

func NewPRS(f *engine.Fetcher) *PRS {
	return &PRS{page: newPage(f, "prs", prsURL)}
}

func (p *PRS) Extract(ctx context.Context) ([]engine.Item, error) {
	doc, err := p.document(ctx)
	if err != nil {
		return nil, err
	}
	banner := doc.Find("div.right-banner").First()
	if banner.Length() == 0 {
		return p.missing("div.right-banner"), nil
	}

	base := strings.TrimRight(p.url, "/")
	seen := make(map[string]bool)
	items := []engine.Item{}
	banner.Find("div, section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, c := range strings.Fields(attr(s, "class")) {
			if prsCardClassRe.MatchString(c) {
				return true
			}
		}
		return false
	}).Each(func(_ int, card *goquery.Selection) {
		title := engine.Text(card.Find("h3, h4, h5").First())
		href := engine.ResolveURL(base, attr(card.Find("a").First(), "href"))
		if title == "" || href == "" || seen[href] {
			return
		}
		seen[href] = true
		items = append(items, engine.Item{
			ID:      href,
			Source:  p.name,
			Title:   title,
			URL:     href,
			Payload: map[string]any{"image_url": engine.ResolveURL(base, attr(card.Find("img").First(), "src"))},
		})
	})
	return items, nil
}
