package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

const insightsURL = "https://www.insightsonindia.com/upsc-mains-answer-writing-2025-insights-ias/"

// Insights extracts answer-writing links from the first Blocks link lists.
type Insights struct {
	page
	Blocks int
}

func NewInsights(f *engine.Fetcher) *Insights {
	return &Insights{page: newPage(f, "insights", insightsURL), Blocks: 2}
}

func (in *Insights) Extract(ctx context.Context) ([]engine.Item, error) {
	doc, err := in.document(ctx)
	if err != nil {
		return nil, err
	}
	lists := doc.Find("div.list_div")
	if lists.Length() == 0 {
		return in.missing("div.list_div"), nil
	}

	origin := in.origin()
	items := []engine.Item{}
	used := 0
	lists.EachWithBreak(func(_ int, div *goquery.Selection) bool {
		if used >= in.Blocks {
			return false
		}
		ul := div.Find("ul.lcp_catlist").First()
		if ul.Length() == 0 {
			return true
		}
		used++
		ul.Find("li").Each(func(_ int, li *goquery.Selection) {
			a := li.Find("a").First()
			title := engine.Text(a)
			href := engine.ResolveURL(origin, attr(a, "href"))
			if title == "" || href == "" {
				return
			}
			items = append(items, engine.Item{ID: href, Source: in.name, Title: title, URL: href})
		})
		return true
	})
	return items, nil
}
