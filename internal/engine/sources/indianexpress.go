package sources

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

const indianExpressURL = "https://indianexpress.com/section/upsc-current-affairs/upsc-essentials/"

// IndianExpress extracts the UPSC Essentials listing, newest first,
// limited to Window days.
type IndianExpress struct {
	page
	Window int
}

func NewIndianExpress(f *engine.Fetcher) *IndianExpress {
	return &IndianExpress{page: newPage(f, "indian-express", indianExpressURL), Window: 7}
}

func (ie *IndianExpress) Extract(ctx context.Context) ([]engine.Item, error) {
	doc, err := ie.document(ctx)
	if err != nil {
		return nil, err
	}
	cards := doc.Find("div.articles")
	if cards.Length() == 0 {
		return ie.missing("div.articles"), nil
	}

	origin := ie.origin()
	var items []engine.Item
	cards.Each(func(_ int, card *goquery.Selection) {
		body := card.Find("div.img-context").First()
		link := body.Find("h2.title a").First()
		title := engine.Text(link)
		href := engine.ResolveURL(origin, attr(link, "href"))
		if title == "" || href == "" {
			return
		}

		rawDate := engine.Text(body.Find("div.date").First())
		published, err := engine.ParseDate(strings.ReplaceAll(rawDate, "IST", ""), engine.IST,
			"January 2, 2006 15:04", "January 2, 2006")
		if err != nil {
			ie.skip(title, err)
			return
		}

		img := card.Find("div.snaps img").First()
		image := attr(img, "src")
		if image == "" || strings.HasPrefix(image, "data:") {
			image = attr(img, "data-src")
		}

		items = append(items, engine.Item{
			ID:          href,
			Source:      ie.name,
			Title:       title,
			URL:         href,
			PublishedAt: published,
			Payload: map[string]any{
				"summary":   engine.Text(body.Find("p").First()),
				"image_url": engine.ResolveURL(origin, image),
				"date":      rawDate,
			},
		})
	})

	items = engine.FilterRecentAt(items, ie.Window, ie.now())
	engine.SortNewestFirst(items)
	if items == nil {
		items = []engine.Item{}
	}
	return items, nil
}
