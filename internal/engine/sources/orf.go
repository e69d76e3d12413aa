package sources

import (
	"context"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

const orfURL = "https://www.orfonline.org/content-type/issue-briefs"

var (
	orfCardClasses = []string{"col-", "card", "item", "listing", "post"}
	orfDateClasses = []string{"date", "meta", "time"}
)

// ORF extracts issue briefs. The listing markup changes often, so cards are
// discovered by class substrings rather than a fixed selector. Cards without
// a readable date are stamped with the fetch time.
type ORF struct {
	page
	Window int
}

func NewORF(f *engine.Fetcher) *ORF {
	return &ORF{page: newPage(f, "orf", orfURL), Window: 45}
}

func (o *ORF) Extract(ctx context.Context) ([]engine.Item, error) {
	doc, err := o.document(ctx)
	if err != nil {
		return nil, err
	}

	now := o.now()
	cutoff := engine.Cutoff(now, o.Window)
	origin := o.origin()
	seen := make(map[string]bool)
	items := []engine.Item{}

	cards := doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasAnyClass(s, orfCardClasses)
	})
	cards.Each(func(_ int, card *goquery.Selection) {
		heading := card.Find("h2, h3").First()
		title := engine.Text(heading)
		if utf8.RuneCountInString(title) < 10 {
			return
		}

		link := heading.Find("a").First()
		if attr(link, "href") == "" {
			link = card.Find("a").First()
		}
		href := engine.ResolveURL(origin, attr(link, "href"))
		if href == "" || seen[href] {
			return
		}

		published := now
		if raw := o.dateText(card); raw != "" {
			if d, err := engine.ParseDate(raw, engine.IST, "Jan 2, 2006", "2 January 2006", "January 2, 2006"); err == nil {
				published = d
			}
		}
		if published.Before(cutoff) {
			return
		}

		seen[href] = true
		items = append(items, engine.Item{
			ID:          href,
			Source:      o.name,
			Title:       title,
			URL:         href,
			PublishedAt: published,
			Payload: map[string]any{
				"description": engine.Text(card.Find("p").First()),
				"author":      "ORF",
			},
		})
	})

	if len(items) == 0 && cards.Length() == 0 {
		return o.missing("article cards"), nil
	}
	engine.SortNewestFirst(items)
	return items, nil
}

func (o *ORF) dateText(card *goquery.Selection) string {
	if t := card.Find("time").First(); t.Length() > 0 {
		return engine.Text(t)
	}
	el := card.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasAnyClass(s, orfDateClasses)
	}).First()
	return engine.Text(el)
}

func hasAnyClass(s *goquery.Selection, subs []string) bool {
	for _, sub := range subs {
		if engine.HasClass(s, sub) {
			return true
		}
	}
	return false
}
