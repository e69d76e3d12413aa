package sources

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

const forumIASURL = "https://forumias.com/blog/7pm/"

// ForumIAS extracts the latest 7 PM editorial archive. Titles are prefixed
// with the group's "[27 NOV]" style date label.
type ForumIAS struct {
	page
}

func NewForumIAS(f *engine.Fetcher) *ForumIAS {
	return &ForumIAS{page: newPage(f, "forumias", forumIASURL)}
}

func (fi *ForumIAS) Extract(ctx context.Context) ([]engine.Item, error) {
	doc, err := fi.document(ctx)
	if err != nil {
		return nil, err
	}
	archive := doc.Find("div.ajax-cat-archive-output").First()
	if archive.Length() == 0 {
		return fi.missing("div.ajax-cat-archive-output"), nil
	}

	origin := fi.origin()
	now := fi.now()
	items := []engine.Item{}
	archive.Find("div.cat-archive-date-group").Each(func(_ int, group *goquery.Selection) {
		label := engine.Text(group.Find("div.post-date").First())
		published := dayMonthDate(label, now)

		group.Find("ul.cat-archive-list li a").Each(func(_ int, a *goquery.Selection) {
			title := engine.Text(a)
			href := engine.ResolveURL(origin, attr(a, "href"))
			if title == "" || href == "" {
				return
			}
			if label != "" {
				title = "[" + label + "] " + title
			}
			items = append(items, engine.Item{
				ID:          href,
				Source:      fi.name,
				Title:       title,
				URL:         href,
				PublishedAt: published,
				Payload: map[string]any{
					"section": "Latest 7 PM Editorials",
					"date":    label,
				},
			})
		})
	})
	return items, nil
}

// dayMonthDate reads a year-less "27 NOV" label as the most recent such day
// not after now. Unreadable labels give the zero time.
func dayMonthDate(label string, now time.Time) time.Time {
	if label == "" {
		return time.Time{}
	}
	d, err := engine.ParseDate(label, engine.IST, "2 Jan 2006", "2 January 2006", "2 Jan", "2 January", "Jan 2")
	if err != nil {
		return time.Time{}
	}
	if d.Year() == 0 {
		d = time.Date(now.Year(), d.Month(), d.Day(), 0, 0, 0, 0, engine.IST)
		if d.After(now) {
			d = d.AddDate(-1, 0, 0)
		}
	}
	return d
}
