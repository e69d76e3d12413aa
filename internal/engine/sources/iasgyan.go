package sources

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

const (
	iasgyanSummariesURL = "https://www.iasgyan.in/sansad-tv-air-summaries"
	iasgyanDailyURL     = "https://www.iasgyan.in/daily-current-affairs"
)

// IASGyanSummaries extracts the Sansad TV / AIR summary cards and keeps the
// Limit most recent. Cards with an unreadable date are kept, undated, and
// sort last.
type IASGyanSummaries struct {
	page
	Limit int
}

func NewIASGyanSummaries(f *engine.Fetcher) *IASGyanSummaries {
	return &IASGyanSummaries{page: newPage(f, "iasgyan-summaries", iasgyanSummariesURL), Limit: 3}
}

func (s *IASGyanSummaries) Extract(ctx context.Context) ([]engine.Item, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}
	boxes := doc.Find("div.content_bx")
	if boxes.Length() == 0 {
		return s.missing("div.content_bx"), nil
	}

	origin := s.origin()
	items := []engine.Item{}
	boxes.Each(func(_ int, box *goquery.Selection) {
		link := box.Find("div.title a").First()
		date := box.Find("li.text-muted").First()
		points := box.Find("div.short_descr ol").First()
		more := box.Find("div.readmore_btn a").First()
		if link.Length() == 0 || date.Length() == 0 || points.Length() == 0 || more.Length() == 0 {
			return
		}
		title := engine.Text(link)
		href := engine.ResolveURL(origin, attr(link, "href"))
		if title == "" || href == "" {
			return
		}

		rawDate := engine.Text(date)
		published, err := engine.ParseDate(strings.ReplaceAll(rawDate, ",", " "), engine.IST, "2 Jan 2006", "2 January 2006")
		if err != nil {
			s.undated(title, err)
		}

		var list []string
		points.Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := engine.Text(li); t != "" {
				list = append(list, t)
			}
		})

		items = append(items, engine.Item{
			ID:          href,
			Source:      s.name,
			Title:       title,
			URL:         href,
			PublishedAt: published,
			Payload: map[string]any{
				"date":          rawDate,
				"points":        list,
				"read_more_url": engine.ResolveURL(origin, attr(more, "href")),
			},
		})
	})

	engine.SortNewestFirst(items)
	if s.Limit > 0 && len(items) > s.Limit {
		items = items[:s.Limit]
	}
	return items, nil
}

// IASGyanDaily extracts daily current-affairs groups. Every article link in
// a group takes the group's date.
type IASGyanDaily struct {
	page
	Window int
}

func NewIASGyanDaily(f *engine.Fetcher) *IASGyanDaily {
	return &IASGyanDaily{page: newPage(f, "iasgyan-daily", iasgyanDailyURL), Window: 6}
}

// Heading text looks like "Daily Current Affairs – 5th March 2024".
var groupDateRe = regexp.MustCompile(`[–—-]\s*([^–—-]+)$`)

func (d *IASGyanDaily) Extract(ctx context.Context) ([]engine.Item, error) {
	doc, err := d.document(ctx)
	if err != nil {
		return nil, err
	}
	groups := doc.Find("div.shadow.mt-4.rounded-2")
	if groups.Length() == 0 {
		return d.missing("daily groups"), nil
	}

	origin := d.origin()
	cutoff := engine.Cutoff(d.now(), d.Window)
	items := []engine.Item{}

	groups.Each(func(_ int, g *goquery.Selection) {
		heading := engine.Text(g.Find("h3.fw-semibold.text-white.m-0.fs-5").First())
		links := g.Find("a.w-100")
		if heading == "" || links.Length() == 0 {
			return
		}
		m := groupDateRe.FindStringSubmatch(heading)
		if m == nil {
			d.skip(heading, engine.Structural(d.name, "group date"))
			return
		}
		published, err := engine.ParseDate(m[1], engine.IST, "2 January 2006", "2 Jan 2006")
		if err != nil {
			d.skip(heading, err)
			return
		}
		if published.Before(cutoff) {
			return
		}

		links.Each(func(_ int, a *goquery.Selection) {
			title := engine.Text(a)
			href := engine.ResolveURL(origin, attr(a, "href"))
			if title == "" || href == "" {
				return
			}
			items = append(items, engine.Item{
				ID:          href,
				Source:      d.name,
				Title:       title,
				URL:         href,
				PublishedAt: published,
				Payload:     map[string]any{"group": heading},
			})
		})
	})

	engine.SortNewestFirst(items)
	return items, nil
}
