package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

// PIBKind is one PIB document listing with its primary and alternate endpoint.
type PIBKind struct {
	Name      string
	Primary   string
	Alternate string
}

var (
	PIBBackgrounders = PIBKind{
		Name:      "pib-backgrounders",
		Primary:   "https://www.pib.gov.in/ViewBackgrounder.aspx?MenuId=51&reg=3&lang=1",
		Alternate: "https://www.pib.gov.in/ViewBackgrounder.aspx?MenuId=51",
	}
	PIBFactsheets = PIBKind{
		Name:      "pib-factsheets",
		Primary:   "https://www.pib.gov.in/AllFactsheet.aspx?MenuId=12&reg=3&lang=1",
		Alternate: "https://www.pib.gov.in/AllFactsheet.aspx?MenuId=12",
	}
)

// ASP.NET form fields driven by the filter.
const (
	pibFieldPrefix   = "ctl00$ContentPlaceHolder1$"
	pibFieldMinistry = pibFieldPrefix + "ddlMinistry"
	pibFieldYear     = pibFieldPrefix + "ddlYear"
	pibFieldMonth    = pibFieldPrefix + "ddlMonth"
	pibFieldDay      = pibFieldPrefix + "ddlday"
	pibFieldSector   = pibFieldPrefix + "ddlSector"
)

// PIBFilter narrows a PIB listing. Empty fields mean "all", except Year,
// which defaults to the current year.
type PIBFilter struct {
	Ministry string `json:"ministry,omitempty"`
	Year     string `json:"year,omitempty"`
	Month    string `json:"month,omitempty"`
	Day      string `json:"day,omitempty"`
}

// PIB extracts backgrounders or factsheets through the site's ASP.NET
// postback form: GET to harvest form state and the session cookie, POST the
// same state with the filter applied, parse the result list. A run with no
// results is repeated once against the alternate endpoint.
type PIB struct {
	page
	kind   PIBKind
	Filter PIBFilter
}

func NewPIB(f *engine.Fetcher, kind PIBKind) *PIB {
	return &PIB{page: newPage(f, kind.Name, kind.Primary), kind: kind}
}

// SetEndpoints overrides both listing URLs.
func (p *PIB) SetEndpoints(primary, alternate string) {
	p.kind.Primary, p.kind.Alternate = primary, alternate
	p.url = primary
}

func (p *PIB) Extract(ctx context.Context) ([]engine.Item, error) {
	return p.Fetch(ctx, p.Filter)
}

// Fetch runs the form flow with filter.
func (p *PIB) Fetch(ctx context.Context, filter PIBFilter) ([]engine.Item, error) {
	items, err := p.scrape(ctx, p.kind.Primary, filter)
	if len(items) > 0 {
		return items, nil
	}
	if p.kind.Alternate == "" {
		return emptyOr(items), err
	}
	slog.Info(p.name+": no results, trying alternate endpoint",
		slog.String("source", p.name), slog.String("url", p.kind.Alternate), slog.Any("error", err))
	items, err = p.scrape(ctx, p.kind.Alternate, filter)
	return emptyOr(items), err
}

func emptyOr(items []engine.Item) []engine.Item {
	if items == nil {
		return []engine.Item{}
	}
	return items
}

func (p *PIB) scrape(ctx context.Context, pageURL string, filter PIBFilter) ([]engine.Item, error) {
	sess, err := p.f.NewSession(true)
	if err != nil {
		return nil, engine.Transient(p.name, err)
	}
	origin := engine.Origin(pageURL)
	headers := map[string]string{
		"Origin":  origin,
		"Referer": pageURL,
	}

	body, err := sess.Get(ctx, pageURL, headers)
	if err != nil {
		return nil, engine.Transient(p.name, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, engine.Transient(p.name, fmt.Errorf("parse form page: %w", err))
	}

	form := harvestForm(doc)
	applyPIBFilter(form, filter, p.now().Year())

	engine.IncrPIBFormPosts()
	body, err = sess.PostForm(ctx, pageURL, form, headers)
	if err != nil {
		return nil, engine.Transient(p.name, err)
	}
	doc, err = goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, engine.Transient(p.name, fmt.Errorf("parse results: %w", err))
	}
	return p.parseResults(doc, origin), nil
}

// harvestForm collects every named input's current value, hidden or not.
func harvestForm(doc *goquery.Document) url.Values {
	form := url.Values{}
	doc.Find("input[name]").Each(func(_ int, in *goquery.Selection) {
		name := attr(in, "name")
		if name == "" {
			return
		}
		form.Set(name, attr(in, "value"))
	})
	return form
}

// applyPIBFilter overrides the filter dropdowns and makes the year dropdown
// the postback target. All other harvested fields are left as they were.
func applyPIBFilter(form url.Values, f PIBFilter, currentYear int) {
	orAll := func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return "0"
		}
		return v
	}
	year := strings.TrimSpace(f.Year)
	if year == "" || year == "0" {
		year = strconv.Itoa(currentYear)
	}

	form.Set("__EVENTTARGET", pibFieldYear)
	form.Set("__EVENTARGUMENT", "")
	form.Set(pibFieldMinistry, orAll(f.Ministry))
	form.Set(pibFieldYear, year)
	form.Set(pibFieldMonth, orAll(f.Month))
	form.Set(pibFieldDay, orAll(f.Day))
	form.Set(pibFieldSector, "0")
}

func (p *PIB) parseResults(doc *goquery.Document, origin string) []engine.Item {
	area := doc.Find("div.content-area")
	if area.Length() == 0 {
		return p.missing("div.content-area")
	}

	items := []engine.Item{}
	area.Find("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a").First()
		date := li.Find("span.publishdatesmall").First()
		if link.Length() == 0 || date.Length() == 0 {
			return
		}
		title := engine.Text(link)
		href := engine.ResolveURL(origin, attr(link, "href"))
		if title == "" || href == "" {
			return
		}

		rawDate := strings.TrimSpace(strings.ReplaceAll(engine.Text(date), "Posted on:", ""))
		published, err := engine.ParseDate(rawDate, engine.IST, "02 Jan 2006", "2 Jan 2006", "2 January 2006", "January 2, 2006")
		if err != nil {
			p.undated(title, err)
		}

		items = append(items, engine.Item{
			ID:          href,
			Source:      p.name,
			Title:       title,
			URL:         href,
			PublishedAt: published,
			Payload:     map[string]any{"date": rawDate},
		})
	})
	return items
}
