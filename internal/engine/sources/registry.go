package sources

import (
	"sort"
	"strings"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// DashboardSources are fetched together for the overview, in display order.
var DashboardSources = []string{
	"air-spotlight", "air-insight", "air-money-talk", "air-current-affairs",
	"indian-express", "orf", "iasgyan-summaries",
	"pib-backgrounders", "pib-factsheets", "forumias", "insights",
}

// Registry owns every configured extractor and the API-backed sources.
type Registry struct {
	Settings engine.Settings
	YouTube  *YouTube
	Reddit   *Reddit
	Readers  *Readers

	air        map[string]AIRCategory
	extractors map[string]engine.Extractor
}

// NewRegistry builds all extractors with the per-source overrides in s.
func NewRegistry(f *engine.Fetcher, s engine.Settings) *Registry {
	r := &Registry{
		Settings:   s,
		YouTube:    NewYouTube(f),
		Reddit:     NewReddit(f),
		Readers:    NewReaders(f),
		air:        make(map[string]AIRCategory),
		extractors: make(map[string]engine.Extractor),
	}

	for _, cat := range AIRCategories {
		cat.Window = s.Window(cat.Name, cat.Window)
		if titles := s.AIRTitles[cat.Name]; len(titles) > 0 {
			cat.Titles = titles
		}
		r.air[cat.Name] = cat
		r.add(NewAIR(f, cat))
	}

	ie := NewIndianExpress(f)
	ie.Window = s.Window(ie.Name(), ie.Window)
	r.add(ie)

	orf := NewORF(f)
	orf.Window = s.Window(orf.Name(), orf.Window)
	r.add(orf)

	r.add(NewIASGyanSummaries(f))

	daily := NewIASGyanDaily(f)
	daily.Window = s.Window(daily.Name(), daily.Window)
	r.add(daily)

	r.add(NewPIB(f, PIBBackgrounders))
	r.add(NewPIB(f, PIBFactsheets))
	r.add(NewForumIAS(f))
	r.add(NewInsights(f))

	mea := NewMEA(f)
	mea.Window = s.Window(mea.Name(), mea.Window)
	r.add(mea)

	r.add(NewPRS(f))
	return r
}

func (r *Registry) add(ex engine.Extractor) {
	r.extractors[ex.Name()] = ex
}

// Lookup returns the extractor called name. "youtube:<playlist>" and
// "reddit:<subreddit>" are built on demand.
func (r *Registry) Lookup(name string) (engine.Extractor, bool) {
	if ex, ok := r.extractors[name]; ok {
		return ex, true
	}
	if id, ok := strings.CutPrefix(name, "youtube:"); ok && id != "" {
		return r.YouTube.Playlist(id), true
	}
	if sub, ok := strings.CutPrefix(name, "reddit:"); ok && sub != "" {
		return r.Reddit.Subreddit(sub, r.Settings.RedditSort, r.Settings.RedditLimit), true
	}
	return nil, false
}

// Names lists the statically registered extractors, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for n := range r.extractors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Dashboard returns the enabled overview extractors.
func (r *Registry) Dashboard() []engine.Extractor {
	var out []engine.Extractor
	for _, name := range DashboardSources {
		if !r.Settings.Enabled(name) {
			continue
		}
		if ex, ok := r.extractors[name]; ok {
			out = append(out, ex)
		}
	}
	return out
}

// AIRCategory returns the configured broadcast category called name.
func (r *Registry) AIRCategory(name string) (AIRCategory, bool) {
	cat, ok := r.air[name]
	return cat, ok
}

// AIRNames lists the broadcast categories in display order.
func (r *Registry) AIRNames() []string {
	names := make([]string, 0, len(AIRCategories))
	for _, c := range AIRCategories {
		names = append(names, c.Name)
	}
	return names
}

// PIB returns the extractor for kind ("backgrounders" or "factsheets").
func (r *Registry) PIB(kind string) (*PIB, bool) {
	name := "pib-" + strings.TrimPrefix(kind, "pib-")
	ex, ok := r.extractors[name]
	if !ok {
		return nil, false
	}
	p, ok := ex.(*PIB)
	return p, ok
}

