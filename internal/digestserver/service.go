package digestserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anatolykoptev/go_digest/internal/engine"
	"github.com/anatolykoptev/go_digest/internal/engine/sources"
	"github.com/anatolykoptev/go_digest/internal/toolutil"
)

const (
	overviewTTL     = 5 * time.Minute
	staticSourceTTL = time.Hour
	youtubeWindow   = 5
	overviewWorkers = 6
)

// staticSources change rarely and are cached for staticSourceTTL.
var staticSources = map[string]bool{"mea": true, "prs": true}

// Service implements the dashboard operations behind the MCP tools.
type Service struct {
	Registry  *sources.Registry
	Seen      *engine.SeenTracker
	Playlists *engine.PlaylistStore
	now       func() time.Time
}

// NewService wires the registry and the file-backed stores for cfg.
func NewService(cfg engine.Config, settings engine.Settings) *Service {
	f := engine.NewFetcher(cfg)
	return &Service{
		Registry:  sources.NewRegistry(f, settings),
		Seen:      engine.NewSeenTracker(cfg),
		Playlists: engine.NewPlaylistStore(cfg),
		now:       time.Now,
	}
}

func (s *Service) youtubeWindow() int {
	return s.Registry.Settings.Window("youtube", youtubeWindow)
}

// Overview builds the dashboard: playlist unseen counts, unheard episode
// counts and the dashboard source batch. Complete results are cached unless
// refresh; an overview with a failed slot is always rebuilt.
func (s *Service) Overview(ctx context.Context, refresh bool) (OverviewOutput, error) {
	key := engine.CacheKey("dashboard_overview")
	if refresh {
		out := s.buildOverview(ctx)
		if overviewComplete(out) {
			engine.CacheStoreJSON(ctx, key, out, overviewTTL)
		}
		return out, nil
	}
	return toolutil.Cached(ctx, key, overviewTTL, overviewComplete, func(ctx context.Context) (OverviewOutput, error) {
		return s.buildOverview(ctx), nil
	})
}

// overviewComplete reports whether no playlist, episode or source slot failed.
func overviewComplete(out OverviewOutput) bool {
	for _, p := range out.Playlists {
		if p.Error != "" {
			return false
		}
	}
	for _, e := range out.Episodes {
		if e.Error != "" {
			return false
		}
	}
	for _, src := range out.Sources {
		if src.Error != "" {
			return false
		}
	}
	return true
}

func (s *Service) buildOverview(ctx context.Context) OverviewOutput {
	now := s.now()
	ids, err := s.Playlists.List()
	if err != nil {
		slog.Warn("overview: playlist store unreadable", slog.Any("error", err))
	}

	var batch engine.FetchBatch
	summaries := make([]PlaylistSummary, len(ids))

	var g errgroup.Group
	g.SetLimit(overviewWorkers)
	g.Go(func() error {
		batch = engine.RunAll(ctx, s.Registry.Dashboard())
		return nil
	})
	for i, id := range ids {
		g.Go(func() error {
			summaries[i] = s.playlistSummary(ctx, id, now)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UnseenCount > summaries[j].UnseenCount
	})

	out := OverviewOutput{
		Playlists:   summaries,
		Subreddits:  s.Registry.Settings.Subreddits,
		GeneratedAt: now.Format(time.RFC3339),
	}
	for _, name := range s.Registry.AIRNames() {
		res, ok := batch[name]
		if !ok {
			continue
		}
		cat, _ := s.Registry.AIRCategory(name)
		recent := engine.FilterRecentAt(res.Items, cat.Window, now)
		out.Episodes = append(out.Episodes, EpisodeCount{
			Category: name,
			Unheard:  len(s.Seen.FilterUnseen(recent, engine.CategoryEpisodes)),
			Error:    res.Error,
		})
	}
	for _, name := range sources.DashboardSources {
		if res, ok := batch[name]; ok {
			out.Sources = append(out.Sources, viewResult(name, res))
		}
	}
	return out
}

func (s *Service) playlistSummary(ctx context.Context, id string, now time.Time) PlaylistSummary {
	sum := PlaylistSummary{ID: id, Title: id}
	info, err := s.Registry.YouTube.PlaylistInfo(ctx, id)
	if err != nil {
		slog.Warn("overview: playlist info failed", slog.String("playlist", id), slog.Any("error", err))
	} else {
		sum.Title, sum.ChannelTitle = info.Title, info.ChannelTitle
	}

	videos, err := s.Registry.YouTube.PlaylistVideos(ctx, id)
	if err != nil {
		slog.Warn("overview: playlist videos failed", slog.String("playlist", id), slog.Any("error", err))
		sum.Error = err.Error()
		return sum
	}
	recent := engine.FilterRecentAt(videos, s.youtubeWindow(), now)
	sum.UnseenCount = len(s.Seen.FilterUnseen(recent, engine.CategoryVideos))
	return sum
}

// PlaylistUnseen returns the recent videos of a playlist not yet marked
// watched, newest first.
func (s *Service) PlaylistUnseen(ctx context.Context, playlistID string) ([]engine.Item, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, errors.New("playlist_id is required")
	}
	videos, err := s.Registry.YouTube.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	unseen := s.Seen.FilterUnseen(engine.FilterRecentAt(videos, s.youtubeWindow(), s.now()), engine.CategoryVideos)
	engine.SortNewestFirst(unseen)
	return unseen, nil
}

// AddPlaylist appends a playlist to the store. Metadata lookup is best
// effort; an unknown playlist is still recorded.
func (s *Service) AddPlaylist(ctx context.Context, playlistID string) (PlaylistAddOutput, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return PlaylistAddOutput{}, errors.New("playlist_id is required")
	}
	if err := s.Playlists.Add(playlistID); err != nil {
		return PlaylistAddOutput{}, err
	}
	out := PlaylistAddOutput{PlaylistID: playlistID, Info: sources.PlaylistInfo{ID: playlistID}}
	if info, err := s.Registry.YouTube.PlaylistInfo(ctx, playlistID); err == nil {
		out.Info = info
	} else {
		slog.Debug("playlist_add: info lookup failed", slog.String("playlist", playlistID), slog.Any("error", err))
	}
	if ids, err := s.Playlists.List(); err == nil {
		out.Tracked = len(ids)
	}
	return out, nil
}

// MarkSeen records ids in the named seen set.
func (s *Service) MarkSeen(category string, ids []string) (MarkSeenOutput, error) {
	cat, err := engine.ParseCategory(toolutil.NormKind(category, ""))
	if err != nil {
		return MarkSeenOutput{}, err
	}
	ids = toolutil.CleanIDs(ids)
	if len(ids) == 0 {
		return MarkSeenOutput{}, errors.New("ids is required")
	}
	return MarkSeenOutput{Category: string(cat), Written: s.Seen.MarkSeen(cat, ids)}, nil
}

// EpisodesUnheard returns recent episodes of an AIR category not yet marked
// listened.
func (s *Service) EpisodesUnheard(ctx context.Context, category string) ([]engine.Item, error) {
	name := toolutil.NormKind(category, "")
	if !strings.HasPrefix(name, "air-") {
		name = "air-" + name
	}
	cat, ok := s.Registry.AIRCategory(name)
	if !ok {
		return nil, fmt.Errorf("unknown episode category %q", category)
	}
	ex, _ := s.Registry.Lookup(name)
	res := engine.RunAll(ctx, []engine.Extractor{ex})[name]
	if res.Error != "" {
		return nil, errors.New(res.Error)
	}
	recent := engine.FilterRecentAt(res.Items, cat.Window, s.now())
	return s.Seen.FilterUnseen(recent, engine.CategoryEpisodes), nil
}

// PIBDocuments runs the PIB form flow with the given filter.
func (s *Service) PIBDocuments(ctx context.Context, in PIBInput) (SourceView, error) {
	kind := toolutil.NormKind(in.Kind, "backgrounders")
	p, ok := s.Registry.PIB(kind)
	if !ok {
		return SourceView{}, fmt.Errorf("unknown pib kind %q (want backgrounders or factsheets)", in.Kind)
	}
	filter := sources.PIBFilter{Ministry: in.Ministry, Year: in.Year, Month: in.Month, Day: in.Day}
	items, err := p.Fetch(ctx, filter)
	if err != nil {
		slog.Warn("pib_documents: fetch failed", slog.String("source", p.Name()), slog.Any("error", err))
		return SourceView{Source: p.Name(), Items: []ItemView{}, Error: err.Error()}, nil
	}
	return SourceView{Source: p.Name(), Items: viewItems(items)}, nil
}

// SourceItems runs one named extractor. Failures land in the Error field,
// never in the returned error, except for unknown names.
func (s *Service) SourceItems(ctx context.Context, name string) (SourceView, error) {
	name = strings.TrimSpace(name)
	ex, ok := s.Registry.Lookup(name)
	if !ok {
		return SourceView{}, fmt.Errorf("unknown source %q (known: %s)", name, strings.Join(s.Registry.Names(), ", "))
	}
	run := func(ctx context.Context) (SourceView, error) {
		return viewResult(name, engine.RunAll(ctx, []engine.Extractor{ex})[name]), nil
	}
	if !staticSources[name] {
		return run(ctx)
	}
	return toolutil.Cached(ctx, engine.CacheKey("source_items", name), staticSourceTTL,
		func(v SourceView) bool { return v.Error == "" }, run)
}

// ReadArticle extracts a full article with the named reader.
func (s *Service) ReadArticle(ctx context.Context, in ArticleInput) (engine.Article, error) {
	if strings.TrimSpace(in.URL) == "" {
		return engine.Article{}, errors.New("url is required")
	}
	kind := sources.ReaderKind(toolutil.NormKind(in.Reader, string(sources.ReaderGeneric)))
	return s.Registry.Readers.Read(ctx, kind, strings.TrimSpace(in.URL))
}

// RedditPosts fetches posts for the given subreddits, or the configured
// list when none are given.
func (s *Service) RedditPosts(ctx context.Context, in RedditInput) []engine.Item {
	subs := toolutil.CleanIDs(in.Subreddits)
	if len(subs) == 0 {
		subs = s.Registry.Settings.Subreddits
	}
	limit := in.Limit
	if limit <= 0 {
		limit = s.Registry.Settings.RedditLimit
	}
	sortBy := in.Sort
	if sortBy == "" {
		sortBy = s.Registry.Settings.RedditSort
	}
	return s.Registry.Reddit.Many(ctx, subs, sortBy, limit)
}
