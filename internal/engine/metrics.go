package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	ExtractorRuns      atomic.Int64
	ExtractorFailures  atomic.Int64
	ExtractorPanics    atomic.Int64
	PagesWalked        atomic.Int64
	SeenMarks          atomic.Int64
	YouTubeAPIRequests atomic.Int64
	RedditRequests     atomic.Int64
	PIBFormPosts       atomic.Int64
	ArticleReads       atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"fetch_requests":       metrics.FetchRequests.Load(),
		"fetch_errors":         metrics.FetchErrors.Load(),
		"extractor_runs":       metrics.ExtractorRuns.Load(),
		"extractor_failures":   metrics.ExtractorFailures.Load(),
		"extractor_panics":     metrics.ExtractorPanics.Load(),
		"pages_walked":         metrics.PagesWalked.Load(),
		"seen_marks":           metrics.SeenMarks.Load(),
		"youtube_api_requests": metrics.YouTubeAPIRequests.Load(),
		"reddit_requests":      metrics.RedditRequests.Load(),
		"pib_form_posts":       metrics.PIBFormPosts.Load(),
		"article_reads":        metrics.ArticleReads.Load(),
		"cache_hits":           hits,
		"cache_misses":         misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"fetch_requests", "fetch_errors",
		"extractor_runs", "extractor_failures", "extractor_panics",
		"pages_walked", "seen_marks",
		"youtube_api_requests", "reddit_requests", "pib_form_posts",
		"article_reads",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ sub-package.
func IncrYouTubeAPIRequests() { metrics.YouTubeAPIRequests.Add(1) }
func IncrRedditRequests()     { metrics.RedditRequests.Add(1) }
func IncrPIBFormPosts()       { metrics.PIBFormPosts.Add(1) }
func IncrArticleReads()       { metrics.ArticleReads.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
