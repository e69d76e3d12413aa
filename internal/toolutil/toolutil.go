// Package toolutil provides shared helper functions for go_digest MCP tools.
package toolutil

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// Cached returns the value stored under key, or computes it with fn and
// stores it for ttl. Values for which keep reports false are returned but
// not stored. A nil keep stores every successful result.
func Cached[T any](ctx context.Context, key string, ttl time.Duration, keep func(T) bool, fn func(context.Context) (T, error)) (T, error) {
	if out, ok := engine.CacheLoadJSON[T](ctx, key); ok {
		return out, nil
	}
	out, err := fn(ctx)
	if err != nil {
		return out, err
	}
	if keep == nil || keep(out) {
		engine.CacheStoreJSON(ctx, key, out, ttl)
	} else {
		slog.Debug("toolutil: result not cached", slog.String("key", key))
	}
	return out, nil
}

// CleanIDs trims ids and drops blanks and repeats, keeping first-seen order.
func CleanIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// NormKind lower-cases and trims an enum-like tool argument, mapping empty
// to def.
func NormKind(s, def string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s
}
