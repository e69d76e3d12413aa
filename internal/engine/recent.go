package engine

import (
	"sort"
	"time"
)

// Cutoff returns the instant days before now.
func Cutoff(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// FilterRecent keeps items published within the last days, relative to time.Now.
func FilterRecent(items []Item, days int) []Item {
	return FilterRecentAt(items, days, time.Now())
}

// FilterRecentAt keeps items with PublishedAt at or after now-days.
// Undated items are dropped. Input order is preserved.
func FilterRecentAt(items []Item, days int, now time.Time) []Item {
	if len(items) == 0 {
		return nil
	}
	cutoff := Cutoff(now, days)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Dated() || it.PublishedAt.Before(cutoff) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// SortNewestFirst orders items by PublishedAt descending; undated items sink.
func SortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}
