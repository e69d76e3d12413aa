package engine

import (
	"testing"
	"time"
)

func TestFilterRecentAt(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-5 * 24 * time.Hour)

	items := []Item{
		{ID: "fresh", PublishedAt: now.Add(-time.Hour)},
		{ID: "boundary", PublishedAt: cutoff},
		{ID: "old", PublishedAt: cutoff.Add(-time.Second)},
		{ID: "undated"},
		{ID: "future", PublishedAt: now.Add(time.Hour)},
	}

	got := FilterRecentAt(items, 5, now)
	want := []string{"fresh", "boundary", "future"}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d: %+v", len(got), len(want), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("item %d = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestFilterRecentEmpty(t *testing.T) {
	if got := FilterRecent(nil, 5); len(got) != 0 {
		t.Errorf("FilterRecent(nil) = %v, want empty", got)
	}
}

func TestFilterRecentDoesNotMutate(t *testing.T) {
	now := time.Now()
	items := []Item{{ID: "a", PublishedAt: now.Add(-48 * time.Hour)}, {ID: "b", PublishedAt: now}}
	_ = FilterRecentAt(items, 1, now)
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Errorf("input reordered: %+v", items)
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: "mid", PublishedAt: base.Add(24 * time.Hour)},
		{ID: "undated"},
		{ID: "new", PublishedAt: base.Add(48 * time.Hour)},
		{ID: "old", PublishedAt: base},
	}
	SortNewestFirst(items)
	want := []string{"new", "mid", "old", "undated"}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, items[i].ID, id)
		}
	}
}
