package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Category names an independent seen-set store.
type Category string

const (
	CategoryVideos   Category = "videos"   // watched YouTube videos, keyed by video ID
	CategoryEpisodes Category = "episodes" // listened broadcast episodes, keyed by audio URL
)

func (c Category) fileName() string {
	switch c {
	case CategoryVideos:
		return "watched_videos.txt"
	case CategoryEpisodes:
		return "listened_episodes.txt"
	}
	return "seen_" + string(c) + ".txt"
}

// ParseCategory maps user input to a known category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "videos", "video", "watched":
		return CategoryVideos, nil
	case "episodes", "episode", "listened":
		return CategoryEpisodes, nil
	}
	return "", fmt.Errorf("unknown seen category %q (want videos or episodes)", s)
}

// SeenTracker persists consumed item identities as append-only line files,
// one file per category. Reads always hit the file; nothing is cached.
type SeenTracker struct {
	cfg Config
	mu  sync.Map // Category -> *sync.Mutex, serializes appends per category
}

// NewSeenTracker creates a tracker rooted at cfg.DataDir.
func NewSeenTracker(cfg Config) *SeenTracker {
	return &SeenTracker{cfg: cfg.withDefaults()}
}

// Load reads the full seen set for cat. A missing file is an empty set;
// any other read error is logged and also yields an empty set.
func (t *SeenTracker) Load(cat Category) map[string]struct{} {
	seen := make(map[string]struct{})
	path := t.cfg.SeenPath(cat)

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("seen: load failed", slog.String("category", string(cat)), slog.Any("error", err))
		}
		return seen
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if id := strings.TrimSpace(sc.Text()); id != "" {
			seen[id] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		slog.Warn("seen: read failed", slog.String("category", string(cat)), slog.Any("error", err))
	}
	return seen
}

// FilterUnseen returns items whose ID is not in the seen set for cat.
func (t *SeenTracker) FilterUnseen(items []Item, cat Category) []Item {
	if len(items) == 0 {
		return nil
	}
	seen := t.Load(cat)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		out = append(out, it)
	}
	return out
}

// MarkSeen appends each id to the category file. Write failures are logged
// and swallowed; the returned count is the number of ids actually written.
func (t *SeenTracker) MarkSeen(cat Category, ids []string) int {
	lock := t.lockFor(cat)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.OpenFile(t.cfg.SeenPath(cat), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("seen: open for append failed", slog.String("category", string(cat)), slog.Any("error", err))
		return 0
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	written := 0
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, err := w.WriteString(id + "\n"); err != nil {
			slog.Warn("seen: append failed", slog.String("category", string(cat)), slog.Any("error", err))
			return 0
		}
		written++
	}
	if err := w.Flush(); err != nil {
		slog.Warn("seen: flush failed", slog.String("category", string(cat)), slog.Any("error", err))
		return 0
	}
	metrics.SeenMarks.Add(int64(written))
	return written
}

func (t *SeenTracker) lockFor(cat Category) *sync.Mutex {
	v, _ := t.mu.LoadOrStore(cat, &sync.Mutex{})
	return v.(*sync.Mutex)
}
