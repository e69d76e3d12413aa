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

// PlaylistStore is the append-only list of tracked YouTube playlist IDs.
type PlaylistStore struct {
	path string
	mu   sync.Mutex
}

// NewPlaylistStore opens the store at cfg.PlaylistsPath().
func NewPlaylistStore(cfg Config) *PlaylistStore {
	return &PlaylistStore{path: cfg.withDefaults().PlaylistsPath()}
}

// List returns tracked IDs in insertion order, without blanks or repeats.
// A missing file is an empty list.
func (s *PlaylistStore) List() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open playlists: %w", err)
	}
	defer f.Close()

	var ids []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return ids, fmt.Errorf("read playlists: %w", err)
	}
	return ids, nil
}

// Add appends id. Blank ids are ignored; repeats are written and collapsed by List.
func (s *PlaylistStore) Add(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open playlists: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(id + "\n"); err != nil {
		return fmt.Errorf("append playlist: %w", err)
	}
	slog.Info("playlist added", slog.String("id", id))
	return nil
}
