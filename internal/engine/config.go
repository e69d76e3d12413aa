package engine

import (
	"net/http"
	"path/filepath"
	"time"
)

// Config holds all engine configuration, built once in main and passed down.
type Config struct {
	YouTubeAPIKey   string
	DataDir         string // seen logs and playlists.txt live here
	SourcesFile     string // optional YAML with per-source settings
	FetchTimeout    time.Duration
	SessionTimeout  time.Duration // stateful form sessions (PIB) get a longer budget
	PageDelay       time.Duration // pause between paginated fetches; negative disables it
	UserAgent       string
	RedditUserAgent string
	HTTPClient      *http.Client
	BrowserClient   *BrowserClient // nil = plain net/http for every GET
}

// Defaults mirror the timeouts the sources were tuned against.
const (
	DefaultFetchTimeout   = 20 * time.Second
	DefaultSessionTimeout = 30 * time.Second
	DefaultPageDelay      = 1 * time.Second
	MaxPages              = 10
)

// withDefaults fills zero fields so a partially built Config is usable in tests.
func (c Config) withDefaults() Config {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = DefaultSessionTimeout
	}
	switch {
	case c.PageDelay == 0:
		c.PageDelay = DefaultPageDelay
	case c.PageDelay < 0:
		c.PageDelay = 0
	}
	if c.UserAgent == "" {
		c.UserAgent = UserAgentChrome
	}
	if c.RedditUserAgent == "" {
		c.RedditUserAgent = UserAgentBot
	}
	if c.HTTPClient == nil {
		c.HTTPClient = newFetchClient()
	}
	if c.DataDir == "" {
		c.DataDir = "."
	}
	return c
}

// SeenPath returns the backing file for a seen-set category.
func (c Config) SeenPath(cat Category) string {
	return filepath.Join(c.DataDir, cat.fileName())
}

// PlaylistsPath returns the backing file for tracked playlist IDs.
func (c Config) PlaylistsPath() string {
	return filepath.Join(c.DataDir, "playlists.txt")
}
