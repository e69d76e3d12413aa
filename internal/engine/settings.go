package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds per-source tuning loaded from an optional YAML file.
// Zero values fall back to DefaultSettings.
type Settings struct {
	// Windows overrides the recency window in days, keyed by source name.
	Windows map[string]int `yaml:"windows"`
	// Subreddits shown on the dashboard.
	Subreddits []string `yaml:"subreddits"`
	// RedditSort is hot, new or top.
	RedditSort  string `yaml:"reddit_sort"`
	RedditLimit int    `yaml:"reddit_limit"`
	// AIRTitles overrides the title allow-list of a broadcast category.
	AIRTitles map[string][]string `yaml:"air_titles"`
	// Disabled sources are left out of the dashboard batch.
	Disabled []string `yaml:"disabled"`
}

// DefaultSettings returns the built-in per-source configuration.
func DefaultSettings() Settings {
	return Settings{
		Windows: map[string]int{
			"air-spotlight":       5,
			"air-insight":         5,
			"air-money-talk":      5,
			"air-current-affairs": 10,
			"indian-express":      7,
			"orf":                 45,
			"iasgyan-daily":       6,
			"mea":                 90,
			"youtube":             5,
		},
		Subreddits: []string{
			"UPSC", "SideProject", "datascience", "explainlikeimfive", "Krishnamurti",
			"ycombinator", "OpenAI", "programming", "AskReddit", "worldnews", "politics",
		},
		RedditSort:  "hot",
		RedditLimit: 10,
	}
}

// LoadSettings reads path over the defaults. An empty path or a missing
// file yields the defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}

	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	for k, v := range file.Windows {
		if v > 0 {
			s.Windows[k] = v
		}
	}
	if len(file.Subreddits) > 0 {
		s.Subreddits = file.Subreddits
	}
	if file.RedditSort != "" {
		s.RedditSort = file.RedditSort
	}
	if file.RedditLimit > 0 {
		s.RedditLimit = file.RedditLimit
	}
	if len(file.AIRTitles) > 0 {
		s.AIRTitles = file.AIRTitles
	}
	s.Disabled = file.Disabled
	return s, nil
}

// Window returns the recency window for source, or def when unset.
func (s Settings) Window(source string, def int) int {
	if d, ok := s.Windows[source]; ok && d > 0 {
		return d
	}
	return def
}

// Enabled reports whether source is not listed in Disabled.
func (s Settings) Enabled(source string) bool {
	for _, d := range s.Disabled {
		if d == source {
			return false
		}
	}
	return true
}
