// go_digest is a study digest MCP server.
//
// Aggregates YouTube playlists, All India Radio broadcasts, government and
// news sites and subreddits into a dashboard with watched/listened tracking.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/anatolykoptev/go_digest/internal/digestserver"
	"github.com/anatolykoptev/go_digest/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	cfg := loadConfig()

	settings, err := engine.LoadSettings(cfg.SourcesFile)
	if err != nil {
		slog.Warn("sources file ignored, using defaults", slog.String("path", cfg.SourcesFile), slog.Any("error", err))
	}
	if subs := env.List("SUBREDDITS", ""); len(subs) > 0 {
		settings.Subreddits = subs
	}

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL,
		env.Int("CACHE_MAX_ENTRIES", 1000), env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second))

	slog.Info("starting go_digest",
		slog.String("port", mcpPort),
		slog.String("data_dir", cfg.DataDir),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_digest",
		Version: version,
	}, nil)

	digestserver.RegisterTools(server, digestserver.NewService(cfg, settings))
	slog.Info("tools registered", slog.Int("count", digestserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_digest",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func loadConfig() engine.Config {
	c := engine.Config{
		YouTubeAPIKey:   env.Str("YOUTUBE_API_KEY", ""),
		DataDir:         env.Str("DATA_DIR", "."),
		SourcesFile:     env.Str("SOURCES_FILE", "sources.yaml"),
		FetchTimeout:    env.Duration("FETCH_TIMEOUT", engine.DefaultFetchTimeout),
		SessionTimeout:  env.Duration("SESSION_TIMEOUT", engine.DefaultSessionTimeout),
		PageDelay:       env.Duration("PAGE_DELAY", engine.DefaultPageDelay),
		UserAgent:       env.Str("USER_AGENT", engine.UserAgentChrome),
		RedditUserAgent: env.Str("REDDIT_USER_AGENT", engine.UserAgentBot),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	if c.YouTubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY not set, playlist tools will fail")
	}

	if !strings.EqualFold(env.Str("STEALTH_ENABLED", "true"), "true") {
		return c
	}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(15))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}
	return c
}
