package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
)

const maxBodyBytes = 8 << 20

// newFetchClient creates an HTTP client with proper settings for web scraping.
func newFetchClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			DisableCompression:  false,
			TLSHandshakeTimeout: 15 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			return nil
		},
	}
}

// Fetcher performs single-attempt page fetches with the configured timeout.
// Failures are not retried; the next scheduled run is the retry.
type Fetcher struct {
	cfg Config
	// browser is the stealth transport for HTML GETs, nil without a BrowserClient.
	browser func(rawURL string, headers map[string]string) ([]byte, int, error)
}

// NewFetcher returns a Fetcher using cfg, with zero fields defaulted.
func NewFetcher(cfg Config) *Fetcher {
	f := &Fetcher{cfg: cfg.withDefaults()}
	if bc := f.cfg.BrowserClient; bc != nil {
		f.browser = func(rawURL string, headers map[string]string) ([]byte, int, error) {
			data, _, status, err := bc.Do(http.MethodGet, rawURL, headers, nil)
			return data, status, err
		}
	}
	return f
}

// Config returns the effective configuration.
func (f *Fetcher) Config() Config { return f.cfg }

func htmlHeaders(ua string) map[string]string {
	return map[string]string{
		"User-Agent":      ua,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Accept-Encoding": "gzip",
	}
}

// Get fetches rawURL and returns the body. Extra headers override the defaults.
// When a BrowserClient is configured the request goes through it. A server
// response from it is final, including a non-200 status; only a transport
// failure before the deadline switches the request to net/http.
func (f *Fetcher) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	metrics.FetchRequests.Add(1)

	ctx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()

	if f.browser != nil {
		h := ChromeHeaders()
		for k, v := range headers {
			h[strings.ToLower(k)] = v
		}
		data, status, err := f.browserGet(ctx, rawURL, h)
		switch {
		case err == nil && status == http.StatusOK:
			return data, nil
		case err == nil:
			metrics.FetchErrors.Add(1)
			return nil, fmt.Errorf("GET %s: %w %d", rawURL, ErrStatus, status)
		case ctx.Err() != nil:
			metrics.FetchErrors.Add(1)
			return nil, fmt.Errorf("GET %s: %w", rawURL, ctx.Err())
		}
		slog.Debug("fetch: browser transport failed, using net/http",
			slog.String("url", rawURL), slog.Any("error", err))
	}

	h := htmlHeaders(f.cfg.UserAgent)
	for k, v := range headers {
		h[k] = v
	}
	data, err := doRequest(ctx, f.cfg.HTTPClient, http.MethodGet, rawURL, h, nil)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return nil, err
	}
	return data, nil
}

// browserGet runs the browser transport under ctx. The client has no context
// support, so an abandoned call finishes in the background under its own timeout.
func (f *Fetcher) browserGet(ctx context.Context, rawURL string, headers map[string]string) ([]byte, int, error) {
	type result struct {
		data   []byte
		status int
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		data, status, err := f.browser(rawURL, headers)
		ch <- result{data, status, err}
	}()
	select {
	case r := <-ch:
		return r.data, r.status, r.err
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}
}

// GetDocument fetches rawURL and parses it as HTML.
func (f *Fetcher) GetDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := f.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// GetJSON fetches rawURL with plain net/http and decodes the JSON body into v.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, headers map[string]string, v any) error {
	metrics.FetchRequests.Add(1)

	ctx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()

	h := map[string]string{
		"User-Agent":      f.cfg.UserAgent,
		"Accept":          "application/json",
		"Accept-Encoding": "gzip",
	}
	for k, val := range headers {
		h[k] = val
	}
	data, err := doRequest(ctx, f.cfg.HTTPClient, http.MethodGet, rawURL, h, nil)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// Session is a cookie-carrying client for multi-step form flows.
type Session struct {
	client  *http.Client
	timeout time.Duration
	ua      string
}

// NewSession creates a Session with its own cookie jar. insecure disables
// certificate verification for hosts with broken chains.
func (f *Fetcher) NewSession(insecure bool) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	tr := &http.Transport{
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 15 * time.Second,
	}
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // host serves an incomplete chain
	}
	return &Session{
		client:  &http.Client{Jar: jar, Transport: tr},
		timeout: f.cfg.SessionTimeout,
		ua:      f.cfg.UserAgent,
	}, nil
}

// Get fetches rawURL within the session.
func (s *Session) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	metrics.FetchRequests.Add(1)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	h := htmlHeaders(s.ua)
	for k, v := range headers {
		h[k] = v
	}
	data, err := doRequest(ctx, s.client, http.MethodGet, rawURL, h, nil)
	if err != nil {
		metrics.FetchErrors.Add(1)
	}
	return data, err
}

// PostForm submits form to rawURL as application/x-www-form-urlencoded.
func (s *Session) PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) ([]byte, error) {
	metrics.FetchRequests.Add(1)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	h := htmlHeaders(s.ua)
	h["Content-Type"] = "application/x-www-form-urlencoded"
	for k, v := range headers {
		h[k] = v
	}
	data, err := doRequest(ctx, s.client, http.MethodPost, rawURL, h, strings.NewReader(form.Encode()))
	if err != nil {
		metrics.FetchErrors.Add(1)
	}
	return data, err
}

func doRequest(ctx context.Context, client *http.Client, method, rawURL string, headers map[string]string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s: %w %d", method, rawURL, ErrStatus, resp.StatusCode)
	}
	return readResponseBody(resp)
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, maxBodyBytes))
}
