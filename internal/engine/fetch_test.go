package engine

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetcherGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("User-Agent") != "test-agent" {
				t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
			}
			w.Write([]byte("<p>hello</p>"))
		case "/gzip":
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			gz.Write([]byte("<p>zipped</p>"))
			gz.Close()
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("late"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(Config{UserAgent: "test-agent", FetchTimeout: 100 * time.Millisecond})
	ctx := context.Background()

	body, err := f.Get(ctx, srv.URL+"/ok", nil)
	if err != nil || string(body) != "<p>hello</p>" {
		t.Fatalf("Get(/ok) = %q, %v", body, err)
	}

	body, err = f.Get(ctx, srv.URL+"/gzip", nil)
	if err != nil || string(body) != "<p>zipped</p>" {
		t.Fatalf("Get(/gzip) = %q, %v", body, err)
	}

	if _, err := f.Get(ctx, srv.URL+"/missing", nil); !errors.Is(err, ErrStatus) {
		t.Errorf("Get(/missing) error = %v, want ErrStatus", err)
	}

	if _, err := f.Get(ctx, srv.URL+"/slow", nil); err == nil {
		t.Error("Get(/slow) succeeded past the fetch timeout")
	}
}

func TestFetcherGetDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1 class="t">Title</h1></body></html>`))
	}))
	defer srv.Close()

	doc, err := NewFetcher(Config{}).GetDocument(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if got := Text(doc.Find("h1.t")); got != "Title" {
		t.Errorf("h1 = %q", got)
	}
}

func TestFetcherGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"x","n":3}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}
	if err := NewFetcher(Config{}).GetJSON(context.Background(), srv.URL, nil, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "x" || out.N != 3 {
		t.Errorf("decoded %+v", out)
	}
}

func TestSessionCarriesCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.SetCookie(w, &http.Cookie{Name: "ASP.NET_SessionId", Value: "abc", Path: "/"})
			w.Write([]byte("form"))
		case http.MethodPost:
			c, err := r.Cookie("ASP.NET_SessionId")
			if err != nil || c.Value != "abc" {
				http.Error(w, "no session", http.StatusForbidden)
				return
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
				http.Error(w, "bad content type "+ct, http.StatusBadRequest)
				return
			}
			r.ParseForm()
			w.Write([]byte("year=" + r.PostForm.Get("year")))
		}
	}))
	defer srv.Close()

	s, err := NewFetcher(Config{}).NewSession(true)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := s.Get(ctx, srv.URL, nil); err != nil {
		t.Fatal(err)
	}
	body, err := s.PostForm(ctx, srv.URL, url.Values{"year": {"2024"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "year=2024" {
		t.Errorf("POST body = %q", body)
	}
}

func TestFetcherBrowserTransport(t *testing.T) {
	var plainHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		plainHits.Add(1)
		w.Write([]byte("plain"))
	}))
	defer srv.Close()

	tests := []struct {
		name      string
		browser   func(string, map[string]string) ([]byte, int, error)
		wantBody  string
		wantErr   error
		wantPlain int32
	}{
		{
			name: "ok",
			browser: func(string, map[string]string) ([]byte, int, error) {
				return []byte("stealth"), http.StatusOK, nil
			},
			wantBody: "stealth",
		},
		{
			name: "non-200 is final",
			browser: func(string, map[string]string) ([]byte, int, error) {
				return nil, http.StatusForbidden, nil
			},
			wantErr: ErrStatus,
		},
		{
			name: "transport failure switches to net/http",
			browser: func(string, map[string]string) ([]byte, int, error) {
				return nil, 0, errors.New("tls handshake failed")
			},
			wantBody:  "plain",
			wantPlain: 1,
		},
		{
			name: "deadline is honoured",
			browser: func(string, map[string]string) ([]byte, int, error) {
				time.Sleep(500 * time.Millisecond)
				return []byte("late"), http.StatusOK, nil
			},
			wantErr: context.DeadlineExceeded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plainHits.Store(0)
			f := NewFetcher(Config{FetchTimeout: 100 * time.Millisecond})
			f.browser = tt.browser

			body, err := f.Get(context.Background(), srv.URL, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil || string(body) != tt.wantBody {
				t.Fatalf("Get = %q, %v, want %q", body, err, tt.wantBody)
			}
			if got := plainHits.Load(); got != tt.wantPlain {
				t.Errorf("net/http requests = %d, want %d", got, tt.wantPlain)
			}
		})
	}
}
