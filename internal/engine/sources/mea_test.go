package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

func meaPage(next string, rows ...[2]string) string {
	s := `<html><body><ul class="commonListing">`
	for _, r := range rows {
		s += `<li><a class="searchContent" href="/bilateral-documents.htm?dtl/` + r[0] + `">Agreement ` + r[0] + `</a>` +
			`<span class="date">` + r[1] + `</span></li>`
	}
	s += `</ul>`
	if next != "" {
		s += `<a class="next" href="` + next + `">Next</a>`
	}
	return s + `</body></html>`
}

func TestMEAWalksUntilCutoff(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	pages := map[string]string{
		"/bilateral-documents.htm": meaPage("/p2",
			[2]string{"1", "May 20, 2024"}, [2]string{"2", "May 1, 2024"}),
		"/p2": meaPage("/p3",
			[2]string{"3", "April 2, 2024"}, [2]string{"4", "January 5, 2024"}),
		"/p3": meaPage("",
			[2]string{"5", "December 1, 2023"}),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	m := NewMEA(testFetcher(t, engine.Config{}))
	m.SetURL(srv.URL + "/bilateral-documents.htm")
	m.SetClock(clock(time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)))
	m.Delay = 0

	items, err := m.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Agreement 1", items[0].Title)
	assert.Equal(t, "Agreement 3", items[2].Title)
	assert.Equal(t, "April 2, 2024", items[2].Payload["date"])
	assert.Equal(t, time.UTC, items[0].PublishedAt.Location())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits["/p2"])
	assert.Zero(t, hits["/p3"], "walk must stop on the page holding an old document")
}

func TestMEACutoffIsMidnightUTC(t *testing.T) {
	// Cutoff for 2024-06-01 15:00 UTC with a 90 day window is 2024-03-03 00:00 UTC.
	srv := serveRoutes(t, map[string]string{
		"/bilateral-documents.htm": meaPage("",
			[2]string{"1", "March 3, 2024"}, [2]string{"2", "March 2, 2024"}),
	})
	m := NewMEA(testFetcher(t, engine.Config{}))
	m.SetURL(srv.URL + "/bilateral-documents.htm")
	m.SetClock(clock(time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)))
	m.Delay = 0

	items, err := m.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Agreement 1", items[0].Title)
}

func TestMEAFirstPageFailure(t *testing.T) {
	srv := serveRoutes(t, map[string]string{})
	m := NewMEA(testFetcher(t, engine.Config{}))
	m.SetURL(srv.URL + "/bilateral-documents.htm")
	m.Delay = 0

	_, err := m.Extract(context.Background())
	require.Error(t, err)
	assert.Equal(t, engine.KindTransient, engine.KindOf(err))
}

func TestMEADefaultDelay(t *testing.T) {
	assert.Equal(t, engine.DefaultPageDelay, NewMEA(testFetcher(t, engine.Config{})).Delay)
	assert.Zero(t, NewMEA(testFetcher(t, engine.Config{PageDelay: -1})).Delay)
}
