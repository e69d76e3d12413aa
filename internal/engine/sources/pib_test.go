package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

const pibFormPage = `<html><body><form method="post">
<input type="hidden" name="__VIEWSTATE" value="vs-123">
<input type="hidden" name="__EVENTVALIDATION" value="ev-456">
<input type="text" name="ctl00$ContentPlaceHolder1$txtSearch" value="">
</form></body></html>`

const pibResultsPage = `<html><body><div class="content-area"><ul>
<li><a href="/PressReleasePage.aspx?PRID=1">Backgrounder on millets</a><span class="publishdatesmall">Posted on: 05 Mar 2024</span></li>
<li><a href="/PressReleasePage.aspx?PRID=2">Backgrounder on ports</a><span class="publishdatesmall">Posted on: sometime</span></li>
<li><a href="/PressReleasePage.aspx?PRID=3">No date span</a></li>
</ul></div></body></html>`

const pibEmptyPage = `<html><body><div class="content-area"><ul></ul></div></body></html>`

type pibServer struct {
	*httptest.Server
	posts atomic.Int32

	mu       sync.Mutex
	lastForm url.Values
}

func (ps *pibServer) form() url.Values {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.lastForm
}

// newPIBServer serves the form on GET and results on POST. Paths listed in
// empty answer POSTs with no results.
func newPIBServer(t *testing.T, empty ...string) *pibServer {
	t.Helper()
	ps := &pibServer{}
	emptyPaths := make(map[string]bool)
	for _, p := range empty {
		emptyPaths[p] = true
	}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.SetCookie(w, &http.Cookie{Name: "ASP.NET_SessionId", Value: "sess-1", Path: "/"})
			_, _ = w.Write([]byte(pibFormPage))
		case http.MethodPost:
			c, err := r.Cookie("ASP.NET_SessionId")
			if err != nil || c.Value != "sess-1" {
				http.Error(w, "no session", http.StatusForbidden)
				return
			}
			if err := r.ParseForm(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			ps.posts.Add(1)
			ps.mu.Lock()
			ps.lastForm = r.PostForm
			ps.mu.Unlock()
			if emptyPaths[r.URL.Path] {
				_, _ = w.Write([]byte(pibEmptyPage))
				return
			}
			_, _ = w.Write([]byte(pibResultsPage))
		}
	}))
	t.Cleanup(ps.Close)
	return ps
}

func TestPIBFetch(t *testing.T) {
	srv := newPIBServer(t)
	p := NewPIB(testFetcher(t, engine.Config{}), PIBBackgrounders)
	p.SetEndpoints(srv.URL+"/primary", srv.URL+"/alt")
	p.SetClock(clock(ist(2024, 3, 10, 12, 0)))

	items, err := p.Fetch(context.Background(), PIBFilter{Ministry: "31", Month: "3"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int32(1), srv.posts.Load())

	assert.Equal(t, "Backgrounder on millets", items[0].Title)
	assert.Equal(t, srv.URL+"/PressReleasePage.aspx?PRID=1", items[0].URL)
	assert.True(t, items[0].PublishedAt.Equal(ist(2024, 3, 5, 0, 0)))
	assert.False(t, items[1].Dated())
	assert.Equal(t, "sometime", items[1].Payload["date"])

	form := srv.form()
	assert.Equal(t, "vs-123", form.Get("__VIEWSTATE"))
	assert.Equal(t, "ev-456", form.Get("__EVENTVALIDATION"))
	assert.Equal(t, pibFieldYear, form.Get("__EVENTTARGET"))
	assert.Equal(t, "31", form.Get(pibFieldMinistry))
	assert.Equal(t, "2024", form.Get(pibFieldYear))
	assert.Equal(t, "3", form.Get(pibFieldMonth))
	assert.Equal(t, "0", form.Get(pibFieldDay))
	assert.Equal(t, "0", form.Get(pibFieldSector))
}

func TestPIBAlternateEndpoint(t *testing.T) {
	srv := newPIBServer(t, "/primary")
	p := NewPIB(testFetcher(t, engine.Config{}), PIBFactsheets)
	p.SetEndpoints(srv.URL+"/primary", srv.URL+"/alt")

	items, err := p.Extract(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int32(2), srv.posts.Load())
}

func TestPIBBothEndpointsEmpty(t *testing.T) {
	srv := newPIBServer(t, "/primary", "/alt")
	p := NewPIB(testFetcher(t, engine.Config{}), PIBFactsheets)
	p.SetEndpoints(srv.URL+"/primary", srv.URL+"/alt")

	items, err := p.Extract(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestApplyPIBFilter(t *testing.T) {
	form := url.Values{"__VIEWSTATE": {"keep"}, pibFieldYear: {"2019"}}
	applyPIBFilter(form, PIBFilter{Year: "2022", Day: " 7 "}, 2024)

	assert.Equal(t, "keep", form.Get("__VIEWSTATE"))
	assert.Equal(t, "2022", form.Get(pibFieldYear))
	assert.Equal(t, "7", form.Get(pibFieldDay))
	assert.Equal(t, "0", form.Get(pibFieldMinistry))
	assert.Equal(t, "0", form.Get(pibFieldMonth))
	assert.Empty(t, form.Get("__EVENTARGUMENT"))

	applyPIBFilter(form, PIBFilter{Year: "0"}, 2024)
	assert.Equal(t, "2024", form.Get(pibFieldYear))
}
