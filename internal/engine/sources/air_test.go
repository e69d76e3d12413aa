package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

const airFixture = `<html><body>
<table class="table">
<tr><th>Title</th><th>Date</th><th>Time</th><th>Audio</th></tr>
<tr><td>Spotlight</td><td>05 Mar 2024</td><td>21:30</td><td><audio><source src="/audio/spot-0503.mp3"></audio></td></tr>
<tr><td>Money Talk</td><td>04 Mar 2024</td><td>20:00</td><td><audio><source src="/audio/money.mp3"></audio></td></tr>
<tr><td>Spotlight</td><td>someday</td><td>later</td><td><audio><source src="/audio/bad.mp3"></audio></td></tr>
<tr><td>Spotlight</td><td>04 Mar 2024</td><td>21:30</td><td>no audio</td></tr>
</table></body></html>`

func TestAIRExtract(t *testing.T) {
	srv := serveRoutes(t, map[string]string{"/daily": airFixture})
	cat := AIRCategory{Name: "air-spotlight", URL: srv.URL + "/daily", Titles: []string{"Spotlight"}, Window: 5}
	a := NewAIR(testFetcher(t, engine.Config{}), cat)

	items, err := a.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, srv.URL+"/audio/spot-0503.mp3", it.ID)
	assert.Equal(t, it.ID, it.URL)
	assert.Equal(t, "air-spotlight", it.Source)
	assert.True(t, it.PublishedAt.Equal(ist(2024, 3, 5, 21, 30)), "got %v", it.PublishedAt)
	assert.Equal(t, it.ID, it.Payload["audio_url"])
	assert.Equal(t, 5, a.Window())
}

func TestAIRMissingTable(t *testing.T) {
	srv := serveRoutes(t, map[string]string{"/daily": `<html><body><p>maintenance</p></body></html>`})
	a := NewAIR(testFetcher(t, engine.Config{}), AIRCategory{Name: "air-insight", URL: srv.URL + "/daily", Titles: []string{"Insight"}})

	items, err := a.Extract(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestAIRFetchFailure(t *testing.T) {
	srv := serveRoutes(t, map[string]string{})
	a := NewAIR(testFetcher(t, engine.Config{}), AIRCategory{Name: "air-insight", URL: srv.URL + "/gone"})

	_, err := a.Extract(context.Background())
	require.Error(t, err)
	assert.Equal(t, engine.KindTransient, engine.KindOf(err))
}

func TestLookupAIR(t *testing.T) {
	cat, ok := LookupAIR("air-current-affairs")
	require.True(t, ok)
	assert.Equal(t, 10, cat.Window)

	_, ok = LookupAIR("air-unknown")
	assert.False(t, ok)
}
