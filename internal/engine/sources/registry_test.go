package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

func TestRegistry(t *testing.T) {
	s := engine.DefaultSettings()
	s.Windows["mea"] = 30
	s.Windows["air-spotlight"] = 3
	s.AIRTitles = map[string][]string{"air-spotlight": {"Spotlight Special"}}
	s.Disabled = []string{"forumias"}

	r := NewRegistry(testFetcher(t, engine.Config{}), s)

	ex, ok := r.Lookup("mea")
	require.True(t, ok)
	assert.Equal(t, 30, ex.(*MEA).Window)

	cat, ok := r.AIRCategory("air-spotlight")
	require.True(t, ok)
	assert.Equal(t, 3, cat.Window)
	assert.Equal(t, []string{"Spotlight Special"}, cat.Titles)

	yt, ok := r.Lookup("youtube:PL9")
	require.True(t, ok)
	assert.Equal(t, "youtube:PL9", yt.Name())

	rd, ok := r.Lookup("reddit:golang")
	require.True(t, ok)
	assert.Equal(t, "reddit:golang", rd.Name())

	_, ok = r.Lookup("nope")
	assert.False(t, ok)
	_, ok = r.Lookup("youtube:")
	assert.False(t, ok)

	dash := r.Dashboard()
	assert.Len(t, dash, len(DashboardSources)-1)
	for _, d := range dash {
		assert.NotEqual(t, "forumias", d.Name())
	}

	p, ok := r.PIB("factsheets")
	require.True(t, ok)
	assert.Equal(t, "pib-factsheets", p.Name())

	assert.Contains(t, r.Names(), "prs")
	assert.Contains(t, r.Names(), "iasgyan-daily")
	assert.Len(t, r.AIRNames(), 4)
}
