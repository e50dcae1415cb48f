package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epgforge/epgforge/internal/fuzzy"
	"github.com/epgforge/epgforge/internal/xmltv"
)

func TestMergeChannelKeepsHigherScoring(t *testing.T) {
	state := xmltv.NewState()
	e := New(fuzzy.New(90), nil)

	bare := &xmltv.Channel{ID: "c1", DisplayName: "C"}
	rich := &xmltv.Channel{ID: "c1", DisplayName: "Channel One", IconURL: "http://x/i.png"}

	e.mergeChannel(state, bare)
	e.mergeChannel(state, rich)
	assert.Same(t, rich, state.Channels["c1"])

	e.mergeChannel(state, bare)
	assert.Same(t, rich, state.Channels["c1"], "lower-scoring channel must not replace a richer one")
}

func TestMergeProgrammeFusesOverlapping(t *testing.T) {
	state := xmltv.NewState()
	e := New(fuzzy.New(90), nil)

	start, _ := xmltv.ParseTime("20240115100000 +0000")
	stop, _ := xmltv.ParseTime("20240115110000 +0000")

	a := &xmltv.Programme{
		ChannelID:  "c1",
		Start:      start,
		Stop:       stop,
		SourceSite: "site.a",
		Titles:     []xmltv.Text{{Text: "Show"}},
		Categories: []string{"News"},
	}
	b := &xmltv.Programme{
		ChannelID:  "c1",
		Start:      start,
		Stop:       stop,
		SourceSite: "site.b",
		Titles:     []xmltv.Text{{Text: "Show"}},
		SubTitles:  []xmltv.Text{{Text: "Ep 2"}},
		Categories: []string{"Weather"},
	}

	e.mergeProgramme(state, a)
	e.mergeProgramme(state, b)

	require.Len(t, state.Programmes["c1"], 1)
	merged := state.Programmes["c1"][0]
	assert.ElementsMatch(t, []string{"News", "Weather"}, merged.Categories)
	require.Len(t, merged.SubTitles, 1)
	assert.Equal(t, "Ep 2", merged.SubTitles[0].Text)
	assert.Equal(t, 1, e.Collisions())
}

func TestMergeProgrammeDistinctIntervalsStayDistinct(t *testing.T) {
	state := xmltv.NewState()
	e := New(fuzzy.New(10), nil)

	s1, _ := xmltv.ParseTime("20240115100000 +0000")
	e1, _ := xmltv.ParseTime("20240115110000 +0000")
	s2, _ := xmltv.ParseTime("20240115130000 +0000")
	e2, _ := xmltv.ParseTime("20240115140000 +0000")

	e.mergeProgramme(state, &xmltv.Programme{ChannelID: "c1", Start: s1, Stop: e1})
	e.mergeProgramme(state, &xmltv.Programme{ChannelID: "c1", Start: s2, Stop: e2})

	assert.Len(t, state.Programmes["c1"], 2)
	assert.Equal(t, 0, e.Collisions())
}

func TestPrefersOrder(t *testing.T) {
	e := New(fuzzy.New(0), []string{"trusted.site", "fallback.site"})
	assert.True(t, e.prefers("trusted.site", "fallback.site"))
	assert.False(t, e.prefers("fallback.site", "trusted.site"))
	assert.True(t, e.prefers("trusted.site", "unlisted.site"))
	assert.False(t, e.prefers("unlisted.site", "trusted.site"))
	assert.False(t, e.prefers("unlisted.a", "unlisted.b"))
}

func TestOrderPlacesPreferredSitesLast(t *testing.T) {
	e := New(fuzzy.New(0), []string{"b", "a"})
	results := []SiteResult{{Site: "a"}, {Site: "x"}, {Site: "b"}}
	ordered := e.Order(results)

	var names []string
	for _, r := range ordered {
		names = append(names, string(r.Site))
	}
	assert.Equal(t, []string{"x", "b", "a"}, names)
}
