package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epgforge/epgforge/internal/xmltv"
)

func TestChannelScoresRichnessFeatures(t *testing.T) {
	bare := &xmltv.Channel{DisplayName: "C"}
	rich := &xmltv.Channel{DisplayName: "Channel One", IconURL: "http://x/i.png", HomepageURL: "http://x"}
	assert.Less(t, Channel(bare), Channel(rich))
}

func TestChannelDisplayNameLengthIsClamped(t *testing.T) {
	short := &xmltv.Channel{DisplayName: "Short"}
	long := &xmltv.Channel{DisplayName: "A Very Very Very Very Very Very Very Very Very Very Very Very Very Long Channel Name Indeed"}
	assert.LessOrEqual(t, Channel(long)-Channel(short), 10)
}

func TestProgrammeScoresRichnessFeatures(t *testing.T) {
	bare := &xmltv.Programme{}
	rich := &xmltv.Programme{
		Descs:       []xmltv.Text{{Text: "A reasonably long description of the show goes here for scoring."}},
		Categories:  []string{"News", "Weather"},
		SubTitles:   []xmltv.Text{{Text: "Part 2"}},
		EpisodeNums: []xmltv.EpisodeNum{{Text: "S01E02"}},
		IconURLs:    []string{"http://x/i.png"},
		Ratings:     []string{"PG"},
	}
	assert.Less(t, Programme(bare), Programme(rich))
	assert.Equal(t, 0, Programme(bare))
}
