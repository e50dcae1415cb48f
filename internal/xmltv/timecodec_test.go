package xmltv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRoundTrip(t *testing.T) {
	got, err := ParseTime("20240115103000 +0000")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), got)
}

func TestParseTimeNonUTCOffset(t *testing.T) {
	got, err := ParseTime("20240115103000 -0500")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 15, 30, 0, 0, time.UTC), got)
}

func TestParseTimeRejectsOtherShapes(t *testing.T) {
	_, err := ParseTime("2024-01-15T10:30:00Z")
	assert.Error(t, err)
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 1, 15, 15, 30, 0, 0, time.FixedZone("", -5*3600))
	assert.Equal(t, "20240115203000 +0000", FormatTime(ts))
}
