package runconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaferClampsSettings(t *testing.T) {
	cfg := Config{MaxConnections: 20, DelayMS: 0, SiteWallClockSec: 3600}
	safer := cfg.Safer()

	assert.Equal(t, 5, safer.MaxConnections)
	assert.Equal(t, 1000, safer.DelayMS)
	assert.Equal(t, 600, safer.SiteWallClockSec)
	assert.Equal(t, 20, cfg.MaxConnections, "original config must be unchanged")
}

func TestSaferLeavesSmallerValuesAlone(t *testing.T) {
	cfg := Config{MaxConnections: 2, SiteWallClockSec: 120}
	safer := cfg.Safer()

	assert.Equal(t, 2, safer.MaxConnections)
	assert.Equal(t, 120, safer.SiteWallClockSec)
}

func TestStatsLifecycle(t *testing.T) {
	stats := NewStats(3, time.Now())

	stats.SkipBackoff()
	stats.StartSite()
	stats.FinishSite(true)
	stats.StartSite()
	stats.FinishSite(false)

	snap := stats.Snapshot()
	assert.Equal(t, 0, snap.Queued)
	assert.Equal(t, 0, snap.Running)
	assert.Equal(t, 1, snap.Succeeded)
	assert.Equal(t, 1, snap.Failed)
	assert.Equal(t, 1, snap.Backoff)
}

func TestStatsSetMergeResult(t *testing.T) {
	stats := NewStats(0, time.Now())

	stats.SetMergeResult(42, 1200, 7, 30)

	snap := stats.Snapshot()
	assert.Equal(t, 42, snap.Channels)
	assert.Equal(t, 1200, snap.Programmes)
	assert.Equal(t, 7, snap.MergeFusions)
	assert.Equal(t, 30, snap.Enrichments)
}
