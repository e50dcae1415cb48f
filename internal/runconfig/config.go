// Package runconfig holds the fully-resolved configuration and live stats
// for one orchestrator run.
package runconfig

import (
	"sync"
	"time"
)

// Config is the immutable, fully-resolved set of flag values for one run.
// Built once at startup by the CLI layer.
type Config struct {
	SitesFile        string
	OutPath          string
	Days             int
	MaxConnections   int
	SiteConcurrency  int
	TimeoutMS        int
	DelayMS          int
	Retries          int
	Resume           bool
	Playlist         string
	FuzzySec         int
	PreferSites      []string
	SiteWallClockSec int
	MinProg          int
	Backoff          bool
	BackoffFile      string
	Force            bool
	ProgressSec      int
	TmpDir           string
	GrabberBin       string
}

// Safer returns a copy of c with the retry-time "safer settings" applied:
// maxConnections clamped to at most 5, delay fixed at 1000ms, and the
// wall-clock timer clamped to at most 600s. All other fields are unchanged.
func (c Config) Safer() Config {
	out := c
	if out.MaxConnections > 5 {
		out.MaxConnections = 5
	}
	out.DelayMS = 1000
	if out.SiteWallClockSec > 600 {
		out.SiteWallClockSec = 600
	}
	return out
}

// Stats accumulates counters for one run, safe for concurrent updates from
// scheduler workers and reads from the progress reporter.
type Stats struct {
	mu sync.Mutex

	Queued    int
	Running   int
	Succeeded int
	Failed    int
	Backoff   int

	Channels     int
	Programmes   int
	MergeFusions int
	Enrichments  int
	startedAt    time.Time
}

// NewStats returns a Stats with Queued preset and a start timestamp.
func NewStats(queued int, startedAt time.Time) *Stats {
	return &Stats{Queued: queued, startedAt: startedAt}
}

// StartSite moves one unit from queued to running.
func (s *Stats) StartSite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Queued--
	s.Running++
}

// FinishSite moves one unit from running to succeeded or failed.
func (s *Stats) FinishSite(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Running--
	if ok {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// SkipBackoff records a site skipped due to the backoff list, without ever
// entering the running state.
func (s *Stats) SkipBackoff() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Queued--
	s.Backoff++
}

// SetMergeResult records the channel/programme/collision/enrichment counts
// produced by the merge and enrichment passes, once per run, after the
// scheduler has drained.
func (s *Stats) SetMergeResult(channels, programmes, mergeFusions, enrichments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Channels = channels
	s.Programmes = programmes
	s.MergeFusions = mergeFusions
	s.Enrichments = enrichments
}

// Snapshot is a point-in-time copy of the counters, safe to read without
// holding the lock further.
type Snapshot struct {
	Queued, Running, Succeeded, Failed, Backoff int
	Channels, Programmes, MergeFusions          int
	Enrichments                                 int
	Elapsed                                     time.Duration
}

// Snapshot returns the current counters and elapsed run time.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Queued:       s.Queued,
		Running:      s.Running,
		Succeeded:    s.Succeeded,
		Failed:       s.Failed,
		Backoff:      s.Backoff,
		Channels:     s.Channels,
		Programmes:   s.Programmes,
		MergeFusions: s.MergeFusions,
		Enrichments:  s.Enrichments,
		Elapsed:      time.Since(s.startedAt),
	}
}
