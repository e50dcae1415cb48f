// Package scheduler runs a bounded pool of workers that fetch EPG artifacts
// for a batch of sites, applying retry-with-safer-settings and persisting
// the backoff list on terminal failure.
package scheduler

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/semaphore"

	"github.com/epgforge/epgforge/internal/backoff"
	"github.com/epgforge/epgforge/internal/launcher"
	"github.com/epgforge/epgforge/internal/runconfig"
	"github.com/epgforge/epgforge/internal/xmltv"
)

// Result is one site's terminal scheduling outcome.
type Result struct {
	Site    xmltv.Site
	OutPath string
	OK      bool
}

// Scheduler drives a fixed-size worker pool over a site list.
type Scheduler struct {
	cfg     runconfig.Config
	binary  string
	backoff *backoff.List
	stats   *runconfig.Stats
	logger  *slog.Logger
}

// New builds a Scheduler. backoffList may be nil when backoff is disabled.
func New(cfg runconfig.Config, binary string, backoffList *backoff.List, stats *runconfig.Stats, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{cfg: cfg, binary: binary, backoff: backoffList, stats: stats, logger: logger}
}

// Run fetches sites with exactly cfg.SiteConcurrency concurrent workers and
// returns the disjoint succeeded/failed lists. Sites already present in the
// backoff list (when enabled and not forced) are excluded up front and
// never counted as running.
func (s *Scheduler) Run(ctx context.Context, sitesIn []xmltv.Site) (succeeded, failed []Result) {
	sites := make([]xmltv.Site, 0, len(sitesIn))
	for _, site := range sitesIn {
		if s.cfg.Backoff && !s.cfg.Force && s.backoff != nil && s.backoff.Contains(site) {
			s.stats.SkipBackoff()
			s.logger.Debug("skipping backed-off site", slog.String("site", string(site)))
			continue
		}
		sites = append(sites, site)
	}

	n := int64(s.cfg.SiteConcurrency)
	if n < 1 {
		n = 1
	}

	sem := semaphore.NewWeighted(n)
	results := make(chan Result, len(sites))

	for _, site := range sites {
		if err := sem.Acquire(ctx, 1); err != nil {
			// context cancelled: stop admitting new work, let what's
			// already running drain below.
			break
		}
		go func(site xmltv.Site) {
			defer sem.Release(1)
			results <- s.runOne(ctx, site)
		}(site)
	}

	// Acquiring the full weight blocks until every admitted worker has
	// released, i.e. the pool has drained.
	sem.Acquire(context.Background(), n)
	close(results)

	for r := range results {
		if r.OK {
			succeeded = append(succeeded, r)
		} else {
			failed = append(failed, r)
		}
	}
	return succeeded, failed
}

func (s *Scheduler) runOne(ctx context.Context, site xmltv.Site) Result {
	s.stats.StartSite()
	outPath := filepath.Join(s.cfg.TmpDir, string(site)+".xml")

	if s.cfg.Resume {
		if info, err := os.Stat(outPath); err == nil && info.Size() > 0 {
			s.stats.FinishSite(true)
			return Result{Site: site, OutPath: outPath, OK: true}
		}
	}

	cfg := s.cfg
	ok, err := launcher.Launch(ctx, s.binary, site, outPath, cfg)
	if err != nil {
		s.logger.Warn("grabber spawn error", slog.String("site", string(site)), slog.Any("error", err))
	}

	for attempt := 0; !ok && attempt < s.cfg.Retries; attempt++ {
		cfg = cfg.Safer()
		ok, err = launcher.Launch(ctx, s.binary, site, outPath, cfg)
		if err != nil {
			s.logger.Warn("grabber retry spawn error",
				slog.String("site", string(site)), slog.Int("attempt", attempt+1), slog.Any("error", err))
		}
	}

	s.stats.FinishSite(ok)

	if !ok {
		s.logger.Info("site failed", slog.String("site", string(site)))
		if s.cfg.Backoff && !s.cfg.Force && s.backoff != nil {
			if err := s.backoff.Append(site); err != nil {
				s.logger.Warn("backoff append failed", slog.String("site", string(site)), slog.Any("error", err))
			}
		}
	}

	return Result{Site: site, OutPath: outPath, OK: ok}
}
