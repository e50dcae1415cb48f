// Package orchestrator wires the full pipeline: load sites, fetch the
// batch, merge, filter, enrich, and write the final guide.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/epgforge/epgforge/internal/backoff"
	"github.com/epgforge/epgforge/internal/enrich"
	"github.com/epgforge/epgforge/internal/fuzzy"
	"github.com/epgforge/epgforge/internal/launcher"
	"github.com/epgforge/epgforge/internal/merge"
	"github.com/epgforge/epgforge/internal/playlist"
	"github.com/epgforge/epgforge/internal/progress"
	"github.com/epgforge/epgforge/internal/runconfig"
	"github.com/epgforge/epgforge/internal/scheduler"
	"github.com/epgforge/epgforge/internal/sites"
	"github.com/epgforge/epgforge/internal/xmltv"
	"github.com/epgforge/epgforge/pkg/duration"
)

// Run executes one end-to-end guide build and returns the final stats
// snapshot. Startup errors (grabber binary, tmp dir, sites file, playlist)
// and errors creating or writing the output are returned; every per-site
// failure is already absorbed into the returned stats.
func Run(ctx context.Context, cfg runconfig.Config, logger *slog.Logger) (runconfig.Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))

	binary, err := launcher.ResolveBinary(cfg.GrabberBin)
	if err != nil {
		return runconfig.Snapshot{}, fmt.Errorf("startup: %w", err)
	}

	if err := os.MkdirAll(cfg.TmpDir, 0o755); err != nil {
		return runconfig.Snapshot{}, fmt.Errorf("startup: preparing tmp dir: %w", err)
	}

	siteList, err := sites.Load(cfg.SitesFile)
	if err != nil {
		return runconfig.Snapshot{}, fmt.Errorf("startup: %w", err)
	}

	var allowed map[string]struct{}
	if cfg.Playlist != "" {
		allowed, err = playlist.Load(ctx, cfg.Playlist)
		if err != nil {
			return runconfig.Snapshot{}, fmt.Errorf("startup: %w", err)
		}
	}

	var backoffList *backoff.List
	if cfg.Backoff {
		backoffList, err = backoff.Load(cfg.BackoffFile)
		if err != nil {
			logger.Warn("backoff list unavailable, proceeding without it", slog.Any("error", err))
		}
	}

	stats := runconfig.NewStats(len(siteList), time.Now())
	reporter := progress.New(stats, cfg.ProgressSec, logger)
	stopReporter := reporter.Start(ctx)

	sched := scheduler.New(cfg, binary, backoffList, stats, logger)
	succeeded, _ := sched.Run(ctx, siteList)

	stopReporter()

	state := xmltv.NewState()
	engine := merge.New(fuzzy.New(cfg.FuzzySec), cfg.PreferSites)

	var results []merge.SiteResult
	for _, r := range succeeded {
		body, err := os.ReadFile(r.OutPath)
		if err != nil {
			logger.Warn("artifact vanished before merge", slog.String("site", string(r.Site)), slog.Any("error", err))
			continue
		}
		channels, programmes := xmltv.Lex(string(body), r.Site)
		results = append(results, merge.SiteResult{Site: r.Site, Channels: channels, Programmes: programmes})
	}

	engine.Merge(state, engine.Order(results))
	playlist.Filter(state, allowed)
	enricher := enrich.New(enrich.DefaultTable)
	enrichments := enricher.Apply(state)

	totalProgrammes := 0
	for _, progs := range state.Programmes {
		totalProgrammes += len(progs)
	}
	stats.SetMergeResult(len(state.Channels), totalProgrammes, engine.Collisions(), enrichments)

	out, err := os.Create(cfg.OutPath)
	if err != nil {
		return stats.Snapshot(), fmt.Errorf("opening output %s: %w", cfg.OutPath, err)
	}
	defer out.Close()

	if err := xmltv.WriteDocument(out, state, "epgforge"); err != nil {
		return stats.Snapshot(), fmt.Errorf("writing guide: %w", err)
	}

	snap := stats.Snapshot()
	logger.Info("run complete",
		slog.Int("channels", snap.Channels),
		slog.Int("programmes", snap.Programmes),
		slog.Int("succeeded", snap.Succeeded),
		slog.Int("failed", snap.Failed),
		slog.Int("merge_fusions", snap.MergeFusions),
		slog.Int("enrichments", snap.Enrichments),
		slog.String("elapsed", duration.Format(snap.Elapsed)),
	)
	return snap, nil
}
