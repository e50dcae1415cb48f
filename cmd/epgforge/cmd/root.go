// Package cmd implements the CLI commands for epgforge.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/epgforge/epgforge/internal/logging"
	"github.com/epgforge/epgforge/internal/orchestrator"
	"github.com/epgforge/epgforge/internal/runconfig"
	"github.com/epgforge/epgforge/internal/version"
)

var flags struct {
	sitesFile        string
	out              string
	days             int
	maxConnections   int
	siteConcurrency  int
	timeoutMS        int
	delayMS          int
	retries          int
	resume           bool
	playlist         string
	fuzzySec         int
	preferSites      string
	siteWallClockSec int
	minProg          int
	backoff          bool
	backoffFile      string
	force            bool
	progressSec      int
	tmpDir           string
	grabberBin       string
	logLevel         string
	logFormat        string
}

// rootCmd represents the base command: fetch every configured site and
// merge the results into a single XMLTV guide.
var rootCmd = &cobra.Command{
	Use:     "epgforge",
	Short:   "Fetch and merge per-site EPG grabber output into one XMLTV guide",
	Version: version.Short(),
	Long: `epgforge orchestrates a fleet of per-site EPG grabber subprocesses,
collects their XMLTV output, and merges it into a single deduplicated,
enriched XMLTV guide.`,
	RunE: runRoot,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.sitesFile, "sites", "epgsites.txt", "input list of sites")
	f.StringVar(&flags.out, "out", "guide.xml", "final output XMLTV path")
	f.IntVar(&flags.days, "days", 0, "days of guide data, passed through to the grabber")
	f.IntVar(&flags.maxConnections, "maxConnections", 10, "per-site grabber concurrency (pass-through)")
	f.IntVar(&flags.siteConcurrency, "siteConcurrency", 3, "scheduler worker count")
	f.IntVar(&flags.timeoutMS, "timeout", 0, "grabber HTTP timeout in ms (pass-through)")
	f.IntVar(&flags.delayMS, "delay", 0, "inter-request delay in ms (pass-through)")
	f.IntVar(&flags.retries, "retries", 1, "max retries with safer settings")
	f.BoolVar(&flags.resume, "resume", false, "reuse existing artifacts")
	f.StringVar(&flags.playlist, "playlist", "", "M3U playlist (path or URL) for channel-id filtering")
	f.IntVar(&flags.fuzzySec, "fuzzySec", 90, "fuzzy-match window in seconds")
	f.StringVar(&flags.preferSites, "preferSites", "", "comma-separated tie-break site order")
	f.IntVar(&flags.siteWallClockSec, "siteWallClockSec", 1800, "per-site kill timer in seconds")
	f.IntVar(&flags.minProg, "minProg", 5, "artifact validity threshold (minimum programme count)")
	f.BoolVar(&flags.backoff, "backoff", false, "enable backoff list use and append")
	f.StringVar(&flags.backoffFile, "backoffFile", ".skip-sites.txt", "backoff list persistence path")
	f.BoolVar(&flags.force, "force", false, "ignore existing backoff list")
	f.IntVar(&flags.progressSec, "progressSec", 30, "periodic progress cadence in seconds; 0 disables")
	f.StringVar(&flags.tmpDir, "tmpDir", os.TempDir(), "directory for per-site artifacts")
	f.StringVar(&flags.grabberBin, "grabberBin", "grab", "grabber binary name, resolved via PATH/env/local")

	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log format (text, json)")
}

func runRoot(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New(os.Stderr, flags.logLevel, flags.logFormat)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	cfg := runconfig.Config{
		SitesFile:        flags.sitesFile,
		OutPath:          flags.out,
		Days:             flags.days,
		MaxConnections:   flags.maxConnections,
		SiteConcurrency:  flags.siteConcurrency,
		TimeoutMS:        flags.timeoutMS,
		DelayMS:          flags.delayMS,
		Retries:          flags.retries,
		Resume:           flags.resume,
		Playlist:         flags.playlist,
		FuzzySec:         flags.fuzzySec,
		PreferSites:      splitCSV(flags.preferSites),
		SiteWallClockSec: flags.siteWallClockSec,
		MinProg:          flags.minProg,
		Backoff:          flags.backoff,
		BackoffFile:      flags.backoffFile,
		Force:            flags.force,
		ProgressSec:      flags.progressSec,
		TmpDir:           flags.tmpDir,
		GrabberBin:       flags.grabberBin,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = orchestrator.Run(ctx, cfg, logger)
	return err
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
