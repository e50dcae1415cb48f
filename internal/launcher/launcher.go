// Package launcher spawns a single grabber subprocess, enforces its
// wall-clock budget, and validates the artifact it leaves behind.
package launcher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/epgforge/epgforge/internal/runconfig"
	"github.com/epgforge/epgforge/internal/util"
	"github.com/epgforge/epgforge/internal/xmltv"
)

// programmeToken is the structural heuristic used to count programmes in an
// artifact without parsing it: a cheap byte-count, not a validity check.
var programmeToken = []byte("<programme ")

// ResolveBinary locates the grabber executable: an env var override, then
// ./<name> in the working directory, then PATH.
func ResolveBinary(name string) (string, error) {
	path, err := util.FindBinary(name, "EPGFORGE_GRABBER_BIN")
	if err != nil {
		return "", fmt.Errorf("resolving grabber binary %q: %w", name, err)
	}
	return path, nil
}

// Launch spawns the grabber for site, enforces the wall-clock timeout, and
// validates the resulting artifact against minProg. It returns true only
// when the subprocess exited zero and the artifact is valid; in every other
// case the artifact (if any) is removed and false is returned.
func Launch(ctx context.Context, binary string, site xmltv.Site, outPath string, cfg runconfig.Config) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.SiteWallClockSec)*time.Second)
	defer cancel()

	args := []string{"run", "grab", "---", "--site", string(site), "--output", outPath}
	if cfg.Days > 0 {
		args = append(args, "--days", strconv.Itoa(cfg.Days))
	}
	if cfg.MaxConnections > 0 {
		args = append(args, "--maxConnections", strconv.Itoa(cfg.MaxConnections))
	}
	if cfg.DelayMS > 0 {
		args = append(args, "--delay", strconv.Itoa(cfg.DelayMS))
	}
	if cfg.TimeoutMS > 0 {
		args = append(args, "--timeout", strconv.Itoa(cfg.TimeoutMS))
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = os.Environ()
	if cfg.TimeoutMS > 0 {
		cmd.Env = append(cmd.Env, "TIMEOUT="+strconv.Itoa(cfg.TimeoutMS))
	}
	if cfg.DelayMS > 0 {
		cmd.Env = append(cmd.Env, "DELAY="+strconv.Itoa(cfg.DelayMS))
	}

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		os.Remove(outPath)
		return false, nil
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !isExitError(runErr, &exitErr) {
			return false, fmt.Errorf("spawning grabber for %s: %w", site, runErr)
		}
		os.Remove(outPath)
		return false, nil
	}

	return validateArtifact(outPath, cfg.MinProg), nil
}

func isExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if ok {
		*target = ee
	}
	return ok
}

func validateArtifact(outPath string, minProg int) bool {
	body, err := os.ReadFile(outPath)
	if err != nil {
		return false
	}
	if bytes.Count(body, programmeToken) < minProg {
		os.Remove(outPath)
		return false
	}
	return true
}
