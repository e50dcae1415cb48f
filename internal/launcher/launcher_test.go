package launcher

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epgforge/epgforge/internal/runconfig"
	"github.com/epgforge/epgforge/internal/xmltv"
)

// writeFakeGrabber writes a shell script that ignores its arguments except
// the --output flag, and writes n programme tags to it.
func writeFakeGrabber(t *testing.T, dir string, n int, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake grabber script is POSIX shell only")
	}
	script := filepath.Join(dir, "fake-grab.sh")
	body := `#!/bin/sh
out=""
while [ "$#" -gt 0 ]; do
  if [ "$1" = "--output" ]; then
    out="$2"
  fi
  shift
done
i=0
while [ "$i" -lt ` + itoa(n) + ` ]; do
  printf '<programme start="20240115100000 +0000" stop="20240115103000 +0000" channel="c"></programme>' >> "$out"
  i=$((i+1))
done
exit ` + itoa(exitCode) + `
`
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

func TestLaunchSucceedsWithValidArtifact(t *testing.T) {
	dir := t.TempDir()
	bin := writeFakeGrabber(t, dir, 10, 0)
	outPath := filepath.Join(dir, "out.xml")

	ok, err := Launch(context.Background(), bin, xmltv.Site("s"), outPath, runconfig.Config{MinProg: 5, SiteWallClockSec: 30})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLaunchFailsBelowMinProgThreshold(t *testing.T) {
	dir := t.TempDir()
	bin := writeFakeGrabber(t, dir, 1, 0)
	outPath := filepath.Join(dir, "out.xml")

	ok, err := Launch(context.Background(), bin, xmltv.Site("s"), outPath, runconfig.Config{MinProg: 5, SiteWallClockSec: 30})
	require.NoError(t, err)
	assert.False(t, ok)
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "invalid artifact must be removed")
}

func TestLaunchFailsOnNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	bin := writeFakeGrabber(t, dir, 10, 1)
	outPath := filepath.Join(dir, "out.xml")

	ok, err := Launch(context.Background(), bin, xmltv.Site("s"), outPath, runconfig.Config{MinProg: 5, SiteWallClockSec: 30})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveBinaryHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	bin := writeFakeGrabber(t, dir, 1, 0)
	t.Setenv("EPGFORGE_GRABBER_BIN", bin)

	got, err := ResolveBinary("grab")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "fake-grab.sh"))
}
