// Package sites loads and validates the list of grabber sites for a run.
package sites

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/epgforge/epgforge/internal/xmltv"
)

// hostnameRe is the required shape for a site identifier: a lowercase
// DNS-hostname-like string with at least one dot.
var hostnameRe = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)

// ErrNoSites is returned when neither the sites file nor the fallback
// directory yields any usable site.
var ErrNoSites = errors.New("no sites found")

// Load reads path per the sites-file grammar (UTF-8, one entry per line,
// '#' comments and blank lines ignored, non-matching entries silently
// dropped). If path does not exist, it falls back to enumerating direct
// subdirectory names under ./sites.
func Load(path string) ([]xmltv.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loadFromDirectory("sites")
		}
		return nil, fmt.Errorf("opening sites file %s: %w", path, err)
	}
	defer f.Close()

	var out []xmltv.Site
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if hostnameRe.MatchString(line) {
			out = append(out, xmltv.Site(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sites file %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSites)
	}
	return out, nil
}

func loadFromDirectory(dir string) ([]xmltv.Site, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("no sites file and no fallback directory %s: %w", dir, err)
	}
	var out []xmltv.Site
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, xmltv.Site(e.Name()))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoSites)
	}
	return out, nil
}
