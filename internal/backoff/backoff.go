// Package backoff maintains the persistent list of chronically failing
// sites that are skipped by default on subsequent runs.
package backoff

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/epgforge/epgforge/internal/xmltv"
)

// List is an in-memory view of the backoff file plus an append path guarded
// against concurrent writers. Appends are OS append-mode writes, never
// read-modify-write, so concurrent workers never corrupt each other's line.
type List struct {
	path string
	mu   sync.Mutex
	set  map[string]struct{}
}

// Load reads path into a List. A missing file is not an error: it simply
// yields an empty backoff set.
func Load(path string) (*List, error) {
	l := &List{path: path, set: make(map[string]struct{})}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return nil, fmt.Errorf("opening backoff file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			l.set[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading backoff file %s: %w", path, err)
	}
	return l, nil
}

// Contains reports whether site is currently backed off.
func (l *List) Contains(site xmltv.Site) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.set[string(site)]
	return ok
}

// Append adds site to the in-memory set and best-effort persists it to the
// backoff file. A write failure is returned to the caller to log, but is
// never treated as fatal.
func (l *List) Append(site xmltv.Site) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.set[string(site)]; ok {
		return nil
	}
	l.set[string(site)] = struct{}{}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening backoff file %s for append: %w", l.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(string(site) + "\n"); err != nil {
		return fmt.Errorf("appending to backoff file %s: %w", l.path, err)
	}
	return nil
}
