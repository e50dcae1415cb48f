// Package fuzzy decides whether two programme records describe the same
// broadcast despite small schedule skews between sources.
package fuzzy

import (
	"time"

	"github.com/epgforge/epgforge/internal/xmltv"
)

// Matcher holds the configured fuzzy window.
type Matcher struct {
	Window time.Duration
}

// New returns a Matcher using fuzzySec seconds as its tolerance window.
func New(fuzzySec int) Matcher {
	return Matcher{Window: time.Duration(fuzzySec) * time.Second}
}

// Equal reports whether a and b refer to the same broadcast: either their
// intervals strictly overlap, or both endpoints fall within the fuzzy
// window of each other. Either clause suffices.
func (m Matcher) Equal(a, b *xmltv.Programme) bool {
	if a.Start.Before(b.Stop) && a.Stop.After(b.Start) {
		return true
	}
	return absDuration(a.Start.Sub(b.Start)) <= m.Window && absDuration(a.Stop.Sub(b.Stop)) <= m.Window
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
