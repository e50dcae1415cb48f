package xmltv

import (
	"fmt"
	"time"
)

// timeLayout is the sole accepted XMLTV timestamp shape: YYYYMMDDhhmmss ±hhmm.
const timeLayout = "20060102150405 -0700"

// ParseTime parses a timestamp in the exact grammar YYYYMMDDhhmmss ±hhmm,
// returning the instant normalized to UTC. Any other shape is rejected.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing xmltv time %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatTime renders t in UTC using the XMLTV grammar with a +0000 suffix.
func FormatTime(t time.Time) string {
	return t.UTC().Format("20060102150405 +0000")
}
