// Package format provides human-readable rendering of counts for progress
// and summary output.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Number renders n with thousands separators, e.g. 12345 -> "12,345".
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Duration renders d rounded to whole seconds, e.g. "1m32s".
func Duration(d time.Duration) string {
	return d.Round(time.Second).String()
}
