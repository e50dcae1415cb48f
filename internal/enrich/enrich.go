// Package enrich applies a static, process-wide category table to merged
// programmes using case-insensitive regex matching over title and
// description text.
package enrich

import (
	"regexp"
	"strings"

	"github.com/epgforge/epgforge/internal/xmltv"
)

// Rule is one category and the patterns that trigger it.
type Rule struct {
	Category string
	Patterns []*regexp.Regexp
}

// DefaultTable is the built-in enrichment table, initialized once and never
// mutated. Entries are intentionally conservative: a false negative just
// means no category is added, whereas a false positive mislabels a guide.
var DefaultTable = []Rule{
	{Category: "Sports", Patterns: compileAll(
		`\b(nfl|nba|nhl|mlb|mls|ncaa)\b`,
		`\b(football|basketball|baseball|hockey|soccer|tennis|golf|boxing|wrestling|rugby|cricket)\b`,
		`\bsportscenter\b`,
	)},
	{Category: "News", Patterns: compileAll(
		`\bnews\b`, `\bheadline`, `\bbreaking\b`, `\bweather\b`,
	)},
	{Category: "Movie", Patterns: compileAll(
		`\bmovie\b`, `\bfilm\b`, `\bcinema\b`,
	)},
	{Category: "Children", Patterns: compileAll(
		`\bkids\b`, `\bchildren'?s\b`, `\bcartoon`, `\bjunior\b`,
	)},
	{Category: "Documentary", Patterns: compileAll(
		`\bdocumentary\b`, `\bdoc series\b`, `\binvestigat`,
	)},
	{Category: "Music", Patterns: compileAll(
		`\bmusic\b`, `\bconcert\b`, `\bsong\b`,
	)},
	{Category: "Comedy", Patterns: compileAll(
		`\bcomedy\b`, `\bsitcom\b`, `\bstand-up\b`,
	)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Enricher scans programmes against a fixed table and adds categories.
type Enricher struct {
	Table []Rule
}

// New returns an Enricher over the given table.
func New(table []Rule) *Enricher {
	return &Enricher{Table: table}
}

// Apply enriches every programme in state, returning the number of category
// additions made across the whole run.
func (en *Enricher) Apply(state *xmltv.State) int {
	added := 0
	for _, progs := range state.Programmes {
		for _, p := range progs {
			added += en.applyOne(p)
		}
	}
	return added
}

func (en *Enricher) applyOne(p *xmltv.Programme) int {
	var buf strings.Builder
	for _, t := range p.Titles {
		buf.WriteString(strings.ToLower(t.Text))
		buf.WriteByte(' ')
	}
	for _, d := range p.Descs {
		buf.WriteString(strings.ToLower(d.Text))
		buf.WriteByte(' ')
	}
	scan := buf.String()

	present := make(map[string]struct{}, len(p.Categories))
	for _, c := range p.Categories {
		present[c] = struct{}{}
	}

	added := 0
	for _, rule := range en.Table {
		if _, ok := present[rule.Category]; ok {
			continue
		}
		for _, re := range rule.Patterns {
			if re.MatchString(scan) {
				p.Categories = append(p.Categories, rule.Category)
				present[rule.Category] = struct{}{}
				added++
				break
			}
		}
	}
	return added
}
