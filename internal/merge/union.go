package merge

import "github.com/epgforge/epgforge/internal/xmltv"

// unionTexts unions two Text lists by composite key "lang|text", preserving
// first-seen order. On a key collision the loser's entry overwrites the
// winner's, matching the last-writer-wins rule for field merges.
func unionTexts(winner, loser []xmltv.Text) []xmltv.Text {
	order := make([]string, 0, len(winner)+len(loser))
	byKey := make(map[string]xmltv.Text, len(winner)+len(loser))
	apply := func(items []xmltv.Text) {
		for _, t := range items {
			key := t.Lang + "|" + t.Text
			if _, seen := byKey[key]; !seen {
				order = append(order, key)
			}
			byKey[key] = t
		}
	}
	apply(winner)
	apply(loser)

	out := make([]xmltv.Text, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}

// unionEpisodeNums unions two EpisodeNum lists keyed by text alone,
// preserving first-seen order; the loser's entry wins on a key collision.
func unionEpisodeNums(winner, loser []xmltv.EpisodeNum) []xmltv.EpisodeNum {
	order := make([]string, 0, len(winner)+len(loser))
	byKey := make(map[string]xmltv.EpisodeNum, len(winner)+len(loser))
	apply := func(items []xmltv.EpisodeNum) {
		for _, e := range items {
			if _, seen := byKey[e.Text]; !seen {
				order = append(order, e.Text)
			}
			byKey[e.Text] = e
		}
	}
	apply(winner)
	apply(loser)

	out := make([]xmltv.EpisodeNum, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}

// unionStrings is a plain set-union preserving first-seen order.
func unionStrings(winner, loser []string) []string {
	seen := make(map[string]struct{}, len(winner)+len(loser))
	out := make([]string, 0, len(winner)+len(loser))
	for _, list := range [][]string{winner, loser} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
