// Package merge unions channels and programmes collected from multiple
// sites into a single deduplicated State, using the quality scorer plus a
// preferred-site order to resolve ties.
package merge

import (
	"sort"

	"github.com/epgforge/epgforge/internal/fuzzy"
	"github.com/epgforge/epgforge/internal/scorer"
	"github.com/epgforge/epgforge/internal/xmltv"
)

// SiteResult is one site's lexed contribution to the merge.
type SiteResult struct {
	Site       xmltv.Site
	Channels   []*xmltv.Channel
	Programmes []*xmltv.Programme
}

// Engine merges a sequence of per-site results into one State.
type Engine struct {
	Matcher     fuzzy.Matcher
	PreferSites []string
	preferIndex map[string]int
	collisions  int
}

// New builds an Engine for the given fuzzy window and preferred-site order
// (earliest entries outrank later ones).
func New(m fuzzy.Matcher, preferSites []string) *Engine {
	idx := make(map[string]int, len(preferSites))
	for i, s := range preferSites {
		idx[s] = i
	}
	return &Engine{Matcher: m, PreferSites: preferSites, preferIndex: idx}
}

// Collisions returns the number of programme pairs fused so far.
func (e *Engine) Collisions() int { return e.collisions }

// Order reorders results so non-preferred sites come first in their given
// order and preferred sites come last in preferSites order. On an equal
// score the entry merged earlier is kept: always for channels, and for
// programmes unless prefers ranks the incoming programme's site higher.
func (e *Engine) Order(results []SiteResult) []SiteResult {
	ordered := make([]SiteResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return e.rank(string(ordered[i].Site)) < e.rank(string(ordered[j].Site))
	})
	return ordered
}

// rank returns a sort key: non-preferred sites all rank below (sort first,
// stably preserving original order); preferred sites rank by their position
// in PreferSites, later position sorting later (merged last).
func (e *Engine) rank(site string) int {
	if i, ok := e.preferIndex[site]; ok {
		return i
	}
	return -1
}

// Merge folds results, in the order given, into state. Callers should pass
// results already ordered via Order.
func (e *Engine) Merge(state *xmltv.State, results []SiteResult) {
	for _, res := range results {
		for _, ch := range res.Channels {
			e.mergeChannel(state, ch)
		}
		for _, p := range res.Programmes {
			e.mergeProgramme(state, p)
		}
	}
}

func (e *Engine) mergeChannel(state *xmltv.State, incoming *xmltv.Channel) {
	existing, ok := state.Channels[incoming.ID]
	if !ok || scorer.Channel(incoming) > scorer.Channel(existing) {
		state.Channels[incoming.ID] = incoming
	}
}

func (e *Engine) mergeProgramme(state *xmltv.State, incoming *xmltv.Programme) {
	list := state.Programmes[incoming.ChannelID]
	for i, existing := range list {
		if e.Matcher.Equal(existing, incoming) {
			list[i] = e.mergeTwoProgrammes(existing, incoming)
			e.collisions++
			return
		}
	}
	state.Programmes[incoming.ChannelID] = append(list, incoming)
}

// mergeTwoProgrammes fuses A and B per the scored-winner rule, falling back
// to preferSites order and finally to A winning by default.
func (e *Engine) mergeTwoProgrammes(a, b *xmltv.Programme) *xmltv.Programme {
	winner, loser := a, b
	sa, sb := scorer.Programme(a), scorer.Programme(b)
	switch {
	case sa > sb:
		winner, loser = a, b
	case sb > sa:
		winner, loser = b, a
	default:
		if e.prefers(b.SourceSite, a.SourceSite) {
			winner, loser = b, a
		}
	}

	start := winner.Start
	if loser.Start.Before(start) {
		start = loser.Start
	}
	stop := winner.Stop
	if loser.Stop.After(stop) {
		stop = loser.Stop
	}

	out := &xmltv.Programme{
		ChannelID:  winner.ChannelID,
		SourceSite: winner.SourceSite,
		Start:      start,
		Stop:       stop,
	}
	out.Titles = unionTexts(winner.Titles, loser.Titles)
	out.SubTitles = unionTexts(winner.SubTitles, loser.SubTitles)
	out.EpisodeNums = unionEpisodeNums(winner.EpisodeNums, loser.EpisodeNums)

	if len(loser.Descs) > 0 && firstLen(loser.Descs) > firstLen(winner.Descs) {
		out.Descs = loser.Descs
	} else {
		out.Descs = winner.Descs
	}

	out.Credits = xmltv.Credits{
		Directors:  unionStrings(winner.Credits.Directors, loser.Credits.Directors),
		Actors:     unionStrings(winner.Credits.Actors, loser.Credits.Actors),
		Writers:    unionStrings(winner.Credits.Writers, loser.Credits.Writers),
		Producers:  unionStrings(winner.Credits.Producers, loser.Credits.Producers),
		Presenters: unionStrings(winner.Credits.Presenters, loser.Credits.Presenters),
	}
	out.Categories = unionStrings(winner.Categories, loser.Categories)
	out.IconURLs = unionStrings(winner.IconURLs, loser.IconURLs)
	out.Ratings = unionStrings(winner.Ratings, loser.Ratings)

	return out
}

// prefers reports whether site x outranks site y under PreferSites: earlier
// listed beats later listed; listed beats unlisted; otherwise false, in
// which case the caller keeps A as the winner by default.
func (e *Engine) prefers(x, y xmltv.Site) bool {
	ix, xok := e.preferIndex[string(x)]
	iy, yok := e.preferIndex[string(y)]
	switch {
	case xok && yok:
		return ix < iy
	case xok:
		return true
	default:
		return false
	}
}

func firstLen(texts []xmltv.Text) int {
	if len(texts) == 0 {
		return 0
	}
	return len(texts[0].Text)
}

