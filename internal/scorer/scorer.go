// Package scorer assigns integer richness scores used to break ties during
// merge. Absolute values carry no meaning; only pairwise comparisons do.
package scorer

import "github.com/epgforge/epgforge/internal/xmltv"

// Channel scores a channel by icon/url presence and display-name length.
func Channel(ch *xmltv.Channel) int {
	score := 0
	if ch.IconURL != "" {
		score += 3
	}
	if ch.HomepageURL != "" {
		score += 2
	}
	score += clamp(len(ch.DisplayName)/6, 0, 10)
	return score
}

// Programme scores a programme by description length, category count, and
// presence of sub-title/episode-num/icon/rating fields.
func Programme(p *xmltv.Programme) int {
	score := clamp(len(p.PrimaryDesc())/50, 0, 10)
	score += 2 * len(p.Categories)
	if p.HasSubTitle() {
		score += 3
	}
	if p.HasEpisodeNum() {
		score += 5
	}
	if p.HasIcon() {
		score++
	}
	if p.HasRating() {
		score++
	}
	return score
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
