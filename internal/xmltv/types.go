// Package xmltv models the channel and programme records exchanged between
// the fetch, merge and write stages of a guide run.
package xmltv

import "time"

// Site is a short grabber identifier, e.g. "tvtv.us".
type Site string

// Text pairs a payload with an optional language tag.
type Text struct {
	Lang string
	Text string
}

// EpisodeNum pairs a numbering system with its encoded value.
type EpisodeNum struct {
	System string
	Text   string
}

// Credits lists contributors by role. Order is first-seen.
type Credits struct {
	Directors  []string
	Actors     []string
	Writers    []string
	Producers  []string
	Presenters []string
}

// Channel is one EPG channel definition.
type Channel struct {
	ID          string
	DisplayName string
	IconURL     string
	HomepageURL string
	SourceSite  Site
	// RawXML is the verbatim <channel>...</channel> fragment as lexed from
	// the source artifact, preserved for byte-identical re-emission.
	RawXML string
}

// Programme is one scheduled broadcast on a channel.
type Programme struct {
	ChannelID   string
	Start       time.Time
	Stop        time.Time
	Titles      []Text
	SubTitles   []Text
	Descs       []Text
	Credits     Credits
	Categories  []string
	EpisodeNums []EpisodeNum
	IconURLs    []string
	Ratings     []string
	SourceSite  Site
}

// HasSubTitle reports whether the programme carries any sub-title text.
func (p *Programme) HasSubTitle() bool { return len(p.SubTitles) > 0 }

// HasEpisodeNum reports whether the programme carries any episode numbering.
func (p *Programme) HasEpisodeNum() bool { return len(p.EpisodeNums) > 0 }

// HasIcon reports whether the programme carries any icon URL.
func (p *Programme) HasIcon() bool { return len(p.IconURLs) > 0 }

// HasRating reports whether the programme carries any rating.
func (p *Programme) HasRating() bool { return len(p.Ratings) > 0 }

// PrimaryDesc returns the first description's text, or "" if none.
func (p *Programme) PrimaryDesc() string {
	if len(p.Descs) == 0 {
		return ""
	}
	return p.Descs[0].Text
}

// State is everything lexed or merged from one or more artifacts: a channel
// per id plus its ordered programme list.
type State struct {
	Channels   map[string]*Channel
	Programmes map[string][]*Programme
}

// NewState returns an empty State ready for incremental merging.
func NewState() *State {
	return &State{
		Channels:   make(map[string]*Channel),
		Programmes: make(map[string][]*Programme),
	}
}
