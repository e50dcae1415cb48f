package xmltv

import (
	"regexp"
	"strings"
)

// Parsing here is deliberate regex-driven structural extraction, not a
// general XML parse: inputs are assumed to be well-formed XMLTV produced by
// a single family of upstream grabbers. Unknown sub-elements are simply
// never matched and fall away; that is the tolerance model.
var (
	channelBlockRe = regexp.MustCompile(`(?s)<channel\s+id="([^"]*)"\s*>(.*?)</channel>`)
	displayNameRe  = regexp.MustCompile(`(?s)<display-name[^>]*>(.*?)</display-name>`)
	channelIconRe  = regexp.MustCompile(`<icon\s+[^>]*src="([^"]*)"`)
	channelURLRe   = regexp.MustCompile(`(?s)<url[^>]*>(.*?)</url>`)

	programmeBlockRe = regexp.MustCompile(`(?s)<programme\s+start="([^"]*)"\s+stop="([^"]*)"\s+channel="([^"]*)"\s*>(.*?)</programme>`)
	titleRe          = regexp.MustCompile(`(?s)<title(?:\s+lang="([^"]*)")?[^>]*>(.*?)</title>`)
	subTitleRe       = regexp.MustCompile(`(?s)<sub-title(?:\s+lang="([^"]*)")?[^>]*>(.*?)</sub-title>`)
	descRe           = regexp.MustCompile(`(?s)<desc(?:\s+lang="([^"]*)")?[^>]*>(.*?)</desc>`)
	categoryRe       = regexp.MustCompile(`(?s)<category[^>]*>(.*?)</category>`)
	episodeNumRe     = regexp.MustCompile(`(?s)<episode-num(?:\s+system="([^"]*)")?[^>]*>(.*?)</episode-num>`)
	programmeIconRe  = regexp.MustCompile(`<icon\s+[^>]*src="([^"]*)"`)
	ratingValueRe    = regexp.MustCompile(`(?s)<rating[^>]*>.*?<value[^>]*>(.*?)</value>.*?</rating>`)

	creditsBlockRe = regexp.MustCompile(`(?s)<credits\s*>(.*?)</credits>`)
	directorRe     = regexp.MustCompile(`(?s)<director[^>]*>(.*?)</director>`)
	actorRe        = regexp.MustCompile(`(?s)<actor[^>]*>(.*?)</actor>`)
	writerRe       = regexp.MustCompile(`(?s)<writer[^>]*>(.*?)</writer>`)
	producerRe     = regexp.MustCompile(`(?s)<producer[^>]*>(.*?)</producer>`)
	presenterRe    = regexp.MustCompile(`(?s)<presenter[^>]*>(.*?)</presenter>`)

	entityUnescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&apos;", "'",
		"&quot;", `"`,
		"&amp;", "&",
	)
)

func unescape(s string) string {
	return entityUnescaper.Replace(strings.TrimSpace(s))
}

// Lex extracts channels and programmes from a raw XMLTV document body.
// A programme whose start or stop timestamp fails to parse is dropped; all
// other malformed fragments are tolerated by simply not matching.
func Lex(doc string, site Site) (channels []*Channel, programmes []*Programme) {
	for _, m := range channelBlockRe.FindAllStringSubmatch(doc, -1) {
		raw := m[0]
		id := m[1]
		body := m[2]
		ch := &Channel{
			ID:         id,
			SourceSite: site,
			RawXML:     raw,
		}
		if dn := displayNameRe.FindStringSubmatch(body); dn != nil {
			ch.DisplayName = unescape(dn[1])
		}
		if ic := channelIconRe.FindStringSubmatch(body); ic != nil {
			ch.IconURL = unescape(ic[1])
		}
		if u := channelURLRe.FindStringSubmatch(body); u != nil {
			ch.HomepageURL = unescape(u[1])
		}
		channels = append(channels, ch)
	}

	for _, m := range programmeBlockRe.FindAllStringSubmatch(doc, -1) {
		startStr, stopStr, channelID, body := m[1], m[2], m[3], m[4]
		start, err := ParseTime(startStr)
		if err != nil {
			continue
		}
		stop, err := ParseTime(stopStr)
		if err != nil {
			continue
		}

		p := &Programme{
			ChannelID:  channelID,
			Start:      start,
			Stop:       stop,
			SourceSite: site,
		}

		for _, tm := range titleRe.FindAllStringSubmatch(body, -1) {
			p.Titles = append(p.Titles, Text{Lang: tm[1], Text: unescape(tm[2])})
		}
		for _, tm := range subTitleRe.FindAllStringSubmatch(body, -1) {
			p.SubTitles = append(p.SubTitles, Text{Lang: tm[1], Text: unescape(tm[2])})
		}
		for _, tm := range descRe.FindAllStringSubmatch(body, -1) {
			p.Descs = append(p.Descs, Text{Lang: tm[1], Text: unescape(tm[2])})
		}
		for _, cm := range categoryRe.FindAllStringSubmatch(body, -1) {
			p.Categories = append(p.Categories, unescape(cm[1]))
		}
		for _, em := range episodeNumRe.FindAllStringSubmatch(body, -1) {
			p.EpisodeNums = append(p.EpisodeNums, EpisodeNum{System: em[1], Text: unescape(em[2])})
		}
		for _, im := range programmeIconRe.FindAllStringSubmatch(body, -1) {
			p.IconURLs = append(p.IconURLs, unescape(im[1]))
		}
		for _, rm := range ratingValueRe.FindAllStringSubmatch(body, -1) {
			p.Ratings = append(p.Ratings, unescape(rm[1]))
		}
		if cb := creditsBlockRe.FindString(body); cb != "" {
			p.Credits = Credits{
				Directors:  extractAll(directorRe, cb),
				Actors:     extractAll(actorRe, cb),
				Writers:    extractAll(writerRe, cb),
				Producers:  extractAll(producerRe, cb),
				Presenters: extractAll(presenterRe, cb),
			}
		}

		programmes = append(programmes, p)
	}

	return channels, programmes
}

func extractAll(re *regexp.Regexp, body string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		out = append(out, unescape(m[1]))
	}
	return out
}
