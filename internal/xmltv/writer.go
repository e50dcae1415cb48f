package xmltv

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Writer streams a single valid XMLTV document: header, then every channel's
// preserved raw fragment, then every programme time-sorted, then the footer.
// Writes go straight to the underlying *bufio.Writer rather than through an
// intermediate buffer, so a multi-thousand-programme guide never needs to
// live twice in memory.
type Writer struct {
	w              *bufio.Writer
	generatorName  string
	headerWritten  bool
	channelsClosed bool
}

// NewWriter wraps w for buffered XMLTV output.
func NewWriter(w io.Writer, generatorName string) *Writer {
	return &Writer{w: bufio.NewWriter(w), generatorName: generatorName}
}

// WriteHeader emits the XML declaration and opening <tv> tag. Must be called
// exactly once, before any channel or programme.
func (wr *Writer) WriteHeader() error {
	if wr.headerWritten {
		return fmt.Errorf("xmltv: header already written")
	}
	if _, err := fmt.Fprintf(wr.w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<tv generator-info-name=%q>\n", wr.generatorName); err != nil {
		return fmt.Errorf("writing xmltv header: %w", err)
	}
	wr.headerWritten = true
	return nil
}

// WriteChannel emits a channel's preserved raw XML fragment verbatim.
func (wr *Writer) WriteChannel(ch *Channel) error {
	if !wr.headerWritten {
		return fmt.Errorf("xmltv: header must be written before channels")
	}
	if wr.channelsClosed {
		return fmt.Errorf("xmltv: channels must precede programmes")
	}
	if _, err := wr.w.WriteString(ch.RawXML); err != nil {
		return fmt.Errorf("writing channel %s: %w", ch.ID, err)
	}
	if _, err := wr.w.WriteString("\n"); err != nil {
		return fmt.Errorf("writing channel separator: %w", err)
	}
	return nil
}

// WriteProgramme renders and emits one programme in full XMLTV form.
func (wr *Writer) WriteProgramme(p *Programme) error {
	wr.channelsClosed = true

	fmt.Fprintf(wr.w, "  <programme start=%q stop=%q channel=%q>\n",
		FormatTime(p.Start), FormatTime(p.Stop), p.ChannelID)

	for _, t := range p.Titles {
		writeLangText(wr.w, "title", t)
	}
	for _, t := range p.SubTitles {
		writeLangText(wr.w, "sub-title", t)
	}
	for _, t := range p.Descs {
		writeLangText(wr.w, "desc", t)
	}
	if hasCredits(p.Credits) {
		fmt.Fprint(wr.w, "    <credits>\n")
		writeCreditRole(wr.w, "director", p.Credits.Directors)
		writeCreditRole(wr.w, "actor", p.Credits.Actors)
		writeCreditRole(wr.w, "writer", p.Credits.Writers)
		writeCreditRole(wr.w, "producer", p.Credits.Producers)
		writeCreditRole(wr.w, "presenter", p.Credits.Presenters)
		fmt.Fprint(wr.w, "    </credits>\n")
	}
	for _, c := range p.Categories {
		fmt.Fprintf(wr.w, "    <category lang=\"en\">%s</category>\n", xmlEscape(c))
	}
	for _, en := range p.EpisodeNums {
		if en.System != "" {
			fmt.Fprintf(wr.w, "    <episode-num system=%q>%s</episode-num>\n", en.System, xmlEscape(en.Text))
		} else {
			fmt.Fprintf(wr.w, "    <episode-num>%s</episode-num>\n", xmlEscape(en.Text))
		}
	}
	for _, icon := range p.IconURLs {
		fmt.Fprintf(wr.w, "    <icon src=%q/>\n", icon)
	}
	for _, rating := range p.Ratings {
		fmt.Fprintf(wr.w, "    <rating system=\"\">\n      <value>%s</value>\n    </rating>\n", xmlEscape(rating))
	}

	_, err := fmt.Fprint(wr.w, "  </programme>\n")
	if err != nil {
		return fmt.Errorf("writing programme on channel %s: %w", p.ChannelID, err)
	}
	return nil
}

// WriteFooter emits the closing </tv> tag and flushes buffered output.
func (wr *Writer) WriteFooter() error {
	if _, err := wr.w.WriteString("</tv>\n"); err != nil {
		return fmt.Errorf("writing xmltv footer: %w", err)
	}
	if err := wr.w.Flush(); err != nil {
		return fmt.Errorf("flushing xmltv output: %w", err)
	}
	return nil
}

// WriteDocument drives a full header/channels/programmes/footer sequence
// from a merged State, sorting programmes ascending by start time across all
// channels regardless of per-channel ingest order.
func WriteDocument(w io.Writer, state *State, generatorName string) error {
	wr := NewWriter(w, generatorName)
	if err := wr.WriteHeader(); err != nil {
		return err
	}

	ids := make([]string, 0, len(state.Channels))
	for id := range state.Channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := wr.WriteChannel(state.Channels[id]); err != nil {
			return err
		}
	}

	var all []*Programme
	for _, progs := range state.Programmes {
		all = append(all, progs...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Start.Before(all[j].Start) })
	for _, p := range all {
		if err := wr.WriteProgramme(p); err != nil {
			return err
		}
	}

	return wr.WriteFooter()
}

func writeLangText(w *bufio.Writer, tag string, t Text) {
	lang := t.Lang
	if lang == "" {
		lang = "en"
	}
	fmt.Fprintf(w, "    <%s lang=%q>%s</%s>\n", tag, lang, xmlEscape(t.Text), tag)
}

func writeCreditRole(w *bufio.Writer, tag string, names []string) {
	for _, n := range names {
		fmt.Fprintf(w, "      <%s>%s</%s>\n", tag, xmlEscape(n), tag)
	}
}

func hasCredits(c Credits) bool {
	return len(c.Directors) > 0 || len(c.Actors) > 0 || len(c.Writers) > 0 ||
		len(c.Producers) > 0 || len(c.Presenters) > 0
}

// entityEscaper is the exact inverse of the lexer's entityUnescaper: the
// same five named entities, so a value survives emit->parse->emit
// unchanged. encoding/xml's EscapeText is deliberately not used here since
// it emits numeric character references (&#34; &#39;) for quotes instead
// of the named forms the lexer decodes.
var entityEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// xmlEscape escapes &<>'" in text payloads for safe emission inside XMLTV
// element text.
func xmlEscape(s string) string {
	return entityEscaper.Replace(s)
}
