// Package playlist loads an M3U playlist and filters a merged guide down to
// the channel ids it references.
package playlist

import (
	"context"
	"fmt"
	"regexp"

	"github.com/epgforge/epgforge/internal/fetch"
	"github.com/epgforge/epgforge/internal/xmltv"
)

// tvgIDRe extracts tvg-id="..." attributes from #EXTINF lines, the same
// quoted-attribute idiom used elsewhere in the example pack for M3U text.
var tvgIDRe = regexp.MustCompile(`tvg-id="([^"]*)"`)

// Load fetches ref (file path or http(s):// URL) and returns the set of
// distinct non-empty tvg-id values it contains.
func Load(ctx context.Context, ref string) (map[string]struct{}, error) {
	body, err := fetch.Text(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("loading playlist: %w", err)
	}

	ids := make(map[string]struct{})
	for _, m := range tvgIDRe.FindAllStringSubmatch(body, -1) {
		if m[1] == "" {
			continue
		}
		ids[m[1]] = struct{}{}
	}
	return ids, nil
}

// Filter drops from state every channel whose id is absent from allowed,
// and its programmes with it. A nil allowed set disables filtering
// entirely; a non-nil empty set yields an empty guide.
func Filter(state *xmltv.State, allowed map[string]struct{}) {
	if allowed == nil {
		return
	}
	for id := range state.Channels {
		if _, ok := allowed[id]; !ok {
			delete(state.Channels, id)
			delete(state.Programmes, id)
		}
	}
}
