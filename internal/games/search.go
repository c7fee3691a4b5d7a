package games

import (
	"sort"
	"strings"

	"github.com/trophyroom/backend/pkg/steam"
)

const (
	// MinQueryLength is the shortest query worth sending upstream.
	MinQueryLength = 3
	// MaxSearchResults caps a search response.
	MaxSearchResults = 20
)

// SearchResult is one catalog match, with an ownership marker when the
// caller's library is known.
type SearchResult struct {
	AppID int    `json:"appId"`
	Name  string `json:"name"`
	Owned bool   `json:"owned"`
}

// FilterCatalog applies a case-insensitive substring match over the catalog,
// ranks prefix matches first, and caps the result. Pure function: no I/O.
func FilterCatalog(catalog []steam.AppListEntry, query string) []SearchResult {
	needle := strings.ToLower(strings.TrimSpace(query))
	if len(needle) < MinQueryLength {
		return []SearchResult{}
	}

	matches := make([]SearchResult, 0, MaxSearchResults)
	prefixRank := make(map[int]bool)
	for _, app := range catalog {
		name := strings.ToLower(app.Name)
		if !strings.Contains(name, needle) {
			continue
		}
		matches = append(matches, SearchResult{AppID: app.AppID, Name: app.Name})
		if strings.HasPrefix(name, needle) {
			prefixRank[app.AppID] = true
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		pi, pj := prefixRank[matches[i].AppID], prefixRank[matches[j].AppID]
		if pi != pj {
			return pi
		}
		return matches[i].Name < matches[j].Name
	})

	if len(matches) > MaxSearchResults {
		matches = matches[:MaxSearchResults]
	}
	return matches
}

// MarkOwned flags results whose app id is present in the owned set.
func MarkOwned(results []SearchResult, owned map[int]bool) []SearchResult {
	if len(owned) == 0 {
		return results
	}
	for i := range results {
		results[i].Owned = owned[results[i].AppID]
	}
	return results
}

// OwnedSet builds the membership set used by MarkOwned.
func OwnedSet(library []steam.OwnedGame) map[int]bool {
	set := make(map[int]bool, len(library))
	for _, game := range library {
		set[game.AppID] = true
	}
	return set
}
