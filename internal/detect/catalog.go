package detect

import (
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

type catalogEntry struct {
	name      string
	installed bool
}

var catalogs = map[platform.Tag][]catalogEntry{
	platform.Darwin: {
		{"Visual Studio Code", true},
		{"Google Chrome", true},
		{"Spotify", true},
		{"Slack", true},
		{"Terminal", true},
		{"Finder", true},
		{"Safari", true},
		{"Discord", false},
		{"Adobe Photoshop", false},
		{"Microsoft Office", false},
	},
	platform.Windows: {
		{"Visual Studio Code", true},
		{"Google Chrome", true},
		{"Microsoft Office", true},
		{"Adobe Photoshop", true},
		{"Steam", true},
		{"Discord", true},
		{"Spotify", false},
		{"Slack", false},
		{"VLC Media Player", false},
		{"Git", false},
	},
	platform.Linux: {
		{"firefox", true},
		{"code", true},
		{"git", true},
		{"vim", true},
		{"curl", true},
		{"wget", true},
		{"chromium", false},
		{"spotify", false},
		{"discord", false},
		{"slack", false},
	},
}

var genericCatalog = []catalogEntry{
	{"Visual Studio Code", true},
	{"Google Chrome", true},
	{"Spotify", false},
}

// Catalog returns a fresh copy of the built-in fallback list for tag. Tags
// without a dedicated list get the generic three-entry catalog stamped
// unknown.
func Catalog(tag platform.Tag) []store.Record {
	entries, ok := catalogs[tag]
	if !ok {
		entries = genericCatalog
		tag = platform.Unknown
	}

	out := make([]store.Record, len(entries))
	for i, e := range entries {
		out[i] = store.Record{
			Name:      e.name,
			Installed: e.installed,
			Platform:  tag,
			Source:    SourceCatalog,
		}
	}
	return out
}
