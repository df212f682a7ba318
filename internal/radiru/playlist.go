package radiru

import (
	"fmt"
	"strings"
)

// PlaylistEntry is one resolved stream in a station playlist.
type PlaylistEntry struct {
	Station Station
	URL     string
}

// Title returns the entry's display title, e.g. "NHK-FM 東京".
func (e PlaylistEntry) Title() string {
	return e.Station.Channel.Title() + " " + e.Station.Location.DisplayName()
}

// BuildStationPlaylist renders entries as an extended M3U playlist of live
// streams. Entries with an empty URL are skipped. An empty slice produces a
// playlist holding only the header.
func BuildStationPlaylist(entries []PlaylistEntry) string {
	var b strings.Builder

	b.WriteString("#EXTM3U\n")

	for _, e := range entries {
		if e.URL == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("#EXTINF:-1 tvg-id=\"%s-%s\",%s\n", e.Station.Location, e.Station.Channel, e.Title()))
		b.WriteString(e.URL)
		b.WriteString("\n")
	}

	return b.String()
}
