package radiru

import (
	"fmt"
	"strings"
)

// Location identifies an NHK broadcast region.
type Location int

const (
	Sapporo Location = iota
	Sendai
	Tokyo
	Nagoya
	Osaka
	Hiroshima
	Matsuyama
	Fukuoka
)

type locationInfo struct {
	name  string // CLI name
	token string // <area> text in the config document
	jp    string // <areajp> text, for diagnostics
}

var locations = [...]locationInfo{
	Sapporo:   {name: "sapporo", token: "sapporo", jp: "札幌"},
	Sendai:    {name: "sendai", token: "sendai", jp: "仙台"},
	Tokyo:     {name: "tokyo", token: "tokyo", jp: "東京"},
	Nagoya:    {name: "nagoya", token: "nagoya", jp: "名古屋"},
	Osaka:     {name: "osaka", token: "osaka", jp: "大阪"},
	Hiroshima: {name: "hiroshima", token: "hiroshima", jp: "広島"},
	Matsuyama: {name: "matsuyama", token: "matsuyama", jp: "松山"},
	Fukuoka:   {name: "fukuoka", token: "fukuoka", jp: "福岡"},
}

// String returns the name used on the command line and in HTTP paths.
func (l Location) String() string {
	if !l.valid() {
		return fmt.Sprintf("Location(%d)", int(l))
	}
	return locations[l].name
}

// Token returns the region key that identifies this location's record.
func (l Location) Token() string {
	if !l.valid() {
		return ""
	}
	return locations[l].token
}

// DisplayName returns the Japanese region name.
func (l Location) DisplayName() string {
	if !l.valid() {
		return ""
	}
	return locations[l].jp
}

func (l Location) valid() bool { return l >= 0 && int(l) < len(locations) }

// Locations returns every Location in declaration order.
func Locations() []Location {
	out := make([]Location, len(locations))
	for i := range locations {
		out[i] = Location(i)
	}
	return out
}

// ParseLocation maps a case-insensitive location name to its Location.
func ParseLocation(s string) (Location, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range locations {
		if info.name == s {
			return Location(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLocation, s)
}

// Channel identifies an NHK radio channel.
type Channel int

const (
	NhkR1 Channel = iota
	NhkR2
	NhkFM
)

type channelInfo struct {
	name  string
	tag   string // element holding the channel's HLS endpoint
	title string
}

var channels = [...]channelInfo{
	NhkR1: {name: "r1", tag: "r1hls", title: "NHKラジオ第1"},
	NhkR2: {name: "r2", tag: "r2hls", title: "NHKラジオ第2"},
	NhkFM: {name: "fm", tag: "fmhls", title: "NHK-FM"},
}

func (c Channel) String() string {
	if !c.valid() {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channels[c].name
}

// Tag returns the document element name that carries this channel's endpoint.
func (c Channel) Tag() string {
	if !c.valid() {
		return ""
	}
	return channels[c].tag
}

// Title returns the channel's broadcast name.
func (c Channel) Title() string {
	if !c.valid() {
		return ""
	}
	return channels[c].title
}

func (c Channel) valid() bool { return c >= 0 && int(c) < len(channels) }

// Channels returns every Channel in declaration order.
func Channels() []Channel {
	out := make([]Channel, len(channels))
	for i := range channels {
		out[i] = Channel(i)
	}
	return out
}

// ParseChannel maps a case-insensitive channel name to its Channel.
func ParseChannel(s string) (Channel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range channels {
		if info.name == s {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// Station pairs a Location with a Channel.
type Station struct {
	Location Location
	Channel  Channel
}

// Stations returns every (Location, Channel) pair, locations outermost.
func Stations() []Station {
	out := make([]Station, 0, len(locations)*len(channels))
	for _, l := range Locations() {
		for _, c := range Channels() {
			out = append(out, Station{Location: l, Channel: c})
		}
	}
	return out
}
