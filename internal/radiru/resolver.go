package radiru

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Element names in the config document.
const (
	recordTag     = "data"
	regionKeyTag  = "area"
	regionNameTag = "areajp"
)

// scanState is the parse context of one Resolve call.
type scanState struct {
	stack   []string
	current string

	// accumulators for the record being read
	region    string
	name      string
	endpoints [len(channels)]string
}

func (s *scanState) open(name string) {
	s.stack = append(s.stack, s.current)
	s.current = name
}

func (s *scanState) close() {
	n := len(s.stack)
	if n == 0 {
		s.current = ""
		return
	}
	s.current = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

func (s *scanState) text(b []byte) {
	switch s.current {
	case regionNameTag:
		s.name += string(b)
	case regionKeyTag:
		s.region += string(b)
	default:
		if ch, ok := channelForTag(s.current); ok {
			s.endpoints[ch] += strings.ToLower(string(b))
		}
	}
}

func (s *scanState) reset() {
	s.region = ""
	s.name = ""
	for i := range s.endpoints {
		s.endpoints[i] = ""
	}
}

func channelForTag(tag string) (Channel, bool) {
	for i, info := range channels {
		if info.tag == tag {
			return Channel(i), true
		}
	}
	return 0, false
}

// Resolve scans the config document read from r and returns the endpoint
// URL for ch in the first record whose region key equals loc.Token().
//
// The document must be flat: records are <data> elements that do not nest
// another <data>. Records are evaluated as each one closes, so nothing
// beyond the current record is held in memory. Endpoint values are
// lower-cased.
//
// Resolve fails with ErrDocumentExhausted if no record matches loc,
// ErrEmptyEndpoint if the matching record has a blank value for ch, and
// ErrMalformedDocument if the markup cannot be tokenized.
func Resolve(r io.Reader, loc Location, ch Channel) (string, error) {
	if !loc.valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownLocation, loc)
	}
	if !ch.valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownChannel, ch)
	}

	d := xml.NewDecoder(r)
	var st scanState

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %s", ErrDocumentExhausted, loc)
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			st.open(t.Name.Local)
		case xml.CharData:
			st.text(t)
		case xml.EndElement:
			if st.current == recordTag {
				if strings.TrimSpace(st.region) == loc.Token() {
					url := strings.TrimSpace(st.endpoints[ch])
					if url == "" {
						where := loc.String()
						if name := strings.TrimSpace(st.name); name != "" {
							where += " (" + name + ")"
						}
						return "", fmt.Errorf("%w: %s in %s", ErrEmptyEndpoint, ch, where)
					}
					return url, nil
				}
				st.reset()
			}
			st.close()
		}
	}
}
