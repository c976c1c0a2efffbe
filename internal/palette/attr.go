package palette

import (
	"fmt"
	"strings"
)

// AttrMask is a bitmask of terminal display attributes.
type AttrMask uint8

const (
	AttrBold AttrMask = 1 << iota
	AttrUnderline
	AttrReverse
	AttrStandout
	AttrItalic
	AttrBlink

	// AttrNone clears all attributes.
	AttrNone AttrMask = 0
)

var attrWords = map[string]AttrMask{
	"none":      AttrNone,
	"normal":    AttrNone,
	"bold":      AttrBold,
	"underline": AttrUnderline,
	"reverse":   AttrReverse,
	"standout":  AttrStandout,
	"italic":    AttrItalic,
	"blink":     AttrBlink,
}

// attrNames is ordered for deterministic String output.
var attrNames = []struct {
	mask AttrMask
	name string
}{
	{AttrBold, "bold"},
	{AttrUnderline, "underline"},
	{AttrReverse, "reverse"},
	{AttrStandout, "standout"},
	{AttrItalic, "italic"},
	{AttrBlink, "blink"},
}

// ParseAttr parses a single attribute word from a colour command.
func ParseAttr(s string) (AttrMask, error) {
	mask, ok := attrWords[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return AttrNone, fmt.Errorf("unknown attribute %q", s)
	}
	return mask, nil
}

// IsAttr reports whether a word names an attribute. The colour command
// grammar places attributes before colours, so the parser probes each
// word with this before treating it as a colour.
func IsAttr(s string) bool {
	_, ok := attrWords[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Has reports whether all bits in a are set.
func (m AttrMask) Has(a AttrMask) bool {
	return m&a == a
}

// String renders the mask as +-joined attribute words.
func (m AttrMask) String() string {
	if m == AttrNone {
		return "none"
	}
	var parts []string
	for _, a := range attrNames {
		if m.Has(a.mask) {
			parts = append(parts, a.name)
		}
	}
	return strings.Join(parts, "+")
}
