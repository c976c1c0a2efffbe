// Package palette manages terminal colours for the rule engine: parsing
// colour and attribute words from colour commands, interning allocated
// foreground/background pairs behind reference counts, and rendering the
// resulting styles with lipgloss.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorKind discriminates the forms a colour can take.
type ColorKind int

const (
	// ColorDefault leaves the terminal's own colour in place.
	ColorDefault ColorKind = iota
	// ColorIndexed is an ANSI palette index (0-255).
	ColorIndexed
	// ColorHex is a 24-bit #RRGGBB value.
	ColorHex
)

// Color identifies a terminal colour in one of the forms colour commands
// accept: a named ANSI colour, its bright variant, a numbered colorNNN
// entry, a #RRGGBB value, or the terminal default.
type Color struct {
	Kind  ColorKind
	Index int    // palette index when Kind is ColorIndexed
	Hex   string // lowercase #rrggbb when Kind is ColorHex
}

var namedColors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

var indexedNames = map[int]string{
	0: "black",
	1: "red",
	2: "green",
	3: "yellow",
	4: "blue",
	5: "magenta",
	6: "cyan",
	7: "white",
}

// DefaultColor returns the terminal-default colour.
func DefaultColor() Color {
	return Color{Kind: ColorDefault}
}

// Indexed returns the colour for an ANSI palette index.
func Indexed(n int) Color {
	return Color{Kind: ColorIndexed, Index: n}
}

// ParseColor parses a colour word. Accepted forms: "default", a base name
// ("red"), a bright name ("brightred"), "colorNNN" for palette entries
// 0-255, and "#RRGGBB".
func ParseColor(s string) (Color, error) {
	word := strings.ToLower(strings.TrimSpace(s))
	if word == "" {
		return Color{}, fmt.Errorf("empty colour")
	}

	if word == "default" {
		return DefaultColor(), nil
	}

	if idx, ok := namedColors[word]; ok {
		return Indexed(idx), nil
	}

	if base, ok := strings.CutPrefix(word, "bright"); ok {
		if idx, found := namedColors[base]; found {
			return Indexed(idx + 8), nil
		}
		return Color{}, fmt.Errorf("unknown colour %q", s)
	}

	if num, ok := strings.CutPrefix(word, "color"); ok {
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("colour index out of range in %q", s)
		}
		return Indexed(n), nil
	}

	if hex, ok := strings.CutPrefix(word, "#"); ok {
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("hex colour %q must be #RRGGBB", s)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return Color{}, fmt.Errorf("invalid hex colour %q", s)
		}
		return Color{Kind: ColorHex, Hex: "#" + hex}, nil
	}

	return Color{}, fmt.Errorf("unknown colour %q", s)
}

// String renders the colour back in command form.
func (c Color) String() string {
	switch c.Kind {
	case ColorDefault:
		return "default"
	case ColorHex:
		return c.Hex
	default:
		if name, ok := indexedNames[c.Index]; ok {
			return name
		}
		if c.Index >= 8 && c.Index <= 15 {
			return "bright" + indexedNames[c.Index-8]
		}
		return "color" + strconv.Itoa(c.Index)
	}
}

// Terminal converts the colour for lipgloss rendering.
func (c Color) Terminal() lipgloss.TerminalColor {
	switch c.Kind {
	case ColorDefault:
		return lipgloss.NoColor{}
	case ColorHex:
		return lipgloss.Color(c.Hex)
	default:
		return lipgloss.Color(strconv.Itoa(c.Index))
	}
}
