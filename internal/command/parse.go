// Package command parses colour commands from rc files and drives the
// rule engine with them. Two verbs exist:
//
//	color <region> [attributes...] <fg> <bg> <pattern> [match]
//	uncolor <region> *
//
// Words split on whitespace; double quotes group words and honour
// backslash escapes, single quotes group literally, and an unquoted #
// starts a comment.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zjrosen/missive/internal/palette"
	"github.com/zjrosen/missive/internal/rules"
)

// colorArgs is one parsed color command.
type colorArgs struct {
	region   rules.Region
	attrs    palette.AttrMask
	fg       palette.Color
	bg       palette.Color
	pattern  string
	submatch int
}

func parseColorArgs(args []string) (*colorArgs, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("color: missing region")
	}

	region, ok := rules.ParseRegion(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown region %q", args[0])
	}
	rest := args[1:]

	// Attribute words come before the two colours.
	attrs := palette.AttrNone
	for len(rest) > 0 && palette.IsAttr(rest[0]) {
		attr, err := palette.ParseAttr(rest[0])
		if err != nil {
			return nil, err
		}
		attrs |= attr
		rest = rest[1:]
	}

	if len(rest) < 2 {
		return nil, fmt.Errorf("color %s: missing foreground or background colour", region)
	}
	fg, err := palette.ParseColor(rest[0])
	if err != nil {
		return nil, err
	}
	bg, err := palette.ParseColor(rest[1])
	if err != nil {
		return nil, err
	}
	rest = rest[2:]

	if len(rest) == 0 {
		return nil, fmt.Errorf("color %s: missing pattern", region)
	}
	pattern := rest[0]
	rest = rest[1:]

	submatch := 0
	if len(rest) > 0 {
		submatch, err = strconv.Atoi(rest[0])
		if err != nil {
			return nil, fmt.Errorf("invalid match number %q", rest[0])
		}
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument %q", rest[0])
	}

	return &colorArgs{
		region:   region,
		attrs:    attrs,
		fg:       fg,
		bg:       bg,
		pattern:  pattern,
		submatch: submatch,
	}, nil
}

func parseUncolorArgs(args []string) (rules.Region, error) {
	if len(args) == 0 {
		return rules.RegionUnknown, fmt.Errorf("uncolor: missing region")
	}

	region, ok := rules.ParseRegion(args[0])
	if !ok {
		return rules.RegionUnknown, fmt.Errorf("unknown region %q", args[0])
	}

	if len(args) < 2 || args[1] != "*" {
		return rules.RegionUnknown, fmt.Errorf("uncolor %s: removing single patterns is not supported, use '*'", region)
	}
	if len(args) > 2 {
		return rules.RegionUnknown, fmt.Errorf("unexpected argument %q", args[2])
	}
	return region, nil
}

// splitWords breaks an rc line into words. Returned words have their
// quoting removed.
func splitWords(line string) ([]string, error) {
	var words []string
	i := 0
	for i < len(line) {
		switch c := line[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '#':
			return words, nil
		case c == '"' || c == '\'':
			word, next, err := readQuoted(line, i)
			if err != nil {
				return nil, err
			}
			words = append(words, word)
			i = next
		default:
			start := i
			for i < len(line) && line[i] != ' ' && line[i] != '\t' {
				i++
			}
			words = append(words, line[start:i])
		}
	}
	return words, nil
}

// readQuoted consumes a quoted word starting at the opening quote and
// returns the unquoted text plus the index after the closing quote.
// Double quotes honour backslash escapes, single quotes do not.
func readQuoted(line string, start int) (string, int, error) {
	quote := line[start]
	var b strings.Builder
	i := start + 1
	for i < len(line) {
		c := line[i]
		if c == quote {
			return b.String(), i + 1, nil
		}
		if quote == '"' && c == '\\' && i+1 < len(line) {
			i++
			c = line[i]
		}
		b.WriteByte(c)
		i++
	}
	return "", 0, fmt.Errorf("unterminated %c-quoted word", quote)
}
