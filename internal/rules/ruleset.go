package rules

import (
	"strings"

	"github.com/zjrosen/missive/internal/mail"
	"github.com/zjrosen/missive/internal/palette"
)

// RuleSet is the ordered rule list for one region. Rules are appended at
// the tail and never reordered: insertion order is match precedence.
type RuleSet struct {
	rules []*StyledPattern
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns the rules in precedence order. Callers must not mutate
// the returned slice.
func (rs *RuleSet) Rules() []*StyledPattern {
	return rs.rules
}

// append inserts a rule at the tail.
func (rs *RuleSet) append(sp *StyledPattern) {
	rs.rules = append(rs.rules, sp)
}

// find scans for a rule with the same pattern text. The comparison's
// case sensitivity follows the current call's flag, not anything stored
// on the rule.
func (rs *RuleSet) find(pattern string, sensitive bool) *StyledPattern {
	for _, sp := range rs.rules {
		if sensitive {
			if sp.Pattern == pattern {
				return sp
			}
		} else if strings.EqualFold(sp.Pattern, pattern) {
			return sp
		}
	}
	return nil
}

// Clear releases every rule's style and empties the list. The RuleSet
// stays usable afterwards.
func (rs *RuleSet) Clear(alloc *palette.Allocator) {
	for _, sp := range rs.rules {
		alloc.Release(sp.Style.Pair)
		sp.Style.Pair = nil
	}
	rs.rules = nil
}

// Match is a resolved style for a piece of content. Start and End carry
// the byte span of the styled capture group when the rule matched plain
// text; message matches span nothing.
type Match struct {
	Style        palette.StyleRef
	Start        int
	End          int
	StopMatching bool
}

// FirstMatch walks the rules in precedence order and returns the first
// plain-regex match against text. A non-matching rule flagged
// StopMatching ends the walk early.
func (rs *RuleSet) FirstMatch(text string) (Match, bool) {
	for _, sp := range rs.rules {
		re, ok := sp.Matcher.(*PlainRegex)
		if !ok {
			continue
		}

		if m, ok := matchSubmatch(re, sp, text); ok {
			return m, true
		}
		if sp.StopMatching {
			break
		}
	}
	return Match{}, false
}

// matchSubmatch applies the rule's regex and selects the span of the
// rule's capture group. A match whose group did not participate styles
// nothing and counts as no match.
func matchSubmatch(re *PlainRegex, sp *StyledPattern, text string) (Match, bool) {
	locs := re.Regex.FindStringSubmatchIndex(text)
	if locs == nil {
		return Match{}, false
	}

	i := 2 * sp.Submatch
	if i+1 >= len(locs) || locs[i] < 0 {
		return Match{}, false
	}

	return Match{
		Style:        sp.Style,
		Start:        locs[i],
		End:          locs[i+1],
		StopMatching: sp.StopMatching,
	}, true
}

// FirstMatchMessage walks the rules in precedence order and returns the
// first search-expression match against a message summary.
func (rs *RuleSet) FirstMatchMessage(msg mail.Summary) (Match, bool) {
	for _, sp := range rs.rules {
		expr, ok := sp.Matcher.(*SearchExpression)
		if !ok {
			continue
		}

		if expr.Program.Match(msg) {
			return Match{Style: sp.Style, StopMatching: sp.StopMatching}, true
		}
		if sp.StopMatching {
			break
		}
	}
	return Match{}, false
}
