package rules

import (
	"regexp"

	"github.com/zjrosen/missive/internal/mail"
	"github.com/zjrosen/missive/internal/palette"
)

// MessageMatcher evaluates a compiled index pattern against a message
// summary. The search-expression package provides the implementation;
// the engine never looks inside.
type MessageMatcher interface {
	Match(s mail.Summary) bool
}

// PatternCompiler compiles index-region patterns into message matchers.
type PatternCompiler interface {
	Compile(pattern string) (MessageMatcher, error)
}

// CompilerFunc adapts a function to the PatternCompiler interface.
type CompilerFunc func(pattern string) (MessageMatcher, error)

// Compile calls f.
func (f CompilerFunc) Compile(pattern string) (MessageMatcher, error) {
	return f(pattern)
}

// Matcher is the compiled form of a styled pattern. Exactly one of the
// two implementations backs every rule, chosen by the region's kind.
type Matcher interface {
	matcher()
}

// PlainRegex matches raw text. CaseSensitive records the effective
// sensitivity after the fold rules ran, not the caller's flag.
type PlainRegex struct {
	Regex         *regexp.Regexp
	CaseSensitive bool
}

func (*PlainRegex) matcher() {}

// SearchExpression matches message summaries through a compiled
// search-expression program.
type SearchExpression struct {
	Program MessageMatcher
}

func (*SearchExpression) matcher() {}

// StyledPattern is one colour rule: the pattern's source text, its
// compiled matcher, the capture group that receives the style, and the
// owned style reference.
type StyledPattern struct {
	Pattern      string
	Matcher      Matcher
	Submatch     int
	StopMatching bool
	Style        palette.StyleRef
}
