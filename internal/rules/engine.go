package rules

import (
	"errors"
	"regexp"
	"strings"

	"github.com/zjrosen/missive/internal/log"
	"github.com/zjrosen/missive/internal/mail"
	"github.com/zjrosen/missive/internal/palette"
	"github.com/zjrosen/missive/internal/pubsub"
)

// Engine orchestrates rule-set mutation: dedup, compilation, style
// ownership and change notification. All methods run synchronously on
// the calling goroutine.
type Engine struct {
	registry *Registry
	palette  *palette.Allocator
	compiler PatternCompiler
	events   pubsub.Publisher[Region]
	dump     func()
}

// Config wires an Engine's collaborators. Palette defaults to a fresh
// allocator; Events and Dump are optional.
type Config struct {
	Palette  *palette.Allocator
	Compiler PatternCompiler
	Events   pubsub.Publisher[Region]
	Dump     func()
}

// NewEngine creates an engine with empty rule lists for every
// pattern-bearing region.
func NewEngine(cfg Config) *Engine {
	alloc := cfg.Palette
	if alloc == nil {
		alloc = palette.NewAllocator()
	}
	return &Engine{
		registry: NewRegistry(),
		palette:  alloc,
		compiler: cfg.Compiler,
		events:   cfg.Events,
		dump:     cfg.Dump,
	}
}

// Palette returns the engine's allocator.
func (e *Engine) Palette() *palette.Allocator {
	return e.palette
}

// RuleSet returns the rule list for a region.
func (e *Engine) RuleSet(region Region) (*RuleSet, error) {
	return e.registry.ListFor(region)
}

// Upsert inserts or updates the rule for pattern in a region's list.
//
// An existing rule (found under the call's sensitivity flag) gets a
// style-only update: its pair is swapped only when the colours differ,
// its attributes are overwritten unconditionally, and its matcher,
// submatch and stop flag stay untouched. A new rule compiles first, as
// a search expression for index-kind calls or as a plain regex
// otherwise, and is appended at the tail only on success; a compile
// failure changes nothing and acquires nothing.
func (e *Engine) Upsert(region Region, pattern string, sensitive bool, fg, bg palette.Color, attrs palette.AttrMask, isIndexKind bool, submatch int) error {
	rs, err := e.registry.ListFor(region)
	if err != nil {
		return err
	}

	if existing := rs.find(pattern, sensitive); existing != nil {
		if !existing.Style.Pair.Is(fg, bg) {
			e.palette.Release(existing.Style.Pair)
			existing.Style.Pair = e.palette.Acquire(fg, bg)
		}
		existing.Style.Attrs = attrs
		log.Debug(log.CatRules, "rule restyled", "region", region, "pattern", pattern, "style", existing.Style)
		e.notify(region, isIndexKind)
		return nil
	}

	sp := &StyledPattern{Pattern: pattern, Submatch: submatch}

	if isIndexKind {
		matcher, err := e.compileExpression(pattern)
		if err != nil {
			log.ErrorErr(log.CatRules, "expression rejected", err, "region", region, "pattern", pattern)
			return err
		}
		sp.Matcher = matcher
	} else {
		matcher, err := compileRegex(pattern, sensitive)
		if err != nil {
			log.ErrorErr(log.CatRules, "regex rejected", err, "region", region, "pattern", pattern)
			return err
		}
		sp.Matcher = matcher
	}

	// Acquire only after the compile succeeded so failures roll back to
	// exactly the prior state.
	sp.Style = palette.StyleRef{Pair: e.palette.Acquire(fg, bg), Attrs: attrs}
	rs.append(sp)

	log.Debug(log.CatRules, "rule added", "region", region, "pattern", pattern, "style", sp.Style, "rules", rs.Len())
	e.notify(region, isIndexKind)
	return nil
}

func (e *Engine) compileExpression(pattern string) (Matcher, error) {
	if e.compiler == nil {
		return nil, &PatternCompileError{Pattern: pattern, Err: errors.New("no search-expression compiler configured")}
	}
	prog, err := e.compiler.Compile(pattern)
	if err != nil {
		return nil, &PatternCompileError{Pattern: pattern, Err: err}
	}
	return &SearchExpression{Program: prog}, nil
}

// compileRegex compiles a plain pattern. Insensitive calls always fold
// case; sensitive calls fold anyway when the pattern is entirely
// lowercase.
func compileRegex(pattern string, sensitive bool) (Matcher, error) {
	fold := !sensitive || strings.ToLower(pattern) == pattern

	expr := pattern
	if fold {
		expr = "(?i)" + pattern
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &RegexCompileError{Pattern: pattern, Err: err}
	}
	return &PlainRegex{Regex: re, CaseSensitive: !fold}, nil
}

// notify publishes a style-set change for index-family mutations.
func (e *Engine) notify(region Region, isIndexKind bool) {
	if isIndexKind && e.events != nil {
		e.events.Publish(pubsub.StyleSetChangedEvent, region)
	}
}

// AddColorRule is the front-end for the `color` command's
// pattern-bearing regions other than status. The call profile is fixed
// per region: header matches case-insensitively, everything else
// case-sensitively, and the five index regions compile search
// expressions.
func (e *Engine) AddColorRule(region Region, pattern string, fg, bg palette.Color, attrs palette.AttrMask) error {
	if !region.HasPatterns() || region == RegionStatus {
		return &UnknownRegionError{Region: region}
	}

	sensitive := region != RegionHeader
	if err := e.Upsert(region, pattern, sensitive, fg, bg, attrs, region.IsIndexKind(), 0); err != nil {
		return err
	}

	e.dumpAll()
	return nil
}

// AddStatusRule is the front-end for status-bar rules. It returns -1
// with an error when region is not the status region and 0 otherwise;
// submatch selects the capture group that receives the style.
func (e *Engine) AddStatusRule(region Region, pattern string, fg, bg palette.Color, attrs palette.AttrMask, submatch int) (int, error) {
	if region != RegionStatus {
		return -1, &UnknownRegionError{Region: region}
	}
	if submatch < 0 {
		return 0, &RegexCompileError{Pattern: pattern, Err: errors.New("match number must not be negative")}
	}

	if err := e.Upsert(region, pattern, true, fg, bg, attrs, false, submatch); err != nil {
		return 0, err
	}

	e.dumpAll()
	return 0, nil
}

// Clear empties one region's rules and releases their styles.
func (e *Engine) Clear(region Region) error {
	rs, err := e.registry.ListFor(region)
	if err != nil {
		return err
	}

	rs.Clear(e.palette)
	log.Debug(log.CatRules, "region cleared", "region", region)

	if region.IsIndexKind() && e.events != nil {
		e.events.Publish(pubsub.RulesClearedEvent, region)
	}
	return nil
}

// ClearAll empties every region. Safe at teardown even when nothing was
// ever inserted.
func (e *Engine) ClearAll() {
	e.registry.ClearAll(e.palette)
	log.Debug(log.CatRules, "all regions cleared")
}

// Resolve finds the first rule styling a piece of text in a region.
func (e *Engine) Resolve(region Region, text string) (Match, bool) {
	rs, err := e.registry.ListFor(region)
	if err != nil {
		return Match{}, false
	}
	return rs.FirstMatch(text)
}

// ResolveMessage finds the first rule styling a message summary in an
// index region.
func (e *Engine) ResolveMessage(region Region, msg mail.Summary) (Match, bool) {
	rs, err := e.registry.ListFor(region)
	if err != nil {
		return Match{}, false
	}
	return rs.FirstMatchMessage(msg)
}

func (e *Engine) dumpAll() {
	if e.dump != nil {
		e.dump()
	}
}
