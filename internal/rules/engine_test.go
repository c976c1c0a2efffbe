package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/missive/internal/mail"
	"github.com/zjrosen/missive/internal/palette"
	"github.com/zjrosen/missive/internal/pubsub"
	"github.com/zjrosen/missive/internal/searchexpr"
)

var (
	red   = palette.Indexed(1)
	green = palette.Indexed(2)
	blue  = palette.Indexed(4)
	white = palette.Indexed(7)
	black = palette.Indexed(0)
)

func testCompiler() PatternCompiler {
	c := searchexpr.NewCompiler("")
	return CompilerFunc(func(pattern string) (MessageMatcher, error) {
		return c.Compile(pattern)
	})
}

func newTestEngine(t *testing.T) (*Engine, *palette.Allocator) {
	t.Helper()
	alloc := palette.NewAllocator()
	engine := NewEngine(Config{Palette: alloc, Compiler: testCompiler()})
	return engine, alloc
}

func mustRuleSet(t *testing.T, e *Engine, region Region) *RuleSet {
	t.Helper()
	rs, err := e.RuleSet(region)
	require.NoError(t, err)
	return rs
}

func waitEvent(t *testing.T, ch <-chan pubsub.Event[Region]) pubsub.Event[Region] {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
		return pubsub.Event[Region]{}
	}
}

func requireNoEvent(t *testing.T, ch <-chan pubsub.Event[Region]) {
	t.Helper()
	select {
	case ev := <-ch:
		require.Fail(t, "unexpected event", "got %v for %s", ev.Type, ev.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUpsert_InsertAppendsAtTail(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, pattern := range []string{"first", "second", "third"} {
		require.NoError(t, engine.Upsert(RegionBody, pattern, true, red, black, palette.AttrNone, false, 0))
	}

	rs := mustRuleSet(t, engine, RegionBody)
	require.Equal(t, 3, rs.Len())
	require.Equal(t, "first", rs.Rules()[0].Pattern)
	require.Equal(t, "second", rs.Rules()[1].Pattern)
	require.Equal(t, "third", rs.Rules()[2].Pattern)
}

func TestUpsert_StyleOnlyUpdate(t *testing.T) {
	engine, alloc := newTestEngine(t)

	require.NoError(t, engine.Upsert(RegionBody, "foo", true, red, black, palette.AttrBold, false, 0))
	require.NoError(t, engine.Upsert(RegionBody, "foo", true, blue, white, palette.AttrUnderline, false, 0))

	rs := mustRuleSet(t, engine, RegionBody)
	require.Equal(t, 1, rs.Len(), "second call must update, not insert")

	sp := rs.Rules()[0]
	require.True(t, sp.Style.Pair.Is(blue, white), "second call's colours should be active")
	require.Equal(t, palette.AttrUnderline, sp.Style.Attrs)

	require.Equal(t, 1, alloc.Outstanding(), "first call's pair must be fully released")
	require.Equal(t, 1, alloc.Distinct())
}

func TestUpsert_UpdateKeepsMatcherSubmatchStop(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.AddStatusRule(RegionStatus, `(\d+) new`, red, black, palette.AttrNone, 1)
	require.NoError(t, err)

	rs := mustRuleSet(t, engine, RegionStatus)
	sp := rs.Rules()[0]
	matcherBefore := sp.Matcher
	sp.StopMatching = true

	_, err = engine.AddStatusRule(RegionStatus, `(\d+) new`, green, white, palette.AttrBold, 2)
	require.NoError(t, err)

	require.Equal(t, 1, rs.Len())
	require.Same(t, matcherBefore.(*PlainRegex), sp.Matcher.(*PlainRegex), "matcher must survive a restyle")
	require.Equal(t, 1, sp.Submatch, "submatch must survive a restyle")
	require.True(t, sp.StopMatching, "stop flag must survive a restyle")
	require.True(t, sp.Style.Pair.Is(green, white))
	require.Equal(t, palette.AttrBold, sp.Style.Attrs)
}

func TestUpsert_SameColoursKeepPairOverwriteAttrs(t *testing.T) {
	engine, alloc := newTestEngine(t)

	require.NoError(t, engine.Upsert(RegionBody, "foo", true, red, black, palette.AttrBold, false, 0))

	rs := mustRuleSet(t, engine, RegionBody)
	pairBefore := rs.Rules()[0].Style.Pair

	require.NoError(t, engine.Upsert(RegionBody, "foo", true, red, black, palette.AttrReverse, false, 0))

	sp := rs.Rules()[0]
	require.Same(t, pairBefore, sp.Style.Pair, "matching colours must not reallocate the pair")
	require.Equal(t, 1, sp.Style.Pair.Refs())
	require.Equal(t, palette.AttrReverse, sp.Style.Attrs, "attributes are overwritten even when colours match")
	require.Equal(t, 1, alloc.Outstanding())
}

func TestUpsert_OrderPreservedAcrossUpdates(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, pattern := range []string{"p1", "p2", "p3"} {
		require.NoError(t, engine.Upsert(RegionBody, pattern, true, red, black, palette.AttrNone, false, 0))
	}
	// Restyle the first and last
	require.NoError(t, engine.Upsert(RegionBody, "p1", true, blue, white, palette.AttrNone, false, 0))
	require.NoError(t, engine.Upsert(RegionBody, "p3", true, green, black, palette.AttrNone, false, 0))

	rs := mustRuleSet(t, engine, RegionBody)
	require.Equal(t, 3, rs.Len())
	require.Equal(t, "p1", rs.Rules()[0].Pattern)
	require.Equal(t, "p2", rs.Rules()[1].Pattern)
	require.Equal(t, "p3", rs.Rules()[2].Pattern)
}

func TestUpsert_DedupUsesCallFlag(t *testing.T) {
	t.Run("insensitive call matches loosely", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		require.NoError(t, engine.Upsert(RegionBody, "foo", true, red, black, palette.AttrNone, false, 0))
		require.NoError(t, engine.Upsert(RegionBody, "FOO", false, blue, white, palette.AttrNone, false, 0))

		rs := mustRuleSet(t, engine, RegionBody)
		require.Equal(t, 1, rs.Len(), "the insensitive call should restyle the existing rule")
		require.Equal(t, "foo", rs.Rules()[0].Pattern, "pattern text keeps the first insertion's casing")
		require.True(t, rs.Rules()[0].Style.Pair.Is(blue, white))
	})

	t.Run("sensitive call misses case-different entry", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		require.NoError(t, engine.Upsert(RegionBody, "FOO", false, red, black, palette.AttrNone, false, 0))
		require.NoError(t, engine.Upsert(RegionBody, "foo", true, blue, white, palette.AttrNone, false, 0))

		rs := mustRuleSet(t, engine, RegionBody)
		require.Equal(t, 2, rs.Len(), "the sensitive call compares exactly and inserts a second entry")
	})

	t.Run("insensitive twice is one entry", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		require.NoError(t, engine.Upsert(RegionBody, "foo", false, red, black, palette.AttrNone, false, 0))
		require.NoError(t, engine.Upsert(RegionBody, "foo", false, blue, white, palette.AttrNone, false, 0))

		rs := mustRuleSet(t, engine, RegionBody)
		require.Equal(t, 1, rs.Len())
	})
}

func TestUpsert_CaseFoldAsymmetry(t *testing.T) {
	engine, _ := newTestEngine(t)

	require.NoError(t, engine.Upsert(RegionBody, "abc", true, red, black, palette.AttrNone, false, 0))
	require.NoError(t, engine.Upsert(RegionBody, "Abc", true, red, black, palette.AttrNone, false, 0))

	rs := mustRuleSet(t, engine, RegionBody)
	require.Equal(t, 2, rs.Len())

	lower := rs.Rules()[0].Matcher.(*PlainRegex)
	require.False(t, lower.CaseSensitive, "all-lowercase sensitive pattern folds")
	require.True(t, lower.Regex.MatchString("ABC"))

	mixed := rs.Rules()[1].Matcher.(*PlainRegex)
	require.True(t, mixed.CaseSensitive, "mixed-case sensitive pattern stays exact")
	require.False(t, mixed.Regex.MatchString("ABC"))
	require.True(t, mixed.Regex.MatchString("Abc"))
}

func TestUpsert_InsensitiveCallAlwaysFolds(t *testing.T) {
	engine, _ := newTestEngine(t)

	require.NoError(t, engine.Upsert(RegionHeader, "X-Spam", false, red, black, palette.AttrNone, false, 0))

	rs := mustRuleSet(t, engine, RegionHeader)
	re := rs.Rules()[0].Matcher.(*PlainRegex)
	require.False(t, re.CaseSensitive)
	require.True(t, re.Regex.MatchString("x-spam-status"))
}

func TestUpsert_RollbackOnBadRegex(t *testing.T) {
	engine, alloc := newTestEngine(t)

	require.NoError(t, engine.Upsert(RegionBody, "ok", true, red, black, palette.AttrNone, false, 0))
	outstandingBefore := alloc.Outstanding()

	err := engine.Upsert(RegionBody, "(", true, blue, white, palette.AttrNone, false, 0)
	require.Error(t, err)

	var compileErr *RegexCompileError
	require.True(t, errors.As(err, &compileErr))
	require.Equal(t, "(", compileErr.Pattern)

	rs := mustRuleSet(t, engine, RegionBody)
	require.Equal(t, 1, rs.Len(), "failed compile must not leave a partial entry")
	require.Equal(t, outstandingBefore, alloc.Outstanding(), "failed compile must not leak a pair")
}

func TestUpsert_RollbackOnBadExpression(t *testing.T) {
	engine, alloc := newTestEngine(t)

	err := engine.Upsert(RegionIndex, "~x", true, red, black, palette.AttrNone, true, 0)
	require.Error(t, err)

	var compileErr *PatternCompileError
	require.True(t, errors.As(err, &compileErr))

	rs := mustRuleSet(t, engine, RegionIndex)
	require.Equal(t, 0, rs.Len())
	require.Equal(t, 0, alloc.Outstanding())
}

func TestUpsert_UnknownRegion(t *testing.T) {
	engine, _ := newTestEngine(t)

	err := engine.Upsert(RegionNormal, "foo", true, red, black, palette.AttrNone, false, 0)
	require.Error(t, err)

	var unknownErr *UnknownRegionError
	require.True(t, errors.As(err, &unknownErr))
	require.Equal(t, RegionNormal, unknownErr.Region)
}

func TestEngine_NotifyOnIndexUpsert(t *testing.T) {
	broker := pubsub.NewBroker[Region]()
	defer broker.Close()

	engine := NewEngine(Config{Compiler: testCompiler(), Events: broker})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	require.NoError(t, engine.AddColorRule(RegionIndexAuthor, "~f ada", red, black, palette.AttrNone))

	ev := waitEvent(t, ch)
	require.Equal(t, pubsub.StyleSetChangedEvent, ev.Type)
	require.Equal(t, RegionIndexAuthor, ev.Payload, "the event names the region that changed")

	requireNoEvent(t, ch)
}

func TestEngine_NotifyOnIndexRestyle(t *testing.T) {
	broker := pubsub.NewBroker[Region]()
	defer broker.Close()

	engine := NewEngine(Config{Compiler: testCompiler(), Events: broker})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	require.NoError(t, engine.AddColorRule(RegionIndex, "~N", red, black, palette.AttrNone))
	waitEvent(t, ch)

	// A style-only update on an index region notifies again
	require.NoError(t, engine.AddColorRule(RegionIndex, "~N", blue, white, palette.AttrNone))
	ev := waitEvent(t, ch)
	require.Equal(t, RegionIndex, ev.Payload)
}

func TestEngine_NoNotifyOutsideIndexFamily(t *testing.T) {
	broker := pubsub.NewBroker[Region]()
	defer broker.Close()

	engine := NewEngine(Config{Compiler: testCompiler(), Events: broker})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	require.NoError(t, engine.AddColorRule(RegionBody, "quote", red, black, palette.AttrNone))
	requireNoEvent(t, ch)
}

func TestEngine_NoNotifyOnFailure(t *testing.T) {
	broker := pubsub.NewBroker[Region]()
	defer broker.Close()

	engine := NewEngine(Config{Compiler: testCompiler(), Events: broker})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	require.Error(t, engine.AddColorRule(RegionIndex, "~x", red, black, palette.AttrNone))
	requireNoEvent(t, ch)
}

func TestAddColorRule_RegionProfiles(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Header is the one insensitive region: a case-variant restyles
	require.NoError(t, engine.AddColorRule(RegionHeader, "x-spam", red, black, palette.AttrNone))
	require.NoError(t, engine.AddColorRule(RegionHeader, "X-SPAM", blue, white, palette.AttrNone))
	require.Equal(t, 1, mustRuleSet(t, engine, RegionHeader).Len())

	// Body is sensitive: case variants are distinct rules
	require.NoError(t, engine.AddColorRule(RegionBody, "warning", red, black, palette.AttrNone))
	require.NoError(t, engine.AddColorRule(RegionBody, "Warning", blue, white, palette.AttrNone))
	require.Equal(t, 2, mustRuleSet(t, engine, RegionBody).Len())

	// Index regions compile search expressions
	require.NoError(t, engine.AddColorRule(RegionIndexSubject, "~s report", red, black, palette.AttrNone))
	sp := mustRuleSet(t, engine, RegionIndexSubject).Rules()[0]
	require.IsType(t, &SearchExpression{}, sp.Matcher)

	// Non-index regions compile plain regexes
	require.IsType(t, &PlainRegex{}, mustRuleSet(t, engine, RegionBody).Rules()[0].Matcher)
}

func TestAddColorRule_RejectedRegions(t *testing.T) {
	engine, _ := newTestEngine(t)

	var unknownErr *UnknownRegionError

	err := engine.AddColorRule(RegionStatus, "foo", red, black, palette.AttrNone)
	require.Error(t, err, "status rules go through AddStatusRule")
	require.True(t, errors.As(err, &unknownErr))

	err = engine.AddColorRule(RegionNormal, "foo", red, black, palette.AttrNone)
	require.Error(t, err)
	require.True(t, errors.As(err, &unknownErr))
}

func TestAddStatusRule_Contract(t *testing.T) {
	engine, _ := newTestEngine(t)

	code, err := engine.AddStatusRule(RegionBody, "foo", red, black, palette.AttrNone, 0)
	require.Error(t, err)
	require.Equal(t, -1, code, "wrong region reports -1")

	code, err = engine.AddStatusRule(RegionStatus, `(\d+) new`, red, black, palette.AttrNone, 1)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	sp := mustRuleSet(t, engine, RegionStatus).Rules()[0]
	require.Equal(t, 1, sp.Submatch)
	require.IsType(t, &PlainRegex{}, sp.Matcher, "status patterns are plain regexes, never rewritten")

	code, err = engine.AddStatusRule(RegionStatus, "foo", red, black, palette.AttrNone, -1)
	require.Error(t, err)
	require.Equal(t, 0, code)
}

func TestEngine_DumpHookFiresAfterFrontEndSuccess(t *testing.T) {
	dumps := 0
	engine := NewEngine(Config{Compiler: testCompiler(), Dump: func() { dumps++ }})

	require.NoError(t, engine.AddColorRule(RegionBody, "ok", red, black, palette.AttrNone))
	require.Equal(t, 1, dumps)

	_, err := engine.AddStatusRule(RegionStatus, "ok", red, black, palette.AttrNone, 0)
	require.NoError(t, err)
	require.Equal(t, 2, dumps)

	require.Error(t, engine.AddColorRule(RegionBody, "(", red, black, palette.AttrNone))
	require.Equal(t, 2, dumps, "failures do not dump")

	require.NoError(t, engine.Upsert(RegionBody, "raw", true, red, black, palette.AttrNone, false, 0))
	require.Equal(t, 2, dumps, "the raw upsert path does not dump")
}

func TestEngine_ClearAll(t *testing.T) {
	engine, alloc := newTestEngine(t)

	require.NoError(t, engine.AddColorRule(RegionBody, "a", red, black, palette.AttrNone))
	require.NoError(t, engine.AddColorRule(RegionHeader, "b", green, black, palette.AttrNone))
	require.NoError(t, engine.AddColorRule(RegionIndex, "~N", blue, black, palette.AttrNone))
	require.Positive(t, alloc.Outstanding())

	engine.ClearAll()

	for _, region := range PatternRegions() {
		require.Equal(t, 0, mustRuleSet(t, engine, region).Len(), "region %s should be empty", region)
	}
	require.Equal(t, 0, alloc.Outstanding(), "no pair references may survive a clear")

	// Upserts after clearing behave as if fresh
	require.NoError(t, engine.AddColorRule(RegionBody, "a", red, black, palette.AttrNone))
	require.Equal(t, 1, mustRuleSet(t, engine, RegionBody).Len())
}

func TestEngine_ClearAllWithoutInserts(t *testing.T) {
	engine, alloc := newTestEngine(t)

	engine.ClearAll()
	engine.ClearAll()

	require.Equal(t, 0, alloc.Outstanding())
}

func TestEngine_ClearRegion(t *testing.T) {
	broker := pubsub.NewBroker[Region]()
	defer broker.Close()

	alloc := palette.NewAllocator()
	engine := NewEngine(Config{Palette: alloc, Compiler: testCompiler(), Events: broker})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	require.NoError(t, engine.AddColorRule(RegionIndexTag, "~T", red, black, palette.AttrNone))
	waitEvent(t, ch)

	require.NoError(t, engine.Clear(RegionIndexTag))
	require.Equal(t, 0, mustRuleSet(t, engine, RegionIndexTag).Len())
	require.Equal(t, 0, alloc.Outstanding())

	ev := waitEvent(t, ch)
	require.Equal(t, pubsub.RulesClearedEvent, ev.Type)
	require.Equal(t, RegionIndexTag, ev.Payload)

	// Clearing a non-index region is silent
	require.NoError(t, engine.Clear(RegionBody))
	requireNoEvent(t, ch)

	require.Error(t, engine.Clear(RegionTilde))
}

func TestEngine_Resolve(t *testing.T) {
	engine, _ := newTestEngine(t)

	require.NoError(t, engine.AddColorRule(RegionBody, `https?://\S+`, blue, black, palette.AttrUnderline))

	m, ok := engine.Resolve(RegionBody, "see https://example.com for details")
	require.True(t, ok)
	require.Equal(t, "https://example.com", "see https://example.com for details"[m.Start:m.End])

	_, ok = engine.Resolve(RegionBody, "no links here")
	require.False(t, ok)

	_, ok = engine.Resolve(RegionTilde, "anything")
	require.False(t, ok, "unknown regions resolve to nothing")
}

func TestEngine_ResolveMessage(t *testing.T) {
	engine, _ := newTestEngine(t)

	require.NoError(t, engine.AddColorRule(RegionIndex, "~F", red, black, palette.AttrBold))
	require.NoError(t, engine.AddColorRule(RegionIndex, "~N", green, black, palette.AttrNone))

	m, ok := engine.ResolveMessage(RegionIndex, mail.Summary{Flagged: true})
	require.True(t, ok)
	require.True(t, m.Style.Pair.Is(red, black))

	// Both rules match a new flagged message; the earlier rule wins
	m, ok = engine.ResolveMessage(RegionIndex, mail.Summary{Flagged: true, Read: false})
	require.True(t, ok)
	require.True(t, m.Style.Pair.Is(red, black))

	m, ok = engine.ResolveMessage(RegionIndex, mail.Summary{})
	require.True(t, ok)
	require.True(t, m.Style.Pair.Is(green, black))

	_, ok = engine.ResolveMessage(RegionIndex, mail.Summary{Read: true, Flagged: false})
	require.False(t, ok)
}

func TestProperty_PairRefsMatchRuleCount(t *testing.T) {
	// Every rule owns exactly one pair reference, so however upserts
	// interleave, outstanding references equal the total rule count and
	// clearing returns the allocator to zero.
	rapid.Check(t, func(rt *rapid.T) {
		alloc := palette.NewAllocator()
		engine := NewEngine(Config{Palette: alloc, Compiler: testCompiler()})

		regions := []Region{RegionAttachHeaders, RegionBody, RegionHeader, RegionStatus}
		patterns := []string{"alpha", "beta", "Gamma", "DELTA", "epsilon"}

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			region := regions[rapid.IntRange(0, len(regions)-1).Draw(rt, "region")]
			pattern := patterns[rapid.IntRange(0, len(patterns)-1).Draw(rt, "pattern")]
			sensitive := rapid.Bool().Draw(rt, "sensitive")
			fg := palette.Indexed(rapid.IntRange(0, 7).Draw(rt, "fg"))
			bg := palette.Indexed(rapid.IntRange(0, 7).Draw(rt, "bg"))

			require.NoError(t, engine.Upsert(region, pattern, sensitive, fg, bg, palette.AttrNone, false, 0))
		}

		total := 0
		for _, region := range PatternRegions() {
			rs, err := engine.RuleSet(region)
			require.NoError(t, err)
			total += rs.Len()
		}

		require.Equal(t, total, alloc.Outstanding(), "one pair reference per rule")

		engine.ClearAll()
		require.Equal(t, 0, alloc.Outstanding())
	})
}
