package palette

import (
	"fmt"

	"github.com/zjrosen/missive/internal/log"
)

type pairKey struct {
	fg, bg Color
}

// Pair is an allocated foreground/background combination. Pairs are
// interned by the Allocator: callers holding the same (fg, bg) share one
// Pair, and the allocation lives until every holder has released it.
type Pair struct {
	fg   Color
	bg   Color
	refs int
}

// Fg returns the foreground colour.
func (p *Pair) Fg() Color { return p.fg }

// Bg returns the background colour.
func (p *Pair) Bg() Color { return p.bg }

// Is reports whether the pair was allocated for exactly (fg, bg).
func (p *Pair) Is(fg, bg Color) bool {
	return p != nil && p.fg == fg && p.bg == bg
}

// Refs returns the current reference count.
func (p *Pair) Refs() int {
	if p == nil {
		return 0
	}
	return p.refs
}

func (p *Pair) String() string {
	if p == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s on %s", p.fg, p.bg)
}

// Allocator interns colour pairs behind reference counts.
type Allocator struct {
	pairs map[pairKey]*Pair
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{pairs: make(map[pairKey]*Pair)}
}

// Acquire returns the pair for (fg, bg), creating it on first use and
// bumping its reference count otherwise.
func (a *Allocator) Acquire(fg, bg Color) *Pair {
	key := pairKey{fg: fg, bg: bg}
	if p, ok := a.pairs[key]; ok {
		p.refs++
		log.Debug(log.CatPalette, "pair reused", "pair", p.String(), "refs", p.refs)
		return p
	}
	p := &Pair{fg: fg, bg: bg, refs: 1}
	a.pairs[key] = p
	log.Debug(log.CatPalette, "pair allocated", "pair", p.String())
	return p
}

// Release drops one reference. The pair is freed when the last reference
// goes. Releasing nil is a no-op; releasing a dead pair is logged and
// ignored.
func (a *Allocator) Release(p *Pair) {
	if p == nil {
		return
	}
	if p.refs <= 0 {
		log.Error(log.CatPalette, "release of dead pair", "pair", p.String())
		return
	}
	p.refs--
	if p.refs == 0 {
		delete(a.pairs, pairKey{fg: p.fg, bg: p.bg})
		log.Debug(log.CatPalette, "pair freed", "pair", p.String())
	}
}

// Outstanding returns the sum of all reference counts. Zero means every
// acquisition has been matched by a release.
func (a *Allocator) Outstanding() int {
	total := 0
	for _, p := range a.pairs {
		total += p.refs
	}
	return total
}

// Distinct returns the number of live interned pairs.
func (a *Allocator) Distinct() int {
	return len(a.pairs)
}
