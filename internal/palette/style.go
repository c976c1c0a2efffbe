package palette

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StyleRef couples an allocated colour pair with attribute bits. Each
// styled rule owns exactly one StyleRef; the pair behind it is shared
// through the allocator's interning.
type StyleRef struct {
	Pair  *Pair
	Attrs AttrMask
}

// Style builds the lipgloss style for rendering. Standout has no direct
// lipgloss equivalent and maps to reverse video.
func (s StyleRef) Style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Pair != nil {
		st = st.Foreground(s.Pair.Fg().Terminal()).Background(s.Pair.Bg().Terminal())
	}
	if s.Attrs.Has(AttrBold) {
		st = st.Bold(true)
	}
	if s.Attrs.Has(AttrUnderline) {
		st = st.Underline(true)
	}
	if s.Attrs.Has(AttrReverse) || s.Attrs.Has(AttrStandout) {
		st = st.Reverse(true)
	}
	if s.Attrs.Has(AttrItalic) {
		st = st.Italic(true)
	}
	if s.Attrs.Has(AttrBlink) {
		st = st.Blink(true)
	}
	return st
}

// Render applies the style to text.
func (s StyleRef) Render(text string) string {
	return s.Style().Render(text)
}

func (s StyleRef) String() string {
	return fmt.Sprintf("%s [%s]", s.Pair, s.Attrs)
}
