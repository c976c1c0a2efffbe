package searchexpr

import (
	"regexp"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes all ANSI escape codes from a string
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// hasANSI returns true if the string contains ANSI escape codes
func hasANSI(s string) bool {
	return ansiRegex.MatchString(s)
}

func init() {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func TestHighlight_AppliesStyles(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"single operator", "~N"},
		{"operator with argument", "~f ada"},
		{"quoted argument", `~s "foo bar"`},
		{"full expression", "!(~f ada | ~s report) ~N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.expr)
			require.True(t, hasANSI(got), "expected ANSI codes in output")
			require.Equal(t, tt.expr, stripANSI(got), "highlighting must not alter the text")
		})
	}
}

func TestHighlight_Empty(t *testing.T) {
	require.Equal(t, "", Highlight(""))
}

func TestHighlight_PreservesWhitespace(t *testing.T) {
	expr := "  ~f   ada  "
	got := Highlight(expr)
	require.Equal(t, expr, stripANSI(got))
}

func TestHighlight_UnterminatedString(t *testing.T) {
	expr := `~s "unterminated`
	got := Highlight(expr)
	require.Equal(t, expr, stripANSI(got), "unterminated strings must not panic or truncate")
}

func TestHighlight_EscapedQuotes(t *testing.T) {
	expr := `~f "say \"hi\""`
	got := Highlight(expr)
	require.Equal(t, expr, stripANSI(got), "escapes must keep their source bytes")
}

func TestHighlight_InvalidInput(t *testing.T) {
	// The highlighter is lexer-driven and must not require a valid parse
	expr := "~f"
	got := Highlight(expr)
	require.Equal(t, expr, stripANSI(got))
}
