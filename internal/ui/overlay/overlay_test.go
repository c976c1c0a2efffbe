package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenter_Basic(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XX\nXX"

	result := Center(fg, bg, 5, 3)

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	// Middle line should have XX centered (position 1-2 in 0-4)
	assert.Contains(t, lines[1], "XX")
}

func TestCenter_LargeForeground(t *testing.T) {
	bg := "AAA\nAAA\nAAA"
	fg := "XXXXX\nXXXXX"

	result := Center(fg, bg, 3, 3)

	// Should not panic, fg is placed starting at x=0, y=0
	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "XXXXX") || strings.HasPrefix(lines[1], "XXXXX"))
}

func TestCenter_PreservesBackgroundOnSides(t *testing.T) {
	bg := "ABCDE\nFGHIJ\nKLMNO"
	fg := "X"

	result := Center(fg, bg, 5, 3)

	lines := strings.Split(result, "\n")
	// X lands at position 2 of the middle line, FG and IJ survive
	assert.Equal(t, "FGXIJ", lines[1])
}

func TestCenter_PreservesANSI(t *testing.T) {
	// Red colored background
	bg := "\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m"
	fg := "X"

	result := Center(fg, bg, 3, 3)

	assert.Contains(t, result, "\x1b[31m")
}

func TestCenter_EmptyBackground(t *testing.T) {
	fg := "XX\nXX"

	result := Center(fg, "", 5, 3)

	// Background is padded to the full viewport
	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
}

func TestCenter_MultilineForeground(t *testing.T) {
	bg := ".....\n.....\n.....\n.....\n....."
	fg := "XXX\nXXX\nXXX"

	result := Center(fg, bg, 5, 5)

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[1], "XXX")
	assert.Contains(t, lines[2], "XXX")
	assert.Contains(t, lines[3], "XXX")
}

func TestAt_TopLeft(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XX"

	result := At(fg, bg, 0, 0, 5, 3)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "XXAAA", lines[0])
	assert.Equal(t, "AAAAA", lines[1])
}

func TestAt_Offset(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XX"

	result := At(fg, bg, 2, 1, 5, 3)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAAA", lines[0])
	assert.Equal(t, "AAXXA", lines[1])
	assert.Equal(t, "AAAAA", lines[2])
}

func TestAt_RowsBelowViewportDropped(t *testing.T) {
	bg := "AAAAA\nAAAAA"
	fg := "XX\nXX\nXX"

	result := At(fg, bg, 0, 1, 5, 2)

	// Third foreground row falls off the bottom
	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "XXAAA", lines[1])
}

func TestAt_PadsShortBackgroundRow(t *testing.T) {
	bg := "AB\nAB"
	fg := "X"

	result := At(fg, bg, 4, 0, 6, 2)

	lines := strings.Split(result, "\n")
	// Background row is shorter than x, gap filled with spaces
	assert.Equal(t, "AB  X", lines[0])
}

func TestSplice_MiddleOfRow(t *testing.T) {
	got := splice("ABCDEF", "xx", 2)
	assert.Equal(t, "ABxxEF", got)
}

func TestSplice_EndOfRow(t *testing.T) {
	got := splice("ABCD", "xx", 2)
	assert.Equal(t, "ABxx", got)
}
