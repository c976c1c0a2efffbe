// Package overlay provides utilities for rendering modal content
// on top of background views without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws fg over bg, centered in a width x height viewport.
func Center(fg, bg string, width, height int) string {
	x := (width - lipgloss.Width(fg)) / 2
	y := (height - lipgloss.Height(fg)) / 2
	return At(fg, bg, max(x, 0), max(y, 0), width, height)
}

// At draws fg over bg with its top-left corner at column x, row y.
// Styling on both layers survives: background rows are spliced with
// ANSI-aware cuts on either side of the foreground.
func At(fg, bg string, x, y, width, height int) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Pad background to full height
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], fgLine, x)
	}

	return strings.Join(bgLines, "\n")
}

// splice overwrites the cells [x, x+width(fg)) of row with fg.
func splice(row, fg string, x int) string {
	left := ansi.Truncate(row, x, "")

	// Pad when the background row is shorter than x
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(row) {
		// TruncateLeft removes cells from the left, keeping the right
		right = ansi.TruncateLeft(row, end, "")
	}

	return left + fg + right
}
