package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// TitledPane renders content inside a rounded border with the title embedded
// in the top edge, lazygit style: ╭─ Title ─────╮
// Focused panes draw the border and title in BorderHighlightFocusColor.
func TitledPane(content, title string, width, height int, focused bool) string {
	borderColor := lipgloss.TerminalColor(BorderDefaultColor)
	titleColor := lipgloss.TerminalColor(OverlayTitleColor)
	if focused {
		borderColor = BorderHighlightFocusColor
		titleColor = BorderHighlightFocusColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	top := titleEdge(title, innerWidth, borderStyle, titleStyle)
	bottom := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	// Lip Gloss handles wrapping and height clamping of the body.
	body := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).Render(content)

	lines := strings.Split(body, "\n")
	rows := make([]string, innerHeight)
	for i := 0; i < innerHeight; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		// Pad to innerWidth so the right border lines up.
		if pad := innerWidth - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		rows[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(bottom)
	return b.String()
}

// titleEdge builds the top border with the title inlined: ╭─ Title ──────╮
func titleEdge(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(borderTopLeft + borderTopRight)
	}

	// "─ " before the title and " ─" after leave innerWidth-4 cells of text,
	// so anything narrower gets a plain edge.
	if title == "" || innerWidth < 5 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	title = Truncate(title, innerWidth-4)

	trailing := innerWidth - 3 - ansi.StringWidth(title)
	if trailing < 0 {
		trailing = 0
	}

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, trailing)+borderTopRight)
}

// Truncate shortens s to fit maxWidth terminal cells, appending "..." when it
// does not fit. Escape sequences do not count towards the width.
func Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return ansi.Truncate(s, maxWidth, "...")
}
