package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/missive/internal/searchexpr"
	"github.com/zjrosen/missive/internal/ui/styles"
)

// Rule table column widths; the style column takes the rest.
const (
	regionColWidth  = 15
	kindColWidth    = 11
	patternColWidth = 30
)

// renderRuleTable renders the effective rules as an aligned table, one
// row per rule in precedence order. Search-expression patterns are
// syntax highlighted.
func (m Model) renderRuleTable(width, height int) string {
	dumps := m.engine.Dump()
	if len(dumps) == 0 {
		return emptyTableHint()
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextSecondaryColor)
	regionStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	patternWidth := patternColWidth
	styleWidth := width - 1 - regionColWidth - kindColWidth - patternWidth
	if styleWidth < 16 {
		patternWidth = max(patternColWidth+styleWidth-16, 12)
		styleWidth = max(width-1-regionColWidth-kindColWidth-patternWidth, 8)
	}

	rows := []string{
		headerStyle.Render(" " +
			padCell("REGION", regionColWidth) +
			padCell("KIND", kindColWidth) +
			padCell("PATTERN", patternWidth) +
			"STYLE"),
	}

	for _, rd := range dumps {
		for i, rule := range rd.Rules {
			// Region shown once per block.
			regionCell := ""
			if i == 0 {
				regionCell = regionStyle.Render(rd.Region)
			}

			kindStyle := styles.KindRegexStyle
			pattern := rule.Pattern
			if rule.Kind == "expression" {
				kindStyle = styles.KindExpressionStyle
				pattern = searchexpr.Highlight(rule.Pattern)
			}

			styleText := rule.Fg + " on " + rule.Bg
			if rule.Attrs != "none" {
				styleText += " " + rule.Attrs
			}
			if rule.Submatch > 0 {
				styleText += fmt.Sprintf(" match=%d", rule.Submatch)
			}
			styleText = styles.Truncate(styleText, max(styleWidth-8, 8)) +
				mutedStyle.Render(fmt.Sprintf(" refs=%d", rule.Refs))

			rows = append(rows, " "+
				padCell(regionCell, regionColWidth)+
				padCell(kindStyle.Render(rule.Kind), kindColWidth)+
				padCell(pattern, patternWidth)+
				styles.Truncate(styleText, styleWidth))
		}
	}

	return clampRows(rows, height, "rules")
}

// renderRuleYAML renders the effective rules as YAML for copy/paste.
func (m Model) renderRuleYAML(width, height int) string {
	if len(m.engine.Dump()) == 0 {
		return emptyTableHint()
	}

	text, err := m.engine.DumpYAML()
	if err != nil {
		return styles.ErrorStyle.Render(err.Error())
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = styles.Truncate(line, width)
	}
	return clampRows(lines, height, "lines")
}

func emptyTableHint() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextPlaceholderColor).
		Render(" no colour rules defined")
}

// padCell truncates s to the column width and pads it with spaces,
// ignoring escape sequences.
func padCell(s string, width int) string {
	s = styles.Truncate(s, width-1)
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// clampRows cuts the row list to the pane height, replacing the tail
// with a count of what was hidden.
func clampRows(rows []string, height int, noun string) string {
	if height > 0 && len(rows) > height {
		hidden := len(rows) - height + 1
		rows = rows[:height-1]
		more := lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Render(fmt.Sprintf(" … %d more %s", hidden, noun))
		rows = append(rows, more)
	}
	return strings.Join(rows, "\n")
}
