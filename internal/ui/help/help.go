// Package help contains the playground help overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/missive/internal/keys"
	"github.com/zjrosen/missive/internal/ui/markdown"
	"github.com/zjrosen/missive/internal/ui/overlay"
	"github.com/zjrosen/missive/internal/ui/styles"
)

// manualWrapWidth is the word-wrap width for the rendered syntax reference.
const manualWrapWidth = 62

// syntaxManual is the colour-command reference shown below the keybindings,
// rendered through glamour.
const syntaxManual = `Rules are plain lines in a colour rc file:

    color index_subject bold brightyellow default "~s urgent"
    color body green default "(https?|ftp)://[^ ]+"
    color header cyan default "^(From|To):"
    color status bold white blue "(Msgs:[0-9]+)" 1
    uncolor body *

**Regions:** index, index_author, index_subject, index_flags,
index_tag, header, body, attach_headers, status.

**Attributes:** bold, underline, reverse, standout, italic,
blink, none.

**Colors:** terminal names such as red or brightcyan, color0
through color255, #RRGGBB hex values, or default.

Index regions take search expressions (~f alice | ~s urgent).
Every other region takes a regex. On the status region a
trailing number picks the capture group to colour.`

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(6)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextPlaceholderColor).
			MarginTop(1)
)

// Model holds the help overlay state.
type Model struct {
	keys   keys.KeyMap
	manual string
	width  int
	height int
}

// New creates the help overlay. markdownStyle selects the glamour style
// for the syntax reference ("auto", "dark" or "light").
func New(markdownStyle string) Model {
	return Model{
		keys:   keys.DefaultKeyMap(),
		manual: renderManual(markdownStyle),
	}
}

// renderManual renders the syntax reference once at construction time.
// On any renderer failure the raw markdown is shown instead.
func renderManual(style string) string {
	r, err := markdown.New(manualWrapWidth, style)
	if err != nil {
		return syntaxManual
	}
	out, err := r.Render(syntaxManual)
	if err != nil {
		return syntaxManual
	}
	return strings.Trim(out, "\n")
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Center(helpBox, background, m.width, m.height)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	// Column style with right margin for spacing
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	// Navigation column
	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation"))
	navCol.WriteString("\n")
	navCol.WriteString(m.renderBinding(m.keys.Up))
	navCol.WriteString(m.renderBinding(m.keys.Down))

	// Actions column
	var actionsCol strings.Builder
	actionsCol.WriteString(sectionStyle.Render("Actions"))
	actionsCol.WriteString("\n")
	actionsCol.WriteString(m.renderBinding(m.keys.Reload))
	actionsCol.WriteString(m.renderBinding(m.keys.ToggleTable))
	actionsCol.WriteString(m.renderBinding(m.keys.ToggleYAML))

	// General column
	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(m.renderBinding(m.keys.Help))
	generalCol.WriteString(m.renderBinding(m.keys.ToggleStatus))
	generalCol.WriteString(m.renderBinding(m.keys.Escape))
	generalCol.WriteString(m.renderBinding(m.keys.Quit))

	// Join columns horizontally, aligned at top
	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(actionsCol.String()),
		generalCol.String(), // Last column doesn't need right margin
	)

	reference := sectionStyle.Render("Colour Commands") + "\n" + m.manual

	// Calculate box width based on the widest section
	boxWidth := max(lipgloss.Width(columns), lipgloss.Width(reference)) + 4

	// Build body content with padding
	body := contentStyle.Render(columns + "\n" + reference + "\n" + footerStyle.Render("Press ? or Esc to close"))

	// Divider spans full box width
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	// Build final content: title, divider, body
	var content strings.Builder
	content.WriteString(titleStyle.Render("Help"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func (m Model) renderBinding(b key.Binding) string {
	help := b.Help()
	return renderKeyDesc(help.Key, help.Desc)
}

func renderKeyDesc(key, desc string) string {
	return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
}
