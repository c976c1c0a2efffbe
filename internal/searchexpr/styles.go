package searchexpr

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/missive/internal/ui/styles"
)

// Token highlight styles for search-expression syntax highlighting.
// Uses centralized color constants from the styles package.
var (
	// OperatorStyle for tilde operators: ~f, ~s, ~N, ...
	OperatorStyle = lipgloss.NewStyle().
			Foreground(styles.ExprOperatorColor).
			Bold(true)

	// ConnectiveStyle for ! and |
	ConnectiveStyle = lipgloss.NewStyle().
			Foreground(styles.ExprConnectiveColor)

	// StringStyle for quoted pattern arguments
	StringStyle = lipgloss.NewStyle().
			Foreground(styles.ExprStringColor)

	// TextStyle for bare pattern arguments
	TextStyle = lipgloss.NewStyle().
			Foreground(styles.ExprTextColor)

	// ParenStyle for parentheses
	ParenStyle = lipgloss.NewStyle().
			Foreground(styles.ExprParenColor).
			Bold(true)

	// DefaultStyle for unrecognized tokens
	DefaultStyle = lipgloss.NewStyle()
)
