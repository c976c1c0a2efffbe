package searchexpr

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Highlight applies syntax highlighting to a search-expression string.
// Returns the input with ANSI color codes applied based on token types.
// Empty strings return empty strings. Invalid/partial expressions are
// highlighted for their valid portions.
func Highlight(expr string) string {
	if expr == "" {
		return ""
	}

	lexer := NewLexer(expr)
	var result strings.Builder
	lastPos := 0

	for {
		tok := lexer.NextToken()
		if tok.Type == TokenEOF {
			break
		}

		// The lexer's Pos is 1-indexed (points to the position after the
		// token's first character), so adjust to the 0-indexed start
		start := tok.Pos - 1
		end := lexer.Offset()
		if end > len(expr) {
			end = len(expr)
		}

		// Preserve whitespace between tokens
		if start > lastPos {
			result.WriteString(expr[lastPos:start])
		}

		// Quoted strings are styled over their source span so escapes and
		// quotes keep their original bytes
		result.WriteString(tokenStyle(tok.Type).Render(expr[start:end]))
		lastPos = end
	}

	// Append any trailing content (whitespace after last token)
	if lastPos < len(expr) {
		result.WriteString(expr[lastPos:])
	}

	return result.String()
}

// tokenStyle returns the appropriate style for a token type.
func tokenStyle(t TokenType) lipgloss.Style {
	switch t {
	case TokenOp:
		return OperatorStyle

	case TokenNot, TokenOr:
		return ConnectiveStyle

	case TokenLParen, TokenRParen:
		return ParenStyle

	case TokenString:
		return StringStyle

	case TokenText:
		return TextStyle

	default:
		return DefaultStyle
	}
}
