package searchexpr

// Lexer tokenizes search-expression input.
type Lexer struct {
	input string
	pos   int  // current position in input
	ch    byte // current character under examination
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Pos: l.pos}

	switch l.ch {
	case '(':
		tok.Type = TokenLParen
		tok.Literal = "("
	case ')':
		tok.Type = TokenRParen
		tok.Literal = ")"
	case '!':
		tok.Type = TokenNot
		tok.Literal = "!"
	case '|':
		tok.Type = TokenOr
		tok.Literal = "|"
	case '~':
		next := l.peekChar()
		if isOpLetter(next) {
			l.readChar()
			tok.Type = TokenOp
			tok.Literal = "~" + string(next)
		} else {
			tok.Type = TokenIllegal
			tok.Literal = string(l.ch)
		}
	case '"', '\'':
		tok.Type = TokenString
		tok.Literal = l.readString(l.ch)
		return tok
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
		return tok
	default:
		tok.Type = TokenText
		tok.Literal = l.readText()
		return tok
	}

	l.readChar()
	return tok
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// Offset returns the byte offset of the next unread character. After
// NextToken it marks the exclusive end of the token just returned, which
// is how callers recover source spans for quoted strings whose literals
// no longer match the input byte for byte.
func (l *Lexer) Offset() int {
	if l.pos-1 > len(l.input) {
		return len(l.input)
	}
	return l.pos - 1
}

// skipWhitespace advances past whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readText reads a bare argument word. Words end at whitespace or at a
// structural character; patterns containing those must be quoted.
func (l *Lexer) readText() string {
	start := l.pos - 1
	for l.ch != 0 && !isSpace(l.ch) && !isStructural(l.ch) {
		l.readChar()
	}
	return l.input[start : l.pos-1]
}

// readString reads a quoted string (supports both " and '). A backslash
// escapes the next character.
func (l *Lexer) readString(quote byte) string {
	l.readChar() // skip opening quote
	var out []byte
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		out = append(out, l.ch)
		l.readChar()
	}
	if l.ch == quote {
		l.readChar() // skip closing quote
	}
	return string(out)
}

// isOpLetter reports whether c can follow a tilde.
func isOpLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isStructural reports whether c always starts a new token.
func isStructural(c byte) bool {
	return c == '(' || c == ')' || c == '|' || c == '"' || c == '\''
}
