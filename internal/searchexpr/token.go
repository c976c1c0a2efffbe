// Package searchexpr implements the message search-expression language
// used by the index colour regions: tilde operators over message
// summaries combined with negation, alternation and implicit AND.
package searchexpr

// TokenType represents the type of lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	// TokenOp is a tilde operator ("~f", "~N", ...).
	TokenOp
	// TokenString is a "quoted" or 'quoted' operator argument.
	TokenString
	// TokenText is a bare operator argument word.
	TokenText

	// Delimiters and connectives
	TokenLParen // (
	TokenRParen // )
	TokenNot    // !
	TokenOr     // |
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenOp:
		return "OP"
	case TokenString:
		return "STRING"
	case TokenText:
		return "TEXT"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenNot:
		return "!"
	case TokenOr:
		return "|"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // Position in input for error reporting
}

// OpCode identifies a search operator by its tilde letter.
type OpCode byte

const (
	OpFrom      OpCode = 'f'
	OpTo        OpCode = 't'
	OpCc        OpCode = 'c'
	OpRecipient OpCode = 'C'
	OpSubject   OpCode = 's'
	OpBody      OpCode = 'b'
	OpNew       OpCode = 'N'
	OpOld       OpCode = 'O'
	OpFlagged   OpCode = 'F'
	OpTagged    OpCode = 'T'
	OpDeleted   OpCode = 'D'
	OpReplied   OpCode = 'Q'
	OpRead      OpCode = 'R'
	OpUnread    OpCode = 'U'
	OpAll       OpCode = 'A'
)

// opInfo describes an operator: whether it consumes a pattern argument.
type opInfo struct {
	name     string
	takesArg bool
}

var operators = map[OpCode]opInfo{
	OpFrom:      {name: "from", takesArg: true},
	OpTo:        {name: "to", takesArg: true},
	OpCc:        {name: "cc", takesArg: true},
	OpRecipient: {name: "recipient", takesArg: true},
	OpSubject:   {name: "subject", takesArg: true},
	OpBody:      {name: "body", takesArg: true},
	OpNew:       {name: "new", takesArg: false},
	OpOld:       {name: "old", takesArg: false},
	OpFlagged:   {name: "flagged", takesArg: false},
	OpTagged:    {name: "tagged", takesArg: false},
	OpDeleted:   {name: "deleted", takesArg: false},
	OpReplied:   {name: "replied", takesArg: false},
	OpRead:      {name: "read", takesArg: false},
	OpUnread:    {name: "unread", takesArg: false},
	OpAll:       {name: "all", takesArg: false},
}

// LookupOp returns the operator for a tilde letter.
func LookupOp(c byte) (OpCode, bool) {
	op := OpCode(c)
	_, ok := operators[op]
	return op, ok
}

// TakesArg reports whether the operator consumes a pattern argument.
func (o OpCode) TakesArg() bool {
	return operators[o].takesArg
}

// Name returns the operator's descriptive name.
func (o OpCode) Name() string {
	if info, ok := operators[o]; ok {
		return info.name
	}
	return "unknown"
}

func (o OpCode) String() string {
	return "~" + string(byte(o))
}
