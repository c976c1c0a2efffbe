package searchexpr

import (
	"fmt"
	"regexp"
	"strings"
)

// Parser parses search-expression tokens into an AST.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a parser for the input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Prime the parser with two tokens
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the input and returns the expression AST.
func (p *Parser) Parse() (Expr, error) {
	if p.current.Type == TokenEOF {
		return nil, fmt.Errorf("empty expression")
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token %q at position %d", p.current.Literal, p.current.Pos)
	}

	return expr, nil
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// parseExpression parses |-separated terms.
// expression = term { "|" term }
func (p *Parser) parseExpression() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.current.Type == TokenOr {
		p.nextToken() // consume |
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{Left: left, Right: right}
	}

	return left, nil
}

// parseTerm parses adjacent factors joined by implicit AND.
// term = factor { factor }
func (p *Parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for startsFactor(p.current.Type) {
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{Left: left, Right: right}
	}

	return left, nil
}

// startsFactor reports whether a token can begin a factor.
func startsFactor(t TokenType) bool {
	return t == TokenNot || t == TokenLParen || t == TokenOp
}

// parseFactor parses negation, grouping, or an operator.
// factor = "!" factor | "(" expression ")" | operator
func (p *Parser) parseFactor() (Expr, error) {
	switch p.current.Type {
	case TokenNot:
		p.nextToken() // consume !
		expr, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Expr: expr}, nil

	case TokenLParen:
		p.nextToken() // consume (
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenRParen {
			return nil, fmt.Errorf("expected ')' at position %d, got %q", p.current.Pos, p.current.Literal)
		}
		p.nextToken() // consume )
		return expr, nil

	case TokenOp:
		return p.parseOperator()

	default:
		return nil, fmt.Errorf("expected pattern operator at position %d, got %q", p.current.Pos, p.current.Literal)
	}
}

// parseOperator parses a tilde operator and, where the operator takes
// one, its pattern argument.
func (p *Parser) parseOperator() (Expr, error) {
	lit := p.current.Literal
	pos := p.current.Pos

	op, ok := LookupOp(lit[1])
	if !ok {
		return nil, fmt.Errorf("unknown operator %q at position %d", lit, pos)
	}
	p.nextToken()

	if !op.TakesArg() {
		return &FlagExpr{Op: op}, nil
	}

	if p.current.Type != TokenString && p.current.Type != TokenText {
		return nil, fmt.Errorf("missing pattern after %s at position %d", op, pos)
	}
	pattern := p.current.Literal
	p.nextToken()

	re, err := compilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	return &MatchExpr{Op: op, Pattern: pattern, re: re}, nil
}

// compilePattern compiles an operator argument. All-lowercase patterns
// match case-insensitively; a pattern with any uppercase matches exactly.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	expr := pattern
	if strings.ToLower(pattern) == pattern {
		expr = "(?i)" + pattern
	}
	return regexp.Compile(expr)
}
