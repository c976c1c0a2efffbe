package searchexpr

import (
	"fmt"

	"github.com/zjrosen/missive/internal/log"
	"github.com/zjrosen/missive/internal/mail"
)

// Program is a compiled search expression, ready to evaluate against
// message summaries.
type Program struct {
	src  string
	root Expr
}

// Compile parses and compiles a search expression.
func Compile(input string) (*Program, error) {
	log.Debug(log.CatExpr, "Compiling expression", "expr", input)

	parser := NewParser(input)
	root, err := parser.Parse()
	if err != nil {
		log.ErrorErr(log.CatExpr, "Compile failed", err, "expr", input)
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return &Program{src: input, root: root}, nil
}

// Source returns the expression text the program was compiled from.
func (p *Program) Source() string {
	return p.src
}

// Match evaluates the program against a message summary.
func (p *Program) Match(s mail.Summary) bool {
	return eval(p.root, s)
}

func eval(expr Expr, s mail.Summary) bool {
	switch e := expr.(type) {
	case *OrExpr:
		return eval(e.Left, s) || eval(e.Right, s)
	case *AndExpr:
		return eval(e.Left, s) && eval(e.Right, s)
	case *NotExpr:
		return !eval(e.Expr, s)
	case *MatchExpr:
		return evalMatch(e, s)
	case *FlagExpr:
		return evalFlag(e.Op, s)
	default:
		return false
	}
}

func evalMatch(e *MatchExpr, s mail.Summary) bool {
	switch e.Op {
	case OpFrom:
		return e.re.MatchString(s.From)
	case OpTo:
		return matchAny(e, s.To)
	case OpCc:
		return matchAny(e, s.Cc)
	case OpRecipient:
		return matchAny(e, s.Recipients())
	case OpSubject:
		return e.re.MatchString(s.Subject)
	case OpBody:
		return e.re.MatchString(s.Body)
	default:
		return false
	}
}

func matchAny(e *MatchExpr, values []string) bool {
	for _, v := range values {
		if e.re.MatchString(v) {
			return true
		}
	}
	return false
}

func evalFlag(op OpCode, s mail.Summary) bool {
	switch op {
	case OpNew:
		return s.IsNew()
	case OpOld:
		return s.Old
	case OpFlagged:
		return s.Flagged
	case OpTagged:
		return s.Tagged
	case OpDeleted:
		return s.Deleted
	case OpReplied:
		return s.Replied
	case OpRead:
		return s.Read
	case OpUnread:
		return !s.Read
	case OpAll:
		return true
	default:
		return false
	}
}

// Compiler compiles index-region patterns for the rule engine. Bare text
// without operators is rewritten through the simple-search template
// before compilation.
type Compiler struct {
	Simple string
}

// NewCompiler creates a compiler using the given simple-search template,
// falling back to the default when empty.
func NewCompiler(simple string) Compiler {
	if simple == "" {
		simple = DefaultSimpleSearch
	}
	return Compiler{Simple: simple}
}

// Compile rewrites and compiles a pattern.
func (c Compiler) Compile(pattern string) (*Program, error) {
	return Compile(CheckSimple(pattern, c.Simple))
}
