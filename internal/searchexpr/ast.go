package searchexpr

import "regexp"

// Node is the interface for all AST nodes.
type Node interface {
	node()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr()
}

// OrExpr represents "expr | expr".
type OrExpr struct {
	Left  Expr
	Right Expr
}

func (o *OrExpr) node() {}
func (o *OrExpr) expr() {}

// AndExpr represents two adjacent patterns (implicit AND).
type AndExpr struct {
	Left  Expr
	Right Expr
}

func (a *AndExpr) node() {}
func (a *AndExpr) expr() {}

// NotExpr represents "! expr".
type NotExpr struct {
	Expr Expr
}

func (n *NotExpr) node() {}
func (n *NotExpr) expr() {}

// MatchExpr represents an operator with a pattern argument, e.g.
// `~f ada@example`. The regex is compiled at parse time.
type MatchExpr struct {
	Op      OpCode
	Pattern string
	re      *regexp.Regexp
}

func (m *MatchExpr) node() {}
func (m *MatchExpr) expr() {}

// FlagExpr represents an argument-less operator, e.g. `~N`.
type FlagExpr struct {
	Op OpCode
}

func (f *FlagExpr) node() {}
func (f *FlagExpr) expr() {}
