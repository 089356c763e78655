package ast

import "fmt"

// Position identifies a source location for diagnostics.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position carries no location information.
func (p Position) IsZero() bool { return p.Line == 0 && p.File == "" }

// Node is the common interface of statements, expressions and patterns.
type Node interface {
	Pos() Position
}

// Expr is a surface-language expression.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a surface-language statement (a do-block or top-level element).
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is a binding pattern.
type Pattern interface {
	Node
	patternNode()
}
