package ast

import "github.com/provelang/provescript/internal/schema"

// Decl is one declaration: pattern, optional declared schema, optional doc
// comment, and the bound expression.
type Decl struct {
	Pat      Pattern
	Sch      *schema.Schema
	Doc      string
	Body     Expr
	Position Position
}

func (d *Decl) Pos() Position { return d.Position }

// DeclGroup is a single declaration or a mutually-recursive set of
// declarations bound together. Recursive groups must be function-valued;
// this is a caller obligation, not checked here.
type DeclGroup struct {
	Recursive bool
	Decls     []*Decl
}

// BindStmt is `pat <- expr`. A bare expression statement is sugar for a
// wildcard-bound form (Wild set), which is special-cased in tail position.
type BindStmt struct {
	Pat      Pattern
	Wild     bool // pattern was omitted in source
	Expr     Expr
	Position Position
}

func (s *BindStmt) Pos() Position { return s.Position }
func (s *BindStmt) stmtNode()     {}

// LetStmt resolves a declaration group into scope for the rest of the block.
type LetStmt struct {
	Group    *DeclGroup
	Position Position
}

func (s *LetStmt) Pos() Position { return s.Position }
func (s *LetStmt) stmtNode()     {}

// TermDeclStmt is `let {{ ... }}`: extends the embedded term-language
// environment with the fragment's declarations.
type TermDeclStmt struct {
	Src      string
	Position Position
}

func (s *TermDeclStmt) Pos() Position { return s.Position }
func (s *TermDeclStmt) stmtNode()     {}

// TypedefStmt extends the type-alias table.
type TypedefStmt struct {
	Name     string
	Type     schema.Type
	Position Position
}

func (s *TypedefStmt) Pos() Position { return s.Position }
func (s *TypedefStmt) stmtNode()     {}

// ImportStmt includes another script file. Only legal at top level.
type ImportStmt struct {
	Path     string
	Position Position
}

func (s *ImportStmt) Pos() Position { return s.Position }
func (s *ImportStmt) stmtNode()     {}
