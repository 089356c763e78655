package ast

import "github.com/provelang/provescript/internal/schema"

// BoolLit is a boolean literal.
type BoolLit struct {
	Value    bool
	Position Position
}

func (e *BoolLit) Pos() Position { return e.Position }
func (e *BoolLit) exprNode()     {}

// IntLit is an integer literal.
type IntLit struct {
	Value    int64
	Position Position
}

func (e *IntLit) Pos() Position { return e.Position }
func (e *IntLit) exprNode()     {}

// StrLit is a string literal.
type StrLit struct {
	Value    string
	Position Position
}

func (e *StrLit) Pos() Position { return e.Position }
func (e *StrLit) exprNode()     {}

// Ident is a variable reference.
type Ident struct {
	Name     string
	Position Position
}

func (e *Ident) Pos() Position { return e.Position }
func (e *Ident) exprNode()     {}

// Lambda is an anonymous function \pat -> body.
type Lambda struct {
	Param    Pattern
	Body     Expr
	Position Position
}

func (e *Lambda) Pos() Position { return e.Position }
func (e *Lambda) exprNode()     {}

// Apply is function application by juxtaposition.
type Apply struct {
	Fn       Expr
	Arg      Expr
	Position Position
}

func (e *Apply) Pos() Position { return e.Position }
func (e *Apply) exprNode()     {}

// If is a conditional; exactly one branch is evaluated.
type If struct {
	Cond     Expr
	Then     Expr
	Else     Expr
	Position Position
}

func (e *If) Pos() Position { return e.Position }
func (e *If) exprNode()     {}

// Let introduces a declaration group scoped to Body.
type Let struct {
	Group    *DeclGroup
	Body     Expr
	Position Position
}

func (e *Let) Pos() Position { return e.Position }
func (e *Let) exprNode()     {}

// ArrayLit is an array literal [a, b, c].
type ArrayLit struct {
	Elems    []Expr
	Position Position
}

func (e *ArrayLit) Pos() Position { return e.Position }
func (e *ArrayLit) exprNode()     {}

// TupleLit is a tuple literal (a, b).
type TupleLit struct {
	Elems    []Expr
	Position Position
}

func (e *TupleLit) Pos() Position { return e.Position }
func (e *TupleLit) exprNode()     {}

// RecordField is one field of a record literal.
type RecordField struct {
	Name  string
	Value Expr
}

// RecordLit is a record literal {f = a, g = b}. Keys are unique.
type RecordLit struct {
	Fields   []RecordField
	Position Position
}

func (e *RecordLit) Pos() Position { return e.Position }
func (e *RecordLit) exprNode()     {}

// FieldAccess is record field lookup e.f.
type FieldAccess struct {
	Target   Expr
	Name     string
	Position Position
}

func (e *FieldAccess) Pos() Position { return e.Position }
func (e *FieldAccess) exprNode()     {}

// TupleAccess is positional tuple lookup e.0, e.1, ...
type TupleAccess struct {
	Target   Expr
	Index    int
	Position Position
}

func (e *TupleAccess) Pos() Position { return e.Position }
func (e *TupleAccess) exprNode()     {}

// IndexAccess is array indexing target ! idx.
type IndexAccess struct {
	Target   Expr
	Index    Expr
	Position Position
}

func (e *IndexAccess) Pos() Position { return e.Position }
func (e *IndexAccess) exprNode()     {}

// Ascribe is a type ascription (e : t). Transparent at runtime; ascriptions
// exist for the checker upstream.
type Ascribe struct {
	Expr     Expr
	Type     schema.Type
	Position Position
}

func (e *Ascribe) Pos() Position { return e.Position }
func (e *Ascribe) exprNode()     {}

// Block is a do-block: do { stmts }. Evaluates to the action value of its
// trailing statement.
type Block struct {
	Stmts    []Stmt
	Position Position
}

func (e *Block) Pos() Position { return e.Position }
func (e *Block) exprNode()     {}

// TermLit is an inline term-language fragment {{ ... }}, elaborated against
// the merged local+session scope when evaluated.
type TermLit struct {
	Src      string
	Position Position
}

func (e *TermLit) Pos() Position { return e.Position }
func (e *TermLit) exprNode()     {}

// TypeLit is an inline term-language type fragment {| ... |}.
type TypeLit struct {
	Src      string
	Position Position
}

func (e *TypeLit) Pos() Position { return e.Position }
func (e *TypeLit) exprNode()     {}
