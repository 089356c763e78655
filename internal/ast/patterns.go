package ast

import "github.com/provelang/provescript/internal/schema"

// WildcardPattern discards the matched value.
type WildcardPattern struct {
	Position Position
}

func (p *WildcardPattern) Pos() Position { return p.Position }
func (p *WildcardPattern) patternNode()  {}

// VarPattern binds a single name, optionally with a declared type.
type VarPattern struct {
	Name     string
	Type     schema.Type // optional
	Position Position
}

func (p *VarPattern) Pos() Position { return p.Position }
func (p *VarPattern) patternNode()  {}

// TuplePattern destructures a tuple. Matching is arity-exact: a mismatch is
// a fatal runtime error, not a recoverable match failure.
type TuplePattern struct {
	Elems    []Pattern
	Position Position
}

func (p *TuplePattern) Pos() Position { return p.Position }
func (p *TuplePattern) patternNode()  {}
