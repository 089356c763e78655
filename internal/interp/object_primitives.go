package interp

import (
	"fmt"
	"strconv"

	"github.com/provelang/provescript/internal/schema"
)

// Unit
type Unit struct{}

func (u *Unit) Type() ObjectType           { return UNIT_OBJ }
func (u *Unit) Inspect() string            { return "()" }
func (u *Unit) RuntimeSchema() schema.Type { return schema.Unit }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType           { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string            { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) RuntimeSchema() schema.Type { return schema.Bool }

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType           { return INTEGER_OBJ }
func (i *Integer) Inspect() string            { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) RuntimeSchema() schema.Type { return schema.Int }

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType           { return STRING_OBJ }
func (s *String) Inspect() string            { return strconv.Quote(s.Value) }
func (s *String) RuntimeSchema() schema.Type { return schema.String }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	UNIT  = &Unit{}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}
