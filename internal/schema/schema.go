package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface for all types in the surface language's schema system.
// Schemas are produced by the external checker (or declared in source) and are
// carried as data: the interpreter attaches them to bindings and primitives for
// display and diagnostics but never re-verifies them.
type Type interface {
	String() string
}

// TVar represents a type variable (e.g. 'a', 'b').
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }

// TCon represents a type constant (Bool, Int, String, Term, Theorem, ...).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }

// TFunc represents a single-argument function type. Multi-argument functions
// are curried, matching application by juxtaposition in the surface syntax.
type TFunc struct {
	Arg Type
	Ret Type
}

func (t TFunc) String() string {
	arg := t.Arg.String()
	if _, ok := t.Arg.(TFunc); ok {
		arg = "(" + arg + ")"
	}
	return arg + " -> " + t.Ret.String()
}

// TTuple represents a tuple type (a, b, c).
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TArray represents a homogeneous array type [a].
type TArray struct {
	Elem Type
}

func (t TArray) String() string { return "[" + t.Elem.String() + "]" }

// TRecord represents a record type {f : a, g : b}. Keys are unique.
type TRecord struct {
	Fields map[string]Type
}

func (t TRecord) String() string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " : " + t.Fields[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// TCtx represents a monadic action type: a computation producing Result when
// run in the named effect context, e.g. "TopLevel Theorem".
type TCtx struct {
	Ctx    string
	Result Type
}

func (t TCtx) String() string {
	res := t.Result.String()
	switch t.Result.(type) {
	case TFunc, TCtx:
		res = "(" + res + ")"
	}
	return t.Ctx + " " + res
}

// Schema is a possibly-polymorphic type: forall Vars . Body.
type Schema struct {
	Vars []string
	Body Type
}

func (s Schema) String() string {
	if len(s.Vars) == 0 {
		return s.Body.String()
	}
	return fmt.Sprintf("{%s} %s", strings.Join(s.Vars, " "), s.Body.String())
}

// Mono wraps a monomorphic type as a schema.
func Mono(t Type) Schema { return Schema{Body: t} }

// Forall builds a polymorphic schema.
func Forall(vars []string, t Type) Schema { return Schema{Vars: vars, Body: t} }

// TupleElems unwraps a tuple type, returning its element types.
// Used by the pattern binder to distribute a declared schema over a
// tuple pattern element-wise.
func TupleElems(t Type) ([]Type, bool) {
	tt, ok := t.(TTuple)
	if !ok {
		return nil, false
	}
	return tt.Elements, true
}

// InContext reports whether t is an action type in the named effect context.
func InContext(t Type, ctx string) bool {
	tc, ok := t.(TCtx)
	return ok && tc.Ctx == ctx
}

// IsFunc reports whether t is a function type. Displaying a function-valued
// result additionally prints its schema.
func IsFunc(t Type) bool {
	_, ok := t.(TFunc)
	return ok
}

// Convenience constructors for the common constants.
var (
	Unit    = TCon{Name: "()"}
	Bool    = TCon{Name: "Bool"}
	Int     = TCon{Name: "Int"}
	String  = TCon{Name: "String"}
	Term    = TCon{Name: "Term"}
	TypeT   = TCon{Name: "Type"}
	Theorem = TCon{Name: "Theorem"}
	Module  = TCon{Name: "Module"}
)

// Func builds a curried function type from a parameter list.
func Func(params []Type, ret Type) Type {
	t := ret
	for i := len(params) - 1; i >= 0; i-- {
		t = TFunc{Arg: params[i], Ret: t}
	}
	return t
}
