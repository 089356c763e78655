package interp

import (
	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/schema"
)

// The pattern binder destructures a binding pattern against a value,
// producing name/value pairs. One algorithm, two entry points: bindLocal
// folds the pairs into a LocalEnv, (*Interp).bindSession folds them into the
// session (top-level statements need ambient configuration access, e.g. for
// term-language elaboration of later statements).
//
// Schemas are attached for display and diagnostics; they are not re-verified
// here — verification happened upstream.

// bindLocal binds pat against val, extending env. Declared tuple schemas are
// distributed element-wise. Mismatches are fatal errors.
func bindLocal(pat ast.Pattern, sch *schema.Schema, doc string, val Object, env LocalEnv) (LocalEnv, Object) {
	out := env
	errObj := walkPattern(pat, sch, val, func(name string, s *schema.Schema, v Object) {
		out = out.Bind(name, s, doc, v)
	})
	if errObj != nil {
		return env, errObj
	}
	return out, nil
}

// bindSession binds pat against val into the session's top-level tables.
func (ip *Interp) bindSession(pat ast.Pattern, sch *schema.Schema, doc string, val Object) Object {
	return walkPattern(pat, sch, val, func(name string, s *schema.Schema, v Object) {
		ip.Session.Commit(name, s, doc, v)
	})
}

// walkPattern runs the shared destructuring algorithm, invoking bind for each
// introduced name in pattern order. Returns an *Error object on shape
// mismatch, nil otherwise.
func walkPattern(pat ast.Pattern, sch *schema.Schema, val Object, bind func(name string, sch *schema.Schema, val Object)) Object {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		// Value discarded.
		return nil

	case *ast.VarPattern:
		s := sch
		if s == nil && p.Type != nil {
			mono := schema.Mono(p.Type)
			s = &mono
		}
		bind(p.Name, s, val)
		return nil

	case *ast.TuplePattern:
		tuple, ok := val.(*Tuple)
		if !ok {
			return newErrorAt(p.Pos(), "cannot bind tuple pattern against non-tuple value %s", val.Inspect())
		}
		if len(tuple.Elements) != len(p.Elems) {
			return newErrorAt(p.Pos(), "tuple pattern has %d elements but value %s has %d",
				len(p.Elems), val.Inspect(), len(tuple.Elements))
		}
		elemSchemas := distributeTupleSchema(sch, len(p.Elems))
		for i, elem := range p.Elems {
			if errObj := walkPattern(elem, elemSchemas[i], tuple.Elements[i], bind); errObj != nil {
				return errObj
			}
		}
		return nil
	}
	return newError("unsupported pattern %T", pat)
}

// distributeTupleSchema splits a declared tuple-of-types schema across n
// pattern elements; any other shape yields no per-element schemas.
func distributeTupleSchema(sch *schema.Schema, n int) []*schema.Schema {
	out := make([]*schema.Schema, n)
	if sch == nil || len(sch.Vars) > 0 {
		return out
	}
	elems, ok := schema.TupleElems(sch.Body)
	if !ok || len(elems) != n {
		return out
	}
	for i, t := range elems {
		mono := schema.Mono(t)
		out[i] = &mono
	}
	return out
}
