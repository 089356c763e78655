package interp

import (
	"github.com/provelang/provescript/internal/ast"
)

// resolveGroup binds a declaration group into env and returns the extended
// environment. The second result is a non-nil *Error object on failure.
//
// Non-recursive groups are resolved in order: each declaration's expression
// is evaluated in the environment extended by its predecessors, then its
// pattern is bound against the result.
//
// Recursive groups are resolved as a fixed point: every declaration's closure
// record is allocated first, all names are bound, and only then is each
// closure's captured environment patched to the final extended environment,
// so each function in the group may reference every other (and itself).
func (ip *Interp) resolveGroup(env LocalEnv, g *ast.DeclGroup) (LocalEnv, Object) {
	if !g.Recursive {
		out := env
		for _, d := range g.Decls {
			val := ip.Eval(out, d.Body)
			if isError(val) {
				return env, val
			}
			var errObj Object
			out, errObj = bindLocal(d.Pat, d.Sch, d.Doc, val, out)
			if errObj != nil {
				return env, errObj
			}
		}
		return out, nil
	}
	return ip.resolveRecGroup(env, g)
}

func (ip *Interp) resolveRecGroup(env LocalEnv, g *ast.DeclGroup) (LocalEnv, Object) {
	closures := make([]*Closure, len(g.Decls))
	ext := env
	for i, d := range g.Decls {
		// Declarations in a recursive group must be function-valued. A
		// non-lambda right-hand side has no value to defer, so it is
		// rejected here instead of diverging later.
		varPat, ok := d.Pat.(*ast.VarPattern)
		if !ok {
			return env, newErrorAt(d.Pos(), "recursive declarations must bind a single name")
		}
		lam, ok := d.Body.(*ast.Lambda)
		if !ok {
			return env, newErrorAt(d.Pos(), "recursive binding %s is not a function", varPat.Name)
		}
		closures[i] = &Closure{
			Name:  varPat.Name,
			Param: lam.Param,
			Body:  lam.Body,
			Sch:   d.Sch,
			Pos:   d.Pos(),
		}
		ext = ext.Bind(varPat.Name, d.Sch, d.Doc, closures[i])
	}
	// Patch the captured environment after all closures are allocated and
	// bound: the fixed point by fill-in.
	for _, c := range closures {
		c.Env = ext
	}
	return ext, nil
}
