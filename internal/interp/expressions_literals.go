package interp

import (
	"github.com/provelang/provescript/internal/ast"
)

// Inline term-language fragments elaborate against the merged local+session
// scope, so a fragment can reference both lexical bindings holding terms and
// session-wide term declarations. Position information passes through for
// diagnostics.

func (ip *Interp) evalTermLit(env LocalEnv, node *ast.TermLit) Object {
	cfg := ip.Session.Config
	if cfg.ParseTerm == nil {
		return newErrorAt(node.Position, "no term elaborator configured")
	}
	scope := MergeLocal(env, ip.Session)
	t, err := cfg.ParseTerm(scope.Term, node.Src, node.Position)
	if err != nil {
		return newErrorAt(node.Position, "term fragment: %s", err)
	}
	return t
}

func (ip *Interp) evalTypeLit(env LocalEnv, node *ast.TypeLit) Object {
	cfg := ip.Session.Config
	if cfg.ParseType == nil {
		return newErrorAt(node.Position, "no type elaborator configured")
	}
	scope := MergeLocal(env, ip.Session)
	t, err := cfg.ParseType(scope.Term, node.Src, node.Position)
	if err != nil {
		return newErrorAt(node.Position, "type fragment: %s", err)
	}
	return &TypeVal{T: t}
}
