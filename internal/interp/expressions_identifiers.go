package interp

import (
	"github.com/provelang/provescript/internal/ast"
)

// evalIdentifier resolves a free name in the merged local+session scope.
// A resolved value gets a trace-name annotation for later error attribution;
// the annotation is not semantic.
func (ip *Interp) evalIdentifier(env LocalEnv, node *ast.Ident) Object {
	scope := MergeLocal(env, ip.Session)
	val, ok := scope.Values[node.Name]
	if !ok {
		return newErrorAt(node.Position, "unknown variable: %s", node.Name)
	}
	annotateTraceName(val, node.Name)
	return val
}

func annotateTraceName(val Object, name string) {
	switch v := val.(type) {
	case *Closure:
		if v.Name == "" {
			v.Name = name
		}
	case *Action:
		if v.Name == "" {
			v.Name = name
		}
	}
}
