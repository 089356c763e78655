package interp

import (
	"github.com/provelang/provescript/internal/ast"
)

// Interp evaluates expressions and drives statements against one session.
// Execution is single-threaded and effect-sequenced: actions are deferred
// computations run synchronously when control reaches them.
type Interp struct {
	Session *Session

	// CallStack holds application frames for error attribution.
	CallStack []StackFrame

	// Goal is the obligation under transformation while a ProofScript
	// action is running; nil outside proof scripts. A tactic discharges
	// the goal by clearing it and recording how in proofMethod.
	Goal        *Term
	proofMethod string

	// includeDir is the directory of the script currently being included,
	// used to resolve relative include paths. Empty at the REPL.
	includeDir string

	evalDepth int
}

func New(s *Session) *Interp {
	return &Interp{Session: s}
}

// maxEvalDepth bounds Eval nesting to keep runaway user recursion from
// overflowing the Go stack.
const maxEvalDepth = 10000

// Eval evaluates an expression to a value in the given lexical environment.
// Failures come back as *Error objects and unwind through every sequencing
// point to the top-level driver.
func (ip *Interp) Eval(env LocalEnv, node ast.Expr) Object {
	ip.evalDepth++
	if ip.evalDepth > maxEvalDepth {
		ip.evalDepth--
		return newErrorAt(node.Pos(), "maximum recursion depth exceeded")
	}
	obj := ip.evalCore(env, node)
	ip.evalDepth--
	if err, ok := obj.(*Error); ok {
		if err.Position.Line == 0 && node != nil {
			err.Position = node.Pos()
		}
	}
	return obj
}

func (ip *Interp) evalCore(env LocalEnv, node ast.Expr) Object {
	switch node := node.(type) {
	case *ast.BoolLit:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.IntLit:
		return &Integer{Value: node.Value}
	case *ast.StrLit:
		return &String{Value: node.Value}
	case *ast.Ident:
		return ip.evalIdentifier(env, node)
	case *ast.Lambda:
		// Captures the current LocalEnv; application later extends a
		// fresh copy of it (lexical scoping, not dynamic).
		return &Closure{Param: node.Param, Body: node.Body, Env: env, Pos: node.Position}
	case *ast.Apply:
		return ip.evalApply(env, node)
	case *ast.If:
		return ip.evalIf(env, node)
	case *ast.Let:
		ext, errObj := ip.resolveGroup(env, node.Group)
		if errObj != nil {
			return errObj
		}
		return ip.Eval(ext, node.Body)
	case *ast.Ascribe:
		// Transparent: ascriptions exist for the checker upstream.
		return ip.Eval(env, node.Expr)
	case *ast.ArrayLit:
		elems, errObj := ip.evalExprs(env, node.Elems)
		if errObj != nil {
			return errObj
		}
		return &Array{Elements: elems}
	case *ast.TupleLit:
		// () is the unit literal, not an empty tuple value.
		if len(node.Elems) == 0 {
			return UNIT
		}
		elems, errObj := ip.evalExprs(env, node.Elems)
		if errObj != nil {
			return errObj
		}
		return &Tuple{Elements: elems}
	case *ast.RecordLit:
		return ip.evalRecordLit(env, node)
	case *ast.FieldAccess:
		return ip.evalFieldAccess(env, node)
	case *ast.TupleAccess:
		return ip.evalTupleAccess(env, node)
	case *ast.IndexAccess:
		return ip.evalIndexAccess(env, node)
	case *ast.Block:
		return ip.evalBlockExpr(env, node)
	case *ast.TermLit:
		return ip.evalTermLit(env, node)
	case *ast.TypeLit:
		return ip.evalTypeLit(env, node)
	}
	return newError("unsupported expression %T", node)
}

// evalExprs evaluates expressions left-to-right with no short-circuiting.
func (ip *Interp) evalExprs(env LocalEnv, exprs []ast.Expr) ([]Object, Object) {
	out := make([]Object, 0, len(exprs))
	for _, e := range exprs {
		v := ip.Eval(env, e)
		if isError(v) {
			return nil, v
		}
		out = append(out, v)
	}
	return out, nil
}
