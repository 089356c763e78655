package interp

import (
	"github.com/provelang/provescript/internal/ast"
)

func (ip *Interp) evalApply(env LocalEnv, node *ast.Apply) Object {
	fn := ip.Eval(env, node.Fn)
	if isError(fn) {
		return fn
	}
	arg := ip.Eval(env, node.Arg)
	if isError(arg) {
		return arg
	}
	return ip.applyFunction(fn, arg, node.Position)
}

// applyFunction applies a callable value to one argument. Applying any other
// shape is a fatal type error.
func (ip *Interp) applyFunction(fn Object, arg Object, pos ast.Position) Object {
	switch fn := fn.(type) {
	case *Closure:
		// Extend a fresh copy of the captured environment with the
		// argument bound via the pattern binder.
		ext, errObj := bindLocal(fn.Param, nil, "", arg, fn.Env)
		if errObj != nil {
			return errObj
		}
		ip.PushCall(fn.Name, pos)
		result := ip.Eval(ext, fn.Body)
		if isError(result) {
			err := result.(*Error)
			if len(err.StackTrace) == 0 && len(ip.CallStack) > 0 {
				err.StackTrace = make([]StackFrame, len(ip.CallStack))
				copy(err.StackTrace, ip.CallStack)
			}
		}
		ip.PopCall()
		return result
	case *Builtin:
		ip.PushCall(fn.Name, pos)
		result := fn.Fn(ip, arg)
		ip.PopCall()
		return result
	}
	return ip.errorWithStack(pos, "attempt to apply a non-function value: %s", fn.Inspect())
}

func (ip *Interp) evalIf(env LocalEnv, node *ast.If) Object {
	cond := ip.Eval(env, node.Cond)
	if isError(cond) {
		return cond
	}
	b, ok := cond.(*Boolean)
	if !ok {
		return newErrorAt(node.Cond.Pos(), "condition is not a Bool: %s", cond.Inspect())
	}
	// Exactly one branch is evaluated.
	if b.Value {
		return ip.Eval(env, node.Then)
	}
	return ip.Eval(env, node.Else)
}
