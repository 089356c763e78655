package interp

import (
	"fmt"

	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/schema"
)

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

func newErrorAt(pos ast.Position, format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...), Position: pos}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

// IsError reports whether a result is a runtime failure. Exported for
// drivers outside this package.
func IsError(obj Object) bool { return isError(obj) }

// PushCall adds an application frame for error attribution.
func (ip *Interp) PushCall(name string, pos ast.Position) {
	ip.CallStack = append(ip.CallStack, StackFrame{Name: name, Position: pos})
}

// PopCall removes the top frame.
func (ip *Interp) PopCall() {
	if len(ip.CallStack) > 0 {
		ip.CallStack = ip.CallStack[:len(ip.CallStack)-1]
	}
}

func (ip *Interp) errorWithStack(pos ast.Position, format string, a ...interface{}) *Error {
	err := newErrorAt(pos, format, a...)
	if len(ip.CallStack) > 0 {
		err.StackTrace = make([]StackFrame, len(ip.CallStack))
		copy(err.StackTrace, ip.CallStack)
	}
	return err
}

// builtin1 wraps a one-argument operation implementation.
func builtin1(name string, sch *schema.Schema, fn func(ip *Interp, a Object) Object) *Builtin {
	return &Builtin{Name: name, Sch: sch, Fn: fn}
}

// builtin2 curries a two-argument operation.
func builtin2(name string, sch *schema.Schema, fn func(ip *Interp, a, b Object) Object) *Builtin {
	return &Builtin{Name: name, Sch: sch, Fn: func(ip *Interp, a Object) Object {
		return &Builtin{Name: name, Sch: sch, Fn: func(ip *Interp, b Object) Object {
			return fn(ip, a, b)
		}}
	}}
}

// builtin3 curries a three-argument operation.
func builtin3(name string, sch *schema.Schema, fn func(ip *Interp, a, b, c Object) Object) *Builtin {
	return &Builtin{Name: name, Sch: sch, Fn: func(ip *Interp, a Object) Object {
		return &Builtin{Name: name, Sch: sch, Fn: func(ip *Interp, b Object) Object {
			return &Builtin{Name: name, Sch: sch, Fn: func(ip *Interp, c Object) Object {
				return fn(ip, a, b, c)
			}}
		}}
	}}
}

// argString enforces a String argument.
func argString(name string, obj Object) (string, *Error) {
	s, ok := obj.(*String)
	if !ok {
		return "", newError("%s: expected a String, got %s", name, obj.Inspect())
	}
	return s.Value, nil
}

// argTerm enforces a Term argument.
func argTerm(name string, obj Object) (*Term, *Error) {
	t, ok := obj.(*Term)
	if !ok {
		return nil, newError("%s: expected a Term, got %s", name, obj.Inspect())
	}
	return t, nil
}

// argInt enforces an Integer argument.
func argInt(name string, obj Object) (int64, *Error) {
	i, ok := obj.(*Integer)
	if !ok {
		return 0, newError("%s: expected an Int, got %s", name, obj.Inspect())
	}
	return i.Value, nil
}

// argBool enforces a Bool argument.
func argBool(name string, obj Object) (bool, *Error) {
	b, ok := obj.(*Boolean)
	if !ok {
		return false, newError("%s: expected a Bool, got %s", name, obj.Inspect())
	}
	return b.Value, nil
}

// argArray enforces an Array argument.
func argArray(name string, obj Object) (*Array, *Error) {
	a, ok := obj.(*Array)
	if !ok {
		return nil, newError("%s: expected an Array, got %s", name, obj.Inspect())
	}
	return a, nil
}
