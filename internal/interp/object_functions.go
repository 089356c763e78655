package interp

import (
	"fmt"

	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/config"
	"github.com/provelang/provescript/internal/schema"
)

// ContextTag identifies the effect context an action must run in.
type ContextTag string

const (
	// CtxAny marks actions that run in whatever context reaches them
	// (return, do-blocks whose context is decided by the caller).
	CtxAny      ContextTag = ""
	CtxTopLevel ContextTag = ContextTag(config.TopLevelCtxName)
	CtxProof    ContextTag = ContextTag(config.ProofScriptCtxName)
	CtxSetup    ContextTag = ContextTag(config.SpecSetupCtxName)
)

func (c ContextTag) String() string {
	if c == CtxAny {
		return "any context"
	}
	return string(c)
}

// Closure is a user function value: a pattern, the captured lexical
// environment, and the body. Application extends a fresh copy of the captured
// environment with the argument bound via the pattern binder.
type Closure struct {
	Name  string // bound name, used for diagnostics only
	Param ast.Pattern
	Body  ast.Expr
	Env   LocalEnv
	Sch   *schema.Schema // declared schema, if any
	Pos   ast.Position
}

func (c *Closure) Type() ObjectType { return CLOSURE_OBJ }
func (c *Closure) Inspect() string {
	if c.Name != "" {
		return fmt.Sprintf("<<closure %s>>", c.Name)
	}
	return "<<closure>>"
}
func (c *Closure) RuntimeSchema() schema.Type {
	if c.Sch != nil {
		return c.Sch.Body
	}
	return schema.TFunc{Arg: schema.TVar{Name: "a"}, Ret: schema.TVar{Name: "b"}}
}

// BuiltinFn is the implementation of a registered operation's function value.
// Application is curried: multi-argument operations return further Builtins.
type BuiltinFn func(ip *Interp, arg Object) Object

// Builtin wraps a registered operation's implementation as a callable value.
type Builtin struct {
	Name string
	Sch  *schema.Schema
	Fn   BuiltinFn
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return fmt.Sprintf("<<builtin %s>>", b.Name) }
func (b *Builtin) RuntimeSchema() schema.Type {
	if b.Sch != nil {
		return b.Sch.Body
	}
	return schema.TFunc{Arg: schema.TVar{Name: "a"}, Ret: schema.TVar{Name: "b"}}
}

// Action is a deferred computation tagged with the effect context it must run
// in. An action is not a thread or task: the sequencer runs it synchronously
// when control reaches it.
type Action struct {
	Ctx  ContextTag
	Name string // bound name, used for diagnostics only
	Sch  *schema.Schema
	Run  func(ip *Interp, ctx ContextTag) Object
}

func (a *Action) Type() ObjectType { return ACTION_OBJ }
func (a *Action) Inspect() string {
	if a.Name != "" {
		return fmt.Sprintf("<<%s action %s>>", a.Ctx, a.Name)
	}
	return fmt.Sprintf("<<%s action>>", a.Ctx)
}
func (a *Action) RuntimeSchema() schema.Type {
	if a.Sch != nil {
		return a.Sch.Body
	}
	ctx := string(a.Ctx)
	if ctx == "" {
		ctx = "m"
	}
	return schema.TCtx{Ctx: ctx, Result: schema.TVar{Name: "a"}}
}

// pureAction wraps an already-computed value as an action runnable in any
// context.
func pureAction(val Object) *Action {
	return &Action{Ctx: CtxAny, Run: func(ip *Interp, ctx ContextTag) Object {
		return val
	}}
}
