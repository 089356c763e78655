package interp

import (
	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/schema"
)

// RunAction runs a deferred action in the given effect context. Running an
// action in a context it was not built for is a shape error: the contexts
// are distinct monads and the sequencer must unwrap the correct one.
func (ip *Interp) RunAction(a *Action, ctx ContextTag) Object {
	if a.Ctx != CtxAny && a.Ctx != ctx {
		return newError("%s action %s cannot run in %s", a.Ctx, a.Inspect(), ctx)
	}
	return a.Run(ip, ctx)
}

// evalBlockExpr turns a do-block into an action value. The block's context
// is decided by whoever runs it; each bound statement's action is checked
// against that context when the block executes.
func (ip *Interp) evalBlockExpr(env LocalEnv, node *ast.Block) Object {
	if len(node.Stmts) == 0 {
		return newErrorAt(node.Position, "empty do block")
	}
	stmts := node.Stmts
	captured := env
	return &Action{
		Ctx: CtxAny,
		Run: func(ip *Interp, ctx ContextTag) Object {
			return ip.runBlock(captured, stmts, ctx)
		},
	}
}

// runBlock executes a block's statements in order under ctx, threading one
// LocalEnv. The final statement must be a wildcard-bound expression; it is
// the block's result (tail position), not a run-and-continue step.
func (ip *Interp) runBlock(env LocalEnv, stmts []ast.Stmt, ctx ContextTag) Object {
	for i, st := range stmts {
		last := i == len(stmts)-1
		switch st := st.(type) {
		case *ast.BindStmt:
			val := ip.Eval(env, st.Expr)
			if isError(val) {
				return val
			}
			act, ok := val.(*Action)
			if !ok {
				return newErrorAt(st.Position, "statement value is not an action: %s", val.Inspect())
			}
			if last {
				if !isWildcardBind(st) {
					return newErrorAt(st.Position, "the last statement of a do block must be an expression")
				}
				// Tail position: the action's result is the block's
				// result, with no extra trailing step.
				return ip.RunAction(act, ctx)
			}
			result := ip.RunAction(act, ctx)
			if isError(result) {
				return result
			}
			var errObj Object
			env, errObj = bindLocal(st.Pat, nil, "", result, env)
			if errObj != nil {
				return errObj
			}

		case *ast.LetStmt:
			var errObj Object
			env, errObj = ip.resolveGroup(env, st.Group)
			if errObj != nil {
				return errObj
			}
			if last {
				return newErrorAt(st.Position, "the last statement of a do block must be an expression")
			}

		case *ast.TermDeclStmt:
			// Known limitation: at block nesting this still extends the
			// session-wide term environment, not a block-scoped one.
			if errObj := ip.runTermDecl(env, st); errObj != nil {
				return errObj
			}
			if last {
				return newErrorAt(st.Position, "the last statement of a do block must be an expression")
			}

		case *ast.TypedefStmt:
			env = env.BindAlias(st.Name, st.Type)
			if last {
				return newErrorAt(st.Position, "the last statement of a do block must be an expression")
			}

		case *ast.ImportStmt:
			return newErrorAt(st.Position, "include is only supported at the top level")

		default:
			return newErrorAt(st.Pos(), "unsupported statement %T", st)
		}
	}
	return UNIT
}

func isWildcardBind(st *ast.BindStmt) bool {
	if st.Wild {
		return true
	}
	_, ok := st.Pat.(*ast.WildcardPattern)
	return ok
}

// runTermDecl elaborates a `let {{ ... }}` fragment and merges its
// declarations into the session-wide term environment.
func (ip *Interp) runTermDecl(env LocalEnv, st *ast.TermDeclStmt) Object {
	cfg := ip.Session.Config
	if cfg.ParseTermDecls == nil {
		return newErrorAt(st.Position, "no term elaborator configured")
	}
	scope := MergeLocal(env, ip.Session)
	decls, err := cfg.ParseTermDecls(scope.Term, st.Src, st.Position)
	if err != nil {
		return newErrorAt(st.Position, "term declaration: %s", err)
	}
	for name, t := range decls {
		ip.Session.Term.Extend(name, t)
	}
	return nil
}

// RunProgram drives a top-level statement stream. Execution stops at the
// first failure; bindings committed by prior statements stay installed.
func (ip *Interp) RunProgram(stmts []ast.Stmt) Object {
	if check := ip.Session.Config.Check; check != nil {
		if err := check(stmts); err != nil {
			return newError("type error: %s", err)
		}
	}
	var last Object = UNIT
	for _, st := range stmts {
		last = ip.RunStatement(st)
		if isError(last) {
			return last
		}
	}
	return last
}

// RunStatement executes one statement in the outer orchestration context,
// mutating the session. Each statement reads the session, computes the next
// state and installs it before the next statement begins.
func (ip *Interp) RunStatement(st ast.Stmt) Object {
	ip.Session.Out.SetPosition(st.Pos())
	switch st := st.(type) {
	case *ast.BindStmt:
		return ip.runTopBind(st)

	case *ast.LetStmt:
		ext, errObj := ip.resolveGroup(nil, st.Group)
		if errObj != nil {
			return errObj
		}
		// Promote the group's bindings into the session, preserving the
		// group's declaration order.
		for i := len(ext) - 1; i >= 0; i-- {
			b := ext[i]
			if b.Alias != nil {
				ip.Session.Aliases[b.Name] = b.Alias
				continue
			}
			ip.Session.Commit(b.Name, b.Sch, b.Doc, b.Value)
		}
		return UNIT

	case *ast.TermDeclStmt:
		if errObj := ip.runTermDecl(nil, st); errObj != nil {
			return errObj
		}
		return UNIT

	case *ast.TypedefStmt:
		ip.Session.Aliases[st.Name] = st.Type
		return UNIT

	case *ast.ImportStmt:
		return ip.runInclude(st.Path, st.Position)
	}
	return newErrorAt(st.Pos(), "unsupported statement %T", st)
}

// runTopBind evaluates a top-level bind statement, unwraps an orchestration
// action into its result, conditionally displays the value, and commits the
// binding.
func (ip *Interp) runTopBind(st *ast.BindStmt) Object {
	val := ip.Eval(nil, st.Expr)
	if isError(val) {
		return val
	}
	// Unwrap the statement's action in the orchestration context. An action
	// built for another context is a runtime error here, caught by RunAction.
	if act, ok := val.(*Action); ok {
		val = ip.RunAction(act, CtxTopLevel)
		if isError(val) {
			return val
		}
	}
	ip.displayResult(st, val)
	if errObj := ip.bindSession(st.Pat, nil, "", val); errObj != nil {
		return errObj
	}
	return val
}

// displayResult reports a top-level result when it is not explicitly bound
// to a name, not unit-valued, and display is enabled. Function-valued
// results additionally print their schema.
func (ip *Interp) displayResult(st *ast.BindStmt, val Object) {
	if !ip.Session.Display.Enabled || !isWildcardBind(st) {
		return
	}
	if _, ok := val.(*Unit); ok {
		return
	}
	out := ip.Session.Out
	switch v := val.(type) {
	case *Closure, *Builtin:
		out.Info("%s : %s", Show(val), displaySchema(v))
	default:
		out.Info("%s", Show(val))
	}
}

func displaySchema(val Object) string {
	switch v := val.(type) {
	case *Closure:
		if v.Sch != nil {
			return v.Sch.String()
		}
	case *Builtin:
		if v.Sch != nil {
			return v.Sch.String()
		}
	}
	return schema.Mono(val.RuntimeSchema()).String()
}
