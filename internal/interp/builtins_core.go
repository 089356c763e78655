package interp

import (
	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/config"
	"github.com/provelang/provescript/internal/schema"
)

func tv(name string) schema.Type { return schema.TVar{Name: name} }

func topLevel(result schema.Type) schema.Type {
	return schema.TCtx{Ctx: config.TopLevelCtxName, Result: result}
}

func proofScript(result schema.Type) schema.Type {
	return schema.TCtx{Ctx: config.ProofScriptCtxName, Result: result}
}

func specSetup(result schema.Type) schema.Type {
	return schema.TCtx{Ctx: config.SpecSetupCtxName, Result: result}
}

func forall(vars []string, t schema.Type) *schema.Schema {
	s := schema.Forall(vars, t)
	return &s
}

func mono(t schema.Type) *schema.Schema {
	s := schema.Mono(t)
	return &s
}

// intBuiltin builds a curried two-argument integer operation.
func intBuiltin(name string, op func(x, y int64) int64) *Builtin {
	return builtin2(name, nil, func(ip *Interp, a, b Object) Object {
		x, errObj := argInt(name, a)
		if errObj != nil {
			return errObj
		}
		y, errObj := argInt(name, b)
		if errObj != nil {
			return errObj
		}
		return &Integer{Value: op(x, y)}
	})
}

// objectsEqual compares primitives of the same kind. Values carry no implicit
// coercions, so a kind mismatch is an error, not false.
func objectsEqual(name string, a, b Object) Object {
	switch x := a.(type) {
	case *Integer:
		if y, ok := b.(*Integer); ok {
			return nativeBoolToBooleanObject(x.Value == y.Value)
		}
	case *Boolean:
		if y, ok := b.(*Boolean); ok {
			return nativeBoolToBooleanObject(x.Value == y.Value)
		}
	case *String:
		if y, ok := b.(*String); ok {
			return nativeBoolToBooleanObject(x.Value == y.Value)
		}
	case *Unit:
		if _, ok := b.(*Unit); ok {
			return TRUE
		}
	default:
		return newError("%s: cannot compare %s values", name, a.Type())
	}
	return newError("%s: cannot compare %s with %s", name, a.Type(), b.Type())
}

// topLevelAction wraps an effectful operation as a TopLevel-context action.
func topLevelAction(name string, run func(ip *Interp) Object) *Action {
	return &Action{Ctx: CtxTopLevel, Name: name, Run: func(ip *Interp, ctx ContextTag) Object {
		return run(ip)
	}}
}

func init() {
	declare(&Primitive{
		Name: config.ReturnFuncName,
		Sch:  forall([]string{"m", "a"}, schema.Func([]schema.Type{tv("a")}, schema.TCtx{Ctx: "m", Result: tv("a")})),
		Life: Current,
		Doc: []string{
			"Yield a value in any command context without performing an effect.",
		},
		Impl: func(s *Session) Object {
			return builtin1(config.ReturnFuncName, nil, func(ip *Interp, a Object) Object {
				return pureAction(a)
			})
		},
	})

	declare(&Primitive{
		Name: config.PrintFuncName,
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{tv("a")}, topLevel(schema.Unit))),
		Life: Current,
		Doc: []string{
			"Display the given value on standard output.",
			"Strings print without surrounding quotes.",
		},
		Impl: func(s *Session) Object {
			return builtin1(config.PrintFuncName, nil, func(ip *Interp, a Object) Object {
				return topLevelAction(config.PrintFuncName, func(ip *Interp) Object {
					ip.Session.Out.Info("%s", Show(a))
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: config.ShowFuncName,
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{tv("a")}, schema.String)),
		Life: Current,
		Doc: []string{
			"Render a value as a string, the way the top level would display it.",
		},
		Impl: func(s *Session) Object {
			return builtin1(config.ShowFuncName, nil, func(ip *Interp, a Object) Object {
				return &String{Value: a.Inspect()}
			})
		},
	})

	declare(&Primitive{
		Name: "eq",
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{tv("a"), tv("a")}, schema.Bool)),
		Life: Current,
		Doc: []string{
			"Compare two values of the same primitive type for equality.",
		},
		Impl: func(s *Session) Object {
			return builtin2("eq", nil, func(ip *Interp, a, b Object) Object {
				return objectsEqual("eq", a, b)
			})
		},
	})

	declare(&Primitive{
		Name: "add",
		Sch:  mono(schema.Func([]schema.Type{schema.Int, schema.Int}, schema.Int)),
		Life: Current,
		Doc: []string{
			"Add two integers.",
		},
		Impl: func(s *Session) Object {
			return intBuiltin("add", func(x, y int64) int64 { return x + y })
		},
	})

	declare(&Primitive{
		Name: "sub",
		Sch:  mono(schema.Func([]schema.Type{schema.Int, schema.Int}, schema.Int)),
		Life: Current,
		Doc: []string{
			"Subtract the second integer from the first.",
		},
		Impl: func(s *Session) Object {
			return intBuiltin("sub", func(x, y int64) int64 { return x - y })
		},
	})

	declare(&Primitive{
		Name: "mul",
		Sch:  mono(schema.Func([]schema.Type{schema.Int, schema.Int}, schema.Int)),
		Life: Current,
		Doc: []string{
			"Multiply two integers.",
		},
		Impl: func(s *Session) Object {
			return intBuiltin("mul", func(x, y int64) int64 { return x * y })
		},
	})

	declare(&Primitive{
		Name: "str_concat",
		Sch:  mono(schema.Func([]schema.Type{schema.String, schema.String}, schema.String)),
		Life: Current,
		Doc: []string{
			"Concatenate two strings.",
		},
		Impl: func(s *Session) Object {
			return builtin2("str_concat", nil, func(ip *Interp, a, b Object) Object {
				x, errObj := argString("str_concat", a)
				if errObj != nil {
					return errObj
				}
				y, errObj := argString("str_concat", b)
				if errObj != nil {
					return errObj
				}
				return &String{Value: x + y}
			})
		},
	})

	declare(&Primitive{
		Name: "concat",
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{schema.TArray{Elem: tv("a")}, schema.TArray{Elem: tv("a")}}, schema.TArray{Elem: tv("a")})),
		Life: Current,
		Doc: []string{
			"Concatenate two arrays.",
		},
		Impl: func(s *Session) Object {
			return builtin2("concat", nil, func(ip *Interp, a, b Object) Object {
				x, errObj := argArray("concat", a)
				if errObj != nil {
					return errObj
				}
				y, errObj := argArray("concat", b)
				if errObj != nil {
					return errObj
				}
				elems := make([]Object, 0, len(x.Elements)+len(y.Elements))
				elems = append(elems, x.Elements...)
				elems = append(elems, y.Elements...)
				return &Array{Elements: elems}
			})
		},
	})

	declare(&Primitive{
		Name: "length",
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{schema.TArray{Elem: tv("a")}}, schema.Int)),
		Life: Current,
		Doc: []string{
			"Return the number of elements in an array.",
		},
		Impl: func(s *Session) Object {
			return builtin1("length", nil, func(ip *Interp, a Object) Object {
				arr, errObj := argArray("length", a)
				if errObj != nil {
					return errObj
				}
				return &Integer{Value: int64(len(arr.Elements))}
			})
		},
	})

	declare(&Primitive{
		Name: "nth",
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{schema.TArray{Elem: tv("a")}, schema.Int}, tv("a"))),
		Life: Current,
		Doc: []string{
			"Return the nth element of an array, counting from zero.",
			"Fails when the index is out of range.",
		},
		Impl: func(s *Session) Object {
			return builtin2("nth", nil, func(ip *Interp, a, b Object) Object {
				arr, errObj := argArray("nth", a)
				if errObj != nil {
					return errObj
				}
				i, errObj := argInt("nth", b)
				if errObj != nil {
					return errObj
				}
				if i < 0 || i >= int64(len(arr.Elements)) {
					return newError("nth: index %d out of range for array of length %d", i, len(arr.Elements))
				}
				return arr.Elements[i]
			})
		},
	})

	declare(&Primitive{
		Name: "null",
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{schema.TArray{Elem: tv("a")}}, schema.Bool)),
		Life: Current,
		Doc: []string{
			"Report whether an array is empty.",
		},
		Impl: func(s *Session) Object {
			return builtin1("null", nil, func(ip *Interp, a Object) Object {
				arr, errObj := argArray("null", a)
				if errObj != nil {
					return errObj
				}
				return nativeBoolToBooleanObject(len(arr.Elements) == 0)
			})
		},
	})

	declare(&Primitive{
		Name: "for",
		Sch: forall([]string{"m", "a", "b"}, schema.Func(
			[]schema.Type{
				schema.TArray{Elem: tv("a")},
				schema.TFunc{Arg: tv("a"), Ret: schema.TCtx{Ctx: "m", Result: tv("b")}},
			},
			schema.TCtx{Ctx: "m", Result: schema.TArray{Elem: tv("b")}})),
		Life: Current,
		Doc: []string{
			"Apply an action-producing function to each element of an array,",
			"running the actions in order and collecting their results.",
		},
		Impl: func(s *Session) Object {
			return builtin2("for", nil, func(ip *Interp, a, b Object) Object {
				arr, errObj := argArray("for", a)
				if errObj != nil {
					return errObj
				}
				return &Action{Ctx: CtxAny, Name: "for", Run: func(ip *Interp, ctx ContextTag) Object {
					results := make([]Object, 0, len(arr.Elements))
					for _, el := range arr.Elements {
						v := ip.applyFunction(b, el, ast.Position{})
						if isError(v) {
							return v
						}
						act, ok := v.(*Action)
						if !ok {
							return newError("for: body did not produce an action: %s", v.Inspect())
						}
						r := ip.RunAction(act, ctx)
						if isError(r) {
							return r
						}
						results = append(results, r)
					}
					return &Array{Elements: results}
				}}
			})
		},
	})

	declare(&Primitive{
		Name: "type_of",
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{tv("a")}, schema.TypeT)),
		Life: Current,
		Doc: []string{
			"Return the runtime type of a value as a Type.",
		},
		Impl: func(s *Session) Object {
			return builtin1("type_of", nil, func(ip *Interp, a Object) Object {
				return &TypeVal{T: a.RuntimeSchema()}
			})
		},
	})

	declare(&Primitive{
		Name: config.EnvFuncName,
		Sch:  mono(topLevel(schema.Unit)),
		Life: Current,
		Doc: []string{
			"List every binding in the current session with its type.",
		},
		Impl: func(s *Session) Object {
			return topLevelAction(config.EnvFuncName, func(ip *Interp) Object {
				for _, name := range ip.Session.BindingNames() {
					if sch, ok := ip.Session.Schemas[name]; ok {
						ip.Session.Out.Info("%s : %s", name, sch.String())
					} else {
						ip.Session.Out.Info("%s", name)
					}
				}
				return UNIT
			})
		},
	})

	declare(&Primitive{
		Name: config.HelpFuncName,
		Sch:  mono(schema.Func([]schema.Type{schema.String}, topLevel(schema.Unit))),
		Life: Current,
		Doc: []string{
			"Print the documentation for a named binding.",
		},
		Impl: func(s *Session) Object {
			return builtin1(config.HelpFuncName, nil, func(ip *Interp, a Object) Object {
				name, errObj := argString(config.HelpFuncName, a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction(config.HelpFuncName, func(ip *Interp) Object {
					doc, ok := ip.Session.Docs[name]
					if !ok {
						if _, bound := ip.Session.Values[name]; !bound {
							return newError("help: unknown name %q", name)
						}
						doc = "no documentation available"
					}
					ip.Session.Out.Info("%s", doc)
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: "enable_deprecated",
		Sch:  mono(topLevel(schema.Unit)),
		Life: Current,
		Doc: []string{
			"Make deprecated operations available in this session.",
			"Enabling is permanent for the session and never disables anything.",
		},
		Impl: func(s *Session) Object {
			return topLevelAction("enable_deprecated", func(ip *Interp) Object {
				ip.Session.EnableLifecycle(Deprecated)
				return UNIT
			})
		},
	})

	declare(&Primitive{
		Name: "enable_experimental",
		Sch:  mono(topLevel(schema.Unit)),
		Life: Current,
		Doc: []string{
			"Make experimental operations available in this session.",
			"Enabling is permanent for the session and never disables anything.",
		},
		Impl: func(s *Session) Object {
			return topLevelAction("enable_experimental", func(ip *Interp) Object {
				ip.Session.EnableLifecycle(Experimental)
				return UNIT
			})
		},
	})

	declare(&Primitive{
		Name: "set_show_positions",
		Sch:  mono(schema.Func([]schema.Type{schema.Bool}, topLevel(schema.Unit))),
		Life: Current,
		Doc: []string{
			"Prefix printed output with the source position of the statement",
			"producing it.",
		},
		Impl: func(s *Session) Object {
			return builtin1("set_show_positions", nil, func(ip *Interp, a Object) Object {
				on, errObj := argBool("set_show_positions", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("set_show_positions", func(ip *Interp) Object {
					ip.Session.Display.ShowPositions = on
					ip.Session.Out.ShowPositions = on
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: "set_display",
		Sch:  mono(schema.Func([]schema.Type{schema.Bool}, topLevel(schema.Unit))),
		Life: Current,
		Doc: []string{
			"Turn the display of unbound top-level results on or off.",
		},
		Impl: func(s *Session) Object {
			return builtin1("set_display", nil, func(ip *Interp, a Object) Object {
				on, errObj := argBool("set_display", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("set_display", func(ip *Interp) Object {
					ip.Session.Display.Enabled = on
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: config.IncludeFuncName,
		Sch:  mono(schema.Func([]schema.Type{schema.String}, topLevel(schema.Unit))),
		Life: Current,
		Doc: []string{
			"Run another script file in the current session.",
			"Relative paths resolve against the including script's directory,",
			"then the configured import path.",
		},
		Impl: func(s *Session) Object {
			return builtin1(config.IncludeFuncName, nil, func(ip *Interp, a Object) Object {
				path, errObj := argString(config.IncludeFuncName, a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction(config.IncludeFuncName, func(ip *Interp) Object {
					return ip.runInclude(path, ast.Position{})
				})
			})
		},
	})
}
