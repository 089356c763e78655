package interp

import (
	"strings"

	"github.com/provelang/provescript/internal/schema"
)

// setupAction wraps a specification-setup step as a SpecSetup-context action.
func setupAction(name string, run func(ip *Interp) Object) *Action {
	return &Action{Ctx: CtxSetup, Name: name, Run: func(ip *Interp, ctx ContextTag) Object {
		return run(ip)
	}}
}

func init() {
	declare(&Primitive{
		Name: "run_setup",
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{specSetup(tv("a"))}, topLevel(tv("a")))),
		Life: Current,
		Doc: []string{
			"Run a specification-setup block and return its result.",
		},
		Impl: func(s *Session) Object {
			return builtin1("run_setup", nil, func(ip *Interp, a Object) Object {
				block, ok := a.(*Action)
				if !ok {
					return newError("run_setup: expected a setup block, got %s", a.Inspect())
				}
				return topLevelAction("run_setup", func(ip *Interp) Object {
					return ip.RunAction(block, CtxSetup)
				})
			})
		},
	})

	declare(&Primitive{
		Name: "fresh_symbolic",
		Sch:  mono(schema.Func([]schema.Type{schema.String}, specSetup(schema.Term))),
		Life: Current,
		Doc: []string{
			"Introduce a fresh symbolic variable with the given name inside a",
			"setup block. The variable is an opaque term usable in fragments",
			"and proof obligations.",
		},
		Impl: func(s *Session) Object {
			return builtin1("fresh_symbolic", nil, func(ip *Interp, a Object) Object {
				name, errObj := argString("fresh_symbolic", a)
				if errObj != nil {
					return errObj
				}
				if strings.TrimSpace(name) == "" {
					return newError("fresh_symbolic: variable name must not be empty")
				}
				return setupAction("fresh_symbolic", func(ip *Interp) Object {
					return &Term{Src: name}
				})
			})
		},
	})
}
