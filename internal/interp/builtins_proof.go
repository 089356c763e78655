package interp

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/provelang/provescript/internal/schema"
)

// proofAction wraps a tactic as a ProofScript-context action.
func proofAction(name string, run func(ip *Interp) Object) *Action {
	return &Action{Ctx: CtxProof, Name: name, Run: func(ip *Interp, ctx ContextTag) Object {
		return run(ip)
	}}
}

// discharge clears the current goal and records the method that closed it.
func (ip *Interp) discharge(method string) {
	ip.Goal = nil
	ip.proofMethod = method
}

func init() {
	declare(&Primitive{
		Name: "run_proof",
		Sch: mono(schema.Func(
			[]schema.Type{schema.Term, proofScript(schema.Unit)},
			topLevel(schema.Theorem))),
		Life: Current,
		Doc: []string{
			"Set up the given term as a proof obligation and run a proof",
			"script against it. Succeeds with a Theorem when the script",
			"discharges the goal; fails otherwise, leaving the session intact.",
		},
		Impl: func(s *Session) Object {
			return builtin2("run_proof", nil, func(ip *Interp, a, b Object) Object {
				goal, errObj := argTerm("run_proof", a)
				if errObj != nil {
					return errObj
				}
				script, ok := b.(*Action)
				if !ok {
					return newError("run_proof: expected a proof script, got %s", b.Inspect())
				}
				return topLevelAction("run_proof", func(ip *Interp) Object {
					savedGoal, savedMethod := ip.Goal, ip.proofMethod
					defer func() { ip.Goal, ip.proofMethod = savedGoal, savedMethod }()

					ip.Goal = goal
					ip.proofMethod = ""
					result := ip.RunAction(script, CtxProof)
					if isError(result) {
						return result
					}
					if ip.Goal != nil {
						return newError("run_proof: goal not discharged: %s", ip.Goal.Inspect())
					}
					return &Theorem{Goal: goal, Via: ip.proofMethod}
				})
			})
		},
	})

	declare(&Primitive{
		Name: "trivial",
		Sch:  mono(proofScript(schema.Unit)),
		Life: Current,
		Doc: []string{
			"Discharge the current goal when it is the literal truth.",
			"Fails on any other goal.",
		},
		Impl: func(s *Session) Object {
			return proofAction("trivial", func(ip *Interp) Object {
				if ip.Goal == nil {
					return newError("trivial: no goal")
				}
				if strings.TrimSpace(ip.Goal.Src) != "True" {
					return newError("trivial: goal is not trivially true: %s", ip.Goal.Inspect())
				}
				ip.discharge("trivial")
				return UNIT
			})
		},
	})

	declare(&Primitive{
		Name: "admit",
		Sch:  mono(proofScript(schema.Unit)),
		Life: Current,
		Doc: []string{
			"Discharge the current goal without proof.",
			"The resulting theorem is unchecked; use with care.",
		},
		Impl: func(s *Session) Object {
			return proofAction("admit", func(ip *Interp) Object {
				if ip.Goal == nil {
					return newError("admit: no goal")
				}
				ip.Session.Out.Diag("admitting goal %s", ip.Goal.Inspect())
				ip.discharge("admit")
				return UNIT
			})
		},
	})

	declare(&Primitive{
		Name: "external_solver",
		Sch:  mono(proofScript(schema.Unit)),
		Life: Current,
		Doc: []string{
			"Hand the current goal to the solver binary configured in",
			"solver_path. Exit status zero discharges the goal; anything",
			"else fails the proof with the solver's output.",
		},
		Impl: func(s *Session) Object {
			return proofAction("external_solver", func(ip *Interp) Object {
				if ip.Goal == nil {
					return newError("external_solver: no goal")
				}
				solver := ip.Session.Config.SolverPath
				if solver == "" {
					return newError("external_solver: no solver_path configured")
				}
				out, err := exec.Command(solver, ip.Goal.Src).CombinedOutput()
				if err != nil {
					msg := strings.TrimSpace(string(out))
					if msg == "" {
						msg = err.Error()
					}
					return newError("external_solver: %s: %s", solver, msg)
				}
				ip.discharge("solver " + filepath.Base(solver))
				return UNIT
			})
		},
	})

	declare(&Primitive{
		Name: "print_goal",
		Sch:  mono(proofScript(schema.Unit)),
		Life: Current,
		Doc: []string{
			"Display the current proof obligation.",
		},
		Impl: func(s *Session) Object {
			return proofAction("print_goal", func(ip *Interp) Object {
				if ip.Goal == nil {
					return newError("print_goal: no goal")
				}
				ip.Session.Out.Info("Goal:\n%s", ip.Goal.Src)
				return UNIT
			})
		},
	})

	declare(&Primitive{
		Name: "term_size",
		Sch:  mono(schema.Func([]schema.Type{schema.Term}, schema.Int)),
		Life: Current,
		Doc: []string{
			"Return the size of a term, measured in lexical atoms.",
		},
		Impl: func(s *Session) Object {
			return builtin1("term_size", nil, func(ip *Interp, a Object) Object {
				t, errObj := argTerm("term_size", a)
				if errObj != nil {
					return errObj
				}
				return &Integer{Value: int64(len(strings.Fields(t.Src)))}
			})
		},
	})

	declare(&Primitive{
		Name: "print_term",
		Sch:  mono(schema.Func([]schema.Type{schema.Term}, topLevel(schema.Unit))),
		Life: Current,
		Doc: []string{
			"Display a term on standard output.",
		},
		Impl: func(s *Session) Object {
			return builtin1("print_term", nil, func(ip *Interp, a Object) Object {
				t, errObj := argTerm("print_term", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("print_term", func(ip *Interp) Object {
					ip.Session.Out.Info("%s", t.Src)
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: "quickcheck_goal",
		Sch:  mono(schema.Func([]schema.Type{schema.Int}, proofScript(schema.TCon{Name: "ProofResult"}))),
		Life: Experimental,
		Doc: []string{
			"Check the current goal against the given number of random inputs",
			"and discharge it when none falsifies it. This is evidence, not",
			"proof; the resulting theorem records that.",
		},
		Impl: func(s *Session) Object {
			return builtin1("quickcheck_goal", nil, func(ip *Interp, a Object) Object {
				n, errObj := argInt("quickcheck_goal", a)
				if errObj != nil {
					return errObj
				}
				if n <= 0 {
					return newError("quickcheck_goal: trial count must be positive, got %d", n)
				}
				return proofAction("quickcheck_goal", func(ip *Interp) Object {
					if ip.Goal == nil {
						return newError("quickcheck_goal: no goal")
					}
					// Without a real evaluator for the term language the
					// only sound cheap check is the trivially-true goal.
					if strings.TrimSpace(ip.Goal.Src) != "True" {
						return newError("quickcheck_goal: cannot evaluate goal %s", ip.Goal.Inspect())
					}
					ip.discharge("quickcheck")
					return &ProofResult{Valid: true, Method: "quickcheck", Checked: n}
				})
			})
		},
	})

	declare(&Primitive{
		Name: "assume_valid",
		Sch:  mono(schema.Func([]schema.Type{schema.Term}, topLevel(schema.Theorem))),
		Life: Deprecated,
		Doc: []string{
			"Turn a term into a theorem without running any proof script.",
			"Use run_proof with admit instead.",
		},
		Impl: func(s *Session) Object {
			return builtin1("assume_valid", nil, func(ip *Interp, a Object) Object {
				t, errObj := argTerm("assume_valid", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("assume_valid", func(ip *Interp) Object {
					return &Theorem{Goal: t, Via: "assume_valid"}
				})
			})
		},
	})

	declare(&Primitive{
		Name: "legacy_show_term",
		Sch:  mono(schema.Func([]schema.Type{schema.Term}, schema.String)),
		Life: Deprecated,
		Doc: []string{
			"Render a term as its raw source text. Use show instead.",
		},
		Impl: func(s *Session) Object {
			return builtin1("legacy_show_term", nil, func(ip *Interp, a Object) Object {
				t, errObj := argTerm("legacy_show_term", a)
				if errObj != nil {
					return errObj
				}
				return &String{Value: t.Src}
			})
		},
	})
}
