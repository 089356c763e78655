package interp

import (
	"fmt"
	"time"

	"github.com/provelang/provescript/internal/schema"
)

// Foreign values wrap results of external operations. This core treats their
// payloads as inert: it names them, passes them around and displays them, but
// never looks inside.

// Term is an elaborated term-language fragment.
type Term struct {
	Src  string   // surface text of the fragment
	Refs []string // names from the term environment the fragment mentions
}

func (t *Term) Type() ObjectType           { return TERM_OBJ }
func (t *Term) Inspect() string            { return "{{ " + t.Src + " }}" }
func (t *Term) RuntimeSchema() schema.Type { return schema.Term }

// TypeVal is an elaborated term-language type fragment.
type TypeVal struct {
	T schema.Type
}

func (t *TypeVal) Type() ObjectType           { return TYPE_OBJ }
func (t *TypeVal) Inspect() string            { return "{| " + t.T.String() + " |}" }
func (t *TypeVal) RuntimeSchema() schema.Type { return schema.TypeT }

// Theorem is a discharged proof obligation.
type Theorem struct {
	Goal *Term
	Via  string // tactic/prover that discharged it
}

func (t *Theorem) Type() ObjectType { return THEOREM_OBJ }
func (t *Theorem) Inspect() string {
	return fmt.Sprintf("Theorem %s (via %s)", t.Goal.Inspect(), t.Via)
}
func (t *Theorem) RuntimeSchema() schema.Type { return schema.Theorem }

// ProofResult is the outcome of running a proof script against a goal.
type ProofResult struct {
	Valid   bool
	Method  string
	Checked int64 // number of random cases, for testing-based tactics
}

func (p *ProofResult) Type() ObjectType { return PROOF_RESULT_OBJ }
func (p *ProofResult) Inspect() string {
	if p.Valid {
		return fmt.Sprintf("Valid (via %s)", p.Method)
	}
	return fmt.Sprintf("Invalid (via %s)", p.Method)
}
func (p *ProofResult) RuntimeSchema() schema.Type { return schema.TCon{Name: "ProofResult"} }

// ModuleHandle identifies a loaded verification target.
type ModuleHandle struct {
	Path   string
	Name   string
	Digest string // hex content digest
	Size   int64
}

func (m *ModuleHandle) Type() ObjectType           { return MODULE_OBJ }
func (m *ModuleHandle) Inspect() string            { return fmt.Sprintf("Module %s", m.Name) }
func (m *ModuleHandle) RuntimeSchema() schema.Type { return schema.Module }

// Artifact is one produced proof/verification artifact, accumulated in the
// session for the final summary.
type Artifact struct {
	ID      string // uuid
	Kind    string
	Path    string
	Digest  string // hex content digest
	Created time.Time
}

func (a *Artifact) Type() ObjectType { return ARTIFACT_OBJ }
func (a *Artifact) Inspect() string {
	return fmt.Sprintf("Artifact %s (%s)", a.ID, a.Kind)
}
func (a *Artifact) RuntimeSchema() schema.Type { return schema.TCon{Name: "Artifact"} }
