package interp

import (
	"io"
	"sort"

	"github.com/provelang/provescript/internal/schema"
)

// TermEnv is the embedded term-language evaluation environment used when
// elaborating inline fragments. The interpreter only names and threads it;
// elaboration itself happens behind Config hooks.
type TermEnv struct {
	Defs map[string]*Term
}

func NewTermEnv() *TermEnv {
	return &TermEnv{Defs: make(map[string]*Term)}
}

func (te *TermEnv) Clone() *TermEnv {
	out := NewTermEnv()
	for k, v := range te.Defs {
		out.Defs[k] = v
	}
	return out
}

func (te *TermEnv) Extend(name string, t *Term) {
	te.Defs[name] = t
}

// Names returns the defined names in sorted order.
func (te *TermEnv) Names() []string {
	names := make([]string, 0, len(te.Defs))
	for k := range te.Defs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DisplayOpts controls how top-level results are reported.
type DisplayOpts struct {
	Enabled       bool
	ShowPositions bool
}

// Session is the single mutable top-level record for a run. It is owned
// exclusively by the statement sequencer: each statement reads the current
// session, computes the next state, and installs it before the next statement
// begins. It is created once per top-level invocation and never shared across
// goroutines, so it carries no locking.
type Session struct {
	Values  map[string]Object        // global value bindings
	Schemas map[string]schema.Schema // declared/inferred types, for diagnostics
	Aliases map[string]schema.Type   // type-alias table
	Docs    map[string]string        // per-name documentation

	Enabled map[Lifecycle]bool // currently enabled lifecycle tags; grows, never shrinks

	Term      *TermEnv    // embedded term-language environment
	Artifacts []*Artifact // accumulated verification artifacts

	Display DisplayOpts
	Out     *Printer
	Config  *Config
}

// NewSession builds a session seeded with every Current-tagged operation from
// the registry.
func NewSession(cfg *Config, out io.Writer) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Session{
		Values:  make(map[string]Object),
		Schemas: make(map[string]schema.Schema),
		Aliases: make(map[string]schema.Type),
		Docs:    make(map[string]string),
		Enabled: map[Lifecycle]bool{Current: true},
		Term:    NewTermEnv(),
		Display: DisplayOpts{Enabled: !cfg.Quiet, ShowPositions: cfg.Positions},
		Config:  cfg,
	}
	s.Out = &Printer{Out: out, ShowPositions: cfg.Positions}
	s.seedRegistry()
	return s
}

// seedRegistry installs the effective registry views into the session's
// binding, schema and doc tables.
func (s *Session) seedRegistry() {
	for name, val := range ValueView(s, s.Enabled) {
		s.Values[name] = val
	}
	for name, sch := range SchemaView(s.Enabled) {
		s.Schemas[name] = sch
	}
	for name, doc := range DocView(s.Enabled) {
		s.Docs[name] = doc
	}
}

// Commit installs a top-level binding with its schema and doc.
func (s *Session) Commit(name string, sch *schema.Schema, doc string, val Object) {
	s.Values[name] = val
	if sch != nil {
		s.Schemas[name] = *sch
	} else {
		s.Schemas[name] = schema.Mono(val.RuntimeSchema())
	}
	if doc != "" {
		s.Docs[name] = doc
	}
	// Term-valued bindings are also visible to inline fragments.
	if t, ok := val.(*Term); ok {
		s.Term.Extend(name, t)
	}
}

// BindingNames returns the session's bound names in sorted order.
func (s *Session) BindingNames() []string {
	names := make([]string, 0, len(s.Values))
	for k := range s.Values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// RecordArtifact appends a produced artifact to the session log.
func (s *Session) RecordArtifact(a *Artifact) {
	s.Artifacts = append(s.Artifacts, a)
}
