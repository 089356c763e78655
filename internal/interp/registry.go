package interp

import (
	"fmt"
	"strings"

	"github.com/provelang/provescript/internal/schema"
)

// Lifecycle tags a registered operation's support status. Current operations
// are always available; Deprecated and Experimental ones must be enabled
// explicitly before a script can use them.
type Lifecycle int

const (
	Current Lifecycle = iota
	Deprecated
	Experimental
)

func (l Lifecycle) String() string {
	switch l {
	case Current:
		return "current"
	case Deprecated:
		return "deprecated"
	case Experimental:
		return "experimental"
	}
	return fmt.Sprintf("lifecycle(%d)", int(l))
}

// Primitive is one registered operation: its name, declared schema, lifecycle
// tag, documentation lines, and a value constructor. Impl takes the session so
// registration order never matters; the value is built when a session seeds
// its tables.
type Primitive struct {
	Name string
	Sch  *schema.Schema
	Life Lifecycle
	Doc  []string
	Impl func(s *Session) Object
}

// primitives is the single source of truth for registered operations. The
// three views below are derived from it, so their key sets always agree for a
// given enabled set.
var primitives = map[string]*Primitive{}

// declare registers an operation at init time. Registration defects are
// programming errors, so they panic.
func declare(p *Primitive) {
	if p.Name == "" {
		panic("registry: primitive with empty name")
	}
	if _, dup := primitives[p.Name]; dup {
		panic(fmt.Sprintf("registry: duplicate primitive %q", p.Name))
	}
	if p.Sch == nil {
		panic(fmt.Sprintf("registry: primitive %q has no schema", p.Name))
	}
	if p.Impl == nil {
		panic(fmt.Sprintf("registry: primitive %q has no implementation", p.Name))
	}
	if len(p.Doc) == 0 {
		panic(fmt.Sprintf("registry: primitive %q has no documentation", p.Name))
	}
	primitives[p.Name] = p
}

// ValueView builds the value bindings for every operation whose lifecycle is
// in the enabled set.
func ValueView(s *Session, enabled map[Lifecycle]bool) map[string]Object {
	out := make(map[string]Object)
	for name, p := range primitives {
		if enabled[p.Life] {
			out[name] = p.Impl(s)
		}
	}
	return out
}

// SchemaView builds the type bindings for the enabled set.
func SchemaView(enabled map[Lifecycle]bool) map[string]schema.Schema {
	out := make(map[string]schema.Schema)
	for name, p := range primitives {
		if enabled[p.Life] {
			out[name] = *p.Sch
		}
	}
	return out
}

// DocView builds the documentation table for the enabled set. A deprecated
// operation's doc carries a deprecation notice.
func DocView(enabled map[Lifecycle]bool) map[string]string {
	out := make(map[string]string)
	for name, p := range primitives {
		if !enabled[p.Life] {
			continue
		}
		doc := strings.Join(p.Doc, "\n")
		if p.Life == Deprecated {
			doc = "DEPRECATED\n\n" + doc
		}
		out[name] = doc
	}
	return out
}

// EnableLifecycle makes a lifecycle tag's operations available in this
// session. Enabling is additive and monotone: already-visible operations and
// user rebindings are left alone, and nothing is ever disabled.
func (s *Session) EnableLifecycle(l Lifecycle) {
	if s.Enabled[l] {
		return
	}
	s.Enabled = cloneEnabled(s.Enabled)
	s.Enabled[l] = true
	for name, p := range primitives {
		if p.Life != l {
			continue
		}
		if _, taken := s.Values[name]; taken {
			continue
		}
		s.Values[name] = p.Impl(s)
		s.Schemas[name] = *p.Sch
		s.Docs[name] = DocView(map[Lifecycle]bool{l: true})[name]
	}
}

func cloneEnabled(m map[Lifecycle]bool) map[Lifecycle]bool {
	out := make(map[Lifecycle]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
