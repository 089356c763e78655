package interp

import (
	"github.com/provelang/provescript/internal/schema"
)

// LocalBinding is one entry of a lexical environment: either a value binding
// (Value non-nil) or a local type-alias introduction (Alias non-nil).
type LocalBinding struct {
	Name  string
	Sch   *schema.Schema // declared schema, attached for display only
	Doc   string
	Value Object
	Alias schema.Type
}

// LocalEnv is the lexical environment used while evaluating an expression or
// block: an ordered sequence of bindings, most recent first. Lookup is
// first-match by name, giving standard shadowing. A LocalEnv is never mutated
// in place; Bind returns an extended copy, so closures capturing an
// environment see a stable snapshot.
type LocalEnv []LocalBinding

// Bind prepends a value binding.
func (e LocalEnv) Bind(name string, sch *schema.Schema, doc string, val Object) LocalEnv {
	out := make(LocalEnv, 0, len(e)+1)
	out = append(out, LocalBinding{Name: name, Sch: sch, Doc: doc, Value: val})
	return append(out, e...)
}

// BindAlias prepends a local type-alias introduction.
func (e LocalEnv) BindAlias(name string, t schema.Type) LocalEnv {
	out := make(LocalEnv, 0, len(e)+1)
	out = append(out, LocalBinding{Name: name, Alias: t})
	return append(out, e...)
}

// Lookup finds the most recent value binding for name.
func (e LocalEnv) Lookup(name string) (Object, bool) {
	for _, b := range e {
		if b.Name == name && b.Value != nil {
			return b.Value, true
		}
	}
	return nil, false
}

// Scope is a merged view of a LocalEnv promoted over a session snapshot:
// "what the session would look like if these local bindings were top level".
// It is transient; building one never mutates the session.
type Scope struct {
	Values  map[string]Object
	Schemas map[string]schema.Schema
	Aliases map[string]schema.Type
	Term    *TermEnv
}

// MergeLocal folds local bindings right-to-left into copies of the session's
// tables, so that earlier bindings (closer to the original call site) take
// precedence on name collision, consistent with LocalEnv's shadowing order.
// Local bindings holding Term values are also exposed to the embedded
// term-language environment so inline fragments can reference them.
//
// The merge is recomputed on each free-variable lookup and each inline parse;
// simplicity over speed.
func MergeLocal(env LocalEnv, s *Session) *Scope {
	sc := &Scope{
		Values:  make(map[string]Object, len(s.Values)+len(env)),
		Schemas: make(map[string]schema.Schema, len(s.Schemas)),
		Aliases: make(map[string]schema.Type, len(s.Aliases)),
		Term:    s.Term.Clone(),
	}
	for k, v := range s.Values {
		sc.Values[k] = v
	}
	for k, v := range s.Schemas {
		sc.Schemas[k] = v
	}
	for k, v := range s.Aliases {
		sc.Aliases[k] = v
	}
	for i := len(env) - 1; i >= 0; i-- {
		b := env[i]
		if b.Alias != nil {
			sc.Aliases[b.Name] = b.Alias
			continue
		}
		sc.Values[b.Name] = b.Value
		if b.Sch != nil {
			sc.Schemas[b.Name] = *b.Sch
		} else {
			delete(sc.Schemas, b.Name)
		}
		if t, ok := b.Value.(*Term); ok {
			sc.Term.Extend(b.Name, t)
		}
	}
	return sc
}
