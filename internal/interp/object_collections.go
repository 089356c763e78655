package interp

import (
	"sort"
	"strings"

	"github.com/provelang/provescript/internal/schema"
)

// Array is an ordered sequence, homogeneous by convention but not enforced.
type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) RuntimeSchema() schema.Type {
	if len(a.Elements) == 0 {
		return schema.TArray{Elem: schema.TVar{Name: "a"}}
	}
	return schema.TArray{Elem: a.Elements[0].RuntimeSchema()}
}

// Tuple
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) RuntimeSchema() schema.Type {
	elems := make([]schema.Type, len(t.Elements))
	for i, el := range t.Elements {
		elems[i] = el.RuntimeSchema()
	}
	return schema.TTuple{Elements: elems}
}

// RecordEntry is one field of a record value.
type RecordEntry struct {
	Key   string
	Value Object
}

// Record holds uniquely-keyed fields in insertion order.
type Record struct {
	Fields []RecordEntry
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Key + " = " + f.Value.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (r *Record) RuntimeSchema() schema.Type {
	fields := make(map[string]schema.Type, len(r.Fields))
	for _, f := range r.Fields {
		fields[f.Key] = f.Value.RuntimeSchema()
	}
	return schema.TRecord{Fields: fields}
}

// Get returns the named field's value, or nil if absent.
func (r *Record) Get(name string) Object {
	for _, f := range r.Fields {
		if f.Key == name {
			return f.Value
		}
	}
	return nil
}

// NewRecord builds a record from a map, sorting keys for a stable field order.
func NewRecord(fields map[string]Object) *Record {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rec := &Record{Fields: make([]RecordEntry, 0, len(keys))}
	for _, k := range keys {
		rec.Fields = append(rec.Fields, RecordEntry{Key: k, Value: fields[k]})
	}
	return rec
}
