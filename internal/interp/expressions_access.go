package interp

import (
	"github.com/provelang/provescript/internal/ast"
)

// Indexing and field lookup are partial: out-of-range or missing-field access
// fails with a descriptive runtime error rather than returning a sentinel.

func (ip *Interp) evalRecordLit(env LocalEnv, node *ast.RecordLit) Object {
	rec := &Record{Fields: make([]RecordEntry, 0, len(node.Fields))}
	for _, f := range node.Fields {
		if rec.Get(f.Name) != nil {
			return newErrorAt(node.Position, "duplicate record field %q", f.Name)
		}
		v := ip.Eval(env, f.Value)
		if isError(v) {
			return v
		}
		rec.Fields = append(rec.Fields, RecordEntry{Key: f.Name, Value: v})
	}
	return rec
}

func (ip *Interp) evalFieldAccess(env LocalEnv, node *ast.FieldAccess) Object {
	target := ip.Eval(env, node.Target)
	if isError(target) {
		return target
	}
	rec, ok := target.(*Record)
	if !ok {
		return newErrorAt(node.Position, "field access on non-record value %s", target.Inspect())
	}
	v := rec.Get(node.Name)
	if v == nil {
		return newErrorAt(node.Position, "record %s has no field %q", target.Inspect(), node.Name)
	}
	return v
}

func (ip *Interp) evalTupleAccess(env LocalEnv, node *ast.TupleAccess) Object {
	target := ip.Eval(env, node.Target)
	if isError(target) {
		return target
	}
	tuple, ok := target.(*Tuple)
	if !ok {
		return newErrorAt(node.Position, "tuple projection on non-tuple value %s", target.Inspect())
	}
	if node.Index < 0 || node.Index >= len(tuple.Elements) {
		return newErrorAt(node.Position, "tuple %s has no component %d", target.Inspect(), node.Index)
	}
	return tuple.Elements[node.Index]
}

func (ip *Interp) evalIndexAccess(env LocalEnv, node *ast.IndexAccess) Object {
	target := ip.Eval(env, node.Target)
	if isError(target) {
		return target
	}
	idx := ip.Eval(env, node.Index)
	if isError(idx) {
		return idx
	}
	i, ok := idx.(*Integer)
	if !ok {
		return newErrorAt(node.Position, "array index is not an Int: %s", idx.Inspect())
	}
	arr, ok := target.(*Array)
	if !ok {
		return newErrorAt(node.Position, "indexing a non-array value %s", target.Inspect())
	}
	if i.Value < 0 || i.Value >= int64(len(arr.Elements)) {
		return newErrorAt(node.Position, "index %d out of range for array of length %d", i.Value, len(arr.Elements))
	}
	return arr.Elements[i.Value]
}
