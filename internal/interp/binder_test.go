package interp

import (
	"strings"
	"testing"

	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/schema"
)

func TestBindLocalWildcard(t *testing.T) {
	env, errObj := bindLocal(&ast.WildcardPattern{}, nil, "", &Integer{Value: 1}, nil)
	if errObj != nil {
		t.Fatalf("unexpected error: %s", errObj.Inspect())
	}
	if len(env) != 0 {
		t.Errorf("wildcard introduced %d bindings, want 0", len(env))
	}
}

func TestBindLocalVariable(t *testing.T) {
	env, errObj := bindLocal(&ast.VarPattern{Name: "x"}, nil, "", &Integer{Value: 5}, nil)
	if errObj != nil {
		t.Fatalf("unexpected error: %s", errObj.Inspect())
	}
	val, ok := env.Lookup("x")
	if !ok {
		t.Fatal("x not bound")
	}
	if val.Inspect() != "5" {
		t.Errorf("x = %s, want 5", val.Inspect())
	}
}

func TestBindLocalTuple(t *testing.T) {
	pat := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.VarPattern{Name: "a"},
		&ast.WildcardPattern{},
		&ast.VarPattern{Name: "b"},
	}}
	val := &Tuple{Elements: []Object{
		&Integer{Value: 1}, &Integer{Value: 2}, &Integer{Value: 3},
	}}
	env, errObj := bindLocal(pat, nil, "", val, nil)
	if errObj != nil {
		t.Fatalf("unexpected error: %s", errObj.Inspect())
	}
	if len(env) != 2 {
		t.Fatalf("got %d bindings, want 2", len(env))
	}
	if a, _ := env.Lookup("a"); a.Inspect() != "1" {
		t.Errorf("a = %s, want 1", a.Inspect())
	}
	if b, _ := env.Lookup("b"); b.Inspect() != "3" {
		t.Errorf("b = %s, want 3", b.Inspect())
	}
}

func TestBindLocalTupleMismatch(t *testing.T) {
	tests := []struct {
		name    string
		val     Object
		wantMsg string
	}{
		{"non-tuple value", &Integer{Value: 1}, "non-tuple"},
		{"arity mismatch", &Tuple{Elements: []Object{TRUE}}, "has 1"},
	}
	pat := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.VarPattern{Name: "a"},
		&ast.VarPattern{Name: "b"},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errObj := bindLocal(pat, nil, "", tt.val, nil)
			if errObj == nil {
				t.Fatal("expected an error")
			}
			if msg := errObj.(*Error).Message; !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error %q does not mention %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestBindLocalDistributesTupleSchema(t *testing.T) {
	pat := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.VarPattern{Name: "a"},
		&ast.VarPattern{Name: "b"},
	}}
	sch := schema.Mono(schema.TTuple{Elements: []schema.Type{schema.Int, schema.String}})
	val := &Tuple{Elements: []Object{&Integer{Value: 1}, &String{Value: "x"}}}

	env, errObj := bindLocal(pat, &sch, "", val, nil)
	if errObj != nil {
		t.Fatalf("unexpected error: %s", errObj.Inspect())
	}
	for _, b := range env {
		if b.Sch == nil {
			t.Fatalf("binding %s has no distributed schema", b.Name)
		}
	}
	// Most recent binding first: b then a.
	if got := env[0].Sch.Body.String(); got != "String" {
		t.Errorf("b schema = %s, want String", got)
	}
	if got := env[1].Sch.Body.String(); got != "Int" {
		t.Errorf("a schema = %s, want Int", got)
	}
}

func TestBindSessionCommitsSchemaAndDoc(t *testing.T) {
	ip, _ := testInterp(t)
	sch := schema.Mono(schema.Int)
	if errObj := ip.bindSession(&ast.VarPattern{Name: "n"}, &sch, "a number", &Integer{Value: 9}); errObj != nil {
		t.Fatalf("unexpected error: %s", errObj.Inspect())
	}
	if got := sessionInt(t, ip, "n"); got != 9 {
		t.Errorf("n = %d, want 9", got)
	}
	if got := ip.Session.Schemas["n"].Body.String(); got != "Int" {
		t.Errorf("schema = %s, want Int", got)
	}
	if got := ip.Session.Docs["n"]; got != "a number" {
		t.Errorf("doc = %q", got)
	}
}

func TestTuplePatternInScript(t *testing.T) {
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		(a, b) <- return (1, 2);
		let (c, (d, e)) = (3, (4, 5));
	`))
	for name, want := range map[string]int64{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5} {
		if got := sessionInt(t, ip, name); got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}
}
