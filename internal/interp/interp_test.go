package interp

import (
	"bytes"
	"testing"

	"github.com/provelang/provescript/internal/parser"
)

// testInterp builds an interpreter over a fresh session whose output is
// captured in the returned buffer.
func testInterp(t *testing.T) (*Interp, *bytes.Buffer) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Parse = parser.Parse
	var buf bytes.Buffer
	s := NewSession(cfg, &buf)
	return New(s), &buf
}

// runSrc parses and runs a script against the interpreter.
func runSrc(t *testing.T, ip *Interp, src string) Object {
	t.Helper()
	stmts, err := parser.Parse("test.psc", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return ip.RunProgram(stmts)
}

func mustNotError(t *testing.T, obj Object) {
	t.Helper()
	if isError(obj) {
		t.Fatalf("unexpected error: %s", obj.Inspect())
	}
}

func mustError(t *testing.T, obj Object) *Error {
	t.Helper()
	err, ok := obj.(*Error)
	if !ok {
		t.Fatalf("expected an error, got %s", obj.Inspect())
	}
	return err
}

func sessionInt(t *testing.T, ip *Interp, name string) int64 {
	t.Helper()
	val, ok := ip.Session.Values[name]
	if !ok {
		t.Fatalf("session has no binding %q", name)
	}
	i, ok := val.(*Integer)
	if !ok {
		t.Fatalf("binding %q is %s, not an Int", name, val.Inspect())
	}
	return i.Value
}

func TestEvalLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"integer", `x <- return 42;`, "42"},
		{"negative via binding", `x <- return 0;`, "0"},
		{"string", `x <- return "hi";`, `"hi"`},
		{"bool", `x <- return true;`, "true"},
		{"unit", `x <- return ();`, "()"},
		{"array", `x <- return [1, 2, 3];`, "[1, 2, 3]"},
		{"tuple", `x <- return (1, "a");`, `(1, "a")`},
		{"record", `x <- return {b = 2, a = 1};`, "{b = 2, a = 1}"},
		{"nested", `x <- return [(1, 2), (3, 4)];`, "[(1, 2), (3, 4)]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, _ := testInterp(t)
			mustNotError(t, runSrc(t, ip, tt.src))
			got := ip.Session.Values["x"]
			if got.Inspect() != tt.want {
				t.Errorf("got %s, want %s", got.Inspect(), tt.want)
			}
		})
	}
}

func TestEvalAccessors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"field access", `x <- return {a = 1, b = 2}.b;`, "2"},
		{"tuple access", `x <- return (10, 20).0;`, "10"},
		{"index access", `x <- return ([5, 6, 7] ! 2);`, "7"},
		{"chained", `x <- return {p = (1, {q = 9})}.p.1.q;`, "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, _ := testInterp(t)
			mustNotError(t, runSrc(t, ip, tt.src))
			if got := ip.Session.Values["x"].Inspect(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvalAccessorErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"missing field", `x <- return {a = 1}.b;`, "no field"},
		{"field on non-record", `x <- return (1).a;`, "non-record"},
		{"tuple index out of range", `x <- return (1, 2).5;`, "no component"},
		{"index out of range", `x <- return ([1] ! 3);`, "out of range"},
		{"index by string", `x <- return ([1] ! "a");`, "not an Int"},
		{"unknown variable", `x <- return nope;`, "unknown variable: nope"},
		{"apply non-function", `x <- return (1 2);`, "non-function"},
		{"condition not bool", `x <- return (if 1 then 2 else 3);`, "not a Bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, _ := testInterp(t)
			err := mustError(t, runSrc(t, ip, tt.src))
			if !bytes.Contains([]byte(err.Message), []byte(tt.wantMsg)) {
				t.Errorf("error %q does not mention %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestClosuresAndApplication(t *testing.T) {
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		let pick = \b x y -> if b then x else y;
		r1 <- return (pick true 1 2);
		r2 <- return (pick false 1 2);
	`))
	if got := sessionInt(t, ip, "r1"); got != 1 {
		t.Errorf("r1 = %d, want 1", got)
	}
	if got := sessionInt(t, ip, "r2"); got != 2 {
		t.Errorf("r2 = %d, want 2", got)
	}
}

func TestLexicalCapture(t *testing.T) {
	// The closure sees the environment at definition time, not at call time.
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		r <- return (let k = 1 in let f = \x -> k in let k = 2 in f 0);
	`))
	if got := sessionInt(t, ip, "r"); got != 1 {
		t.Errorf("captured %d, want 1", got)
	}
}

func TestConditionalEvaluatesOneBranch(t *testing.T) {
	// The untaken branch would fail if evaluated.
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		r <- return (if true then 1 else ([1] ! 99));
	`))
	if got := sessionInt(t, ip, "r"); got != 1 {
		t.Errorf("r = %d, want 1", got)
	}
}

func TestAscriptionIsTransparent(t *testing.T) {
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `x <- return (1 : Int);`))
	if got := sessionInt(t, ip, "x"); got != 1 {
		t.Errorf("x = %d, want 1", got)
	}
}

func TestRecursionDepthGuard(t *testing.T) {
	ip, _ := testInterp(t)
	err := mustError(t, runSrc(t, ip, `
		let rec loop = \x -> loop x;
		r <- return (loop 0);
	`))
	if !bytes.Contains([]byte(err.Message), []byte("recursion depth")) {
		t.Errorf("got %q, want a recursion depth error", err.Message)
	}
}

func TestErrorCarriesPositionAndStack(t *testing.T) {
	ip, _ := testInterp(t)
	err := mustError(t, runSrc(t, ip, `
		let f = \x -> (x 1);
		r <- return (f 2);
	`))
	if err.Position.Line == 0 {
		t.Error("error has no position")
	}
	if len(err.StackTrace) == 0 {
		t.Error("error has no stack trace")
	}
}

func TestFailureKeepsPriorBindings(t *testing.T) {
	ip, _ := testInterp(t)
	result := runSrc(t, ip, `
		a <- return 1;
		b <- return nope;
		c <- return 3;
	`)
	mustError(t, result)
	if got := sessionInt(t, ip, "a"); got != 1 {
		t.Errorf("a = %d, want 1", got)
	}
	if _, ok := ip.Session.Values["c"]; ok {
		t.Error("c was bound after the failing statement")
	}
}
