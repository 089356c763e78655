package interp

import (
	"strings"
	"testing"
)

func TestArrayBuiltins(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"concat", `x <- return (concat [1, 2] [3]);`, "[1, 2, 3]"},
		{"concat empty", `x <- return (concat [] []);`, "[]"},
		{"length", `x <- return (length [1, 2, 3]);`, "3"},
		{"length empty", `x <- return (length []);`, "0"},
		{"nth", `x <- return (nth [10, 20, 30] 1);`, "20"},
		{"null empty", `x <- return (null []);`, "true"},
		{"null non-empty", `x <- return (null [1]);`, "false"},
		{"str_concat", `x <- return (str_concat "ab" "cd");`, `"abcd"`},
		{"show int", `x <- return (show 42);`, `"42"`},
		{"show string quotes", `x <- return (show "a");`, `"\"a\""`},
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

func TestArithmeticBuiltins(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"add", `x <- return (add 2 3);`, "5"},
		{"sub", `x <- return (sub 2 3);`, "-1"},
		{"mul", `x <- return (mul 6 7);`, "42"},
		{"nested", `x <- return (mul (add 1 2) (sub 5 1));`, "12"},
		{"eq ints true", `x <- return (eq 3 3);`, "true"},
		{"eq ints false", `x <- return (eq 3 4);`, "false"},
		{"eq strings", `x <- return (eq "a" "a");`, "true"},
		{"eq bools", `x <- return (eq true false);`, "false"},
		{"eq units", `x <- return (eq () ());`, "true"},
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

func TestBuiltinArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"nth out of range", `x <- return (nth [1] 5);`, "out of range"},
		{"nth non-array", `x <- return (nth 1 0);`, "expected an Array"},
		{"length non-array", `x <- return (length "abc");`, "expected an Array"},
		{"str_concat non-string", `x <- return (str_concat "a" 1);`, "expected a String"},
		{"eq mixed kinds", `x <- return (eq 1 "1");`, "cannot compare"},
		{"eq non-primitive", `x <- return (eq [1] [1]);`, "cannot compare"},
		{"add non-int", `x <- return (add 1 "2");`, "expected an Int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, _ := testInterp(t)
			err := mustError(t, runSrc(t, ip, tt.src))
			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestForRunsActionsInOrder(t *testing.T) {
	ip, out := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		r <- for ["a", "b", "c"] (\s -> do {
			print s;
			return s;
		});
	`))
	if got := out.String(); got != "a\nb\nc\n" {
		t.Errorf("output = %q, want a, b, c on separate lines", got)
	}
	if got := ip.Session.Values["r"].Inspect(); got != `["a", "b", "c"]` {
		t.Errorf("r = %s", got)
	}
}

func TestForStopsOnFirstFailure(t *testing.T) {
	ip, out := testInterp(t)
	mustError(t, runSrc(t, ip, `
		r <- for [true, false, true] (\b -> do {
			x <- if b then return 1 else nope;
			print x;
			return x;
		});
	`))
	if got := out.String(); got != "1\n" {
		t.Errorf("output = %q, want just the first element's print", got)
	}
}

func TestPrintRawStrings(t *testing.T) {
	ip, out := testInterp(t)
	mustNotError(t, runSrc(t, ip, `print "no quotes";`))
	if got := out.String(); got != "no quotes\n" {
		t.Errorf("print output = %q", got)
	}
}

func TestPrintNonString(t *testing.T) {
	ip, out := testInterp(t)
	mustNotError(t, runSrc(t, ip, `print [1, (2, "x")];`))
	if got := out.String(); got != "[1, (2, \"x\")]\n" {
		t.Errorf("print output = %q", got)
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int", `x <- return (type_of 1);`, "{| Int |}"},
		{"array", `x <- return (type_of [true]);`, "{| [Bool] |}"},
		{"term", `x <- return (type_of {{ True }});`, "{| Term |}"},
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

func TestReturnIsContextNeutral(t *testing.T) {
	// return's action runs at top level and inside proof scripts alike.
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		a <- return 1;
		thm <- run_proof {{ True }} (do {
			b <- return 2;
			trivial;
		});
	`))
	if got := sessionInt(t, ip, "a"); got != 1 {
		t.Errorf("a = %d", got)
	}
}
