package interp

import (
	"strings"
	"testing"
)

func TestRunSetupBlock(t *testing.T) {
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		v <- run_setup (do {
			x <- fresh_symbolic "x";
			return x;
		});
	`))
	term, ok := ip.Session.Values["v"].(*Term)
	if !ok {
		t.Fatalf("v = %s, want a Term", ip.Session.Values["v"].Inspect())
	}
	if term.Src != "x" {
		t.Errorf("term = %q, want x", term.Src)
	}
}

func TestRunSetupSingleStep(t *testing.T) {
	// A bare setup action works without a do block wrapper.
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		v <- run_setup (fresh_symbolic "n");
		thm <- run_proof v admit;
	`))
	thm := ip.Session.Values["thm"].(*Theorem)
	if thm.Goal.Src != "n" {
		t.Errorf("goal = %q, want the setup-created variable", thm.Goal.Src)
	}
}

func TestSetupStepsRequireSetupContext(t *testing.T) {
	ip, _ := testInterp(t)
	err := mustError(t, runSrc(t, ip, `v <- fresh_symbolic "x";`))
	if !strings.Contains(err.Message, "cannot run in TopLevel") {
		t.Errorf("got %q, want a context error", err.Message)
	}
}

func TestSetupBlockRejectsTactics(t *testing.T) {
	ip, _ := testInterp(t)
	err := mustError(t, runSrc(t, ip, `
		v <- run_setup (do {
			trivial;
			return ();
		});
	`))
	if !strings.Contains(err.Message, "cannot run in SpecSetup") {
		t.Errorf("got %q, want a context error", err.Message)
	}
}

func TestRunSetupArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"non-action", `v <- run_setup 1;`, "expected a setup block"},
		{"empty name", `v <- run_setup (fresh_symbolic "");`, "must not be empty"},
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
