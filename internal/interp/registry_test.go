package interp

import (
	"strings"
	"testing"
)

func TestRegistryViewsAgreeOnKeys(t *testing.T) {
	for _, enabled := range []map[Lifecycle]bool{
		{Current: true},
		{Current: true, Deprecated: true},
		{Current: true, Deprecated: true, Experimental: true},
	} {
		ip, _ := testInterp(t)
		values := ValueView(ip.Session, enabled)
		schemas := SchemaView(enabled)
		docs := DocView(enabled)
		if len(values) != len(schemas) || len(values) != len(docs) {
			t.Fatalf("view sizes disagree: %d values, %d schemas, %d docs",
				len(values), len(schemas), len(docs))
		}
		for name := range values {
			if _, ok := schemas[name]; !ok {
				t.Errorf("%s has a value but no schema", name)
			}
			if _, ok := docs[name]; !ok {
				t.Errorf("%s has a value but no doc", name)
			}
		}
	}
}

func TestLifecycleGating(t *testing.T) {
	ip, _ := testInterp(t)

	// Deprecated and experimental names are unresolvable in a fresh session.
	for _, name := range []string{"assume_valid", "quickcheck_goal", "prover_connect"} {
		err := mustError(t, runSrc(t, ip, name+";"))
		if !strings.Contains(err.Message, "unknown variable") {
			t.Errorf("%s: got %q, want unknown variable", name, err.Message)
		}
	}

	mustNotError(t, runSrc(t, ip, `enable_deprecated;`))
	if _, ok := ip.Session.Values["assume_valid"]; !ok {
		t.Error("assume_valid not visible after enable_deprecated")
	}
	if _, ok := ip.Session.Values["quickcheck_goal"]; ok {
		t.Error("experimental leaked in with enable_deprecated")
	}

	mustNotError(t, runSrc(t, ip, `enable_experimental;`))
	if _, ok := ip.Session.Values["quickcheck_goal"]; !ok {
		t.Error("quickcheck_goal not visible after enable_experimental")
	}
}

func TestEnablingIsAdditiveAndIdempotent(t *testing.T) {
	ip, _ := testInterp(t)
	mustNotError(t, runSrc(t, ip, `enable_deprecated;`))
	before := len(ip.Session.Values)

	// A user rebinding of a current name survives re-enabling.
	mustNotError(t, runSrc(t, ip, `let assume_valid = 1;`))
	mustNotError(t, runSrc(t, ip, `enable_deprecated;`))
	if got := sessionInt(t, ip, "assume_valid"); got != 1 {
		t.Errorf("rebinding clobbered by re-enable: %d", got)
	}
	if len(ip.Session.Values) != before {
		t.Errorf("re-enabling changed binding count: %d -> %d", before, len(ip.Session.Values))
	}
}

func TestDeprecatedDocCarriesNotice(t *testing.T) {
	docs := DocView(map[Lifecycle]bool{Deprecated: true})
	doc, ok := docs["assume_valid"]
	if !ok {
		t.Fatal("assume_valid missing from deprecated doc view")
	}
	if !strings.HasPrefix(doc, "DEPRECATED") {
		t.Errorf("doc %q lacks the deprecation notice", doc)
	}
}

func TestHelp(t *testing.T) {
	ip, out := testInterp(t)
	mustNotError(t, runSrc(t, ip, `help "print";`))
	if !strings.Contains(out.String(), "standard output") {
		t.Errorf("help output %q does not describe print", out.String())
	}

	err := mustError(t, runSrc(t, ip, `help "no_such_thing";`))
	if !strings.Contains(err.Message, "unknown name") {
		t.Errorf("got %q, want unknown name", err.Message)
	}
}

func TestEnvironmentListing(t *testing.T) {
	ip, out := testInterp(t)
	mustNotError(t, runSrc(t, ip, `
		x <- return 1;
		environment;
	`))
	s := out.String()
	if !strings.Contains(s, "x : Int") {
		t.Errorf("environment output %q lacks x : Int", s)
	}
	if !strings.Contains(s, "print :") {
		t.Errorf("environment output %q lacks the print primitive", s)
	}
}
