package interp

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/schema"
)

// Config is the session's read-only configuration. The front end, the
// term-language elaborator and the external checker are collaborators of this
// core; they are reached only through the hooks below.
type Config struct {
	ProverAddr string   `yaml:"prover_addr"` // gRPC endpoint of the external prover
	SolverPath string   `yaml:"solver_path"` // path to a local solver binary
	ImportPath []string `yaml:"import_path"` // search path for include
	ArtifactDB string   `yaml:"artifact_db"` // default sqlite artifact store
	Quiet      bool     `yaml:"quiet"`       // suppress top-level result display
	Positions  bool     `yaml:"positions"`   // prefix output with source positions

	// Parse turns a script file's source into statements. Used by include
	// and the CLI driver.
	Parse func(file, src string) ([]ast.Stmt, error) `yaml:"-"`

	// Check runs the external checker over a statement stream before
	// execution. A non-nil error is reported as a type error and
	// short-circuits before any evaluation.
	Check func(stmts []ast.Stmt) error `yaml:"-"`

	// ParseTerm elaborates an inline term fragment against a term
	// environment merged from local and session scope.
	ParseTerm func(env *TermEnv, src string, pos ast.Position) (*Term, error) `yaml:"-"`

	// ParseType elaborates an inline type fragment.
	ParseType func(env *TermEnv, src string, pos ast.Position) (schema.Type, error) `yaml:"-"`

	// ParseTermDecls elaborates a `let {{ ... }}` declaration fragment into
	// named terms.
	ParseTermDecls func(env *TermEnv, src string, pos ast.Position) (map[string]*Term, error) `yaml:"-"`
}

// DefaultConfig returns a config with inert term-language hooks: fragments
// elaborate to opaque terms wrapping their source text. Embedders replace the
// hooks with a real elaborator.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ParseTerm = func(env *TermEnv, src string, pos ast.Position) (*Term, error) {
		src = strings.TrimSpace(src)
		if src == "" {
			return nil, fmt.Errorf("empty term fragment")
		}
		return &Term{Src: src, Refs: referencedNames(env, src)}, nil
	}
	cfg.ParseType = func(env *TermEnv, src string, pos ast.Position) (schema.Type, error) {
		src = strings.TrimSpace(src)
		if src == "" {
			return nil, fmt.Errorf("empty type fragment")
		}
		return schema.TCon{Name: src}, nil
	}
	cfg.ParseTermDecls = func(env *TermEnv, src string, pos ast.Position) (map[string]*Term, error) {
		decls := make(map[string]*Term)
		for _, chunk := range strings.Split(src, ";") {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}
			name, rhs, ok := strings.Cut(chunk, "=")
			if !ok {
				return nil, fmt.Errorf("malformed term declaration %q (expected name = body)", chunk)
			}
			name = strings.TrimSpace(name)
			rhs = strings.TrimSpace(rhs)
			if name == "" || rhs == "" {
				return nil, fmt.Errorf("malformed term declaration %q", chunk)
			}
			decls[name] = &Term{Src: rhs, Refs: referencedNames(env, rhs)}
		}
		return decls, nil
	}
	return cfg
}

// LoadConfig reads a YAML config file and fills in the default hooks.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	return cfg, nil
}

// referencedNames lists the term-environment names a fragment mentions,
// by whole-word occurrence.
func referencedNames(env *TermEnv, src string) []string {
	var refs []string
	for _, name := range env.Names() {
		if containsWord(src, name) {
			refs = append(refs, name)
		}
	}
	return refs
}

func containsWord(src, word string) bool {
	idx := 0
	for {
		i := strings.Index(src[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		leftOK := start == 0 || !isWordByte(src[start-1])
		rightOK := end == len(src) || !isWordByte(src[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
