package interp

import (
	"os"
	"path/filepath"

	"github.com/provelang/provescript/internal/ast"
)

// runInclude reads and runs another script in the current session. Relative
// paths resolve against the including script's directory first, then the
// configured import path. The include directory is restored on every exit
// path, so nested and failing includes leave resolution state intact.
func (ip *Interp) runInclude(path string, pos ast.Position) Object {
	resolved, errObj := ip.resolveIncludePath(path, pos)
	if errObj != nil {
		return errObj
	}
	src, err := os.ReadFile(resolved)
	if err != nil {
		return newErrorAt(pos, "include: %s", err)
	}
	parse := ip.Session.Config.Parse
	if parse == nil {
		return newErrorAt(pos, "include: no parser configured")
	}
	stmts, err := parse(resolved, string(src))
	if err != nil {
		return newErrorAt(pos, "include %s: %s", path, err)
	}

	saved := ip.includeDir
	ip.includeDir = filepath.Dir(resolved)
	defer func() { ip.includeDir = saved }()

	if result := ip.RunProgram(stmts); isError(result) {
		return result
	}
	return UNIT
}

func (ip *Interp) resolveIncludePath(path string, pos ast.Position) (string, Object) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	candidates := []string{}
	if ip.includeDir != "" {
		candidates = append(candidates, filepath.Join(ip.includeDir, path))
	}
	candidates = append(candidates, path)
	for _, dir := range ip.Session.Config.ImportPath {
		candidates = append(candidates, filepath.Join(dir, path))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", newErrorAt(pos, "include: cannot find %q", path)
}

// RunFile is the entry point used by the CLI: it runs a script as if it were
// included at the top level, anchoring relative includes at the script's own
// directory.
func (ip *Interp) RunFile(path string) Object {
	return ip.runInclude(path, ast.Position{File: path})
}
