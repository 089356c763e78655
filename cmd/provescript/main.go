package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/provelang/provescript/internal/config"
	"github.com/provelang/provescript/internal/interp"
	"github.com/provelang/provescript/internal/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("provescript", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("c", "", "path to a YAML config file")
	quiet := fs.Bool("q", false, "suppress top-level result display")
	positions := fs.Bool("p", false, "prefix output with source positions")
	oneLiner := fs.String("e", "", "run the given statements and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// A .env next to the invocation can provide the endpoint variables.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "provescript:", err)
		return 1
	}
	if *quiet {
		cfg.Quiet = true
	}
	if *positions {
		cfg.Positions = true
	}
	cfg.Parse = parser.Parse

	session := interp.NewSession(cfg, stdout)
	ip := interp.New(session)

	if *oneLiner != "" {
		return reportResult(stderr, runSource(ip, "<command line>", *oneLiner))
	}

	if fs.NArg() > 0 {
		file := fs.Arg(0)
		if !isSourceFile(file) {
			fmt.Fprintf(stderr, "provescript: %s is not a script file (expected %s)\n",
				file, strings.Join(config.SourceFileExtensions, " or "))
			return 2
		}
		return reportResult(stderr, ip.RunFile(file))
	}

	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		repl(ip, stdin, stdout, stderr)
		return 0
	}

	src, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintln(stderr, "provescript:", err)
		return 1
	}
	return reportResult(stderr, runSource(ip, "<stdin>", string(src)))
}

func loadConfig(path string) (*interp.Config, error) {
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg := interp.DefaultConfig()
	if path != "" {
		loaded, err := interp.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if addr := os.Getenv(config.EnvProverAddr); addr != "" {
		cfg.ProverAddr = addr
	}
	if solver := os.Getenv(config.EnvSolverPath); solver != "" {
		cfg.SolverPath = solver
	}
	return cfg, nil
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func runSource(ip *interp.Interp, file, src string) interp.Object {
	stmts, err := parser.Parse(file, src)
	if err != nil {
		return &interp.Error{Message: "parse error: " + err.Error()}
	}
	return ip.RunProgram(stmts)
}

func reportResult(stderr io.Writer, result interp.Object) int {
	if err, ok := result.(*interp.Error); ok {
		fmt.Fprintln(stderr, err.Inspect())
		return 1
	}
	return 0
}

// repl reads statements interactively. A line that does not yet parse as a
// complete statement keeps accumulating under the continuation prompt; errors
// are reported and the session keeps its bindings.
func repl(ip *interp.Interp, stdin io.Reader, stdout, stderr io.Writer) {
	scanner := bufio.NewScanner(stdin)
	var pending strings.Builder

	fmt.Fprint(stdout, config.Prompt)
	for scanner.Scan() {
		line := scanner.Text()
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			fmt.Fprint(stdout, config.Prompt)
			continue
		}
		pending.WriteString(line)
		pending.WriteString("\n")

		src := pending.String()
		stmts, err := parser.Parse("<repl>", src)
		if err != nil {
			if isIncomplete(err) {
				fmt.Fprint(stdout, config.ContPrompt)
				continue
			}
			fmt.Fprintln(stderr, "parse error:", err)
			pending.Reset()
			fmt.Fprint(stdout, config.Prompt)
			continue
		}
		pending.Reset()

		if result := ip.RunProgram(stmts); interp.IsError(result) {
			fmt.Fprintln(stderr, result.Inspect())
		}
		fmt.Fprint(stdout, config.Prompt)
	}
	fmt.Fprintln(stdout)
}

// isIncomplete reports whether a parse error means the input just stopped
// early, so the REPL should keep reading.
func isIncomplete(err error) bool {
	return strings.Contains(err.Error(), "unexpected end of input")
}
