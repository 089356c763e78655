package config

const SourceFileExt = ".psc"

// SourceFileExtensions are all recognized script file extensions
var SourceFileExtensions = []string{".psc", ".prove"}

// REPL prompt strings
const (
	Prompt     = "prove> "
	ContPrompt = "  ...> "
)

// Environment variable names consulted by the CLI (loaded via .env as well)
const (
	EnvConfigPath = "PROVESCRIPT_CONFIG"
	EnvProverAddr = "PROVESCRIPT_PROVER_ADDR"
	EnvSolverPath = "PROVESCRIPT_SOLVER_PATH"
)

// Effect context names as they appear in schemas and error messages
const (
	TopLevelCtxName    = "TopLevel"
	ProofScriptCtxName = "ProofScript"
	SpecSetupCtxName   = "SpecSetup"
)

// Built-in operation names referenced outside the registry
const (
	PrintFuncName   = "print"
	ShowFuncName    = "show"
	ReturnFuncName  = "return"
	IncludeFuncName = "include"
	EnvFuncName     = "environment"
	HelpFuncName    = "help"
)
