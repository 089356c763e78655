package token

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	STRING TokenType = "STRING"

	// Inline foreign-language fragments, captured verbatim by the lexer.
	TERM_FRAG TokenType = "TERM_FRAG" // {{ ... }}
	TYPE_FRAG TokenType = "TYPE_FRAG" // {| ... |}

	ASSIGN     TokenType = "="
	ARROW      TokenType = "->"
	LARROW     TokenType = "<-"
	BACKSLASH  TokenType = "\\"
	BANG       TokenType = "!"
	COLON      TokenType = ":"
	SEMICOLON  TokenType = ";"
	COMMA      TokenType = ","
	DOT        TokenType = "."
	UNDERSCORE TokenType = "_"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"

	LET     TokenType = "LET"
	REC     TokenType = "REC"
	AND     TokenType = "AND"
	IN      TokenType = "IN"
	IF      TokenType = "IF"
	THEN    TokenType = "THEN"
	ELSE    TokenType = "ELSE"
	DO      TokenType = "DO"
	TYPEDEF TokenType = "TYPEDEF"
	TRUE    TokenType = "TRUE"
	FALSE   TokenType = "FALSE"
)

var keywords = map[string]TokenType{
	"let":     LET,
	"rec":     REC,
	"and":     AND,
	"in":      IN,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"do":      DO,
	"typedef": TYPEDEF,
	"true":    TRUE,
	"false":   FALSE,
}

// LookupIdent distinguishes keywords from identifiers.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
