package lexer

import (
	"testing"

	"github.com/provelang/provescript/internal/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF {
			return toks
		}
	}
}

func TestNextToken(t *testing.T) {
	input := `let rec f x = \y -> if true then 1 else "two";
m <- load_module "a.bc";
typedef T = Int -> [String];
(a, _) <- p; r.field; xs ! 0; {n = 1}`

	expected := []struct {
		typ token.TokenType
		lit string
	}{
		{token.LET, "let"}, {token.REC, "rec"}, {token.IDENT, "f"}, {token.IDENT, "x"},
		{token.ASSIGN, "="}, {token.BACKSLASH, "\\"}, {token.IDENT, "y"}, {token.ARROW, "->"},
		{token.IF, "if"}, {token.TRUE, "true"}, {token.THEN, "then"}, {token.INT, "1"},
		{token.ELSE, "else"}, {token.STRING, "two"}, {token.SEMICOLON, ";"},
		{token.IDENT, "m"}, {token.LARROW, "<-"}, {token.IDENT, "load_module"},
		{token.STRING, "a.bc"}, {token.SEMICOLON, ";"},
		{token.TYPEDEF, "typedef"}, {token.IDENT, "T"}, {token.ASSIGN, "="},
		{token.IDENT, "Int"}, {token.ARROW, "->"}, {token.LBRACKET, "["},
		{token.IDENT, "String"}, {token.RBRACKET, "]"}, {token.SEMICOLON, ";"},
		{token.LPAREN, "("}, {token.IDENT, "a"}, {token.COMMA, ","}, {token.UNDERSCORE, "_"},
		{token.RPAREN, ")"}, {token.LARROW, "<-"}, {token.IDENT, "p"}, {token.SEMICOLON, ";"},
		{token.IDENT, "r"}, {token.DOT, "."}, {token.IDENT, "field"}, {token.SEMICOLON, ";"},
		{token.IDENT, "xs"}, {token.BANG, "!"}, {token.INT, "0"}, {token.SEMICOLON, ";"},
		{token.LBRACE, "{"}, {token.IDENT, "n"}, {token.ASSIGN, "="}, {token.INT, "1"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	toks := collect(input)
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(expected))
	}
	for i, want := range expected {
		if toks[i].Type != want.typ || toks[i].Literal != want.lit {
			t.Errorf("token %d: got %s %q, want %s %q", i, toks[i].Type, toks[i].Literal, want.typ, want.lit)
		}
	}
}

func TestFragments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		typ  token.TokenType
		lit  string
	}{
		{"term fragment", `{{ \x -> x == x }}`, token.TERM_FRAG, ` \x -> x == x `},
		{"term fragment keeps newlines", "{{a\nb}}", token.TERM_FRAG, "a\nb"},
		{"type fragment", `{| [8] Bool |}`, token.TYPE_FRAG, ` [8] Bool `},
		{"empty term fragment", `{{}}`, token.TERM_FRAG, ""},
		{"unterminated fragment", `{{ never closed`, token.ILLEGAL, ` never closed`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.in).NextToken()
			if tok.Type != tt.typ || tok.Literal != tt.lit {
				t.Errorf("got %s %q, want %s %q", tok.Type, tok.Literal, tt.typ, tt.lit)
			}
		})
	}
}

func TestFragmentBodyIsVerbatim(t *testing.T) {
	// Comment markers and string quotes inside a fragment are not lexed.
	tok := New(`{{ // "not a comment" }}`).NextToken()
	if tok.Type != token.TERM_FRAG {
		t.Fatalf("got %s", tok.Type)
	}
	if tok.Literal != ` // "not a comment" ` {
		t.Errorf("body = %q", tok.Literal)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		typ  token.TokenType
		lit  string
	}{
		{"plain", `"hello"`, token.STRING, "hello"},
		{"escapes", `"a\n\t\"b\\"`, token.STRING, "a\n\t\"b\\"},
		{"unterminated", `"runs off`, token.ILLEGAL, "runs off"},
		{"newline terminates", "\"a\nb\"", token.ILLEGAL, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.in).NextToken()
			if tok.Type != tt.typ || tok.Literal != tt.lit {
				t.Errorf("got %s %q, want %s %q", tok.Type, tok.Literal, tt.typ, tt.lit)
			}
		})
	}
}

func TestComments(t *testing.T) {
	toks := collect("1 // line comment\n/* block\ncomment */ 2")
	want := []token.TokenType{token.INT, token.INT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		in  string
		typ token.TokenType
	}{
		{"x'", token.IDENT},
		{"_internal", token.IDENT},
		{"snake_case2", token.IDENT},
		{"_", token.UNDERSCORE},
		{"do", token.DO},
		{"in", token.IN},
		{"and", token.AND},
		{"false", token.FALSE},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tok := New(tt.in).NextToken()
			if tok.Type != tt.typ {
				t.Errorf("got %s, want %s", tok.Type, tt.typ)
			}
			if tok.Literal != tt.in {
				t.Errorf("literal = %q", tok.Literal)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	toks := collect("let x =\n  42")
	type pos struct{ line, col int }
	want := []pos{{1, 1}, {1, 5}, {1, 7}, {2, 3}}
	for i, w := range want {
		if toks[i].Line != w.line || toks[i].Column != w.col {
			t.Errorf("token %d (%s): at %d:%d, want %d:%d",
				i, toks[i].Type, toks[i].Line, toks[i].Column, w.line, w.col)
		}
	}
}

func TestIllegalRunes(t *testing.T) {
	for _, in := range []string{"#", "-", "<", "@"} {
		t.Run(in, func(t *testing.T) {
			tok := New(in).NextToken()
			if tok.Type != token.ILLEGAL {
				t.Errorf("%q lexed as %s", in, tok.Type)
			}
		})
	}
}
