package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/provelang/provescript/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	line, column := l.line, l.column

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Line: line, Column: column}
	case '=':
		l.readChar()
		return token.Token{Type: token.ASSIGN, Literal: "=", Line: line, Column: column}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.ARROW, Literal: "->", Line: line, Column: column}
		}
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: "-", Line: line, Column: column}
	case '<':
		if l.peekChar() == '-' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.LARROW, Literal: "<-", Line: line, Column: column}
		}
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: "<", Line: line, Column: column}
	case '\\':
		l.readChar()
		return token.Token{Type: token.BACKSLASH, Literal: "\\", Line: line, Column: column}
	case '!':
		l.readChar()
		return token.Token{Type: token.BANG, Literal: "!", Line: line, Column: column}
	case ':':
		l.readChar()
		return token.Token{Type: token.COLON, Literal: ":", Line: line, Column: column}
	case ';':
		l.readChar()
		return token.Token{Type: token.SEMICOLON, Literal: ";", Line: line, Column: column}
	case ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Literal: ",", Line: line, Column: column}
	case '.':
		l.readChar()
		return token.Token{Type: token.DOT, Literal: ".", Line: line, Column: column}
	case '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Literal: "(", Line: line, Column: column}
	case ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Literal: ")", Line: line, Column: column}
	case '[':
		l.readChar()
		return token.Token{Type: token.LBRACKET, Literal: "[", Line: line, Column: column}
	case ']':
		l.readChar()
		return token.Token{Type: token.RBRACKET, Literal: "]", Line: line, Column: column}
	case '{':
		if l.peekChar() == '{' {
			return l.readFragment("}}", token.TERM_FRAG, line, column)
		}
		if l.peekChar() == '|' {
			return l.readFragment("|}", token.TYPE_FRAG, line, column)
		}
		l.readChar()
		return token.Token{Type: token.LBRACE, Literal: "{", Line: line, Column: column}
	case '}':
		l.readChar()
		return token.Token{Type: token.RBRACE, Literal: "}", Line: line, Column: column}
	case '"':
		lit, ok := l.readString()
		tt := token.STRING
		if !ok {
			tt = token.ILLEGAL
		}
		return token.Token{Type: tt, Literal: lit, Line: line, Column: column}
	}

	if l.ch == '_' && !isIdentChar(l.peekChar()) {
		l.readChar()
		return token.Token{Type: token.UNDERSCORE, Literal: "_", Line: line, Column: column}
	}
	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(lit), Literal: lit, Line: line, Column: column}
	}
	if unicode.IsDigit(l.ch) {
		lit := l.readNumber()
		return token.Token{Type: token.INT, Literal: lit, Line: line, Column: column}
	}

	illegal := string(l.ch)
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: illegal, Line: line, Column: column}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
			continue
		}
		return
	}
}

// readFragment captures everything between an opening delimiter and its
// two-character terminator, verbatim and without nesting. The literal is the
// fragment body with the delimiters stripped.
func (l *Lexer) readFragment(closer string, tt token.TokenType, line, column int) token.Token {
	l.readChar() // first delimiter char
	l.readChar() // second delimiter char
	start := l.position
	for {
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Literal: l.input[start:l.position], Line: line, Column: column}
		}
		if l.ch == rune(closer[0]) && l.peekChar() == rune(closer[1]) {
			body := l.input[start:l.position]
			l.readChar()
			l.readChar()
			return token.Token{Type: tt, Literal: body, Line: line, Column: column}
		}
		l.readChar()
	}
}

func (l *Lexer) readString() (string, bool) {
	var sb strings.Builder
	l.readChar() // opening quote
	for {
		switch l.ch {
		case 0, '\n':
			return sb.String(), false
		case '"':
			l.readChar()
			return sb.String(), true
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteRune(l.ch)
			}
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentChar(ch rune) bool {
	return ch == '_' || ch == '\'' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
