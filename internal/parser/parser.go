package parser

import (
	"fmt"

	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/lexer"
	"github.com/provelang/provescript/internal/schema"
	"github.com/provelang/provescript/internal/token"
)

// Parser consumes a fully-lexed token stream. Keeping the stream as a slice
// makes the one ambiguous spot in the grammar (statement starts: binding
// pattern vs. expression) cheap to resolve by backtracking.
type Parser struct {
	file string
	toks []token.Token
	pos  int
}

// Parse turns a script's source into statements. The signature matches the
// session configuration's Parse hook.
func Parse(file, src string) ([]ast.Stmt, error) {
	l := lexer.New(src)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF {
			break
		}
	}
	p := &Parser{file: file, toks: toks}
	return p.parseStmts(token.EOF)
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}
func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}
func (p *Parser) next() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(t token.Token) ast.Position {
	return ast.Position{File: p.file, Line: t.Line, Column: t.Column}
}

func (p *Parser) errorf(t token.Token, format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d:%d: %s", p.file, t.Line, t.Column, fmt.Sprintf(format, args...))
}

func (p *Parser) expect(tt token.TokenType) (token.Token, error) {
	t := p.cur()
	if t.Type != tt {
		return t, p.errorf(t, "expected %s, got %s %q", tt, t.Type, t.Literal)
	}
	return p.next(), nil
}

// parseStmts parses semicolon-separated statements until the stop token.
// The final semicolon is optional.
func (p *Parser) parseStmts(stop token.TokenType) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for {
		for p.cur().Type == token.SEMICOLON {
			p.next()
		}
		if p.cur().Type == stop {
			return stmts, nil
		}
		if p.cur().Type == token.EOF {
			return nil, p.errorf(p.cur(), "unexpected end of input, expected %s", stop)
		}
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		switch p.cur().Type {
		case token.SEMICOLON:
			p.next()
		case stop:
		default:
			return nil, p.errorf(p.cur(), "expected ';', got %s %q", p.cur().Type, p.cur().Literal)
		}
	}
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Type {
	case token.LET:
		if p.peek().Type == token.TERM_FRAG {
			start := p.next()
			frag := p.next()
			return &ast.TermDeclStmt{Src: frag.Literal, Position: p.at(start)}, nil
		}
		start := p.next()
		group, err := p.parseDeclGroup()
		if err != nil {
			return nil, err
		}
		// `let ... in e` is an expression, not a statement.
		if p.cur().Type == token.IN {
			p.next()
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			e := &ast.Let{Group: group, Body: body, Position: p.at(start)}
			return &ast.BindStmt{Pat: &ast.WildcardPattern{Position: p.at(start)}, Wild: true, Expr: e, Position: p.at(start)}, nil
		}
		return &ast.LetStmt{Group: group, Position: p.at(start)}, nil

	case token.TYPEDEF:
		start := p.next()
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.TypedefStmt{Name: name.Literal, Type: t, Position: p.at(start)}, nil

	case token.IDENT:
		// `include "path"` as a whole statement is the file-inclusion
		// statement form; `include expr` with a computed path stays an
		// ordinary application of the include operation.
		if p.cur().Literal == "include" && p.peek().Type == token.STRING {
			after := p.peekAt(2).Type
			if after == token.SEMICOLON || after == token.EOF || after == token.RBRACE {
				start := p.next()
				path := p.next()
				return &ast.ImportStmt{Path: path.Literal, Position: p.at(start)}, nil
			}
		}
	}
	return p.parseBindStmt()
}

// parseBindStmt handles `pat <- expr` and the bare-expression sugar. The
// statement start is ambiguous (a pattern and an expression can begin with
// the same tokens), so try the binding form first and backtrack.
func (p *Parser) parseBindStmt() (ast.Stmt, error) {
	start := p.cur()
	saved := p.pos
	if pat, err := p.parsePattern(); err == nil && p.cur().Type == token.LARROW {
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.BindStmt{Pat: pat, Expr: expr, Position: p.at(start)}, nil
	}
	p.pos = saved
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.BindStmt{
		Pat:      &ast.WildcardPattern{Position: p.at(start)},
		Wild:     true,
		Expr:     expr,
		Position: p.at(start),
	}, nil
}

// parseDeclGroup parses declarations after `let`: [rec] decl (and decl)*.
func (p *Parser) parseDeclGroup() (*ast.DeclGroup, error) {
	group := &ast.DeclGroup{}
	if p.cur().Type == token.REC {
		p.next()
		group.Recursive = true
	}
	for {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		group.Decls = append(group.Decls, d)
		if p.cur().Type != token.AND {
			return group, nil
		}
		p.next()
	}
}

// parseDecl parses one declaration. `let f x y = e` is sugar for binding f
// to nested lambdas; `let x : T = e` attaches a declared schema.
func (p *Parser) parseDecl() (*ast.Decl, error) {
	start := p.cur()
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}

	var params []ast.Pattern
	if _, ok := pat.(*ast.VarPattern); ok {
		for isPatternStart(p.cur().Type) {
			param, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}

	var sch *schema.Schema
	if len(params) == 0 && p.cur().Type == token.COLON {
		p.next()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		s := schema.Mono(t)
		sch = &s
	}

	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	for i := len(params) - 1; i >= 0; i-- {
		body = &ast.Lambda{Param: params[i], Body: body, Position: p.at(start)}
	}
	return &ast.Decl{Pat: pat, Sch: sch, Body: body, Position: p.at(start)}, nil
}

func isPatternStart(tt token.TokenType) bool {
	return tt == token.IDENT || tt == token.UNDERSCORE || tt == token.LPAREN
}

// parsePattern parses a binding pattern: wildcard, variable, or tuple.
// Inside parentheses a variable may carry a type annotation.
func (p *Parser) parsePattern() (ast.Pattern, error) {
	t := p.cur()
	switch t.Type {
	case token.UNDERSCORE:
		p.next()
		return &ast.WildcardPattern{Position: p.at(t)}, nil
	case token.IDENT:
		p.next()
		return &ast.VarPattern{Name: t.Literal, Position: p.at(t)}, nil
	case token.LPAREN:
		p.next()
		if p.cur().Type == token.RPAREN {
			p.next()
			return &ast.WildcardPattern{Position: p.at(t)}, nil
		}
		var elems []ast.Pattern
		for {
			elem, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			if p.cur().Type == token.COLON {
				v, ok := elem.(*ast.VarPattern)
				if !ok {
					return nil, p.errorf(p.cur(), "type annotation on a non-variable pattern")
				}
				p.next()
				typ, err := p.parseType()
				if err != nil {
					return nil, err
				}
				v.Type = typ
			}
			elems = append(elems, elem)
			if p.cur().Type == token.COMMA {
				p.next()
				continue
			}
			break
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		if len(elems) == 1 {
			return elems[0], nil
		}
		return &ast.TuplePattern{Elems: elems, Position: p.at(t)}, nil
	}
	return nil, p.errorf(t, "expected a pattern, got %s %q", t.Type, t.Literal)
}
