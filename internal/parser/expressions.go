package parser

import (
	"strconv"

	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/token"
)

// Expression precedence, loosest first: lambda / if / let-in, then array
// indexing with !, then application by juxtaposition, then postfix field and
// tuple access.

func (p *Parser) parseExpr() (ast.Expr, error) {
	t := p.cur()
	switch t.Type {
	case token.BACKSLASH:
		return p.parseLambda()
	case token.IF:
		return p.parseIf()
	case token.LET:
		return p.parseLetIn()
	}
	return p.parseIndexExpr()
}

func (p *Parser) parseLambda() (ast.Expr, error) {
	start := p.next() // backslash
	var params []ast.Pattern
	for isPatternStart(p.cur().Type) {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		params = append(params, pat)
	}
	if len(params) == 0 {
		return nil, p.errorf(p.cur(), "lambda needs at least one parameter")
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	for i := len(params) - 1; i >= 0; i-- {
		body = &ast.Lambda{Param: params[i], Body: body, Position: p.at(start)}
	}
	return body, nil
}

func (p *Parser) parseIf() (ast.Expr, error) {
	start := p.next() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.If{Cond: cond, Then: then, Else: els, Position: p.at(start)}, nil
}

func (p *Parser) parseLetIn() (ast.Expr, error) {
	start := p.next() // let
	group, err := p.parseDeclGroup()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Group: group, Body: body, Position: p.at(start)}, nil
}

func (p *Parser) parseIndexExpr() (ast.Expr, error) {
	left, err := p.parseAppExpr()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.BANG {
		bang := p.next()
		idx, err := p.parseAppExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.IndexAccess{Target: left, Index: idx, Position: p.at(bang)}
	}
	return left, nil
}

func (p *Parser) parseAppExpr() (ast.Expr, error) {
	fn, err := p.parsePostfixExpr()
	if err != nil {
		return nil, err
	}
	for isAtomStart(p.cur().Type) {
		arg, err := p.parsePostfixExpr()
		if err != nil {
			return nil, err
		}
		fn = &ast.Apply{Fn: fn, Arg: arg, Position: arg.Pos()}
	}
	return fn, nil
}

func isAtomStart(tt token.TokenType) bool {
	switch tt {
	case token.IDENT, token.INT, token.STRING, token.TRUE, token.FALSE,
		token.LPAREN, token.LBRACKET, token.LBRACE,
		token.TERM_FRAG, token.TYPE_FRAG, token.DO:
		return true
	}
	return false
}

func (p *Parser) parsePostfixExpr() (ast.Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.DOT {
		dot := p.next()
		t := p.cur()
		switch t.Type {
		case token.INT:
			p.next()
			idx, err := strconv.Atoi(t.Literal)
			if err != nil {
				return nil, p.errorf(t, "bad tuple index %q", t.Literal)
			}
			e = &ast.TupleAccess{Target: e, Index: idx, Position: p.at(dot)}
		case token.IDENT:
			p.next()
			e = &ast.FieldAccess{Target: e, Name: t.Literal, Position: p.at(dot)}
		default:
			return nil, p.errorf(t, "expected a field name or tuple index after '.'")
		}
	}
	return e, nil
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	t := p.cur()
	switch t.Type {
	case token.INT:
		p.next()
		v, err := strconv.ParseInt(t.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf(t, "bad integer literal %q", t.Literal)
		}
		return &ast.IntLit{Value: v, Position: p.at(t)}, nil
	case token.STRING:
		p.next()
		return &ast.StrLit{Value: t.Literal, Position: p.at(t)}, nil
	case token.TRUE:
		p.next()
		return &ast.BoolLit{Value: true, Position: p.at(t)}, nil
	case token.FALSE:
		p.next()
		return &ast.BoolLit{Value: false, Position: p.at(t)}, nil
	case token.IDENT:
		p.next()
		return &ast.Ident{Name: t.Literal, Position: p.at(t)}, nil
	case token.TERM_FRAG:
		p.next()
		return &ast.TermLit{Src: t.Literal, Position: p.at(t)}, nil
	case token.TYPE_FRAG:
		p.next()
		return &ast.TypeLit{Src: t.Literal, Position: p.at(t)}, nil
	case token.DO:
		return p.parseDoBlock()
	case token.LBRACKET:
		return p.parseArray()
	case token.LBRACE:
		return p.parseRecord()
	case token.LPAREN:
		return p.parseParens()
	}
	return nil, p.errorf(t, "unexpected %s %q", t.Type, t.Literal)
}

func (p *Parser) parseDoBlock() (ast.Expr, error) {
	start := p.next() // do
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	stmts, err := p.parseStmts(token.RBRACE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts, Position: p.at(start)}, nil
}

func (p *Parser) parseArray() (ast.Expr, error) {
	start := p.next() // [
	var elems []ast.Expr
	for p.cur().Type != token.RBRACKET {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.cur().Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ArrayLit{Elems: elems, Position: p.at(start)}, nil
}

func (p *Parser) parseRecord() (ast.Expr, error) {
	start := p.next() // {
	rec := &ast.RecordLit{Position: p.at(start)}
	for p.cur().Type != token.RBRACE {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, ast.RecordField{Name: name.Literal, Value: val})
		if p.cur().Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return rec, nil
}

// parseParens handles the unit literal (), grouping, ascription (e : t), and
// tuple literals (a, b).
func (p *Parser) parseParens() (ast.Expr, error) {
	start := p.next() // (
	if p.cur().Type == token.RPAREN {
		p.next()
		return &ast.TupleLit{Position: p.at(start)}, nil
	}
	var elems []ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Type == token.COLON {
			p.next()
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			e = &ast.Ascribe{Expr: e, Type: typ, Position: e.Pos()}
		}
		elems = append(elems, e)
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
	return &ast.TupleLit{Elems: elems, Position: p.at(start)}, nil
}
