package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/provelang/provescript/internal/config"
	"github.com/provelang/provescript/internal/schema"
	"github.com/provelang/provescript/internal/token"
)

// Type syntax: arrows are right-associative; the three effect-context names
// apply to a result type; names starting with a lowercase letter are type
// variables, anything else is a constant.

func (p *Parser) parseType() (schema.Type, error) {
	left, err := p.parseTypeApp()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.ARROW {
		p.next()
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return schema.TFunc{Arg: left, Ret: ret}, nil
	}
	return left, nil
}

func (p *Parser) parseTypeApp() (schema.Type, error) {
	t := p.cur()
	if t.Type == token.IDENT && isContextName(t.Literal) && isTypeAtomStart(p.peek().Type) {
		p.next()
		result, err := p.parseTypeAtom()
		if err != nil {
			return nil, err
		}
		return schema.TCtx{Ctx: t.Literal, Result: result}, nil
	}
	return p.parseTypeAtom()
}

func (p *Parser) parseTypeAtom() (schema.Type, error) {
	t := p.cur()
	switch t.Type {
	case token.IDENT:
		p.next()
		r, _ := utf8.DecodeRuneInString(t.Literal)
		if unicode.IsLower(r) {
			return schema.TVar{Name: t.Literal}, nil
		}
		return schema.TCon{Name: t.Literal}, nil
	case token.LBRACKET:
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return schema.TArray{Elem: elem}, nil
	case token.LPAREN:
		p.next()
		if p.cur().Type == token.RPAREN {
			p.next()
			return schema.Unit, nil
		}
		var elems []schema.Type
		for {
			elem, err := p.parseType()
			if err != nil {
				return nil, err
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
		return schema.TTuple{Elements: elems}, nil
	}
	return nil, p.errorf(t, "expected a type, got %s %q", t.Type, t.Literal)
}

func isTypeAtomStart(tt token.TokenType) bool {
	return tt == token.IDENT || tt == token.LBRACKET || tt == token.LPAREN
}

func isContextName(name string) bool {
	switch name {
	case config.TopLevelCtxName, config.ProofScriptCtxName, config.SpecSetupCtxName:
		return true
	}
	return false
}
