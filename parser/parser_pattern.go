/*
File   : slovo/parser/parser_pattern.go
Package: parser

Patterns appear only in let/const targets and parameter lists; see
ast_pattern.go for why that avoids the usual destructuring/expression
ambiguity.
*/
package parser

import "github.com/slovolang/slovo/lexer"

func (p *Parser) parsePattern() Pattern {
	switch p.cur.Kind {
	case lexer.LBRACKET:
		return p.parseArrayPattern()
	case lexer.LBRACE:
		return p.parseObjectPattern()
	default:
		t := p.cur
		if !p.curIs(lexer.IDENT) {
			p.errorf("expected binding target, got %s %q", p.cur.Kind, p.cur.Literal)
		}
		name := t.Literal
		p.advance()
		return &Identifier{base: base{P: posOf(t)}, Name: name}
	}
}

func (p *Parser) parseArrayPattern() Pattern {
	start := p.cur
	p.advance() // '['
	pat := &ArrayPattern{base: base{P: posOf(start)}}
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SPREAD) {
			p.advance()
			pat.Elements = append(pat.Elements, ArrayPatternElem{Target: p.parsePattern(), Rest: true})
		} else {
			target := p.parsePattern()
			var def Expr
			if p.curIs(lexer.ASSIGN) {
				p.advance()
				def = p.parseExpression(precAssign)
			}
			pat.Elements = append(pat.Elements, ArrayPatternElem{Target: target, Default: def})
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RBRACKET)
	return pat
}

func (p *Parser) parseObjectPattern() Pattern {
	start := p.cur
	p.advance() // '{'
	pat := &ObjectPattern{base: base{P: posOf(start)}}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SPREAD) {
			p.advance()
			pat.Rest = p.cur.Literal
			p.advance()
		} else {
			key := p.cur.Literal
			p.advance()
			var target Pattern
			if p.curIs(lexer.COLON) {
				p.advance()
				target = p.parsePattern()
			} else {
				target = &Identifier{base: base{P: posOf(p.cur)}, Name: key}
			}
			var def Expr
			if p.curIs(lexer.ASSIGN) {
				p.advance()
				def = p.parseExpression(precAssign)
			}
			pat.Props = append(pat.Props, ObjectPatternProp{Key: key, Target: target, Default: def})
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return pat
}
