/*
File   : slovo/parser/parser_expr.go
Package: parser
*/
package parser

import (
	"strconv"
	"strings"

	"github.com/slovolang/slovo/lexer"
)

func (p *Parser) registerPrefix() {
	p.prefixFns[lexer.NUMBER] = p.parseNumberLit
	p.prefixFns[lexer.STRING] = p.parseStringLit
	p.prefixFns[lexer.TEMPLATE] = p.parseTemplateLit
	p.prefixFns[lexer.REGEX] = p.parseRegexLit
	p.prefixFns[lexer.TRUE] = p.parseBoolLit
	p.prefixFns[lexer.FALSE] = p.parseBoolLit
	p.prefixFns[lexer.NONE] = p.parseNoneLit
	p.prefixFns[lexer.IDENT] = p.parseIdentifier
	p.prefixFns[lexer.THIS] = p.parseThis
	p.prefixFns[lexer.SUPER] = p.parseSuper
	p.prefixFns[lexer.LPAREN] = p.parseGroupedOrArrow
	p.prefixFns[lexer.LBRACKET] = p.parseArrayExpr
	p.prefixFns[lexer.LBRACE] = p.parseObjectExpr
	p.prefixFns[lexer.MINUS] = p.parseUnary
	p.prefixFns[lexer.PLUS] = p.parseUnary
	p.prefixFns[lexer.NOT] = p.parseUnary
	p.prefixFns[lexer.BITNOT] = p.parseUnary
	p.prefixFns[lexer.AWAIT] = p.parseAwait
	p.prefixFns[lexer.NEW] = p.parseNew
	p.prefixFns[lexer.FUNC] = p.parseFunctionExpr
	p.prefixFns[lexer.ASYNC] = p.parseFunctionExpr
	p.prefixFns[lexer.IMPORT] = p.parseImportExpr
}

func (p *Parser) registerInfix() {
	for _, k := range []lexer.TokenKind{
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT, lexer.POW,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.LE, lexer.GT, lexer.GE,
		lexer.AND, lexer.OR, lexer.BITAND, lexer.BITOR, lexer.BITXOR, lexer.SHL, lexer.SHR,
	} {
		p.infixFns[k] = p.parseBinary
	}
	p.infixFns[lexer.LPAREN] = p.parseCall
	p.infixFns[lexer.DOT] = p.parseMember
	p.infixFns[lexer.LBRACKET] = p.parseIndex
}

func (p *Parser) parseNumberLit() Expr {
	t := p.cur
	p.advance()
	return &NumberLit{base: base{P: posOf(t)}, Value: t.Value.Number}
}

func (p *Parser) parseStringLit() Expr {
	t := p.cur
	p.advance()
	return &StringLit{base: base{P: posOf(t)}, Value: t.Value.Str}
}

func (p *Parser) parseBoolLit() Expr {
	t := p.cur
	p.advance()
	return &BoolLit{base: base{P: posOf(t)}, Value: t.Kind == lexer.TRUE}
}

func (p *Parser) parseNoneLit() Expr {
	t := p.cur
	p.advance()
	return &NoneLit{base: base{P: posOf(t)}}
}

func (p *Parser) parseIdentifier() Expr {
	t := p.cur
	p.advance()
	return &Identifier{base: base{P: posOf(t)}, Name: t.Literal}
}

func (p *Parser) parseThis() Expr {
	t := p.cur
	p.advance()
	return &ThisExpr{base: base{P: posOf(t)}}
}

func (p *Parser) parseSuper() Expr {
	t := p.cur
	p.advance()
	return &SuperExpr{base: base{P: posOf(t)}}
}

func (p *Parser) parseUnary() Expr {
	t := p.cur
	op := t.Kind
	p.advance()
	operand := p.parseExpression(precUnary)
	return &UnaryExpr{base: base{P: posOf(t)}, Op: op, Operand: operand}
}

func (p *Parser) parseAwait() Expr {
	t := p.cur
	p.advance()
	operand := p.parseExpression(precUnary)
	return &AwaitExpr{base: base{P: posOf(t)}, Operand: operand}
}

func (p *Parser) parseBinary(left Expr) Expr {
	t := p.cur
	op := t.Kind
	prec := p.precedenceOf(op)
	p.advance()
	rightMin := prec
	if op == lexer.POW {
		rightMin = prec - 1 // exponent is right-associative
	}
	right := p.parseExpression(rightMin)
	return &BinaryExpr{base: base{P: left.Pos()}, Op: op, Left: left, Right: right}
}

func (p *Parser) precedenceOf(k lexer.TokenKind) int {
	if pr, ok := precedences[k]; ok {
		return pr
	}
	return precLowest
}

// parseNew parses `new Callee(args)`, where Callee may itself be a member
// chain (`new a.b.C(...)`) but never includes a call — unlike a bare
// expression, `new a.b(x)(y)` is not ambiguous here because the first
// parenthesized group is always consumed as the constructor's argument
// list, matching the grammar's single designated call site per `new`.
func (p *Parser) parseNew() Expr {
	t := p.cur
	p.advance()
	callee := p.parseNewCallee()
	var args []Expr
	if p.curIs(lexer.LPAREN) {
		p.advance()
		args = p.parseExprList(lexer.RPAREN)
	}
	return &NewExpr{base: base{P: posOf(t)}, Callee: callee, Args: args}
}

// parseNewCallee parses a primary expression followed by a member/index
// chain, stopping before any '(' so the caller can claim it as the
// constructor call's argument list.
func (p *Parser) parseNewCallee() Expr {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.errorf("unexpected token %s %q after 'new'", p.cur.Kind, p.cur.Literal)
		p.advance()
		return nil
	}
	expr := prefix()
	for {
		switch p.cur.Kind {
		case lexer.DOT:
			expr = p.parseMember(expr)
		case lexer.LBRACKET:
			expr = p.parseIndex(expr)
		default:
			return expr
		}
	}
}

// parseCall is called with cur == '(' (the call's opening paren).
func (p *Parser) parseCall(callee Expr) Expr {
	pos := callee.Pos()
	p.advance() // consume '('
	args := p.parseExprList(lexer.RPAREN)
	return &CallExpr{base: base{P: pos}, Callee: callee, Args: args}
}

func (p *Parser) parseExprList(end lexer.TokenKind) []Expr {
	var list []Expr
	if p.curIs(end) {
		p.advance()
		return list
	}
	list = append(list, p.parseMaybeSpread())
	for p.curIs(lexer.COMMA) {
		p.advance()
		if p.curIs(end) {
			break
		}
		list = append(list, p.parseMaybeSpread())
	}
	p.expect(end)
	return list
}

func (p *Parser) parseMaybeSpread() Expr {
	if p.curIs(lexer.SPREAD) {
		t := p.cur
		p.advance()
		return &SpreadExpr{base: base{P: posOf(t)}, Operand: p.parseExpression(precAssign)}
	}
	return p.parseExpression(precAssign)
}

// parseMember is called with cur == '.'; it consumes the dot then the
// property name.
func (p *Parser) parseMember(object Expr) Expr {
	pos := object.Pos()
	p.advance() // consume '.'
	if !p.curIs(lexer.IDENT) {
		p.errorf("expected property name after '.', got %s", p.cur.Kind)
		return object
	}
	name := p.cur.Literal
	p.advance()
	return &MemberExpr{base: base{P: pos}, Object: object, Property: name}
}

// parseIndex is called with cur == '['.
func (p *Parser) parseIndex(object Expr) Expr {
	pos := object.Pos()
	p.advance() // consume '['
	idx := p.parseExpression(precLowest)
	p.expect(lexer.RBRACKET)
	return &IndexExpr{base: base{P: pos}, Object: object, Index: idx}
}

// parseGroupedOrArrow disambiguates `(expr)` / `(a, b)` sequence
// expressions from `(params) => body` by scanning ahead for `=>` after a
// balanced paren group, per spec.md §4.2 primary-level grammar.
func (p *Parser) parseGroupedOrArrow() Expr {
	if p.looksLikeArrowParams() {
		return p.parseArrowFunction()
	}
	open := p.cur
	p.advance()
	first := p.parseExpression(precLowest)
	if p.curIs(lexer.COMMA) {
		exprs := []Expr{first}
		for p.curIs(lexer.COMMA) {
			p.advance()
			exprs = append(exprs, p.parseExpression(precLowest))
		}
		p.expect(lexer.RPAREN)
		return &SequenceExpr{base: base{P: posOf(open)}, Exprs: exprs}
	}
	p.expect(lexer.RPAREN)
	return first
}

// looksLikeArrowParams performs bounded lookahead, via a cloned lexer, for
// whether the '(' at p.cur opens an arrow-function parameter list (closing
// ')' followed by '=>') rather than a grouped/sequence expression. p.lex is
// already positioned just past p.peek, so the clone replays from there with
// depth pre-seeded for the already-buffered cur/peek tokens.
func (p *Parser) looksLikeArrowParams() bool {
	if p.peekIs(lexer.RPAREN) {
		return true // `() => ...` — only legal continuation is '=>'
	}
	depth := 1
	switch p.peek.Kind {
	case lexer.LPAREN:
		depth++
	case lexer.RPAREN:
		depth--
	case lexer.EOF:
		return false
	}
	scan := p.lex.Clone()
	for depth > 0 {
		tok := scan.Next()
		switch tok.Kind {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
		case lexer.EOF:
			return false
		}
	}
	return scan.Next().Kind == lexer.ARROW
}

func (p *Parser) parseArrayExpr() Expr {
	t := p.cur
	p.advance()
	elems := p.parseExprList(lexer.RBRACKET)
	return &ArrayExpr{base: base{P: posOf(t)}, Elements: elems}
}

func (p *Parser) parseObjectExpr() Expr {
	t := p.cur
	p.advance()
	obj := &ObjectExpr{base: base{P: posOf(t)}}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SPREAD) {
			p.advance()
			obj.Props = append(obj.Props, ObjectProp{Spread: p.parseExpression(precAssign)})
		} else {
			obj.Props = append(obj.Props, p.parseObjectProp())
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return obj
}

func (p *Parser) parseObjectProp() ObjectProp {
	var key string
	var computed Expr
	if p.curIs(lexer.LBRACKET) {
		p.advance()
		computed = p.parseExpression(precLowest)
		p.expect(lexer.RBRACKET)
	} else {
		key = p.cur.Literal
		p.advance()
	}
	if p.curIs(lexer.COLON) {
		p.advance()
		return ObjectProp{Key: key, Computed: computed, Value: p.parseExpression(precAssign)}
	}
	return ObjectProp{Key: key, Shorthand: true, Value: &Identifier{base: base{P: posOf(p.cur)}, Name: key}}
}

func (p *Parser) parseImportExpr() Expr {
	t := p.cur
	p.advance()
	p.expect(lexer.LPAREN)
	path := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	return &ImportExpr{base: base{P: posOf(t)}, Path: path}
}

// parseTemplateLit splits the lexer's verbatim `${ ... }` markers (see
// lexer.readTemplate) back into literal text and expression parts, each
// expression re-parsed with its own sub-parser over just that slice.
func (p *Parser) parseTemplateLit() Expr {
	t := p.cur
	p.advance()
	tmpl := &TemplateExpr{base: base{P: posOf(t)}}
	raw := t.Literal
	for {
		i := strings.Index(raw, "${")
		if i < 0 {
			tmpl.Parts = append(tmpl.Parts, TemplatePart{Text: raw})
			break
		}
		tmpl.Parts = append(tmpl.Parts, TemplatePart{Text: raw[:i]})
		rest := raw[i+2:]
		depth := 1
		j := 0
		for ; j < len(rest) && depth > 0; j++ {
			switch rest[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		exprSrc := rest[:j-1]
		sub := lexer.New(exprSrc, t.File)
		subParser := New(sub)
		expr := subParser.parseExpression(precLowest)
		p.Errors = append(p.Errors, subParser.Errors...)
		tmpl.Parts = append(tmpl.Parts, TemplatePart{Expr: expr})
		raw = rest[j:]
	}
	return tmpl
}

func (p *Parser) parseRegexLit() Expr {
	t := p.cur
	p.advance()
	parts := strings.SplitN(t.Literal, "\x00", 2)
	pattern := parts[0]
	flags := ""
	if len(parts) == 2 {
		flags = parts[1]
	}
	return &RegexLit{base: base{P: posOf(t)}, Pattern: pattern, Flags: flags}
}

// unquoteIdentKey strips the quotes from a double-quoted key string and
// returns any other string unchanged. Nothing in the parser calls it.
func unquoteIdentKey(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}
