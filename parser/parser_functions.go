/*
File   : slovo/parser/parser_functions.go
Package: parser
*/
package parser

import "github.com/slovolang/slovo/lexer"

// parseFunctionExpr parses `[async] func [name](params) { body }`, or, when
// `async` is immediately followed by `(`, delegates to an async arrow
// (`async (params) => ...`).
func (p *Parser) parseFunctionExpr() Expr {
	start := p.cur
	async := false
	if p.curIs(lexer.ASYNC) {
		async = true
		p.advance()
		if p.curIs(lexer.LPAREN) {
			fn := p.parseArrowFunction().(*FunctionExpr)
			fn.Async = true
			return fn
		}
		if !p.curIs(lexer.FUNC) {
			p.errorf("expected 'func' after 'async', got %s", p.cur.Kind)
		}
	}
	p.advance() // consume 'func'

	name := ""
	if p.curIs(lexer.IDENT) {
		name = p.cur.Literal
		p.advance()
	}

	params := p.parseParamList()
	body := p.parseBlock()

	return &FunctionExpr{
		base:   base{P: posOf(start)},
		Name:   name,
		Params: params,
		Body:   body,
		Async:  async,
	}
}

// parseArrowFunction parses `(params) => expr` or `(params) => { block }`;
// the caller has already confirmed the '(' opens a parameter list.
func (p *Parser) parseArrowFunction() Expr {
	start := p.cur
	params := p.parseParamList()
	if !p.expect(lexer.ARROW) {
		return &FunctionExpr{base: base{P: posOf(start)}, Arrow: true, Params: params}
	}
	fn := &FunctionExpr{base: base{P: posOf(start)}, Arrow: true, Params: params}
	if p.curIs(lexer.LBRACE) {
		fn.Body = p.parseBlock()
	} else {
		fn.ExprBody = p.parseExpression(precAssign)
	}
	return fn
}

// parseParamList parses a parenthesized, possibly-empty parameter list
// using the same pattern grammar as destructuring declarations (spec.md
// §4.2 "Function parameters share the same pattern grammar").
func (p *Parser) parseParamList() []Param {
	p.expect(lexer.LPAREN)
	var params []Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SPREAD) {
			p.advance()
			target := p.parsePattern()
			params = append(params, Param{Target: target, Rest: true})
		} else {
			target := p.parsePattern()
			var def Expr
			if p.curIs(lexer.ASSIGN) {
				p.advance()
				def = p.parseExpression(precAssign)
			}
			params = append(params, Param{Target: target, Default: def})
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseBlock() *BlockStmt {
	start := p.cur
	p.expect(lexer.LBRACE)
	block := &BlockStmt{base: base{P: posOf(start)}}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipSemicolons()
	}
	p.expect(lexer.RBRACE)
	return block
}
