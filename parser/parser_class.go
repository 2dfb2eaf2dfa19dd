/*
File   : slovo/parser/parser_class.go
Package: parser

Class bodies: a sequence of field declarations and method declarations,
each method optionally prefixed by `static`, then `get`|`set`, then
`async`, in that order (spec.md §4.2).
*/
package parser

import "github.com/slovolang/slovo/lexer"

func (p *Parser) parseClassDecl() Stmt {
	t := p.cur
	p.advance()
	name := p.cur.Literal
	p.advance()

	decl := &ClassDeclStmt{base: base{P: posOf(t)}, Name: name}
	if p.curIs(lexer.EXTENDS) {
		p.advance()
		decl.Superclass = p.cur.Literal
		p.advance()
	}

	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		static := false
		if p.curIs(lexer.STATIC) {
			static = true
			p.advance()
		}

		kind := MethodPlain
		if p.curIs(lexer.GET) {
			kind = MethodGetter
			p.advance()
		} else if p.curIs(lexer.SET) {
			kind = MethodSetter
			p.advance()
		}

		async := false
		if p.curIs(lexer.ASYNC) {
			async = true
			p.advance()
		}

		memberName := p.cur.Literal
		isConstructor := p.curIs(lexer.CONSTRUCTOR)
		if isConstructor {
			kind = MethodConstructor
		}

		if p.peekIs(lexer.LPAREN) {
			p.advance() // consume name
			params := p.parseParamList()
			body := p.parseBlock()
			decl.Methods = append(decl.Methods, MethodDef{
				Name:   memberName,
				Kind:   kind,
				Static: static,
				Fn: &FunctionExpr{
					base:   base{P: posOf(t)},
					Name:   memberName,
					Params: params,
					Body:   body,
					Async:  async,
				},
			})
			continue
		}

		// field declaration: `name = expr;` or bare `name;`
		p.advance() // consume name
		field := FieldDef{Name: memberName, Static: static}
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			field.Default = p.parseExpression(precAssign)
		}
		decl.Fields = append(decl.Fields, field)
		p.consumeStmtEnd()
	}
	p.expect(lexer.RBRACE)
	return decl
}
