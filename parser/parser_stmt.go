/*
File   : slovo/parser/parser_stmt.go
Package: parser
*/
package parser

import "github.com/slovolang/slovo/lexer"

func (p *Parser) parseStatement() Stmt {
	switch p.cur.Kind {
	case lexer.SEMI:
		return nil
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.CONST:
		return p.parseConstStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.BREAK:
		t := p.cur
		p.advance()
		return &BreakStmt{base: base{P: posOf(t)}}
	case lexer.CONTINUE:
		t := p.cur
		p.advance()
		return &ContinueStmt{base: base{P: posOf(t)}}
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.FUNC, lexer.ASYNC:
		t := p.cur
		fn := p.parseFunctionExpr().(*FunctionExpr)
		return &FunctionDeclStmt{base: base{P: posOf(t)}, Fn: fn}
	case lexer.CLASS:
		return p.parseClassDecl()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.THROW:
		return p.parseThrowStmt()
	case lexer.SWITCH:
		return p.parseSwitchStmt()
	case lexer.IMPORT:
		return p.parseImportStmt()
	case lexer.EXPORT:
		return p.parseExportStmt()
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseLetStmt() Stmt {
	t := p.cur
	p.advance()
	target := p.parsePattern()
	var value Expr
	if p.curIs(lexer.ASSIGN) {
		p.advance()
		value = p.parseExpression(precAssign)
	}
	p.consumeStmtEnd()
	return &LetStmt{base: base{P: posOf(t)}, Target: target, Value: value}
}

func (p *Parser) parseConstStmt() Stmt {
	t := p.cur
	p.advance()
	target := p.parsePattern()
	if !p.expect(lexer.ASSIGN) {
		p.consumeStmtEnd()
		return &ConstStmt{base: base{P: posOf(t)}, Target: target}
	}
	value := p.parseExpression(precAssign)
	p.consumeStmtEnd()
	return &ConstStmt{base: base{P: posOf(t)}, Target: target, Value: value}
}

func (p *Parser) consumeStmtEnd() {
	if p.curIs(lexer.SEMI) {
		p.advance()
	}
}

func (p *Parser) parseExpressionStmt() Stmt {
	start := p.cur
	expr := p.parseExpression(precLowest)
	p.consumeStmtEnd()
	return &ExpressionStmt{base: base{P: posOf(start)}, Expr: expr}
}

func (p *Parser) parseReturnStmt() Stmt {
	t := p.cur
	p.advance()
	if p.curIs(lexer.SEMI) || p.curIs(lexer.RBRACE) || p.curIs(lexer.EOF) {
		p.consumeStmtEnd()
		return &ReturnStmt{base: base{P: posOf(t)}}
	}
	value := p.parseExpression(precLowest)
	p.consumeStmtEnd()
	return &ReturnStmt{base: base{P: posOf(t)}, Value: value}
}

func (p *Parser) parseIfStmt() Stmt {
	t := p.cur
	p.advance()
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	then := p.parseBlock()
	stmt := &IfStmt{base: base{P: posOf(t)}, Cond: cond, Then: then}
	if p.curIs(lexer.ELSE) {
		p.advance()
		if p.curIs(lexer.IF) {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() Stmt {
	t := p.cur
	p.advance()
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &WhileStmt{base: base{P: posOf(t)}, Cond: cond, Body: body}
}

func (p *Parser) parseForStmt() Stmt {
	t := p.cur
	p.advance()
	p.expect(lexer.LPAREN)

	var init Stmt
	if !p.curIs(lexer.SEMI) {
		switch p.cur.Kind {
		case lexer.LET:
			init = p.parseLetStmt()
		case lexer.CONST:
			init = p.parseConstStmt()
		default:
			init = p.parseExpressionStmt()
		}
	} else {
		p.advance()
	}

	var cond Expr
	if !p.curIs(lexer.SEMI) {
		cond = p.parseExpression(precLowest)
	}
	p.expect(lexer.SEMI)

	var update Expr
	if !p.curIs(lexer.RPAREN) {
		update = p.parseExpression(precLowest)
	}
	p.expect(lexer.RPAREN)

	body := p.parseBlock()
	return &ForStmt{base: base{P: posOf(t)}, Init: init, Cond: cond, Update: update, Body: body}
}

func (p *Parser) parseThrowStmt() Stmt {
	t := p.cur
	p.advance()
	value := p.parseExpression(precLowest)
	p.consumeStmtEnd()
	return &ThrowStmt{base: base{P: posOf(t)}, Value: value}
}

func (p *Parser) parseTryStmt() Stmt {
	t := p.cur
	p.advance()
	block := p.parseBlock()
	stmt := &TryStmt{base: base{P: posOf(t)}, Block: block}
	if p.curIs(lexer.CATCH) {
		p.advance()
		if p.curIs(lexer.LPAREN) {
			p.advance()
			stmt.CatchParam = p.cur.Literal
			p.advance()
			p.expect(lexer.RPAREN)
		}
		stmt.Handler = p.parseBlock()
	}
	if p.curIs(lexer.FINALLY) {
		p.advance()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseSwitchStmt() Stmt {
	t := p.cur
	p.advance()
	p.expect(lexer.LPAREN)
	subject := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)

	stmt := &SwitchStmt{base: base{P: posOf(t)}, Subject: subject}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		var c SwitchCase
		switch p.cur.Kind {
		case lexer.CASE:
			p.advance()
			c.Value = p.parseExpression(precLowest)
			p.expect(lexer.COLON)
		case lexer.DEFAULT:
			p.advance()
			p.expect(lexer.COLON)
		default:
			p.errorf("expected 'case' or 'default', got %s", p.cur.Kind)
			p.advance()
			continue
		}
		for !p.curIs(lexer.CASE) && !p.curIs(lexer.DEFAULT) && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			s := p.parseStatement()
			if s != nil {
				c.Body = append(c.Body, s)
			}
			p.skipSemicolons()
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(lexer.RBRACE)
	return stmt
}

func (p *Parser) parseImportStmt() Stmt {
	t := p.cur
	p.advance()
	stmt := &ImportStmt{base: base{P: posOf(t)}}
	if p.curIs(lexer.LBRACE) {
		p.advance()
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			name := p.cur.Literal
			p.advance()
			alias := name
			if p.curIs(lexer.AS) {
				p.advance()
				alias = p.cur.Literal
				p.advance()
			}
			stmt.Names = append(stmt.Names, ImportedName{Name: name, Alias: alias})
			if p.curIs(lexer.COMMA) {
				p.advance()
			}
		}
		p.expect(lexer.RBRACE)
	} else if p.curIs(lexer.IDENT) {
		stmt.Default = p.cur.Literal
		p.advance()
	}
	p.expect(lexer.FROM)
	stmt.Path = p.cur.Value.Str
	p.advance()
	p.consumeStmtEnd()
	return stmt
}

func (p *Parser) parseExportStmt() Stmt {
	t := p.cur
	p.advance()
	if p.curIs(lexer.LBRACE) {
		p.advance()
		stmt := &ExportStmt{base: base{P: posOf(t)}}
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			name := p.cur.Literal
			p.advance()
			alias := name
			if p.curIs(lexer.AS) {
				p.advance()
				alias = p.cur.Literal
				p.advance()
			}
			stmt.Names = append(stmt.Names, ImportedName{Name: name, Alias: alias})
			if p.curIs(lexer.COMMA) {
				p.advance()
			}
		}
		p.expect(lexer.RBRACE)
		p.consumeStmtEnd()
		return stmt
	}
	decl := p.parseStatement()
	return &ExportStmt{base: base{P: posOf(t)}, Decl: decl}
}
