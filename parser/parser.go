/*
File   : slovo/parser/parser.go
Package: parser

Parser is a Pratt (top-down operator precedence) parser over the teacher's
UnaryFuncs/BinaryFuncs dispatch idiom, generalized from the teacher's
handful of operators to spec.md §4.2's full 16-level precedence table.
prefixFns and infixFns are keyed by lexer.TokenKind exactly like the
teacher's maps were keyed by its smaller token-kind set.
*/
package parser

import (
	"fmt"

	"github.com/slovolang/slovo/lexer"
)

type prefixParseFn func() Expr
type infixParseFn func(left Expr) Expr

// precedence levels, lowest to highest, per spec.md §4.2.
const (
	_ int = iota
	precLowest
	precAssign
	precTernary
	precLogicalOr
	precLogicalAnd
	precEquality
	precRelational
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precCallMember
)

var precedences = map[lexer.TokenKind]int{
	lexer.OR:       precLogicalOr,
	lexer.AND:      precLogicalAnd,
	lexer.EQ:       precEquality,
	lexer.NEQ:      precEquality,
	lexer.LT:       precRelational,
	lexer.LE:       precRelational,
	lexer.GT:       precRelational,
	lexer.GE:       precRelational,
	lexer.BITOR:    precBitOr,
	lexer.BITXOR:   precBitXor,
	lexer.BITAND:   precBitAnd,
	lexer.SHL:      precShift,
	lexer.SHR:      precShift,
	lexer.PLUS:     precAdditive,
	lexer.MINUS:    precAdditive,
	lexer.STAR:     precMultiplicative,
	lexer.SLASH:    precMultiplicative,
	lexer.PERCENT:  precMultiplicative,
	lexer.POW:      precExponent,
	lexer.LPAREN:   precCallMember,
	lexer.DOT:      precCallMember,
	lexer.LBRACKET: precCallMember,
}

// ParseError is a syntax error with source position (spec.md §4.2).
type ParseError struct {
	Message string
	Pos     Pos
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.File, e.Pos.Line, e.Pos.Column, e.Message)
}

// Parser consumes a token stream from lexer.Lexer and builds an AST. It
// never panics on malformed input: errors accumulate in Errors and parsing
// continues on a best-effort basis at statement boundaries, matching the
// teacher's error-collecting style rather than a fail-fast one.
type Parser struct {
	lex *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	prefixFns map[lexer.TokenKind]prefixParseFn
	infixFns  map[lexer.TokenKind]infixParseFn

	Errors []*ParseError
}

// New builds a Parser reading from lex and primes the two-token lookahead.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.prefixFns = map[lexer.TokenKind]prefixParseFn{}
	p.infixFns = map[lexer.TokenKind]infixParseFn{}
	p.registerPrefix()
	p.registerInfix()

	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) curIs(k lexer.TokenKind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k lexer.TokenKind) bool { return p.peek.Kind == k }

// expect advances past cur if it matches k, else records a syntax error and
// does not advance (so the caller's statement-boundary recovery can skip
// forward).
func (p *Parser) expect(k lexer.TokenKind) bool {
	if p.curIs(k) {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %s %q", k, p.cur.Kind, p.cur.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.Errors = append(p.Errors, &ParseError{Message: fmt.Sprintf(format, args...), Pos: posOf(p.cur)})
}

// currentPrecedence reports the binding power of p.cur as an infix
// operator. Every prefix/infix parse function consumes exactly the tokens
// it owns, so by the time control returns to the parseExpression loop, cur
// already holds the next candidate operator (not peek).
func (p *Parser) currentPrecedence() int {
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	if p.cur.Kind == lexer.ASSIGN || isCompoundAssign(p.cur.Kind) {
		return precAssign
	}
	if p.cur.Kind == lexer.QUESTION {
		return precTernary
	}
	return precLowest
}

func isCompoundAssign(k lexer.TokenKind) bool {
	switch k {
	case lexer.PLUSEQ, lexer.MINUSEQ, lexer.STAREQ, lexer.SLASHEQ, lexer.PERCENEQ:
		return true
	default:
		return false
	}
}

// compoundOp maps a `+=`-family TokenKind to the underlying binary operator
// it desugars to at evaluation time.
func compoundOp(k lexer.TokenKind) lexer.TokenKind {
	switch k {
	case lexer.PLUSEQ:
		return lexer.PLUS
	case lexer.MINUSEQ:
		return lexer.MINUS
	case lexer.STAREQ:
		return lexer.STAR
	case lexer.SLASHEQ:
		return lexer.SLASH
	case lexer.PERCENEQ:
		return lexer.PERCENT
	default:
		return ""
	}
}

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{base: base{P: posOf(p.cur)}}
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipSemicolons()
	}
	return prog
}

func (p *Parser) skipSemicolons() {
	for p.curIs(lexer.SEMI) {
		p.advance()
	}
}

// parseExpression is the Pratt loop: parse a prefix term then repeatedly
// fold in infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) Expr {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.errorf("unexpected token %s %q in expression", p.cur.Kind, p.cur.Literal)
		p.advance()
		return nil
	}
	left := prefix()

	for !p.curIs(lexer.SEMI) && !p.curIs(lexer.EOF) && minPrec < p.currentPrecedence() {
		kind := p.cur.Kind
		if kind == lexer.ASSIGN || isCompoundAssign(kind) || kind == lexer.QUESTION {
			left = p.parseInfixSpecial(kind, left)
			continue
		}
		infix, ok := p.infixFns[kind]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

// parseInfixSpecial handles the operators the generic infixFns dispatch
// can't, because their right operand's minimum precedence depends on which
// operator matched (assignment/ternary are right-associative). Entry: cur
// is the operator token itself.
func (p *Parser) parseInfixSpecial(kind lexer.TokenKind, left Expr) Expr {
	pos := left.Pos()
	switch kind {
	case lexer.ASSIGN:
		p.advance()
		value := p.parseExpression(precAssign - 1)
		return &AssignmentExpr{base: base{P: pos}, Target: left, Value: value}
	case lexer.QUESTION:
		p.advance()
		then := p.parseExpression(precTernary)
		if !p.expect(lexer.COLON) {
			return left
		}
		otherwise := p.parseExpression(precTernary - 1)
		return &TernaryExpr{base: base{P: pos}, Cond: left, Then: then, Else: otherwise}
	default:
		p.advance()
		value := p.parseExpression(precAssign - 1)
		return &AssignmentExpr{base: base{P: pos}, Target: left, CompoundOp: compoundOp(kind), Value: value}
	}
}
