/*
File   : slovo/parser/ast_expr.go
Package: parser
*/
package parser

import "github.com/slovolang/slovo/lexer"

// BinaryExpr covers every arithmetic, comparison, logical, and bitwise
// infix operator (spec.md §4.2); Op is the lexer.TokenKind text (e.g. "+",
// "&&", "<<") so the evaluator dispatches on one string switch.
type BinaryExpr struct {
	base
	Op          lexer.TokenKind
	Left, Right Expr
}

func (*BinaryExpr) expr() {}

// UnaryExpr covers prefix -, !, ~ (spec.md §4.2.3).
type UnaryExpr struct {
	base
	Op      lexer.TokenKind
	Operand Expr
}

func (*UnaryExpr) expr() {}

// AssignmentExpr is `target = value` where target is an Identifier,
// MemberExpr, or IndexExpr (spec.md §4.4). CompoundOp is empty for plain
// `=`, otherwise the underlying arithmetic op of a `+=`-family operator.
type AssignmentExpr struct {
	base
	Target     Expr
	CompoundOp lexer.TokenKind
	Value      Expr
}

func (*AssignmentExpr) expr() {}

// CallExpr applies Callee to Args.
type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func (*CallExpr) expr() {}

// SpreadExpr marks `...expr` inside a call argument list or array literal
// (spec.md §4.5.2/§4.5.5).
type SpreadExpr struct {
	base
	Operand Expr
}

func (*SpreadExpr) expr() {}

// MemberExpr is `object.property`. Optional is never set by this parser:
// the lexer has no `?.` token, so `object?.property` does not parse.
type MemberExpr struct {
	base
	Object   Expr
	Property string
	Optional bool
}

func (*MemberExpr) expr() {}

// IndexExpr is `object[index]`.
type IndexExpr struct {
	base
	Object Expr
	Index  Expr
}

func (*IndexExpr) expr() {}

// NewExpr is `new Callee(Args...)` (spec.md §4.8.3).
type NewExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func (*NewExpr) expr() {}

// TernaryExpr is `cond ? then : otherwise`.
type TernaryExpr struct {
	base
	Cond, Then, Else Expr
}

func (*TernaryExpr) expr() {}

// SequenceExpr is a parenthesized comma-separated expression sequence,
// `(a, b, c)` (spec.md §4.5.6), evaluated left to right for its last value.
type SequenceExpr struct {
	base
	Exprs []Expr
}

func (*SequenceExpr) expr() {}

// AwaitExpr suspends the enclosing async function until Operand (expected
// to be a Deferred) resolves (spec.md §5).
type AwaitExpr struct {
	base
	Operand Expr
}

func (*AwaitExpr) expr() {}

// ArrayExpr is an array literal; elements may themselves be SpreadExpr.
type ArrayExpr struct {
	base
	Elements []Expr
}

func (*ArrayExpr) expr() {}

// ObjectProp is one `key: value` entry of an ObjectExpr, or a bare
// shorthand `key` (Shorthand is true and Value is an Identifier named Key),
// or a `...expr` spread entry (Spread != nil).
type ObjectProp struct {
	Key       string
	Computed  Expr // non-nil for `[expr]: value` keys
	Value     Expr
	Shorthand bool
	Spread    Expr
}

// ObjectExpr is an object literal (spec.md §4.5.3).
type ObjectExpr struct {
	base
	Props []ObjectProp
}

func (*ObjectExpr) expr() {}

// TemplatePart is one chunk of a template literal: either a literal string
// run (Expr == nil) or an interpolated `${expr}`.
type TemplatePart struct {
	Text string
	Expr Expr
}

// TemplateExpr is a backtick string literal with interpolation (spec.md
// §4.5.7); regex literals are a separate node, RegexLit.
type TemplateExpr struct {
	base
	Parts []TemplatePart
}

func (*TemplateExpr) expr() {}

// RegexLit is a `/pattern/flags` literal (spec.md §4.5.9).
type RegexLit struct {
	base
	Pattern string
	Flags   string
}

func (*RegexLit) expr() {}

// Param is one function/method parameter: either a Pattern binding with an
// optional default (Default != nil), or, when Rest is true, a `...name`
// collector (spec.md §4.5.3/§4.4).
type Param struct {
	Target  Pattern
	Default Expr
	Rest    bool
}

// FunctionExpr is a `func`/arrow function value (spec.md §4.4, §4.8).
// Arrow marks `(...) => expr-or-block`; Async marks a cooperative async
// function (spec.md §5); Name is empty for anonymous functions/arrows.
type FunctionExpr struct {
	base
	Name      string
	Params    []Param
	Body      *BlockStmt
	ExprBody  Expr // non-nil for an arrow with an expression body
	Arrow     bool
	Async     bool
}

func (*FunctionExpr) expr() {}

// ImportExpr is the dynamic `import(path)` form, resolving to a Deferred
// of the target module's export object (spec.md §4.6).
type ImportExpr struct {
	base
	Path Expr
}

func (*ImportExpr) expr() {}
