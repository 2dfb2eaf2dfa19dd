package parser

import (
	"testing"

	"github.com/slovolang/slovo/lexer"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()
	p := New(lexer.New(src, "test.slv"))
	prog := p.ParseProgram()
	require.Empty(t, p.Errors, "unexpected parse errors: %v", p.Errors)
	return prog
}

func TestParseLetAndBinary(t *testing.T) {
	prog := parse(t, `let x = 1 + 2 * 3;`)
	require.Len(t, prog.Statements, 1)
	let := prog.Statements[0].(*LetStmt)
	require.Equal(t, "x", let.Target.(*Identifier).Name)
	bin := let.Value.(*BinaryExpr)
	require.Equal(t, lexer.PLUS, bin.Op)
	require.Equal(t, float64(1), bin.Left.(*NumberLit).Value)
	mul := bin.Right.(*BinaryExpr)
	require.Equal(t, lexer.STAR, mul.Op)
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	prog := parse(t, `a = b = 3;`)
	stmt := prog.Statements[0].(*ExpressionStmt)
	outer := stmt.Expr.(*AssignmentExpr)
	require.Equal(t, "a", outer.Target.(*Identifier).Name)
	inner := outer.Value.(*AssignmentExpr)
	require.Equal(t, "b", inner.Target.(*Identifier).Name)
	require.Equal(t, float64(3), inner.Value.(*NumberLit).Value)
}

func TestParseCompoundAssignment(t *testing.T) {
	prog := parse(t, `x += 1;`)
	stmt := prog.Statements[0].(*ExpressionStmt)
	assign := stmt.Expr.(*AssignmentExpr)
	require.Equal(t, lexer.PLUS, assign.CompoundOp)
}

func TestParseCallMemberChain(t *testing.T) {
	prog := parse(t, `a.b.c(1, 2);`)
	stmt := prog.Statements[0].(*ExpressionStmt)
	call := stmt.Expr.(*CallExpr)
	require.Len(t, call.Args, 2)
	member := call.Callee.(*MemberExpr)
	require.Equal(t, "c", member.Property)
	inner := member.Object.(*MemberExpr)
	require.Equal(t, "b", inner.Property)
}

func TestParseIndexAssignment(t *testing.T) {
	prog := parse(t, `arr[0] = 5;`)
	stmt := prog.Statements[0].(*ExpressionStmt)
	assign := stmt.Expr.(*AssignmentExpr)
	_, ok := assign.Target.(*IndexExpr)
	require.True(t, ok)
}

func TestParseArrowFunctionExprBody(t *testing.T) {
	prog := parse(t, `let add = (a, b) => a + b;`)
	let := prog.Statements[0].(*LetStmt)
	fn := let.Value.(*FunctionExpr)
	require.True(t, fn.Arrow)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.ExprBody)
}

func TestParseArrowNoParensAmbiguity(t *testing.T) {
	prog := parse(t, `let f = () => { return 1; };`)
	let := prog.Statements[0].(*LetStmt)
	fn := let.Value.(*FunctionExpr)
	require.True(t, fn.Arrow)
	require.NotNil(t, fn.Body)
}

func TestParseGroupedVsSequence(t *testing.T) {
	prog := parse(t, `let x = (1, 2, 3);`)
	let := prog.Statements[0].(*LetStmt)
	seq := let.Value.(*SequenceExpr)
	require.Len(t, seq.Exprs, 3)
}

func TestParseTernary(t *testing.T) {
	prog := parse(t, `let x = a ? b : c;`)
	let := prog.Statements[0].(*LetStmt)
	tern := let.Value.(*TernaryExpr)
	require.NotNil(t, tern.Cond)
	require.NotNil(t, tern.Then)
	require.NotNil(t, tern.Else)
}

func TestParseIfElseIf(t *testing.T) {
	prog := parse(t, `if (a) { x(); } else if (b) { y(); } else { z(); }`)
	ifs := prog.Statements[0].(*IfStmt)
	elseIf := ifs.Else.(*IfStmt)
	require.NotNil(t, elseIf.Else)
}

func TestParseForLoop(t *testing.T) {
	prog := parse(t, `for (let i = 0; i < 10; i = i + 1) { print(i); }`)
	f := prog.Statements[0].(*ForStmt)
	require.NotNil(t, f.Init)
	require.NotNil(t, f.Cond)
	require.NotNil(t, f.Update)
}

func TestParseDestructuringLet(t *testing.T) {
	prog := parse(t, `let [a, b = 1, ...rest] = arr;`)
	let := prog.Statements[0].(*LetStmt)
	pat := let.Target.(*ArrayPattern)
	require.Len(t, pat.Elements, 3)
	require.True(t, pat.Elements[2].Rest)
	require.NotNil(t, pat.Elements[1].Default)
}

func TestParseObjectDestructuring(t *testing.T) {
	prog := parse(t, `let { a, b: renamed, ...rest } = obj;`)
	let := prog.Statements[0].(*LetStmt)
	pat := let.Target.(*ObjectPattern)
	require.Len(t, pat.Props, 2)
	require.Equal(t, "rest", pat.Rest)
}

func TestParseClassDecl(t *testing.T) {
	prog := parse(t, `
		class Animal {
			name = "unnamed";
			constructor(name) { this.name = name; }
			speak() { return this.name; }
			static count = 0;
		}
	`)
	cls := prog.Statements[0].(*ClassDeclStmt)
	require.Equal(t, "Animal", cls.Name)
	require.Len(t, cls.Methods, 2)
	require.Equal(t, MethodConstructor, cls.Methods[0].Kind)
	require.Len(t, cls.Fields, 2)
	require.True(t, cls.Fields[1].Static)
}

func TestParseClassExtends(t *testing.T) {
	prog := parse(t, `class Dog extends Animal { speak() { return super.speak(); } }`)
	cls := prog.Statements[0].(*ClassDeclStmt)
	require.Equal(t, "Animal", cls.Superclass)
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parse(t, `try { risky(); } catch (e) { handle(e); } finally { cleanup(); }`)
	tr := prog.Statements[0].(*TryStmt)
	require.Equal(t, "e", tr.CatchParam)
	require.NotNil(t, tr.Handler)
	require.NotNil(t, tr.Finally)
}

func TestParseSwitchFallthrough(t *testing.T) {
	prog := parse(t, `
		switch (x) {
			case 1:
			case 2:
				print("one or two");
				break;
			default:
				print("other");
		}
	`)
	sw := prog.Statements[0].(*SwitchStmt)
	require.Len(t, sw.Cases, 3)
	require.Empty(t, sw.Cases[0].Body)
	require.Nil(t, sw.Cases[2].Value)
}

func TestParseImportNamesWithAlias(t *testing.T) {
	prog := parse(t, `import { a, b as c } from "./mod.slv";`)
	imp := prog.Statements[0].(*ImportStmt)
	require.Equal(t, "./mod.slv", imp.Path)
	require.Len(t, imp.Names, 2)
	require.Equal(t, "c", imp.Names[1].Alias)
}

func TestParseTemplateLiteral(t *testing.T) {
	prog := parse(t, "let s = `hello ${name}!`;")
	let := prog.Statements[0].(*LetStmt)
	tmpl := let.Value.(*TemplateExpr)
	require.Len(t, tmpl.Parts, 3)
	require.Equal(t, "hello ", tmpl.Parts[0].Text)
	require.NotNil(t, tmpl.Parts[1].Expr)
	require.Equal(t, "!", tmpl.Parts[2].Text)
}

func TestParseRegexLiteral(t *testing.T) {
	prog := parse(t, `let r = /ab+c/gi;`)
	let := prog.Statements[0].(*LetStmt)
	re := let.Value.(*RegexLit)
	require.Equal(t, "ab+c", re.Pattern)
	require.Equal(t, "gi", re.Flags)
}

func TestParseNewWithMemberCallee(t *testing.T) {
	prog := parse(t, `let x = new pkg.Thing(1, 2);`)
	let := prog.Statements[0].(*LetStmt)
	n := let.Value.(*NewExpr)
	require.Len(t, n.Args, 2)
	_, ok := n.Callee.(*MemberExpr)
	require.True(t, ok)
}

func TestParseAwait(t *testing.T) {
	prog := parse(t, `async func f() { return await g(); }`)
	decl := prog.Statements[0].(*FunctionDeclStmt)
	require.True(t, decl.Fn.Async)
	ret := decl.Fn.Body.Statements[0].(*ReturnStmt)
	_, ok := ret.Value.(*AwaitExpr)
	require.True(t, ok)
}

func TestParseCyrillicKeywordsSameAST(t *testing.T) {
	ascii := parse(t, `if (true) { let x = 1; } else { let y = 2; }`)
	cyr := parse(t, `если (истина) { пусть x = 1; } иначе { пусть y = 2; }`)
	require.IsType(t, ascii.Statements[0], cyr.Statements[0])
}

func TestParseBitwiseAndShift(t *testing.T) {
	prog := parse(t, `let x = (a | b) ^ (c & d) << 2;`)
	let := prog.Statements[0].(*LetStmt)
	top := let.Value.(*BinaryExpr)
	require.Equal(t, lexer.BITXOR, top.Op)
}
