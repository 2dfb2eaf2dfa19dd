/*
File   : slovo/eval/evaluator.go
Package: eval

Package eval is the tree-walking evaluator (spec.md §4.4): it walks the
parser's AST directly against a scope.Scope chain, the same architecture
the teacher's eval/evaluator.go uses (Evaluator holding a root scope and a
builtin table), generalized from the teacher's GoMixObject value system to
objects.Value and from its single control-flow wrapper (ReturnValue) to a
small family of signal values covering return/break/continue/throw.
*/
package eval

import (
	"io"
	"os"
	"time"

	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/lexer"
	"github.com/slovolang/slovo/modules"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

// defaultMaxCallDepth bounds recursive Go-stack growth from CallClosure
// re-entering Eval; exceeding it raises a StackOverflowError rather than
// crashing the host process on a runaway recursive script (spec.md §7
// resource limits). Overridable per Evaluator via MaxCallDepth, wired from
// cmd/slovo's --stack-size flag.
const defaultMaxCallDepth = 2000

// Evaluator holds everything one running program/module graph shares: the
// global scope, the builtin registry bound into it, the module loader, and
// the host I/O streams `print`/`read_line` builtins write to.
type Evaluator struct {
	Globals  *scope.Scope
	Builtins map[string]*objects.Native
	Loader   *modules.Loader

	Out io.Writer
	In  io.Reader

	// MaxCallDepth overrides defaultMaxCallDepth when non-zero (--stack-size).
	MaxCallDepth int
	// Debug records the --debug flag. Nothing in the evaluator reads it, so
	// it does not change evaluation or produce any log output.
	Debug bool
	// Deadline, when non-zero, is checked at every block entry; once passed
	// a running program raises errors.TimeoutError instead of looping
	// forever (spec.md §5/§7, cmd/slovo's --no-timeout disables this).
	Deadline time.Time

	callDepth int

	// currentFile/currentExports track the module currently being evaluated,
	// saved and restored around a nested import so relative specifiers
	// resolve against the right directory and `export` writes land in the
	// right module's exports object (spec.md §4.6).
	currentFile    string
	currentExports *objects.Object
	// currentExported is set the first time an `export` statement runs
	// against currentExports. A module whose body finishes without ever
	// setting it falls back to exporting every top-level binding
	// (spec.md §4.6: "if none are listed, the exports default to all
	// top-level named bindings of the module").
	currentExported bool
}

// New builds an Evaluator with a fresh global scope. Builtins are
// registered separately by std.Install(ev) so eval has no import-time
// dependency on std (std depends on objects/eval instead).
func New(loader *modules.Loader) *Evaluator {
	return &Evaluator{
		Globals:  scope.New(nil),
		Builtins: map[string]*objects.Native{},
		Loader:   loader,
		Out:      os.Stdout,
		In:       os.Stdin,
	}
}

// RegisterBuiltin binds a native callable both into Builtins (for
// `import`-free global lookup) and directly into the global scope, mirroring
// the teacher's RegisterFunction, which bound a closure into Scp by name.
func (e *Evaluator) RegisterBuiltin(n *objects.Native) {
	e.Builtins[n.Name] = n
	e.Globals.Define(n.Name, n, true)
}

// Run parses and evaluates src as the program's entry module.
func (e *Evaluator) Run(src, file string) (objects.Value, error) {
	env := e.Globals.Child()
	e.currentFile = file
	e.currentExports = objects.NewObject()
	e.currentExported = false
	return e.EvalProgramSource(src, file, env)
}

func (e *Evaluator) EvalProgramSource(src, file string, env *scope.Scope) (objects.Value, error) {
	lx := lexer.New(src, file)
	p := parser.New(lx)
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		pe := p.Errors[0]
		return nil, errors.New(errors.SyntaxError, errors.Position{File: pe.Pos.File, Line: pe.Pos.Line, Column: pe.Pos.Column}, "%s", pe.Message)
	}
	return e.EvalProgram(prog, env)
}

// EvalProgram evaluates every top-level statement in order, returning the
// last statement's value (printed by `slovo eval` and the REPL; module
// loading ignores it) or a propagated signal/error.
func (e *Evaluator) EvalProgram(prog *parser.Program, env *scope.Scope) (objects.Value, error) {
	var last objects.Value = objects.NoneValue
	for _, stmt := range prog.Statements {
		v, err := e.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		if asBreak(v) || asContinue(v) {
			return nil, e.errorf(stmt.Pos(), errors.TypeError, "illegal break/continue: no enclosing loop or switch")
		}
		if isSignal(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

// Eval dispatches a single AST node. It returns (value, error) where error
// is always a *errors.RuntimeError; control-flow (return/break/continue)
// is carried as a signal Value rather than an error, since it is not a
// failure and must reach the enclosing loop/function/switch to be resolved
// (see signals.go).
func (e *Evaluator) Eval(node parser.Node, env *scope.Scope) (objects.Value, error) {
	switch n := node.(type) {
	case *parser.Program:
		return e.EvalProgram(n, env)
	case parser.Stmt:
		return e.evalStmt(n, env)
	case parser.Expr:
		return e.evalExpr(n, env)
	default:
		return nil, e.errorf(node.Pos(), errors.InternalError, "unhandled node type %T", node)
	}
}

func (e *Evaluator) errorf(pos parser.Pos, kind errors.Kind, format string, args ...any) *errors.RuntimeError {
	return errors.New(kind, errors.Position{File: pos.File, Line: pos.Line, Column: pos.Column}, format, args...)
}

// checkDeadline reports a TimeoutError once e.Deadline has passed. Called at
// block entry, so it bounds both deep recursion and tight loops without
// needing a check at every single expression.
func (e *Evaluator) checkDeadline(pos parser.Pos) error {
	if e.Deadline.IsZero() || time.Now().Before(e.Deadline) {
		return nil
	}
	return e.errorf(pos, errors.TimeoutError, "execution exceeded its time budget")
}
