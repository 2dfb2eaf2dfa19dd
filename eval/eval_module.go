/*
File   : slovo/eval/eval_module.go
Package: eval

Module statements (spec.md §4.6): `import`/`export` resolve and evaluate
through modules.Loader, with cycle safety coming entirely from the
loader's Begin-before-evaluate scheme (a cyclic import observes whatever
partial exports had been assigned so far, rather than deadlocking). A
module that never executes an `export` statement exports all of its
top-level bindings by default.
*/
package eval

import (
	"github.com/google/uuid"

	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalImportStmt(s *parser.ImportStmt, env *scope.Scope) (objects.Value, error) {
	exports, err := e.loadModule(s.Path, s.Pos())
	if err != nil {
		return nil, err
	}
	if s.Default != "" {
		env.Define(s.Default, exports, false)
		return objects.NoneValue, nil
	}
	for _, n := range s.Names {
		v, ok := exports.Get(n.Name)
		if !ok {
			v = objects.NoneValue
		}
		alias := n.Alias
		if alias == "" {
			alias = n.Name
		}
		env.Define(alias, v, false)
	}
	return objects.NoneValue, nil
}

func (e *Evaluator) evalImportExpr(n *parser.ImportExpr, env *scope.Scope) (objects.Value, error) {
	pathVal, err := e.Eval(n.Path, env)
	if err != nil {
		return nil, err
	}
	if isSignal(pathVal) {
		return pathVal, nil
	}
	path, ok := pathVal.(*objects.String)
	if !ok {
		return nil, e.errorf(n.Pos(), errors.TypeError, "import() path must be a string")
	}
	deferred := objects.NewDeferred(uuid.NewString())
	exports, loadErr := e.loadModule(path.Value, n.Pos())
	if loadErr != nil {
		deferred.Reject(loadErr)
	} else {
		deferred.Resolve(exports)
	}
	return deferred, nil
}

// loadModule resolves spec against the currently-evaluating file,
// evaluates the target's body if it hasn't started loading yet, and
// returns its (possibly still-partial, for a cyclic import) exports. If
// the body never runs an `export` statement, every top-level binding in
// its environment becomes an export (spec.md §4.6's default-export rule).
func (e *Evaluator) loadModule(spec string, pos parser.Pos) (*objects.Object, error) {
	path, err := e.Loader.Resolve(e.currentFile, spec)
	if err != nil {
		return nil, err
	}
	if m, ok := e.Loader.Get(path); ok {
		return m.Exports, nil
	}
	m, err := e.Loader.Begin(path)
	if err != nil {
		return nil, err
	}

	savedFile, savedExports, savedExported := e.currentFile, e.currentExports, e.currentExported
	e.currentFile, e.currentExports, e.currentExported = path, m.Exports, false
	defer func() { e.currentFile, e.currentExports, e.currentExported = savedFile, savedExports, savedExported }()

	moduleEnv := e.Globals.Child()
	if _, err := e.EvalProgramSource(m.Source, path, moduleEnv); err != nil {
		return nil, err
	}
	if !e.currentExported {
		for _, name := range moduleEnv.Names() {
			if val, ok := moduleEnv.Lookup(name); ok {
				m.Exports.Set(name, val)
			}
		}
	}
	e.Loader.Finish(path)
	return m.Exports, nil
}

func (e *Evaluator) evalExportStmt(s *parser.ExportStmt, env *scope.Scope) (objects.Value, error) {
	e.currentExported = true
	if s.Decl != nil {
		v, err := e.Eval(s.Decl, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		for _, name := range declaredNames(s.Decl) {
			if val, ok := env.Lookup(name); ok {
				e.currentExports.Set(name, val)
			}
		}
		return objects.NoneValue, nil
	}
	for _, n := range s.Names {
		val, ok := env.Lookup(n.Name)
		if !ok {
			return nil, e.errorf(s.Pos(), errors.ReferenceError, "undefined variable %q", n.Name)
		}
		alias := n.Alias
		if alias == "" {
			alias = n.Name
		}
		e.currentExports.Set(alias, val)
	}
	return objects.NoneValue, nil
}

// declaredNames flattens the names a let/const/function/class declaration
// binds, so `export` knows which global bindings to copy into the
// module's exports object.
func declaredNames(decl parser.Stmt) []string {
	switch d := decl.(type) {
	case *parser.LetStmt:
		return patternNames(d.Target)
	case *parser.ConstStmt:
		return patternNames(d.Target)
	case *parser.FunctionDeclStmt:
		return []string{d.Fn.Name}
	case *parser.ClassDeclStmt:
		return []string{d.Name}
	default:
		return nil
	}
}

func patternNames(p parser.Pattern) []string {
	switch t := p.(type) {
	case *parser.Identifier:
		return []string{t.Name}
	case *parser.ArrayPattern:
		var names []string
		for _, el := range t.Elements {
			names = append(names, patternNames(el.Target)...)
		}
		return names
	case *parser.ObjectPattern:
		var names []string
		for _, prop := range t.Props {
			names = append(names, patternNames(prop.Target)...)
		}
		if t.Rest != "" {
			names = append(names, t.Rest)
		}
		return names
	default:
		return nil
	}
}
