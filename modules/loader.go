/*
File   : slovo/modules/loader.go
Package: modules

Package modules resolves and caches the module graph (spec.md §4.6):
file-relative (`./`, `../`) paths resolve against the importing file's
directory; bare names resolve by search through a package-root list (the
generalization of the teacher's file/file.go, which only ever read a
single script path, into a real multi-root lookup). Cycle safety follows
spec.md's prescribed scheme: a module is marked "loading" and inserted
into the cache, with its (still-being-populated) exports object, before
its body is evaluated — a cyclic import observes whatever exports had
already been assigned by the time the cycle closes, not a deadlock or a
second re-evaluation.
*/
package modules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/objects"
)

// Module is one resolved, cached unit of the module graph.
type Module struct {
	Path    string // resolved path as returned by Resolve (not made absolute)
	Source  string
	Exports *objects.Object
	Loading bool
}

// Loader resolves import specifiers to source files and caches the result
// of loading each one exactly once. It does not itself evaluate module
// bodies — eval.Evaluator drives that, calling Begin/Finish around the
// evaluation — so this package has no dependency on eval and no import
// cycle results.
type Loader struct {
	EntryDir     string
	PackageRoots []string

	cache map[string]*Module
}

func NewLoader(entryDir string, packageRoots []string) *Loader {
	return &Loader{EntryDir: entryDir, PackageRoots: packageRoots, cache: map[string]*Module{}}
}

// Resolve turns an import specifier, as written in fromFile, into a
// cleaned source path; it is absolute only when fromFile or the matching
// package root is. Specifiers starting with `./` or `../` resolve relative
// to fromFile's directory; anything else is a package name searched for
// under each PackageRoots entry (spec.md §4.6). Either way `.slv` is
// appended unless already present; no other extension, index file or
// package manifest is tried.
func (l *Loader) Resolve(fromFile, spec string) (string, error) {
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		dir := filepath.Dir(fromFile)
		return l.withExt(filepath.Join(dir, spec)), nil
	}
	for _, root := range l.PackageRoots {
		candidate := l.withExt(filepath.Join(root, spec))
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.New(errors.ImportError, errors.Position{File: fromFile}, "cannot resolve module %q", spec)
}

func (l *Loader) withExt(path string) string {
	if strings.HasSuffix(path, ".slv") {
		return path
	}
	return path + ".slv"
}

// Get returns the cached module at path, if loading has already started.
func (l *Loader) Get(path string) (*Module, bool) {
	m, ok := l.cache[path]
	return m, ok
}

// Begin registers path as in-progress, reading its source and installing
// an empty (not yet populated) exports object into the cache before the
// caller evaluates the body — this is the step that makes a cyclic
// `import` observe partial exports instead of recursing forever.
func (l *Loader) Begin(path string) (*Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ImportError, errors.Position{File: path}, "cannot read module: %v", err)
	}
	m := &Module{Path: path, Source: string(src), Exports: objects.NewObject(), Loading: true}
	l.cache[path] = m
	return m, nil
}

// Finish marks a module's body as fully evaluated.
func (l *Loader) Finish(path string) {
	if m, ok := l.cache[path]; ok {
		m.Loading = false
	}
}
