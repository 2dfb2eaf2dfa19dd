package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRelativePath(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.slv")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.slv"), []byte("export let x = 1;"), 0o644))

	l := NewLoader(dir, nil)
	path, err := l.Resolve(entry, "./util")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "util.slv"), path)
}

func TestResolvePackageRoot(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "pkgs")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "mathx.slv"), []byte("export let pi = 3;"), 0o644))

	l := NewLoader(dir, []string{root})
	path, err := l.Resolve(filepath.Join(dir, "main.slv"), "mathx")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "mathx.slv"), path)
}

func TestResolveMissingModule(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	_, err := l.Resolve("main.slv", "./missing")
	require.Error(t, err)
}

func TestBeginMarksLoadingAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.slv")
	require.NoError(t, os.WriteFile(path, []byte("export let x = 1;"), 0o644))

	l := NewLoader(dir, nil)
	m, err := l.Begin(path)
	require.NoError(t, err)
	require.True(t, m.Loading)

	cached, ok := l.Get(path)
	require.True(t, ok)
	require.Same(t, m, cached)

	l.Finish(path)
	require.False(t, cached.Loading)
}
