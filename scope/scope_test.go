package scope

import (
	"testing"

	"github.com/slovolang/slovo/objects"
	"github.com/stretchr/testify/require"
)

func TestChildShadowsParent(t *testing.T) {
	root := New(nil)
	root.Define("x", objects.NewNumber(1), false)
	child := root.Child()
	child.Define("x", objects.NewNumber(2), false)

	v, _ := child.Lookup("x")
	require.Equal(t, float64(2), v.(*objects.Number).Value)

	v, _ = root.Lookup("x")
	require.Equal(t, float64(1), v.(*objects.Number).Value)
}

func TestConstCannotBeReassigned(t *testing.T) {
	s := New(nil)
	s.Define("PI", objects.NewNumber(3.14), true)
	err := s.Assign("PI", objects.NewNumber(3.15))
	require.ErrorIs(t, err, ErrConst)
}

func TestChildCanShadowParentConst(t *testing.T) {
	root := New(nil)
	root.Define("PI", objects.NewNumber(3.14), true)
	child := root.Child()
	child.Define("PI", objects.NewNumber(9), false)
	require.NoError(t, child.Assign("PI", objects.NewNumber(10)))
	v, _ := child.Lookup("PI")
	require.Equal(t, float64(10), v.(*objects.Number).Value)
}

func TestAssignWritesNearestAncestorBinding(t *testing.T) {
	root := New(nil)
	root.Define("n", objects.NewNumber(0), false)
	child := root.Child()
	require.NoError(t, child.Assign("n", objects.NewNumber(5)))
	v, _ := root.Lookup("n")
	require.Equal(t, float64(5), v.(*objects.Number).Value)
}

func TestAssignUndefinedFails(t *testing.T) {
	s := New(nil)
	require.ErrorIs(t, s.Assign("missing", objects.NewNumber(1)), ErrUndefined)
}
