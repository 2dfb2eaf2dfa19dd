package objects

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruthiness(t *testing.T) {
	require.False(t, Truthy(NoneValue))
	require.False(t, Truthy(False))
	require.False(t, Truthy(NewString("")))
	require.False(t, Truthy(NewNumber(0)))
	require.True(t, Truthy(NewNumber(1)))
	require.True(t, Truthy(NewString("x")))
	require.True(t, Truthy(NewArray(nil)))
}

func TestEqualMixedNumberString(t *testing.T) {
	require.True(t, Equal(NewNumber(3), NewString("3")))
	require.False(t, Equal(NewNumber(3), NewString("3.1")))
	require.True(t, Equal(NoneValue, NoneValue))
}

func TestArrayAppendAtLength(t *testing.T) {
	a := NewArray([]Value{NewNumber(1), NewNumber(2)})
	require.True(t, a.Set(2, NewNumber(3)))
	require.Equal(t, 3, a.Len())
	require.False(t, a.Set(5, NewNumber(9)))
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", NewNumber(1))
	o.Set("a", NewNumber(2))
	require.Equal(t, []string{"b", "a"}, o.Keys())
}

func TestArraysAreReferenceShared(t *testing.T) {
	a := NewArray([]Value{NewNumber(1)})
	b := a
	b.Set(0, NewNumber(42))
	v, _ := a.Get(0)
	require.Equal(t, float64(42), v.(*Number).Value)
}
