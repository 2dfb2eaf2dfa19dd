package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(TypeError, Position{File: "a.slv", Line: 3, Column: 7}, "cannot add %s and %s", "number", "object")
	require.Equal(t, "a.slv:3:7: TypeError: cannot add number and object", err.Error())
}

func TestWithFrameAccumulatesInnermostFirst(t *testing.T) {
	err := New(ReferenceError, Position{File: "a.slv", Line: 1, Column: 1}, "undefined variable %q", "x")
	err.WithFrame(Frame{FuncName: "inner", File: "a.slv", Line: 5, Column: 2})
	err.WithFrame(Frame{FuncName: "outer", File: "a.slv", Line: 10, Column: 1})
	require.Len(t, err.Stack, 2)
	require.Equal(t, "inner", err.Stack[0].FuncName)
	require.Contains(t, err.FormatStack(), "inner (a.slv:5:2)")
}
