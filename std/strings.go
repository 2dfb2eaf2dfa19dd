/*
File   : slovo/std/strings.go
Package: std

String builtins, grounded on the teacher's std/strings.go function set,
retargeted to objects.String and rune-aware throughout (spec.md §3:
strings are UTF-8, indexed by codepoint rather than byte).
*/
package std

import (
	"fmt"
	"strings"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerStrings(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("upper", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("upper", args)
		if err != nil {
			return nil, err
		}
		return objects.NewString(strings.ToUpper(s)), nil
	}))

	ev.RegisterBuiltin(native("lower", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("lower", args)
		if err != nil {
			return nil, err
		}
		return objects.NewString(strings.ToLower(s)), nil
	}))

	ev.RegisterBuiltin(native("trim", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("trim", args)
		if err != nil {
			return nil, err
		}
		return objects.NewString(strings.TrimSpace(s)), nil
	}))

	ev.RegisterBuiltin(native("split", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("split", args, 2); err != nil {
			return nil, err
		}
		s, err := stringArg("split", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := stringArg("split", args, 1)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		elems := make([]objects.Value, len(parts))
		for i, p := range parts {
			elems[i] = objects.NewString(p)
		}
		return objects.NewArray(elems), nil
	}))

	ev.RegisterBuiltin(native("join", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("join", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("join", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := stringArg("join", args, 1)
		if err != nil {
			return nil, err
		}
		parts := make([]string, arr.Len())
		for i, v := range arr.Elements {
			parts[i] = v.ToString()
		}
		return objects.NewString(strings.Join(parts, sep)), nil
	}))

	ev.RegisterBuiltin(native("replace", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("replace", args, 3); err != nil {
			return nil, err
		}
		s, err := stringArg("replace", args, 0)
		if err != nil {
			return nil, err
		}
		old, err := stringArg("replace", args, 1)
		if err != nil {
			return nil, err
		}
		newS, err := stringArg("replace", args, 2)
		if err != nil {
			return nil, err
		}
		return objects.NewString(strings.ReplaceAll(s, old, newS)), nil
	}))

	ev.RegisterBuiltin(native("contains", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("contains", args, 2); err != nil {
			return nil, err
		}
		s, err := stringArg("contains", args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := stringArg("contains", args, 1)
		if err != nil {
			return nil, err
		}
		return objects.BoolOf(strings.Contains(s, sub)), nil
	}))

	ev.RegisterBuiltin(native("starts_with", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("starts_with", args, 2); err != nil {
			return nil, err
		}
		s, _ := stringArg("starts_with", args, 0)
		p, err := stringArg("starts_with", args, 1)
		if err != nil {
			return nil, err
		}
		return objects.BoolOf(strings.HasPrefix(s, p)), nil
	}))

	ev.RegisterBuiltin(native("ends_with", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("ends_with", args, 2); err != nil {
			return nil, err
		}
		s, _ := stringArg("ends_with", args, 0)
		p, err := stringArg("ends_with", args, 1)
		if err != nil {
			return nil, err
		}
		return objects.BoolOf(strings.HasSuffix(s, p)), nil
	}))

	ev.RegisterBuiltin(native("index_of", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("index_of", args, 2); err != nil {
			return nil, err
		}
		s, _ := stringArg("index_of", args, 0)
		sub, err := stringArg("index_of", args, 1)
		if err != nil {
			return nil, err
		}
		byteIdx := strings.Index(s, sub)
		if byteIdx < 0 {
			return objects.NewNumber(-1), nil
		}
		return objects.NewNumber(runeLen(s[:byteIdx])), nil
	}))

	ev.RegisterBuiltin(native("substring", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("substring", args, 3); err != nil {
			return nil, err
		}
		s, _ := stringArg("substring", args, 0)
		start, err := numberArg("substring", args, 1)
		if err != nil {
			return nil, err
		}
		end, err := numberArg("substring", args, 2)
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		lo, hi := clampRange(int(start), int(end), len(runes))
		return objects.NewString(string(runes[lo:hi])), nil
	}))

	ev.RegisterBuiltin(native("repeat", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("repeat", args, 2); err != nil {
			return nil, err
		}
		s, _ := stringArg("repeat", args, 0)
		n, err := numberArg("repeat", args, 1)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("repeat: count must be non-negative")
		}
		return objects.NewString(strings.Repeat(s, int(n))), nil
	}))

	ev.RegisterBuiltin(native("chars", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("chars", args)
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		elems := make([]objects.Value, len(runes))
		for i, r := range runes {
			elems[i] = objects.NewString(string(r))
		}
		return objects.NewArray(elems), nil
	}))
}

func oneString(name string, args []objects.Value) (string, error) {
	if err := requireArgs(name, args, 1); err != nil {
		return "", err
	}
	return stringArg(name, args, 0)
}

// clampRange normalizes a [start, end) rune-index window into the bounds
// of a length-n sequence (spec.md §4.5.6 index semantics: out-of-range
// bounds clamp rather than error).
func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < 0 {
		end = 0
	}
	if start > end {
		start = end
	}
	return start, end
}
