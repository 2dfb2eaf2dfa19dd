/*
File   : slovo/std/common.go
Package: std

Package std is the builtin-function registry (spec.md §6): each file here
registers one concern's natives into an *eval.Evaluator, generalizing the
teacher's std/common.go Builtins-slice-plus-init() pattern into a single
Install(ev) entrypoint so registration order is explicit instead of
depending on package-init ordering.
*/
package std

import (
	"fmt"
	"unicode/utf8"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/function"
	"github.com/slovolang/slovo/objects"
)

func runeLen(s string) float64 { return float64(utf8.RuneCountInString(s)) }

// Install registers every builtin concern into ev's global scope. Called
// by cmd/slovo for every Evaluator it builds (including each REPL session)
// before running any program source.
func Install(ev *eval.Evaluator) {
	registerCommon(ev)
	registerIO(ev)
	registerMath(ev)
	registerStrings(ev)
	registerArrays(ev)
	registerObjects(ev)
	registerJSON(ev)
	registerTime(ev)
	registerRegex(ev)
	registerCrypto(ev)
	registerOS(ev)
	registerFileIO(ev)
	registerHTTP(ev)
}

func native(name string, fn func(args []objects.Value) (objects.Value, error)) *objects.Native {
	return &objects.Native{Name: name, Fn: fn}
}

func argError(name string, want int, got int) error {
	return fmt.Errorf("%s: wrong number of arguments, got %d, want %d", name, got, want)
}

func requireArgs(name string, args []objects.Value, n int) error {
	if len(args) != n {
		return argError(name, n, len(args))
	}
	return nil
}

func requireMinArgs(name string, args []objects.Value, n int) error {
	if len(args) < n {
		return fmt.Errorf("%s: wrong number of arguments, got %d, want at least %d", name, len(args), n)
	}
	return nil
}

func stringArg(name string, args []objects.Value, i int) (string, error) {
	s, ok := args[i].(*objects.String)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %s", name, i+1, objects.TypeName(args[i]))
	}
	return s.Value, nil
}

func numberArg(name string, args []objects.Value, i int) (float64, error) {
	n, ok := args[i].(*objects.Number)
	if !ok {
		return 0, fmt.Errorf("%s: argument %d must be a number, got %s", name, i+1, objects.TypeName(args[i]))
	}
	return n.Value, nil
}

func arrayArg(name string, args []objects.Value, i int) (*objects.Array, error) {
	a, ok := args[i].(*objects.Array)
	if !ok {
		return nil, fmt.Errorf("%s: argument %d must be an array, got %s", name, i+1, objects.TypeName(args[i]))
	}
	return a, nil
}

func objectArg(name string, args []objects.Value, i int) (*objects.Object, error) {
	o, ok := args[i].(*objects.Object)
	if !ok {
		return nil, fmt.Errorf("%s: argument %d must be an object, got %s", name, i+1, objects.TypeName(args[i]))
	}
	return o, nil
}

func registerCommon(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("typeof", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("typeof", args, 1); err != nil {
			return nil, err
		}
		return objects.NewString(string(args[0].GetType())), nil
	}))

	ev.RegisterBuiltin(native("to_string", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("to_string", args, 1); err != nil {
			return nil, err
		}
		return objects.NewString(args[0].ToString()), nil
	}))

	ev.RegisterBuiltin(native("to_number", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("to_number", args, 1); err != nil {
			return nil, err
		}
		n, ok := objects.CoerceNumber(args[0])
		if !ok {
			return nil, fmt.Errorf("to_number: cannot convert %s to a number", objects.TypeName(args[0]))
		}
		return objects.NewNumber(n), nil
	}))

	ev.RegisterBuiltin(native("to_bool", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("to_bool", args, 1); err != nil {
			return nil, err
		}
		return objects.BoolOf(objects.Truthy(args[0])), nil
	}))

	ev.RegisterBuiltin(native("length", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("length", args, 1); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case *objects.String:
			return objects.NewNumber(runeLen(v.Value)), nil
		case *objects.Array:
			return objects.NewNumber(float64(v.Len())), nil
		case *objects.Object:
			return objects.NewNumber(float64(v.Len())), nil
		default:
			return nil, fmt.Errorf("length: unsupported type %s", objects.TypeName(v))
		}
	}))

	ev.RegisterBuiltin(native("is_instance_of", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("is_instance_of", args, 2); err != nil {
			return nil, err
		}
		inst, ok := args[0].(*function.Instance)
		if !ok {
			return objects.False, nil
		}
		cls, ok := args[1].(*function.Class)
		if !ok {
			return nil, fmt.Errorf("is_instance_of: second argument must be a class")
		}
		return objects.BoolOf(inst.Class.IsSubclassOf(cls)), nil
	}))
}
