/*
File   : slovo/std/arrays.go
Package: std

Array builtins, grounded on the teacher's std/arrays.go function set
(push/pop/sort/map/filter/reduce/find/...), retargeted to objects.Array
and, for the callback-taking methods, ev.CallAny to invoke script
closures from Go (spec.md §6).
*/
package std

import (
	"sort"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerArrays(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("push", func(args []objects.Value) (objects.Value, error) {
		if err := requireMinArgs("push", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("push", args, 0)
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, args[1:]...)
		return objects.NewNumber(float64(arr.Len())), nil
	}))

	ev.RegisterBuiltin(native("pop", func(args []objects.Value) (objects.Value, error) {
		arr, err := arrayArg("pop", args, 0)
		if err != nil {
			return nil, err
		}
		if arr.Len() == 0 {
			return objects.NoneValue, nil
		}
		last := arr.Elements[arr.Len()-1]
		arr.Elements = arr.Elements[:arr.Len()-1]
		return last, nil
	}))

	ev.RegisterBuiltin(native("shift", func(args []objects.Value) (objects.Value, error) {
		arr, err := arrayArg("shift", args, 0)
		if err != nil {
			return nil, err
		}
		if arr.Len() == 0 {
			return objects.NoneValue, nil
		}
		first := arr.Elements[0]
		arr.Elements = arr.Elements[1:]
		return first, nil
	}))

	ev.RegisterBuiltin(native("unshift", func(args []objects.Value) (objects.Value, error) {
		if err := requireMinArgs("unshift", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("unshift", args, 0)
		if err != nil {
			return nil, err
		}
		arr.Elements = append(append([]objects.Value{}, args[1:]...), arr.Elements...)
		return objects.NewNumber(float64(arr.Len())), nil
	}))

	ev.RegisterBuiltin(native("slice", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("slice", args, 3); err != nil {
			return nil, err
		}
		arr, err := arrayArg("slice", args, 0)
		if err != nil {
			return nil, err
		}
		start, err := numberArg("slice", args, 1)
		if err != nil {
			return nil, err
		}
		end, err := numberArg("slice", args, 2)
		if err != nil {
			return nil, err
		}
		lo, hi := clampRange(int(start), int(end), arr.Len())
		out := append([]objects.Value{}, arr.Elements[lo:hi]...)
		return objects.NewArray(out), nil
	}))

	ev.RegisterBuiltin(native("concat", func(args []objects.Value) (objects.Value, error) {
		var out []objects.Value
		for i := range args {
			a, err := arrayArg("concat", args, i)
			if err != nil {
				return nil, err
			}
			out = append(out, a.Elements...)
		}
		return objects.NewArray(out), nil
	}))

	ev.RegisterBuiltin(native("reverse", func(args []objects.Value) (objects.Value, error) {
		arr, err := arrayArg("reverse", args, 0)
		if err != nil {
			return nil, err
		}
		out := make([]objects.Value, arr.Len())
		for i, v := range arr.Elements {
			out[arr.Len()-1-i] = v
		}
		return objects.NewArray(out), nil
	}))

	ev.RegisterBuiltin(native("includes", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("includes", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("includes", args, 0)
		if err != nil {
			return nil, err
		}
		for _, v := range arr.Elements {
			if objects.Equal(v, args[1]) {
				return objects.True, nil
			}
		}
		return objects.False, nil
	}))

	ev.RegisterBuiltin(native("index_of_element", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("index_of_element", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("index_of_element", args, 0)
		if err != nil {
			return nil, err
		}
		for i, v := range arr.Elements {
			if objects.Equal(v, args[1]) {
				return objects.NewNumber(float64(i)), nil
			}
		}
		return objects.NewNumber(-1), nil
	}))

	ev.RegisterBuiltin(native("map", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("map", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("map", args, 0)
		if err != nil {
			return nil, err
		}
		out := make([]objects.Value, arr.Len())
		for i, v := range arr.Elements {
			r, err := ev.CallAny(args[1], []objects.Value{v, objects.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return objects.NewArray(out), nil
	}))

	ev.RegisterBuiltin(native("filter", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("filter", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("filter", args, 0)
		if err != nil {
			return nil, err
		}
		var out []objects.Value
		for i, v := range arr.Elements {
			r, err := ev.CallAny(args[1], []objects.Value{v, objects.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
			if objects.Truthy(r) {
				out = append(out, v)
			}
		}
		return objects.NewArray(out), nil
	}))

	ev.RegisterBuiltin(native("reduce", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("reduce", args, 3); err != nil {
			return nil, err
		}
		arr, err := arrayArg("reduce", args, 0)
		if err != nil {
			return nil, err
		}
		acc := args[2]
		for i, v := range arr.Elements {
			acc, err = ev.CallAny(args[1], []objects.Value{acc, v, objects.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}))

	ev.RegisterBuiltin(native("find", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("find", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("find", args, 0)
		if err != nil {
			return nil, err
		}
		for i, v := range arr.Elements {
			r, err := ev.CallAny(args[1], []objects.Value{v, objects.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
			if objects.Truthy(r) {
				return v, nil
			}
		}
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("some", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("some", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("some", args, 0)
		if err != nil {
			return nil, err
		}
		for i, v := range arr.Elements {
			r, err := ev.CallAny(args[1], []objects.Value{v, objects.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
			if objects.Truthy(r) {
				return objects.True, nil
			}
		}
		return objects.False, nil
	}))

	ev.RegisterBuiltin(native("every", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("every", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("every", args, 0)
		if err != nil {
			return nil, err
		}
		for i, v := range arr.Elements {
			r, err := ev.CallAny(args[1], []objects.Value{v, objects.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
			if !objects.Truthy(r) {
				return objects.False, nil
			}
		}
		return objects.True, nil
	}))

	ev.RegisterBuiltin(native("sort", func(args []objects.Value) (objects.Value, error) {
		arr, err := arrayArg("sort", args, 0)
		if err != nil {
			return nil, err
		}
		out := append([]objects.Value{}, arr.Elements...)
		sort.SliceStable(out, func(i, j int) bool {
			return defaultLess(out[i], out[j])
		})
		return objects.NewArray(out), nil
	}))

	ev.RegisterBuiltin(native("sort_by", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("sort_by", args, 2); err != nil {
			return nil, err
		}
		arr, err := arrayArg("sort_by", args, 0)
		if err != nil {
			return nil, err
		}
		out := append([]objects.Value{}, arr.Elements...)
		var cbErr error
		sort.SliceStable(out, func(i, j int) bool {
			if cbErr != nil {
				return false
			}
			r, err := ev.CallAny(args[1], []objects.Value{out[i], out[j]})
			if err != nil {
				cbErr = err
				return false
			}
			n, _ := objects.CoerceNumber(r)
			return n < 0
		})
		if cbErr != nil {
			return nil, cbErr
		}
		return objects.NewArray(out), nil
	}))
}

func defaultLess(a, b objects.Value) bool {
	if an, ok := a.(*objects.Number); ok {
		if bn, ok := b.(*objects.Number); ok {
			return an.Value < bn.Value
		}
	}
	return a.ToString() < b.ToString()
}
