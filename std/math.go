/*
File   : slovo/std/math.go
Package: std

Numeric builtins, grounded on the teacher's std/math.go function set,
retargeted to the single Number variant (spec.md §3: no int/float split).
*/
package std

import (
	"math"
	"math/rand"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func unaryMath(name string, fn func(float64) float64) *objects.Native {
	return native(name, func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs(name, args, 1); err != nil {
			return nil, err
		}
		n, err := numberArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return objects.NewNumber(fn(n)), nil
	})
}

func registerMath(ev *eval.Evaluator) {
	ev.RegisterBuiltin(unaryMath("abs", math.Abs))
	ev.RegisterBuiltin(unaryMath("floor", math.Floor))
	ev.RegisterBuiltin(unaryMath("ceil", math.Ceil))
	ev.RegisterBuiltin(unaryMath("round", math.Round))
	ev.RegisterBuiltin(unaryMath("trunc", math.Trunc))
	ev.RegisterBuiltin(unaryMath("sqrt", math.Sqrt))
	ev.RegisterBuiltin(unaryMath("cbrt", math.Cbrt))
	ev.RegisterBuiltin(unaryMath("sin", math.Sin))
	ev.RegisterBuiltin(unaryMath("cos", math.Cos))
	ev.RegisterBuiltin(unaryMath("tan", math.Tan))
	ev.RegisterBuiltin(unaryMath("log", math.Log))
	ev.RegisterBuiltin(unaryMath("log2", math.Log2))
	ev.RegisterBuiltin(unaryMath("log10", math.Log10))
	ev.RegisterBuiltin(unaryMath("exp", math.Exp))

	ev.RegisterBuiltin(native("pow", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("pow", args, 2); err != nil {
			return nil, err
		}
		base, err := numberArg("pow", args, 0)
		if err != nil {
			return nil, err
		}
		exp, err := numberArg("pow", args, 1)
		if err != nil {
			return nil, err
		}
		return objects.NewNumber(math.Pow(base, exp)), nil
	}))

	ev.RegisterBuiltin(native("min", func(args []objects.Value) (objects.Value, error) {
		if err := requireMinArgs("min", args, 1); err != nil {
			return nil, err
		}
		return reduceNumbers("min", args, math.Min)
	}))

	ev.RegisterBuiltin(native("max", func(args []objects.Value) (objects.Value, error) {
		if err := requireMinArgs("max", args, 1); err != nil {
			return nil, err
		}
		return reduceNumbers("max", args, math.Max)
	}))

	ev.RegisterBuiltin(native("random", func(args []objects.Value) (objects.Value, error) {
		return objects.NewNumber(rand.Float64()), nil
	}))

	ev.RegisterBuiltin(native("random_int", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("random_int", args, 2); err != nil {
			return nil, err
		}
		lo, err := numberArg("random_int", args, 0)
		if err != nil {
			return nil, err
		}
		hi, err := numberArg("random_int", args, 1)
		if err != nil {
			return nil, err
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		span := int64(hi) - int64(lo) + 1
		return objects.NewNumber(float64(int64(lo) + rand.Int63n(span))), nil
	}))

	ev.RegisterBuiltin(native("is_nan", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("is_nan", args, 1); err != nil {
			return nil, err
		}
		n, err := numberArg("is_nan", args, 0)
		if err != nil {
			return nil, err
		}
		return objects.BoolOf(math.IsNaN(n)), nil
	}))

	ev.Globals.Define("PI", objects.NewNumber(math.Pi), true)
	ev.Globals.Define("E", objects.NewNumber(math.E), true)
}

func reduceNumbers(name string, args []objects.Value, pick func(a, b float64) float64) (objects.Value, error) {
	best, err := numberArg(name, args, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		n, err := numberArg(name, args, i)
		if err != nil {
			return nil, err
		}
		best = pick(best, n)
	}
	return objects.NewNumber(best), nil
}
