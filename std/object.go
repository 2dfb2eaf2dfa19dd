/*
File   : slovo/std/object.go
Package: std

Object builtins, grounded on the teacher's std/map.go function set
(keys/values/has/merge/...), retargeted to objects.Object — spec.md §3
makes the object map a core value type rather than a library type, so
this file covers what used to be the teacher's separate Map builtin type.
*/
package std

import (
	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerObjects(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("keys", func(args []objects.Value) (objects.Value, error) {
		o, err := oneObject("keys", args)
		if err != nil {
			return nil, err
		}
		ks := o.Keys()
		elems := make([]objects.Value, len(ks))
		for i, k := range ks {
			elems[i] = objects.NewString(k)
		}
		return objects.NewArray(elems), nil
	}))

	ev.RegisterBuiltin(native("values", func(args []objects.Value) (objects.Value, error) {
		o, err := oneObject("values", args)
		if err != nil {
			return nil, err
		}
		ks := o.Keys()
		elems := make([]objects.Value, len(ks))
		for i, k := range ks {
			v, _ := o.Get(k)
			elems[i] = v
		}
		return objects.NewArray(elems), nil
	}))

	ev.RegisterBuiltin(native("entries", func(args []objects.Value) (objects.Value, error) {
		o, err := oneObject("entries", args)
		if err != nil {
			return nil, err
		}
		ks := o.Keys()
		elems := make([]objects.Value, len(ks))
		for i, k := range ks {
			v, _ := o.Get(k)
			elems[i] = objects.NewArray([]objects.Value{objects.NewString(k), v})
		}
		return objects.NewArray(elems), nil
	}))

	ev.RegisterBuiltin(native("has_key", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("has_key", args, 2); err != nil {
			return nil, err
		}
		o, err := objectArg("has_key", args, 0)
		if err != nil {
			return nil, err
		}
		key, err := stringArg("has_key", args, 1)
		if err != nil {
			return nil, err
		}
		_, ok := o.Get(key)
		return objects.BoolOf(ok), nil
	}))

	ev.RegisterBuiltin(native("delete_key", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("delete_key", args, 2); err != nil {
			return nil, err
		}
		o, err := objectArg("delete_key", args, 0)
		if err != nil {
			return nil, err
		}
		key, err := stringArg("delete_key", args, 1)
		if err != nil {
			return nil, err
		}
		o.Delete(key)
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("merge", func(args []objects.Value) (objects.Value, error) {
		out := objects.NewObject()
		for i := range args {
			o, err := objectArg("merge", args, i)
			if err != nil {
				return nil, err
			}
			for _, k := range o.Keys() {
				v, _ := o.Get(k)
				out.Set(k, v)
			}
		}
		return out, nil
	}))

	ev.RegisterBuiltin(native("clone", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("clone", args, 1); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case *objects.Object:
			out := objects.NewObject()
			for _, k := range v.Keys() {
				val, _ := v.Get(k)
				out.Set(k, val)
			}
			return out, nil
		case *objects.Array:
			return objects.NewArray(append([]objects.Value{}, v.Elements...)), nil
		default:
			return v, nil
		}
	}))
}

func oneObject(name string, args []objects.Value) (*objects.Object, error) {
	if err := requireArgs(name, args, 1); err != nil {
		return nil, err
	}
	return objectArg(name, args, 0)
}
