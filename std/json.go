/*
File   : slovo/std/json.go
Package: std

JSON builtins, rewritten onto tidwall/gjson (parse/query) and
tidwall/sjson (build) instead of the teacher's std/json.go, which used
encoding/json — per SPEC_FULL.md's "wire a pack dependency rather than
stdlib" mandate (spec.md §6).
*/
package std

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerJSON(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("json_parse", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("json_parse", args)
		if err != nil {
			return nil, err
		}
		if !gjson.Valid(s) {
			return nil, fmt.Errorf("json_parse: invalid JSON")
		}
		return gjsonToValue(gjson.Parse(s)), nil
	}))

	ev.RegisterBuiltin(native("json_stringify", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("json_stringify", args, 1); err != nil {
			return nil, err
		}
		out, err := valueToJSON(args[0])
		if err != nil {
			return nil, err
		}
		return objects.NewString(out), nil
	}))

	ev.RegisterBuiltin(native("json_get", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("json_get", args, 2); err != nil {
			return nil, err
		}
		s, err := stringArg("json_get", args, 0)
		if err != nil {
			return nil, err
		}
		path, err := stringArg("json_get", args, 1)
		if err != nil {
			return nil, err
		}
		r := gjson.Get(s, path)
		if !r.Exists() {
			return objects.NoneValue, nil
		}
		return gjsonToValue(r), nil
	}))
}

// gjsonToValue recursively converts a parsed gjson.Result tree into the
// language's own value variants.
func gjsonToValue(r gjson.Result) objects.Value {
	switch r.Type {
	case gjson.Null:
		return objects.NoneValue
	case gjson.False:
		return objects.False
	case gjson.True:
		return objects.True
	case gjson.Number:
		return objects.NewNumber(r.Num)
	case gjson.String:
		return objects.NewString(r.Str)
	}
	if r.IsArray() {
		var elems []objects.Value
		r.ForEach(func(_, v gjson.Result) bool {
			elems = append(elems, gjsonToValue(v))
			return true
		})
		return objects.NewArray(elems)
	}
	if r.IsObject() {
		obj := objects.NewObject()
		r.ForEach(func(k, v gjson.Result) bool {
			obj.Set(k.String(), gjsonToValue(v))
			return true
		})
		return obj
	}
	return objects.NoneValue
}

// valueToJSON builds a JSON document by repeatedly calling sjson.SetRaw at
// each leaf path, walking the value tree depth-first (spec.md §6: json
// builtins go through sjson rather than encoding/json marshaling).
func valueToJSON(v objects.Value) (string, error) {
	switch x := v.(type) {
	case objects.None:
		return "null", nil
	case *objects.Boolean:
		return x.ToString(), nil
	case *objects.Number:
		return x.ToString(), nil
	case *objects.String:
		return strconv.Quote(x.Value), nil
	case *objects.Array:
		doc := "[]"
		var err error
		for i, el := range x.Elements {
			raw, err2 := valueToJSON(el)
			if err2 != nil {
				return "", err2
			}
			doc, err = sjson.SetRaw(doc, fmt.Sprintf("%d", i), raw)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case *objects.Object:
		doc := "{}"
		var err error
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			raw, err2 := valueToJSON(val)
			if err2 != nil {
				return "", err2
			}
			doc, err = sjson.SetRaw(doc, sjsonEscapeKey(k), raw)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return "", fmt.Errorf("json_stringify: cannot encode %s", objects.TypeName(v))
	}
}

// sjsonEscapeKey escapes path metacharacters (`.`, `*`, `?`) sjson would
// otherwise interpret as path syntax, so an object key containing one is
// still treated as a single literal key.
func sjsonEscapeKey(k string) string {
	out := make([]byte, 0, len(k))
	for i := 0; i < len(k); i++ {
		switch k[i] {
		case '.', '*', '?':
			out = append(out, '\\')
		}
		out = append(out, k[i])
	}
	return string(out)
}
