/*
File   : slovo/std/regex.go
Package: std

Regex builtins, grounded on the teacher's std/regex.go function set
(match/find/findall/replace/split), retargeted to objects.Value. No pack
repo brings a third-party regex engine, so this stays on stdlib regexp
per DESIGN.md.
*/
package std

import (
	"fmt"
	"regexp"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerRegex(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("regex_match", func(args []objects.Value) (objects.Value, error) {
		re, str, err := twoRegexArgs("regex_match", args)
		if err != nil {
			return nil, err
		}
		return objects.BoolOf(re.MatchString(str)), nil
	}))

	ev.RegisterBuiltin(native("regex_find", func(args []objects.Value) (objects.Value, error) {
		re, str, err := twoRegexArgs("regex_find", args)
		if err != nil {
			return nil, err
		}
		m := re.FindString(str)
		if m == "" && !re.MatchString(str) {
			return objects.NoneValue, nil
		}
		return objects.NewString(m), nil
	}))

	ev.RegisterBuiltin(native("regex_find_all", func(args []objects.Value) (objects.Value, error) {
		re, str, err := twoRegexArgs("regex_find_all", args)
		if err != nil {
			return nil, err
		}
		matches := re.FindAllString(str, -1)
		elems := make([]objects.Value, len(matches))
		for i, m := range matches {
			elems[i] = objects.NewString(m)
		}
		return objects.NewArray(elems), nil
	}))

	ev.RegisterBuiltin(native("regex_replace", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("regex_replace", args, 3); err != nil {
			return nil, err
		}
		pattern, err := stringArg("regex_replace", args, 0)
		if err != nil {
			return nil, err
		}
		str, err := stringArg("regex_replace", args, 1)
		if err != nil {
			return nil, err
		}
		repl, err := stringArg("regex_replace", args, 2)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("regex_replace: invalid pattern: %v", err)
		}
		return objects.NewString(re.ReplaceAllString(str, repl)), nil
	}))

	ev.RegisterBuiltin(native("regex_split", func(args []objects.Value) (objects.Value, error) {
		re, str, err := twoRegexArgs("regex_split", args)
		if err != nil {
			return nil, err
		}
		parts := re.Split(str, -1)
		elems := make([]objects.Value, len(parts))
		for i, p := range parts {
			elems[i] = objects.NewString(p)
		}
		return objects.NewArray(elems), nil
	}))
}

func twoRegexArgs(name string, args []objects.Value) (*regexp.Regexp, string, error) {
	if err := requireArgs(name, args, 2); err != nil {
		return nil, "", err
	}
	pattern, err := stringArg(name, args, 0)
	if err != nil {
		return nil, "", err
	}
	str, err := stringArg(name, args, 1)
	if err != nil {
		return nil, "", err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, "", fmt.Errorf("%s: invalid pattern: %v", name, err)
	}
	return re, str, nil
}
