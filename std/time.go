/*
File   : slovo/std/time.go
Package: std

Time builtins, grounded on the teacher's std/time.go function set,
retargeted to objects.Value. Timestamps are represented as a Number of
Unix milliseconds, matching spec.md §3's single numeric type.
*/
package std

import (
	"strings"
	"time"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerTime(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("now", func(args []objects.Value) (objects.Value, error) {
		return objects.NewNumber(float64(time.Now().UnixMilli())), nil
	}))

	ev.RegisterBuiltin(native("sleep_ms", func(args []objects.Value) (objects.Value, error) {
		ms, err := oneNumber("sleep_ms", args)
		if err != nil {
			return nil, err
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("format_time", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("format_time", args, 2); err != nil {
			return nil, err
		}
		ms, err := numberArg("format_time", args, 0)
		if err != nil {
			return nil, err
		}
		layout, err := stringArg("format_time", args, 1)
		if err != nil {
			return nil, err
		}
		t := time.UnixMilli(int64(ms)).UTC()
		return objects.NewString(t.Format(goLayout(layout))), nil
	}))
}

func oneNumber(name string, args []objects.Value) (float64, error) {
	if err := requireArgs(name, args, 1); err != nil {
		return 0, err
	}
	return numberArg(name, args, 0)
}

// goLayout translates a small set of strftime-style directives to Go's
// reference-time layout, since script authors won't know Go's "Mon Jan 2"
// convention.
func goLayout(spec string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006", "%m", "01", "%d", "02",
		"%H", "15", "%M", "04", "%S", "05",
	)
	return replacer.Replace(spec)
}
