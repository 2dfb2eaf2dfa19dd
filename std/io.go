/*
File   : slovo/std/io.go
Package: std

Console I/O builtins, grounded on the teacher's std/common.go
print/println/printf but writing through ev.Out/ev.In so output is
test-capturable instead of hard-wired to os.Stdout.
*/
package std

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerIO(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("print", func(args []objects.Value) (objects.Value, error) {
		fmt.Fprint(ev.Out, joinArgs(args))
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("println", func(args []objects.Value) (objects.Value, error) {
		fmt.Fprintln(ev.Out, joinArgs(args))
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("printf", func(args []objects.Value) (objects.Value, error) {
		if err := requireMinArgs("printf", args, 1); err != nil {
			return nil, err
		}
		format, err := stringArg("printf", args, 0)
		if err != nil {
			return nil, err
		}
		rest := make([]any, len(args)-1)
		for i, a := range args[1:] {
			rest[i] = nativeValue(a)
		}
		fmt.Fprintf(ev.Out, format, rest...)
		return objects.NoneValue, nil
	}))

	var reader *bufio.Reader
	ev.RegisterBuiltin(native("read_line", func(args []objects.Value) (objects.Value, error) {
		if reader == nil {
			reader = bufio.NewReader(ev.In)
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return objects.NoneValue, nil
		}
		return objects.NewString(strings.TrimRight(line, "\r\n")), nil
	}))
}

func joinArgs(args []objects.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.ToString()
	}
	return strings.Join(parts, " ")
}

// nativeValue extracts a plain Go value from v for passing to Go's own
// fmt.Fprintf, used by the `printf` builtin's verb substitution.
func nativeValue(v objects.Value) any {
	switch x := v.(type) {
	case *objects.Number:
		return x.Value
	case *objects.String:
		return x.Value
	case *objects.Boolean:
		return x.Value
	case objects.None:
		return "none"
	default:
		return x.ToString()
	}
}
