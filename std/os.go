/*
File   : slovo/std/os.go
Package: std

OS/process builtins, grounded on the teacher's std/os.go function set
(env vars, exec, process info, assertions), retargeted to objects.Value.
No pack repo brings a process/env abstraction so this stays on stdlib os
per DESIGN.md; `assert*` keep the teacher's pass/fail console-reporting
convention via ev.Out.
*/
package std

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"runtime"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerOS(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("getenv", func(args []objects.Value) (objects.Value, error) {
		key, err := oneString("getenv", args)
		if err != nil {
			return nil, err
		}
		return objects.NewString(os.Getenv(key)), nil
	}))

	ev.RegisterBuiltin(native("setenv", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("setenv", args, 2); err != nil {
			return nil, err
		}
		key, err := stringArg("setenv", args, 0)
		if err != nil {
			return nil, err
		}
		val, err := stringArg("setenv", args, 1)
		if err != nil {
			return nil, err
		}
		if err := os.Setenv(key, val); err != nil {
			return nil, fmt.Errorf("setenv: %v", err)
		}
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("exec", func(args []objects.Value) (objects.Value, error) {
		if err := requireMinArgs("exec", args, 1); err != nil {
			return nil, err
		}
		name, err := stringArg("exec", args, 0)
		if err != nil {
			return nil, err
		}
		cmdArgs := make([]string, len(args)-1)
		for i, a := range args[1:] {
			s, ok := a.(*objects.String)
			if !ok {
				return nil, fmt.Errorf("exec: argument %d must be a string", i+2)
			}
			cmdArgs[i] = s.Value
		}
		out, err := exec.Command(name, cmdArgs...).CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("exec: %v: %s", err, string(out))
		}
		return objects.NewString(string(out)), nil
	}))

	ev.RegisterBuiltin(native("exit", func(args []objects.Value) (objects.Value, error) {
		code := 0
		if len(args) > 0 {
			n, err := numberArg("exit", args, 0)
			if err != nil {
				return nil, err
			}
			code = int(n)
		}
		os.Exit(code)
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("args", func(args []objects.Value) (objects.Value, error) {
		elems := make([]objects.Value, len(os.Args))
		for i, a := range os.Args {
			elems[i] = objects.NewString(a)
		}
		return objects.NewArray(elems), nil
	}))

	ev.RegisterBuiltin(native("getcwd", func(args []objects.Value) (objects.Value, error) {
		dir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getcwd: %v", err)
		}
		return objects.NewString(dir), nil
	}))

	ev.RegisterBuiltin(native("getpid", func(args []objects.Value) (objects.Value, error) {
		return objects.NewNumber(float64(os.Getpid())), nil
	}))

	ev.RegisterBuiltin(native("hostname", func(args []objects.Value) (objects.Value, error) {
		name, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("hostname: %v", err)
		}
		return objects.NewString(name), nil
	}))

	ev.RegisterBuiltin(native("username", func(args []objects.Value) (objects.Value, error) {
		u, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("username: %v", err)
		}
		return objects.NewString(u.Username), nil
	}))

	ev.RegisterBuiltin(native("platform", func(args []objects.Value) (objects.Value, error) {
		return objects.NewString(runtime.GOOS), nil
	}))

	ev.RegisterBuiltin(native("arch", func(args []objects.Value) (objects.Value, error) {
		return objects.NewString(runtime.GOARCH), nil
	}))

	ev.RegisterBuiltin(native("assert", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("assert", args, 2); err != nil {
			return nil, err
		}
		msg, err := stringArg("assert", args, 1)
		if err != nil {
			return nil, err
		}
		if !objects.Truthy(args[0]) {
			fmt.Fprintf(ev.Out, "[FAIL] %s\n", msg)
			return nil, fmt.Errorf("assertion failed: %s", msg)
		}
		fmt.Fprintf(ev.Out, "[PASS] %s\n", msg)
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("assert_equal", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("assert_equal", args, 3); err != nil {
			return nil, err
		}
		msg, err := stringArg("assert_equal", args, 2)
		if err != nil {
			return nil, err
		}
		if !objects.Equal(args[0], args[1]) {
			fmt.Fprintf(ev.Out, "[FAIL] %s\n", msg)
			return nil, fmt.Errorf("assertion failed: %s", msg)
		}
		fmt.Fprintf(ev.Out, "[PASS] %s\n", msg)
		return objects.NoneValue, nil
	}))
}
