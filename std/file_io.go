/*
File   : slovo/std/file_io.go
Package: std

Filesystem builtins, grounded on the teacher's std/file_io.go function
set (read/write/append/exists/mkdir/list_dir/...), retargeted to
objects.Value. No pack repo brings a filesystem abstraction layer, so
this stays on stdlib os per DESIGN.md.
*/
package std

import (
	"fmt"
	"os"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerFileIO(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("read_file", func(args []objects.Value) (objects.Value, error) {
		path, err := oneString("read_file", args)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read_file: %v", err)
		}
		return objects.NewString(string(data)), nil
	}))

	ev.RegisterBuiltin(native("write_file", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("write_file", args, 2); err != nil {
			return nil, err
		}
		path, err := stringArg("write_file", args, 0)
		if err != nil {
			return nil, err
		}
		content, err := stringArg("write_file", args, 1)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("write_file: %v", err)
		}
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("append_file", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("append_file", args, 2); err != nil {
			return nil, err
		}
		path, err := stringArg("append_file", args, 0)
		if err != nil {
			return nil, err
		}
		content, err := stringArg("append_file", args, 1)
		if err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("append_file: %v", err)
		}
		defer f.Close()
		if _, err := f.WriteString(content); err != nil {
			return nil, fmt.Errorf("append_file: %v", err)
		}
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("file_exists", func(args []objects.Value) (objects.Value, error) {
		path, err := oneString("file_exists", args)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(path)
		return objects.BoolOf(!os.IsNotExist(statErr)), nil
	}))

	ev.RegisterBuiltin(native("is_dir", func(args []objects.Value) (objects.Value, error) {
		path, err := oneString("is_dir", args)
		if err != nil {
			return nil, err
		}
		info, statErr := os.Stat(path)
		return objects.BoolOf(statErr == nil && info.IsDir()), nil
	}))

	ev.RegisterBuiltin(native("is_file", func(args []objects.Value) (objects.Value, error) {
		path, err := oneString("is_file", args)
		if err != nil {
			return nil, err
		}
		info, statErr := os.Stat(path)
		return objects.BoolOf(statErr == nil && !info.IsDir()), nil
	}))

	ev.RegisterBuiltin(native("mkdir", func(args []objects.Value) (objects.Value, error) {
		path, err := oneString("mkdir", args)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("mkdir: %v", err)
		}
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("remove_file", func(args []objects.Value) (objects.Value, error) {
		if err := requireMinArgs("remove_file", args, 1); err != nil {
			return nil, err
		}
		path, err := stringArg("remove_file", args, 0)
		if err != nil {
			return nil, err
		}
		force := false
		if len(args) == 2 {
			b, ok := args[1].(*objects.Boolean)
			if !ok {
				return nil, fmt.Errorf("remove_file: second argument must be a boolean")
			}
			force = b.Value
		}
		var rmErr error
		if force {
			rmErr = os.RemoveAll(path)
		} else {
			rmErr = os.Remove(path)
		}
		if rmErr != nil {
			return nil, fmt.Errorf("remove_file: %v", rmErr)
		}
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("rename_file", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("rename_file", args, 2); err != nil {
			return nil, err
		}
		oldPath, err := stringArg("rename_file", args, 0)
		if err != nil {
			return nil, err
		}
		newPath, err := stringArg("rename_file", args, 1)
		if err != nil {
			return nil, err
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			return nil, fmt.Errorf("rename_file: %v", err)
		}
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("list_dir", func(args []objects.Value) (objects.Value, error) {
		path, err := oneString("list_dir", args)
		if err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("list_dir: %v", err)
		}
		elems := make([]objects.Value, len(entries))
		for i, ent := range entries {
			elems[i] = objects.NewString(ent.Name())
		}
		return objects.NewArray(elems), nil
	}))

	ev.RegisterBuiltin(native("home_dir", func(args []objects.Value) (objects.Value, error) {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home_dir: %v", err)
		}
		return objects.NewString(dir), nil
	}))
}
