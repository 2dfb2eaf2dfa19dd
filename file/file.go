/*
File   : slovo/file/file.go
Package: file

Package file implements stateful file-handle builtins, grounded on the
teacher's file/file.go (fopen/fclose/fread/fwrite/fseek/ftell) and
retargeted from GoMixObject onto objects.Value. A Handle is its own
runtime value variant, the same way the teacher's FileObject plugged
into its value system, so a script can hold one in a variable between
calls.
*/
package file

import (
	"fmt"
	"io"
	"os"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

const HandleType objects.ValueType = "file"

// Handle wraps an open os.File so scripts can pass it around as a value
// between fopen/fread/fwrite/fseek/fclose calls.
type Handle struct {
	File *os.File
	Path string
}

func (h *Handle) GetType() objects.ValueType { return HandleType }
func (h *Handle) ToString() string           { return fmt.Sprintf("<file %s>", h.Path) }
func (h *Handle) Inspect() string            { return h.ToString() }

// Register installs the file-handle builtins into ev. Called alongside
// std.Install by cmd/slovo; kept separate from package std so stateful
// OS handles stay out of the path-based builtin registry.
func Register(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("fopen", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("fopen", args, 2); err != nil {
			return nil, err
		}
		path, ok := args[0].(*objects.String)
		if !ok {
			return nil, fmt.Errorf("fopen: path must be a string")
		}
		mode, ok := args[1].(*objects.String)
		if !ok {
			return nil, fmt.Errorf("fopen: mode must be a string")
		}
		var flag int
		switch mode.Value {
		case "r":
			flag = os.O_RDONLY
		case "w":
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		case "a":
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		case "r+":
			flag = os.O_RDWR
		case "w+":
			flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
		default:
			return nil, fmt.Errorf("fopen: invalid mode %q", mode.Value)
		}
		f, err := os.OpenFile(path.Value, flag, 0644)
		if err != nil {
			return nil, fmt.Errorf("fopen: %v", err)
		}
		return &Handle{File: f, Path: path.Value}, nil
	}))

	ev.RegisterBuiltin(native("fclose", func(args []objects.Value) (objects.Value, error) {
		h, err := handleArg("fclose", args, 0)
		if err != nil {
			return nil, err
		}
		if err := h.File.Close(); err != nil {
			return nil, fmt.Errorf("fclose: %v", err)
		}
		return objects.NoneValue, nil
	}))

	ev.RegisterBuiltin(native("fread", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("fread", args, 2); err != nil {
			return nil, err
		}
		h, err := handleArg("fread", args, 0)
		if err != nil {
			return nil, err
		}
		n, ok := args[1].(*objects.Number)
		if !ok {
			return nil, fmt.Errorf("fread: size must be a number")
		}
		buf := make([]byte, int(n.Value))
		read, err := h.File.Read(buf)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("fread: %v", err)
		}
		return objects.NewString(string(buf[:read])), nil
	}))

	ev.RegisterBuiltin(native("fwrite", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("fwrite", args, 2); err != nil {
			return nil, err
		}
		h, err := handleArg("fwrite", args, 0)
		if err != nil {
			return nil, err
		}
		content, ok := args[1].(*objects.String)
		if !ok {
			return nil, fmt.Errorf("fwrite: content must be a string")
		}
		n, err := h.File.WriteString(content.Value)
		if err != nil {
			return nil, fmt.Errorf("fwrite: %v", err)
		}
		return objects.NewNumber(float64(n)), nil
	}))

	ev.RegisterBuiltin(native("fseek", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("fseek", args, 3); err != nil {
			return nil, err
		}
		h, err := handleArg("fseek", args, 0)
		if err != nil {
			return nil, err
		}
		offset, ok := args[1].(*objects.Number)
		if !ok {
			return nil, fmt.Errorf("fseek: offset must be a number")
		}
		whence, ok := args[2].(*objects.Number)
		if !ok {
			return nil, fmt.Errorf("fseek: whence must be a number")
		}
		pos, err := h.File.Seek(int64(offset.Value), int(whence.Value))
		if err != nil {
			return nil, fmt.Errorf("fseek: %v", err)
		}
		return objects.NewNumber(float64(pos)), nil
	}))

	ev.RegisterBuiltin(native("ftell", func(args []objects.Value) (objects.Value, error) {
		h, err := handleArg("ftell", args, 0)
		if err != nil {
			return nil, err
		}
		pos, err := h.File.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, fmt.Errorf("ftell: %v", err)
		}
		return objects.NewNumber(float64(pos)), nil
	}))
}

func native(name string, fn func(args []objects.Value) (objects.Value, error)) *objects.Native {
	return &objects.Native{Name: name, Fn: fn}
}

func requireArgs(name string, args []objects.Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: wrong number of arguments, got %d, want %d", name, len(args), n)
	}
	return nil
}

func handleArg(name string, args []objects.Value, i int) (*Handle, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%s: wrong number of arguments", name)
	}
	h, ok := args[i].(*Handle)
	if !ok {
		return nil, fmt.Errorf("%s: argument %d must be a file handle", name, i+1)
	}
	return h, nil
}
