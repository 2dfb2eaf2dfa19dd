/*
File   : slovo/std/crypto.go
Package: std

Hashing/encoding builtins, grounded on the teacher's std/crypto.go
function set (md5/sha1/sha256/base64/hex/uuid/random), retargeted to
objects.Value. No pack repo brings a hashing or encoding library, so
this stays on stdlib crypto/encoding per DESIGN.md; google/uuid (already
wired for async Deferred IDs) covers the `uuid` builtin.
*/
package std

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerCrypto(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("md5", hashFunc("md5", func(b []byte) []byte { h := md5.Sum(b); return h[:] })))
	ev.RegisterBuiltin(native("sha1", hashFunc("sha1", func(b []byte) []byte { h := sha1.Sum(b); return h[:] })))
	ev.RegisterBuiltin(native("sha256", hashFunc("sha256", func(b []byte) []byte { h := sha256.Sum256(b); return h[:] })))

	ev.RegisterBuiltin(native("base64_encode", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("base64_encode", args)
		if err != nil {
			return nil, err
		}
		return objects.NewString(base64.StdEncoding.EncodeToString([]byte(s))), nil
	}))

	ev.RegisterBuiltin(native("base64_decode", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("base64_decode", args)
		if err != nil {
			return nil, err
		}
		out, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("base64_decode: %v", err)
		}
		return objects.NewString(string(out)), nil
	}))

	ev.RegisterBuiltin(native("hex_encode", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("hex_encode", args)
		if err != nil {
			return nil, err
		}
		return objects.NewString(hex.EncodeToString([]byte(s))), nil
	}))

	ev.RegisterBuiltin(native("hex_decode", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("hex_decode", args)
		if err != nil {
			return nil, err
		}
		out, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("hex_decode: %v", err)
		}
		return objects.NewString(string(out)), nil
	}))

	ev.RegisterBuiltin(native("uuid", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("uuid", args, 0); err != nil {
			return nil, err
		}
		return objects.NewString(uuid.NewString()), nil
	}))

	ev.RegisterBuiltin(native("random_bytes", func(args []objects.Value) (objects.Value, error) {
		n, err := numberArg("random_bytes", args, 0)
		if err != nil {
			return nil, err
		}
		if err := requireArgs("random_bytes", args, 1); err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("random_bytes: count must be non-negative")
		}
		buf := make([]byte, int(n))
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("random_bytes: %v", err)
		}
		return objects.NewString(hex.EncodeToString(buf)), nil
	}))
}

func hashFunc(name string, sum func([]byte) []byte) func([]objects.Value) (objects.Value, error) {
	return func(args []objects.Value) (objects.Value, error) {
		s, err := oneString(name, args)
		if err != nil {
			return nil, err
		}
		return objects.NewString(hex.EncodeToString(sum([]byte(s)))), nil
	}
}
