/*
File   : slovo/std/http.go
Package: std

HTTP client builtins, grounded on the teacher's std/http.go function set
(get/post/put/delete), kept on stdlib net/http since no pack repo brings
an HTTP client library (DESIGN.md). Each request runs on its own
goroutine and resolves an objects.Deferred, so a script's `await
http_get(url)` (or a bare call, implicitly awaited per spec.md §5) never
blocks the evaluator goroutine on network I/O.
*/
package std

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/objects"
)

func registerHTTP(ev *eval.Evaluator) {
	ev.RegisterBuiltin(native("http_get", func(args []objects.Value) (objects.Value, error) {
		u, err := oneString("http_get", args)
		if err != nil {
			return nil, err
		}
		return doHTTP(http.MethodGet, u, "", nil), nil
	}))

	ev.RegisterBuiltin(native("http_post", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("http_post", args, 3); err != nil {
			return nil, err
		}
		u, err := stringArg("http_post", args, 0)
		if err != nil {
			return nil, err
		}
		contentType, err := stringArg("http_post", args, 1)
		if err != nil {
			return nil, err
		}
		body, err := stringArg("http_post", args, 2)
		if err != nil {
			return nil, err
		}
		return doHTTP(http.MethodPost, u, contentType, strings.NewReader(body)), nil
	}))

	ev.RegisterBuiltin(native("http_put", func(args []objects.Value) (objects.Value, error) {
		if err := requireArgs("http_put", args, 3); err != nil {
			return nil, err
		}
		u, err := stringArg("http_put", args, 0)
		if err != nil {
			return nil, err
		}
		contentType, err := stringArg("http_put", args, 1)
		if err != nil {
			return nil, err
		}
		body, err := stringArg("http_put", args, 2)
		if err != nil {
			return nil, err
		}
		return doHTTP(http.MethodPut, u, contentType, strings.NewReader(body)), nil
	}))

	ev.RegisterBuiltin(native("http_delete", func(args []objects.Value) (objects.Value, error) {
		u, err := oneString("http_delete", args)
		if err != nil {
			return nil, err
		}
		return doHTTP(http.MethodDelete, u, "", nil), nil
	}))

	ev.RegisterBuiltin(native("url_encode", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("url_encode", args)
		if err != nil {
			return nil, err
		}
		return objects.NewString(url.QueryEscape(s)), nil
	}))

	ev.RegisterBuiltin(native("url_decode", func(args []objects.Value) (objects.Value, error) {
		s, err := oneString("url_decode", args)
		if err != nil {
			return nil, err
		}
		out, err := url.QueryUnescape(s)
		if err != nil {
			return nil, fmt.Errorf("url_decode: %v", err)
		}
		return objects.NewString(out), nil
	}))
}

// doHTTP issues the request on its own goroutine and returns an already-
// wired Deferred, mirroring callAsyncClosure's settle-on-completion
// contract (eval/eval_async.go) for a native producer instead of a script
// closure.
func doHTTP(method, rawURL, contentType string, body io.Reader) *objects.Deferred {
	d := objects.NewDeferred(httpDeferredID())
	go func() {
		req, err := http.NewRequest(method, rawURL, body)
		if err != nil {
			d.Reject(fmt.Errorf("%s: %v", strings.ToLower(method), err))
			return
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			d.Reject(fmt.Errorf("%s: %v", strings.ToLower(method), err))
			return
		}
		defer resp.Body.Close()
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			d.Reject(fmt.Errorf("%s: %v", strings.ToLower(method), err))
			return
		}
		out := objects.NewObject()
		out.Set("status", objects.NewNumber(float64(resp.StatusCode)))
		out.Set("body", objects.NewString(string(respBody)))
		headers := objects.NewObject()
		for k, v := range resp.Header {
			headers.Set(k, objects.NewString(strings.Join(v, ", ")))
		}
		out.Set("headers", headers)
		d.Resolve(out)
	}()
	return d
}

var httpDeferredSeq int

// httpDeferredID mints a small sequential label for the Deferred without
// pulling in google/uuid on every network call (its Deferred IDs remain
// uuid-based for import() and async closures, eval/eval_module.go and
// eval/eval_async.go).
func httpDeferredID() string {
	httpDeferredSeq++
	return fmt.Sprintf("http-%d", httpDeferredSeq)
}
