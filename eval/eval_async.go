/*
File   : slovo/eval/eval_async.go
Package: eval

Cooperative async (spec.md §5): the runtime never actually interleaves
user code, so `await` and an async function call both just need to
produce a *objects.Deferred and block this goroutine on it. An async
closure runs its body to completion synchronously, then its Value/error
are wrapped into an already-resolved/rejected Deferred, so plain function
calls, `await`, and Deferred-returning natives share the exact same
consumer-side code path.
*/
package eval

import (
	"github.com/google/uuid"

	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/function"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalAwaitExpr(n *parser.AwaitExpr, env *scope.Scope) (objects.Value, error) {
	v, err := e.Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	d, ok := v.(*objects.Deferred)
	if !ok {
		// Awaiting a non-Deferred value resolves to the value itself
		// (spec.md §5: "await on an already-settled value is a no-op").
		return v, nil
	}
	return e.awaitDeferred(d, n.Pos())
}

// awaitDeferred blocks on d and surfaces a rejection as a catchable thrown
// value, per the same RuntimeError-to-ThrownError bridge evalTry uses.
func (e *Evaluator) awaitDeferred(d *objects.Deferred, pos parser.Pos) (objects.Value, error) {
	v, err := d.Wait()
	if err != nil {
		if re, ok := err.(*errors.RuntimeError); ok {
			return nil, re
		}
		return nil, e.errorf(pos, errors.AsyncError, "%v", err)
	}
	return v, nil
}

// callAsyncClosure runs fn's body to completion on the current goroutine
// (spec.md §9 Open Question: no true coroutine scheduler, since the
// language has no concurrency primitive that could observe the
// difference) and wraps the outcome in a settled Deferred.
func (e *Evaluator) callAsyncClosure(fn *function.Closure, args []objects.Value, pos parser.Pos) (objects.Value, error) {
	d := objects.NewDeferred(uuid.NewString())
	result, err := e.callClosureBody(fn, args, pos)
	if err != nil {
		d.Reject(err)
		return d, nil
	}
	if thrown, ok := asThrow(result); ok {
		re := e.errorf(pos, errors.ThrownError, "%s", thrown.ToString())
		re.Value = thrown
		d.Reject(re)
		return d, nil
	}
	d.Resolve(result)
	return d, nil
}
