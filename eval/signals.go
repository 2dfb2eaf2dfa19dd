/*
File   : slovo/eval/signals.go
Package: eval

Non-local control flow (return/break/continue/throw) is carried as a
regular objects.Value flowing back up through Eval's return channel,
generalizing the teacher's single ReturnValue/UnwrapReturnValue pattern
(eval/eval_helpers.go) into one signal variant per construct. Each
enclosing construct (loop, function body, switch, try) checks for the
signal kind it's responsible for unwrapping and lets anything else keep
propagating unchanged.
*/
package eval

import "github.com/slovolang/slovo/objects"

type signalKind int

const (
	sigReturn signalKind = iota
	sigBreak
	sigContinue
	sigThrow
)

// signal wraps a propagating non-local exit. It implements objects.Value
// purely so it can travel through the same (objects.Value, error) channel
// every other evaluation result uses; a signal value should never reach a
// builtin or be observable to script code as an ordinary value.
type signal struct {
	kind  signalKind
	value objects.Value // the returned/thrown value; unused for break/continue
}

func (s *signal) GetType() objects.ValueType { return "signal" }
func (s *signal) ToString() string           { return "<signal>" }
func (s *signal) Inspect() string            { return "<signal>" }

func isSignal(v objects.Value) bool {
	_, ok := v.(*signal)
	return ok
}

func returnSignal(v objects.Value) *signal   { return &signal{kind: sigReturn, value: v} }
func breakSignal() *signal                   { return &signal{kind: sigBreak} }
func continueSignal() *signal                { return &signal{kind: sigContinue} }
func throwSignal(v objects.Value) *signal    { return &signal{kind: sigThrow, value: v} }

// asReturn/asBreak/asContinue/asThrow report whether v is that specific
// signal kind, used by the construct responsible for absorbing it.
func asReturn(v objects.Value) (objects.Value, bool) {
	if s, ok := v.(*signal); ok && s.kind == sigReturn {
		return s.value, true
	}
	return nil, false
}

func asBreak(v objects.Value) bool {
	s, ok := v.(*signal)
	return ok && s.kind == sigBreak
}

func asContinue(v objects.Value) bool {
	s, ok := v.(*signal)
	return ok && s.kind == sigContinue
}

func asThrow(v objects.Value) (objects.Value, bool) {
	if s, ok := v.(*signal); ok && s.kind == sigThrow {
		return s.value, true
	}
	return nil, false
}
