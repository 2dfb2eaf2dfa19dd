/*
File   : slovo/eval/eval_switch.go
Package: eval

`switch` evaluation (spec.md §4.5.10): the subject is compared against each
case with the same equality rule as `==`, matching cases fall through into
the next case's statements absent an explicit `break`, and a `default:`
clause (Value == nil) matches only when no case does, wherever it sits.
*/
package eval

import (
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalSwitch(s *parser.SwitchStmt, env *scope.Scope) (objects.Value, error) {
	subject, err := e.Eval(s.Subject, env)
	if err != nil {
		return nil, err
	}
	if isSignal(subject) {
		return subject, nil
	}

	switchEnv := env.Child()
	defaultIdx := -1
	matched := -1
	for i, c := range s.Cases {
		if c.Value == nil {
			defaultIdx = i
			continue
		}
		cv, err := e.Eval(c.Value, switchEnv)
		if err != nil {
			return nil, err
		}
		if isSignal(cv) {
			return cv, nil
		}
		if objects.Equal(subject, cv) {
			matched = i
			break
		}
	}
	if matched == -1 {
		matched = defaultIdx
	}
	if matched == -1 {
		return objects.NoneValue, nil
	}

	for i := matched; i < len(s.Cases); i++ {
		for _, stmt := range s.Cases[i].Body {
			v, err := e.Eval(stmt, switchEnv)
			if err != nil {
				return nil, err
			}
			if asBreak(v) {
				return objects.NoneValue, nil
			}
			if isSignal(v) {
				return v, nil
			}
		}
	}
	return objects.NoneValue, nil
}
