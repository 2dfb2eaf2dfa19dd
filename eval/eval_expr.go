/*
File   : slovo/eval/eval_expr.go
Package: eval

Expression evaluation (spec.md §4.5.1-§4.5.8): operators, literals,
member/index access, assignment, calls, and literal composites. Grounded
on the teacher's evaluator_expressions.go dispatch-by-node-kind style,
generalized to spec.md's full expression grammar.
*/
package eval

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/function"
	"github.com/slovolang/slovo/lexer"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalExpr(expr parser.Expr, env *scope.Scope) (objects.Value, error) {
	switch n := expr.(type) {
	case *parser.NumberLit:
		return objects.NewNumber(n.Value), nil
	case *parser.StringLit:
		return objects.NewString(n.Value), nil
	case *parser.BoolLit:
		return objects.BoolOf(n.Value), nil
	case *parser.NoneLit:
		return objects.NoneValue, nil
	case *parser.Identifier:
		return e.evalIdentifier(n, env)
	case *parser.ThisExpr:
		return e.evalThisExpr(n, env)
	case *parser.SuperExpr:
		return nil, e.errorf(n.Pos(), errors.TypeError, "'super' is only valid as a call or member target")
	case *parser.BinaryExpr:
		return e.evalBinaryExpr(n, env)
	case *parser.UnaryExpr:
		return e.evalUnaryExpr(n, env)
	case *parser.AssignmentExpr:
		return e.evalAssignmentExpr(n, env)
	case *parser.CallExpr:
		return e.evalCallExpr(n, env)
	case *parser.NewExpr:
		return e.evalNewExpr(n, env)
	case *parser.MemberExpr:
		return e.evalMemberGet(n, env)
	case *parser.IndexExpr:
		return e.evalIndexGet(n, env)
	case *parser.TernaryExpr:
		return e.evalTernaryExpr(n, env)
	case *parser.SequenceExpr:
		return e.evalSequenceExpr(n, env)
	case *parser.AwaitExpr:
		return e.evalAwaitExpr(n, env)
	case *parser.ArrayExpr:
		return e.evalArrayExpr(n, env)
	case *parser.ObjectExpr:
		return e.evalObjectExpr(n, env)
	case *parser.TemplateExpr:
		return e.evalTemplateExpr(n, env)
	case *parser.RegexLit:
		return e.evalRegexLit(n, env)
	case *parser.FunctionExpr:
		return e.makeClosure(n, env), nil
	case *parser.ImportExpr:
		return e.evalImportExpr(n, env)
	case *parser.SpreadExpr:
		return e.Eval(n.Operand, env)
	default:
		return nil, e.errorf(expr.Pos(), errors.InternalError, "unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(n *parser.Identifier, env *scope.Scope) (objects.Value, error) {
	if v, ok := env.Lookup(n.Name); ok {
		return v, nil
	}
	return nil, e.errorf(n.Pos(), errors.ReferenceError, "undefined variable %q", n.Name)
}

func (e *Evaluator) evalThisExpr(n *parser.ThisExpr, env *scope.Scope) (objects.Value, error) {
	if v, ok := env.Lookup("this"); ok {
		return v, nil
	}
	return objects.NoneValue, nil
}

// currentClass returns the class a method body is defined in, used to
// resolve `super` (spec.md §4.8.3). Bound into the call environment by
// CallClosure when invoking a method closure.
func currentClass(env *scope.Scope) (*function.Class, bool) {
	v, ok := env.Lookup("@class")
	if !ok {
		return nil, false
	}
	c, ok := v.(*function.Class)
	return c, ok
}

func (e *Evaluator) evalBinaryExpr(n *parser.BinaryExpr, env *scope.Scope) (objects.Value, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	if isSignal(left) {
		return left, nil
	}
	switch n.Op {
	case lexer.AND:
		if !objects.Truthy(left) {
			return left, nil
		}
		return e.Eval(n.Right, env)
	case lexer.OR:
		if objects.Truthy(left) {
			return left, nil
		}
		return e.Eval(n.Right, env)
	}
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	if isSignal(right) {
		return right, nil
	}
	return e.applyBinaryOp(n.Op, left, right, n.Pos())
}

func (e *Evaluator) applyBinaryOp(op lexer.TokenKind, left, right objects.Value, pos parser.Pos) (objects.Value, error) {
	switch op {
	case lexer.PLUS:
		if _, ok := left.(*objects.String); ok {
			return objects.NewString(left.ToString() + right.ToString()), nil
		}
		if _, ok := right.(*objects.String); ok {
			return objects.NewString(left.ToString() + right.ToString()), nil
		}
		return e.numericBinary(op, left, right, pos)
	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT, lexer.POW:
		return e.numericBinary(op, left, right, pos)
	case lexer.EQ:
		return objects.BoolOf(objects.Equal(left, right)), nil
	case lexer.NEQ:
		return objects.BoolOf(!objects.Equal(left, right)), nil
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return e.relational(op, left, right), nil
	case lexer.BITAND, lexer.BITOR, lexer.BITXOR, lexer.SHL, lexer.SHR:
		return e.bitwiseBinary(op, left, right, pos)
	default:
		return nil, e.errorf(pos, errors.InternalError, "unhandled binary operator %s", op)
	}
}

func (e *Evaluator) numericBinary(op lexer.TokenKind, left, right objects.Value, pos parser.Pos) (objects.Value, error) {
	lv, ok := objects.CoerceNumber(left)
	if !ok {
		return nil, e.errorf(pos, errors.TypeError, "cannot apply %s to %s", op, objects.TypeName(left))
	}
	rv, ok := objects.CoerceNumber(right)
	if !ok {
		return nil, e.errorf(pos, errors.TypeError, "cannot apply %s to %s", op, objects.TypeName(right))
	}
	switch op {
	case lexer.PLUS:
		return objects.NewNumber(lv + rv), nil
	case lexer.MINUS:
		return objects.NewNumber(lv - rv), nil
	case lexer.STAR:
		return objects.NewNumber(lv * rv), nil
	case lexer.SLASH:
		if rv == 0 {
			return nil, e.errorf(pos, errors.RangeError, "division by zero")
		}
		return objects.NewNumber(lv / rv), nil
	case lexer.PERCENT:
		if rv == 0 {
			return nil, e.errorf(pos, errors.RangeError, "modulus by zero")
		}
		return objects.NewNumber(mod(lv, rv)), nil
	case lexer.POW:
		return objects.NewNumber(math.Pow(lv, rv)), nil
	default:
		return nil, e.errorf(pos, errors.InternalError, "unhandled numeric operator %s", op)
	}
}

func mod(a, b float64) float64 {
	return math.Mod(a, b)
}

func (e *Evaluator) relational(op lexer.TokenKind, left, right objects.Value) objects.Value {
	ln, lok := left.(*objects.Number)
	rn, rok := right.(*objects.Number)
	var cmp int
	if lok && rok {
		switch {
		case ln.Value < rn.Value:
			cmp = -1
		case ln.Value > rn.Value:
			cmp = 1
		}
	} else {
		ls, rs := left.ToString(), right.ToString()
		cmp = strings.Compare(ls, rs)
	}
	switch op {
	case lexer.LT:
		return objects.BoolOf(cmp < 0)
	case lexer.LE:
		return objects.BoolOf(cmp <= 0)
	case lexer.GT:
		return objects.BoolOf(cmp > 0)
	default: // GE
		return objects.BoolOf(cmp >= 0)
	}
}

func (e *Evaluator) bitwiseBinary(op lexer.TokenKind, left, right objects.Value, pos parser.Pos) (objects.Value, error) {
	lv, ok := objects.CoerceNumber(left)
	if !ok {
		return nil, e.errorf(pos, errors.TypeError, "cannot apply %s to %s", op, objects.TypeName(left))
	}
	rv, ok := objects.CoerceNumber(right)
	if !ok {
		return nil, e.errorf(pos, errors.TypeError, "cannot apply %s to %s", op, objects.TypeName(right))
	}
	li, ri := objects.ToInt32(lv), objects.ToInt32(rv)
	switch op {
	case lexer.BITAND:
		return objects.NewNumber(float64(li & ri)), nil
	case lexer.BITOR:
		return objects.NewNumber(float64(li | ri)), nil
	case lexer.BITXOR:
		return objects.NewNumber(float64(li ^ ri)), nil
	case lexer.SHL:
		return objects.NewNumber(float64(li << (uint32(ri) & 31))), nil
	case lexer.SHR:
		return objects.NewNumber(float64(li >> (uint32(ri) & 31))), nil
	default:
		return nil, e.errorf(pos, errors.InternalError, "unhandled bitwise operator %s", op)
	}
}

func (e *Evaluator) evalUnaryExpr(n *parser.UnaryExpr, env *scope.Scope) (objects.Value, error) {
	v, err := e.Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	switch n.Op {
	case lexer.NOT:
		return objects.BoolOf(!objects.Truthy(v)), nil
	case lexer.MINUS:
		num, ok := objects.CoerceNumber(v)
		if !ok {
			return nil, e.errorf(n.Pos(), errors.TypeError, "cannot negate %s", objects.TypeName(v))
		}
		return objects.NewNumber(-num), nil
	case lexer.PLUS:
		num, ok := objects.CoerceNumber(v)
		if !ok {
			return nil, e.errorf(n.Pos(), errors.TypeError, "cannot coerce %s to number", objects.TypeName(v))
		}
		return objects.NewNumber(num), nil
	case lexer.BITNOT:
		num, ok := objects.CoerceNumber(v)
		if !ok {
			return nil, e.errorf(n.Pos(), errors.TypeError, "cannot apply ~ to %s", objects.TypeName(v))
		}
		return objects.NewNumber(float64(^objects.ToInt32(num))), nil
	default:
		return nil, e.errorf(n.Pos(), errors.InternalError, "unhandled unary operator %s", n.Op)
	}
}

func (e *Evaluator) evalTernaryExpr(n *parser.TernaryExpr, env *scope.Scope) (objects.Value, error) {
	cond, err := e.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if isSignal(cond) {
		return cond, nil
	}
	if objects.Truthy(cond) {
		return e.Eval(n.Then, env)
	}
	return e.Eval(n.Else, env)
}

func (e *Evaluator) evalSequenceExpr(n *parser.SequenceExpr, env *scope.Scope) (objects.Value, error) {
	var last objects.Value = objects.NoneValue
	for _, sub := range n.Exprs {
		v, err := e.Eval(sub, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func (e *Evaluator) evalArrayExpr(n *parser.ArrayExpr, env *scope.Scope) (objects.Value, error) {
	var elems []objects.Value
	for _, el := range n.Elements {
		if sp, ok := el.(*parser.SpreadExpr); ok {
			v, err := e.Eval(sp.Operand, env)
			if err != nil {
				return nil, err
			}
			if isSignal(v) {
				return v, nil
			}
			arr, ok := v.(*objects.Array)
			if !ok {
				return nil, e.errorf(sp.Pos(), errors.TypeError, "cannot spread %s in array literal", objects.TypeName(v))
			}
			elems = append(elems, arr.Elements...)
			continue
		}
		v, err := e.Eval(el, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		elems = append(elems, v)
	}
	return objects.NewArray(elems), nil
}

func (e *Evaluator) evalObjectExpr(n *parser.ObjectExpr, env *scope.Scope) (objects.Value, error) {
	obj := objects.NewObject()
	for _, prop := range n.Props {
		if prop.Spread != nil {
			v, err := e.Eval(prop.Spread, env)
			if err != nil {
				return nil, err
			}
			if isSignal(v) {
				return v, nil
			}
			src, ok := v.(*objects.Object)
			if !ok {
				return nil, e.errorf(prop.Spread.Pos(), errors.TypeError, "cannot spread %s in object literal", objects.TypeName(v))
			}
			for _, k := range src.Keys() {
				val, _ := src.Get(k)
				obj.Set(k, val)
			}
			continue
		}
		key := prop.Key
		if prop.Computed != nil {
			kv, err := e.Eval(prop.Computed, env)
			if err != nil {
				return nil, err
			}
			if isSignal(kv) {
				return kv, nil
			}
			key = kv.ToString()
		}
		v, err := e.Eval(prop.Value, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		obj.Set(key, v)
	}
	return obj, nil
}

func (e *Evaluator) evalTemplateExpr(n *parser.TemplateExpr, env *scope.Scope) (objects.Value, error) {
	var sb strings.Builder
	for _, part := range n.Parts {
		if part.Expr == nil {
			sb.WriteString(part.Text)
			continue
		}
		v, err := e.Eval(part.Expr, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		sb.WriteString(v.ToString())
	}
	return objects.NewString(sb.String()), nil
}

func (e *Evaluator) evalRegexLit(n *parser.RegexLit, env *scope.Scope) (objects.Value, error) {
	obj := objects.NewObject()
	obj.Set("source", objects.NewString(n.Pattern))
	obj.Set("flags", objects.NewString(n.Flags))
	return obj, nil
}

func runeLen(s string) float64 { return float64(utf8.RuneCountInString(s)) }
