package eval

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/modules"
	"github.com/slovolang/slovo/objects"
)

// newTestEvaluator builds an Evaluator wired to an in-memory output buffer
// so `print`/`println` output is assertable, mirroring how cmd/slovo wires
// one for a real run but without touching os.Stdout.
func newTestEvaluator() (*Evaluator, *bytes.Buffer) {
	loader := modules.NewLoader(".", nil)
	ev := New(loader)
	var out bytes.Buffer
	ev.Out = &out

	ev.RegisterBuiltin(&objects.Native{Name: "print", Fn: func(args []objects.Value) (objects.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.ToString()
		}
		out.WriteString(strings.Join(parts, " "))
		out.WriteByte('\n')
		return objects.NoneValue, nil
	}})
	ev.RegisterBuiltin(&objects.Native{Name: "length", Fn: func(args []objects.Value) (objects.Value, error) {
		switch v := args[0].(type) {
		case *objects.String:
			return objects.NewNumber(float64(len([]rune(v.Value)))), nil
		case *objects.Array:
			return objects.NewNumber(float64(v.Len())), nil
		case *objects.Object:
			return objects.NewNumber(float64(v.Len())), nil
		default:
			return objects.NewNumber(0), nil
		}
	}})
	return ev, &out
}

func run(t *testing.T, src string) (objects.Value, string) {
	t.Helper()
	ev, out := newTestEvaluator()
	v, err := ev.Run(src, "test.slv")
	require.NoError(t, err)
	return v, out.String()
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	ev, _ := newTestEvaluator()
	_, err := ev.Run(src, "test.slv")
	require.Error(t, err)
	return err
}

// --- spec.md §8 end-to-end scenarios ---

func TestClosureCounter(t *testing.T) {
	src := `
let make = func() {
	let n = 0;
	return func() { n = n + 1; return n; };
};
let c = make();
print(c());
print(c());
print(c());
`
	_, out := run(t, src)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestInheritanceSuperGreet(t *testing.T) {
	src := `
class A {
	constructor(x) { this.x = x; }
	greet() { return "A:" + this.x; }
}
class B extends A {
	greet() { return "B:" + super.greet(); }
}
print(new B(7).greet());
`
	_, out := run(t, src)
	require.Equal(t, "B:A:7\n", out)
}

func TestSwitchFallThrough(t *testing.T) {
	src := `
switch (2) {
	case 1: print("one");
	case 2: print("two");
	case 3: print("three"); break;
	case 4: print("four");
	default: print("d");
}
`
	_, out := run(t, src)
	require.Equal(t, "two\nthree\n", out)
}

func TestDestructuringDefaultAndRest(t *testing.T) {
	src := `
let [a = 10, b, ...r] = [1, 2, 3, 4];
print(a, b, r);
`
	_, out := run(t, src)
	require.Equal(t, "1 2 [3,4]\n", out)
}

func TestTryFinallyOrdering(t *testing.T) {
	src := `
func f() {
	try { return 1; } finally { print("F"); }
}
print(f());
`
	_, out := run(t, src)
	require.Equal(t, "F\n1\n", out)
}

func TestImportCycle(t *testing.T) {
	dir := t.TempDir()
	aPath := dir + "/a.slv"
	bPath := dir + "/b.slv"
	require.NoError(t, os.WriteFile(aPath, []byte(`import { bVal } from "./b";
export { aVal };
let aVal = 1;
`), 0o644))
	require.NoError(t, os.WriteFile(bPath, []byte(`import { aVal } from "./a";
export { bVal };
let bVal = 2;
`), 0o644))

	loader := modules.NewLoader(dir, nil)
	ev := New(loader)
	ev.RegisterBuiltin(&objects.Native{Name: "print", Fn: func(args []objects.Value) (objects.Value, error) {
		return objects.NoneValue, nil
	}})

	aSrc, err := os.ReadFile(aPath)
	require.NoError(t, err)
	_, runErr := ev.EvalProgramSource(string(aSrc), aPath, ev.Globals.Child())
	require.NoError(t, runErr)

	exportsA, ok := ev.Loader.Get(aPath)
	require.True(t, ok)
	aVal, ok := exportsA.Exports.Get("aVal")
	require.True(t, ok)
	require.Equal(t, float64(1), aVal.(*objects.Number).Value)

	exportsB, ok := ev.Loader.Get(bPath)
	require.True(t, ok)
	bVal, ok := exportsB.Exports.Get("bVal")
	require.True(t, ok)
	require.Equal(t, float64(2), bVal.(*objects.Number).Value)
}

func TestModuleDefaultExportsAllTopLevelBindings(t *testing.T) {
	dir := t.TempDir()
	modPath := dir + "/mod.slv"
	require.NoError(t, os.WriteFile(modPath, []byte(`let x = 1;
let y = 2;
func helper() { return 3; }
`), 0o644))

	ev, out := newTestEvaluator()
	loader := modules.NewLoader(dir, nil)
	ev.Loader = loader

	mainSrc := `import mod from "./mod";
print(mod.x, mod.y, mod.helper());
`
	_, err := ev.Run(mainSrc, dir+"/main.slv")
	require.NoError(t, err)
	require.Equal(t, "1 2 3\n", out.String())

	m, ok := loader.Get(modPath)
	require.True(t, ok)
	_, hasX := m.Exports.Get("x")
	_, hasY := m.Exports.Get("y")
	_, hasHelper := m.Exports.Get("helper")
	require.True(t, hasX)
	require.True(t, hasY)
	require.True(t, hasHelper)
}

func TestModuleExplicitExportSuppressesDefault(t *testing.T) {
	dir := t.TempDir()
	modPath := dir + "/mod.slv"
	require.NoError(t, os.WriteFile(modPath, []byte(`let x = 1;
let secret = 2;
export { x };
`), 0o644))

	ev, out := newTestEvaluator()
	loader := modules.NewLoader(dir, nil)
	ev.Loader = loader

	mainSrc := `import { x, secret } from "./mod";
print(x, secret);
`
	_, err := ev.Run(mainSrc, dir+"/main.slv")
	require.NoError(t, err)
	require.Equal(t, "1 none\n", out.String())
}

func TestRuntimeErrorCapturesCallStack(t *testing.T) {
	src := `
func inner() { return 1 / none; }
func outer() { return inner(); }
outer();
`
	err := runErr(t, src)
	re, ok := err.(*errors.RuntimeError)
	require.True(t, ok)
	require.GreaterOrEqual(t, len(re.Stack), 2)
	require.Equal(t, "inner", re.Stack[0].FuncName)
	require.Equal(t, "outer", re.Stack[1].FuncName)
}

// --- universal invariants (spec.md §8) ---

func TestClosureObservesLaterRebindingOfCapturedEnv(t *testing.T) {
	src := `
let n = 1;
let get = func() { return n; };
n = 99;
print(get());
`
	_, out := run(t, src)
	require.Equal(t, "99\n", out)
}

func TestArraysAreReferenceSharedScalarsAreNot(t *testing.T) {
	src := `
let a = [1, 2];
let b = a;
b[0] = 100;
print(a[0]);

let x = 5;
let y = x;
y = 50;
print(x);
`
	_, out := run(t, src)
	require.Equal(t, "100\n5\n", out)
}

func TestConstReassignmentErrors(t *testing.T) {
	src := `
const x = 1;
x = 2;
`
	err := runErr(t, src)
	require.Contains(t, err.Error(), "TypeError")
	require.Contains(t, err.Error(), "constant")
}

func TestConstShadowedInChildFrameIsReassignable(t *testing.T) {
	src := `
const x = 1;
func f() {
	let x = 2;
	x = 3;
	return x;
}
print(f());
`
	_, out := run(t, src)
	require.Equal(t, "3\n", out)
}

func TestDivisionByZeroErrors(t *testing.T) {
	err := runErr(t, "let y = 1 / 0;")
	require.Contains(t, err.Error(), "RangeError")
}

func TestModulusByZeroErrors(t *testing.T) {
	err := runErr(t, "let y = 1 % 0;")
	require.Contains(t, err.Error(), "RangeError")
}

func TestArrayAppendAtLength(t *testing.T) {
	src := `
let a = [1, 2];
a[2] = 3;
print(a);
`
	_, out := run(t, src)
	require.Equal(t, "[1,2,3]\n", out)
}

func TestArraySparseGrowthErrors(t *testing.T) {
	err := runErr(t, `
let a = [1, 2];
a[5] = 3;
`)
	require.Contains(t, err.Error(), "RangeError")
}

func TestBitwiseTruncatesFractionalOperands(t *testing.T) {
	src := `print(5.9 | 0);`
	_, out := run(t, src)
	require.Equal(t, "5\n", out)
}

func TestBreakCannotCrossFunctionBoundary(t *testing.T) {
	err := runErr(t, `
while (true) {
	func inner() { break; }
	inner();
	break;
}
`)
	require.Error(t, err)
}

// --- operators and truthiness (spec.md §4.3/§4.5.1) ---

func TestStringConcatenationWithPlus(t *testing.T) {
	src := `print("a" + 1 + true);`
	_, out := run(t, src)
	require.Equal(t, "a1true\n", out)
}

func TestTruthiness(t *testing.T) {
	src := `
print(!!0);
print(!!"");
print(!!none);
print(!!false);
print(!!1);
print(!!"x");
`
	_, out := run(t, src)
	require.Equal(t, "false\nfalse\nfalse\nfalse\ntrue\ntrue\n", out)
}

func TestCompoundAssignmentDoesNotDoubleEvaluate(t *testing.T) {
	src := `
let calls = 0;
let a = [0];
func idx() { calls = calls + 1; return 0; }
a[idx()] += 5;
print(a[0], calls);
`
	_, out := run(t, src)
	require.Equal(t, "5 1\n", out)
}

func TestTemplateLiteralInterpolation(t *testing.T) {
	src := "let name = \"world\";\nprint(`hello ${name}!`);"
	_, out := run(t, src)
	require.Equal(t, "hello world!\n", out)
}

// --- functions, defaults, rest, arity leniency (spec.md §4.5.4/§7) ---

func TestDefaultParameterAppliesWhenArgOmitted(t *testing.T) {
	src := `
func greet(name = "world") { return "hi " + name; }
print(greet());
print(greet("there"));
`
	_, out := run(t, src)
	require.Equal(t, "hi world\nhi there\n", out)
}

func TestRestParameterCollectsRemainingArgs(t *testing.T) {
	src := `
func sum(first, ...rest) {
	let total = first;
	for (let i = 0; i < length(rest); i = i + 1) {
		total = total + rest[i];
	}
	return total;
}
print(sum(1, 2, 3, 4));
`
	_, out := run(t, src)
	require.Equal(t, "10\n", out)
}

func TestArityLenientMissingArgsBecomeNone(t *testing.T) {
	src := `
func f(a, b) { return a; }
print(f());
`
	_, out := run(t, src)
	require.Equal(t, "none\n", out)
}

func TestFunctionWithoutReturnYieldsNoneAtEnd(t *testing.T) {
	src := `
func f() { let x = 1; }
print(f());
`
	_, out := run(t, src)
	require.Equal(t, "none\n", out)
}

func TestArrowCapturesEnclosingThis(t *testing.T) {
	src := `
class Counter {
	constructor() { this.n = 0; }
	makeIncrementer() {
		return () => { this.n = this.n + 1; return this.n; };
	}
}
let c = new Counter();
let inc = c.makeIncrementer();
print(inc());
print(inc());
`
	_, out := run(t, src)
	require.Equal(t, "1\n2\n", out)
}

// --- async/await (spec.md §5) ---

func TestAsyncFunctionAwaitReturnsResolvedValue(t *testing.T) {
	src := `
async func delayed() { return 42; }
async func main() {
	let v = await delayed();
	print(v);
}
main();
`
	_, out := run(t, src)
	require.Equal(t, "42\n", out)
}

func TestAwaitOnPlainValueIsNoOp(t *testing.T) {
	src := `
async func f() {
	let v = await 7;
	print(v);
}
f();
`
	_, out := run(t, src)
	require.Equal(t, "7\n", out)
}

func TestAsyncThrowRejectsAndAwaitSurfacesError(t *testing.T) {
	src := `
async func fails() { throw "bad"; }
async func main() {
	try {
		await fails();
	} catch (e) {
		print("rejected");
	}
}
main();
`
	_, out := run(t, src)
	require.Equal(t, "rejected\n", out)
}

// --- classes, static members (spec.md §4.5.5) ---

func TestStaticMethodsReceiveNoThis(t *testing.T) {
	src := `
class MathUtil {
	static square(x) { return x * x; }
}
print(MathUtil.square(5));
`
	_, out := run(t, src)
	require.Equal(t, "25\n", out)
}

func TestMethodLookupWalksToParent(t *testing.T) {
	src := `
class A { greet() { return "hi"; } }
class B extends A {}
print(new B().greet());
`
	_, out := run(t, src)
	require.Equal(t, "hi\n", out)
}

// --- try/throw/finally (spec.md §4.5.9) ---

func TestThrowCaughtByTryCatch(t *testing.T) {
	src := `
try {
	throw "boom";
} catch (e) {
	print("caught:" + e);
}
`
	_, out := run(t, src)
	require.Equal(t, "caught:boom\n", out)
}

func TestFinallyRunsOnThrowEvenUncaught(t *testing.T) {
	src := `
func f() {
	try {
		throw "x";
	} finally {
		print("cleanup");
	}
}
try {
	f();
} catch (e) {
	print("outer:" + e);
}
`
	_, out := run(t, src)
	require.Equal(t, "cleanup\nouter:x\n", out)
}

func TestFinallyCanOverridePropagatingReturn(t *testing.T) {
	src := `
func f() {
	try {
		return 1;
	} finally {
		return 2;
	}
}
print(f());
`
	_, out := run(t, src)
	require.Equal(t, "2\n", out)
}

// --- destructuring nesting (spec.md §4.5.3) ---

func TestNestedDestructuringWithObjectAndArray(t *testing.T) {
	src := `
let { a: [x, y], b } = { a: [1, 2], b: 3 };
print(x, y, b);
`
	_, out := run(t, src)
	require.Equal(t, "1 2 3\n", out)
}

func TestObjectPatternRestCollectsRemainingKeys(t *testing.T) {
	src := `
let { a, ...rest } = { a: 1, b: 2, c: 3 };
print(a);
print(rest.b, rest.c);
`
	_, out := run(t, src)
	require.Equal(t, "1\n2 3\n", out)
}

// --- loops (spec.md §4.5.3) ---

func TestForLoopContinueSkipsRemainderOfBody(t *testing.T) {
	src := `
let sum = 0;
for (let i = 0; i < 5; i = i + 1) {
	if (i == 2) { continue; }
	sum = sum + i;
}
print(sum);
`
	_, out := run(t, src)
	require.Equal(t, "8\n", out)
}

func TestWhileLoopBreak(t *testing.T) {
	src := `
let i = 0;
while (true) {
	if (i == 3) { break; }
	i = i + 1;
}
print(i);
`
	_, out := run(t, src)
	require.Equal(t, "3\n", out)
}
