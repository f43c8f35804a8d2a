package placeholder_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/placeholder"
)

func call(t *testing.T, e *placeholder.Expr, args ...any) any {
	t.Helper()
	v, err := e.Call(args...)
	if err != nil {
		t.Fatalf("%v applied to %v: %v", e, args, err)
	}
	return v
}

func TestIdentity(t *testing.T) {
	ob := &struct{ x int }{1}
	if got := call(t, placeholder.X1, ob); got != any(ob) {
		t.Errorf("_1 returned %v, want %v", got, ob)
	}
	if got := call(t, placeholder.X2, nil, ob); got != any(ob) {
		t.Errorf("_2 returned %v, want %v", got, ob)
	}
	if got := call(t, placeholder.X3, nil, nil, ob); got != any(ob) {
		t.Errorf("_3 returned %v, want %v", got, ob)
	}
}

func TestArithmetic(t *testing.T) {
	ops := []struct {
		name string
		expr func(e *placeholder.Expr, v any) *placeholder.Expr
		ref  func(a, b int) any
	}{
		{"add", (*placeholder.Expr).Add, func(a, b int) any { return a + b }},
		{"sub", (*placeholder.Expr).Sub, func(a, b int) any { return a - b }},
		{"mul", (*placeholder.Expr).Mul, func(a, b int) any { return a * b }},
		{"div", (*placeholder.Expr).Div, func(a, b int) any { return float64(a) / float64(b) }},
		{"floordiv", (*placeholder.Expr).FloorDiv, func(a, b int) any {
			q := a / b
			if a%b != 0 && (a < 0) != (b < 0) {
				q--
			}
			return q
		}},
		{"mod", (*placeholder.Expr).Mod, func(a, b int) any {
			m := a % b
			if m != 0 && (m < 0) != (b < 0) {
				m += b
			}
			return m
		}},
		{"pow", (*placeholder.Expr).Pow, func(a, b int) any {
			r := 1
			for i := 0; i < b; i++ {
				r *= a
			}
			return r
		}},
		{"and", (*placeholder.Expr).BitAnd, func(a, b int) any { return a & b }},
		{"or", (*placeholder.Expr).BitOr, func(a, b int) any { return a | b }},
		{"xor", (*placeholder.Expr).Xor, func(a, b int) any { return a ^ b }},
		{"lsh", (*placeholder.Expr).Lsh, func(a, b int) any { return a << b }},
		{"rsh", (*placeholder.Expr).Rsh, func(a, b int) any { return a >> b }},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			// Many operators reject right operands <= 0; negative ones
			// are covered separately.
			for n := 1; n <= 5; n++ {
				f := op.expr(placeholder.X1, n)
				g := op.expr(placeholder.X1, placeholder.X2)
				for m := -5; m <= 5; m++ {
					want := op.ref(m, n)
					if got := call(t, f, m); got != want {
						t.Errorf("(%v)(%d) = %v, want %v", f, m, got, want)
					}
					if got := call(t, g, m, n); got != want {
						t.Errorf("(%v)(%d, %d) = %v, want %v", g, m, n, got, want)
					}
				}
			}
		})
	}
}

func TestNegativeRHS(t *testing.T) {
	ops := []struct {
		name string
		expr func(e *placeholder.Expr, v any) *placeholder.Expr
		ref  func(a, b int) any
	}{
		{"add", (*placeholder.Expr).Add, func(a, b int) any { return a + b }},
		{"sub", (*placeholder.Expr).Sub, func(a, b int) any { return a - b }},
		{"div", (*placeholder.Expr).Div, func(a, b int) any { return float64(a) / float64(b) }},
		{"floordiv", (*placeholder.Expr).FloorDiv, func(a, b int) any {
			q := a / b
			if a%b != 0 && (a < 0) != (b < 0) {
				q--
			}
			return q
		}},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			for n := -5; n < 0; n++ {
				f := op.expr(placeholder.X1, n)
				g := op.expr(placeholder.X1, placeholder.X2)
				for m := -5; m <= 5; m++ {
					want := op.ref(m, n)
					if got := call(t, f, m); got != want {
						t.Errorf("(%v)(%d) = %v, want %v", f, m, got, want)
					}
					if got := call(t, g, m, n); got != want {
						t.Errorf("(%v)(%d, %d) = %v, want %v", g, m, n, got, want)
					}
				}
			}
		})
	}
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		name string
		expr *placeholder.Expr
		a, b any
		want bool
	}{
		{"lt", placeholder.X1.Lt(placeholder.X2), 1, 2, true},
		{"lt-false", placeholder.X1.Lt(placeholder.X2), 2, 2, false},
		{"le", placeholder.X1.Le(placeholder.X2), 2, 2, true},
		{"eq", placeholder.X1.Eq(placeholder.X2), 3, 3, true},
		{"eq-mixed", placeholder.X1.Eq(placeholder.X2), 3, 3.0, true},
		{"eq-deep", placeholder.X1.Eq(placeholder.X2), []int{1, 2}, []int{1, 2}, true},
		{"ne", placeholder.X1.Ne(placeholder.X2), 3, 4, true},
		{"ge", placeholder.X1.Ge(placeholder.X2), 4, 4, true},
		{"gt", placeholder.X1.Gt(placeholder.X2), 5, 4, true},
		{"lt-string", placeholder.X1.Lt(placeholder.X2), "a", "b", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := call(t, c.expr, c.a, c.b); got != c.want {
				t.Errorf("(%v)(%v, %v) = %v, want %v", c.expr, c.a, c.b, got, c.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		name string
		expr *placeholder.Expr
		want string
	}{
		{"slot", placeholder.X1, "_1"},
		{"add", placeholder.X1.Add(2), "_1 + 2"},
		{"nested", placeholder.X1.Add(2).Mul(placeholder.X2), "(_1 + 2) * _2"},
		{"rhs-nested", placeholder.X1.Mul(placeholder.X2.Add(2)), "_1 * (_2 + 2)"},
		{"neg", placeholder.X1.Neg(), "-_1"},
		{"neg-nested", placeholder.X1.Add(2).Neg(), "-(_1 + 2)"},
		{"invert", placeholder.X1.Invert(), "~_1"},
		{"attr", placeholder.X1.Attr("Field"), "_1.Field"},
		{"attr-noparen", placeholder.X1.Attr("Field").Add(1), "_1.Field + 1"},
		{"index", placeholder.X1.Index(0), "_1[0]"},
		{"index-paren", placeholder.X1.Index(0).Add(1), "(_1[0]) + 1"},
		{"index-multi", placeholder.X1.Index(0, placeholder.X2), "_1[0, _2]"},
		{"abs", placeholder.X1.Abs(), "abs(_1)"},
		{"next", placeholder.X1.Next(), "next(_1)"},
		{"iter", placeholder.X1.IterExpr(), "iter(_1)"},
		{"cmp", placeholder.X1.Le(3), "_1 <= 3"},
		{"pow", placeholder.X1.Pow(2), "_1 ** 2"},
		{"floordiv", placeholder.X1.FloorDiv(2), "_1 // 2"},
		{"shift", placeholder.X1.Lsh(placeholder.X2), "_1 << _2"},
		{"val-lhs", placeholder.Val(5).Add(placeholder.X1), "5 + _1"},
		{"val-rhs", placeholder.X1.Add(placeholder.Val(5)), "_1 + (5)"},
		{"apply", placeholder.Val(5).Apply(placeholder.X1, 2), "5(_1, 2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.expr.String(); got != c.want {
				t.Errorf("rendered %q, want %q", got, c.want)
			}
			if got, want := c.expr.GoString(), "<placeholder: "+c.want+">"; got != want {
				t.Errorf("debug form %q, want %q", got, want)
			}
		})
	}
}

func TestAttr(t *testing.T) {
	type thing struct {
		Attr  int
		Other int
	}
	v := thing{Attr: 1, Other: 2}
	if got := call(t, placeholder.X1.Attr("Attr"), v); got != 1 {
		t.Errorf("_1.Attr = %v, want 1", got)
	}
	if got := call(t, placeholder.X1.Attr("Other"), v); got != 2 {
		t.Errorf("_1.Other = %v, want 2", got)
	}
	if got := call(t, placeholder.X2.Attr("Attr"), nil, v); got != 1 {
		t.Errorf("_2.Attr = %v, want 1", got)
	}
	if got := call(t, placeholder.X2.Attr("Other"), nil, v); got != 2 {
		t.Errorf("_2.Other = %v, want 2", got)
	}
	if got := call(t, placeholder.X3.Attr("Attr"), nil, nil, v); got != 1 {
		t.Errorf("_3.Attr = %v, want 1", got)
	}
	if got := call(t, placeholder.X3.Attr("Attr"), nil, nil, &v); got != 1 {
		t.Errorf("_3.Attr through pointer = %v, want 1", got)
	}
}

func TestAttrMethod(t *testing.T) {
	g := greeter{Name: "marge"}
	e := placeholder.X1.Attr("Greet").Apply()
	if got := call(t, e, g); got != "hi marge" {
		t.Errorf("%v = %v, want %q", e, got, "hi marge")
	}
}

type greeter struct{ Name string }

func (g greeter) Greet() string { return "hi " + g.Name }

func TestIndex(t *testing.T) {
	d := placeholder.Val(map[string]int{"a": 1, "b": 2})
	cases := []struct {
		name string
		expr *placeholder.Expr
		args []any
		want any
	}{
		{"first-a", d.Index(placeholder.X1), []any{"a"}, 1},
		{"first-b", d.Index(placeholder.X1), []any{"b"}, 2},
		{"second-a", d.Index(placeholder.X2), []any{nil, "a"}, 1},
		{"second-b", d.Index(placeholder.X2), []any{nil, "b"}, 2},
		{"third-a", d.Index(placeholder.X3), []any{nil, nil, "a"}, 1},
		{"slice", placeholder.X1.Index(1), []any{[]int{4, 5, 6}}, 5},
		{"slice-neg", placeholder.X1.Index(-1), []any{[]int{4, 5, 6}}, 6},
		{"string", placeholder.X1.Index(0), []any{"xyz"}, byte('x')},
		{"multi", placeholder.X1.Index(1, 0), []any{[][]int{{1, 2}, {3, 4}}}, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := call(t, c.expr, c.args...); got != c.want {
				t.Errorf("(%v)(%v) = %v, want %v", c.expr, c.args, got, c.want)
			}
		})
	}
	// The same expression object is restartable across many calls.
	e := d.Index(placeholder.X1)
	for i := 0; i < 3; i++ {
		if got := call(t, e, "a"); got != 1 {
			t.Errorf("call %d: got %v, want 1", i, got)
		}
	}
}

func TestSlotGap(t *testing.T) {
	// Referencing _1 and _3 but not _2 still takes three arguments.
	e := placeholder.X1.Add(placeholder.Slot(3))
	if got := call(t, e, 1, 99, 5); got != 6 {
		t.Errorf("(%v)(1, 99, 5) = %v, want 6", e, got)
	}
	_, err := e.Call(1, 5)
	var ace *placeholder.ArgCountError
	if !errors.As(err, &ace) {
		t.Fatalf("two arguments gave %v, want ArgCountError", err)
	}
	if ace.Want != 3 || ace.Got != 2 {
		t.Errorf("ArgCountError = %v, want 3 got 2", ace)
	}
}

func TestNoArgs(t *testing.T) {
	e := placeholder.Val(3).Add(4)
	if got := call(t, e); got != 7 {
		t.Errorf("(%v)() = %v, want 7", e, got)
	}
	if _, err := e.Call(1); err == nil {
		t.Error("argument to a zero-argument expression did not error")
	}
}

func TestIdempotentCompile(t *testing.T) {
	e := placeholder.X1.Sub(placeholder.X2)
	before := e.String()
	first := call(t, e, 7, 3)
	second := call(t, e, 7, 3)
	if first != second {
		t.Errorf("results differ between calls: %v then %v", first, second)
	}
	if after := e.String(); after != before {
		t.Errorf("display changed by compiling: %q to %q", before, after)
	}
	if first != 4 {
		t.Errorf("(%v)(7, 3) = %v, want 4", e, first)
	}
}

func TestSharedSubexpression(t *testing.T) {
	// Compiling an expression must not disturb siblings sharing its
	// subtrees.
	base := placeholder.X1.Add(placeholder.X2)
	dbl := base.Mul(2)
	sq := base.Mul(base)
	if got := call(t, dbl, 1, 2); got != 6 {
		t.Errorf("(%v)(1, 2) = %v, want 6", dbl, got)
	}
	if got := call(t, sq, 1, 2); got != 9 {
		t.Errorf("(%v)(1, 2) = %v, want 9", sq, got)
	}
	if got := call(t, base, 1, 2); got != 3 {
		t.Errorf("(%v)(1, 2) = %v, want 3", base, got)
	}
}

func TestSlotCanonical(t *testing.T) {
	if placeholder.Slot(1) != placeholder.X1 {
		t.Error("Slot(1) is not X1")
	}
	if placeholder.Slot(200) != placeholder.Slot(200) {
		t.Error("Slot(200) is not memoized")
	}
	if got := call(t, placeholder.Slot(200).Mul(3), pad(200, 14)...); got != 42 {
		t.Errorf("_200 * 3 = %v, want 42", got)
	}
}

// pad returns n arguments with v in the last position.
func pad(n int, v any) []any {
	args := make([]any, n)
	args[n-1] = v
	return args
}

func TestConstantsMerge(t *testing.T) {
	// Two independently built subexpressions keep both captured
	// constants when combined.
	l := placeholder.X1.Add(10)
	r := placeholder.X2.Mul(3)
	e := l.Mul(r)
	if got := call(t, e, 2, 4); got != 144 {
		t.Errorf("(%v)(2, 4) = %v, want 144", e, got)
	}
	// Building e did not change l or r.
	if got := call(t, l, 2); got != 12 {
		t.Errorf("(%v)(2) = %v, want 12", l, got)
	}
	if got := call(t, r, nil, 4); got != 12 {
		t.Errorf("(%v)(nil, 4) = %v, want 12", r, got)
	}
}

func TestBigPromotion(t *testing.T) {
	e := placeholder.X1.Mul(placeholder.X2)
	got := call(t, e, math.MaxInt64, 2)
	z, ok := got.(*big.Int)
	if !ok {
		t.Fatalf("overflowing product is %T, want *big.Int", got)
	}
	want := new(big.Int).Mul(big.NewInt(math.MaxInt64), big.NewInt(2))
	if z.Cmp(want) != 0 {
		t.Errorf("product = %v, want %v", z, want)
	}
	// Big results shrink back to int when they fit.
	half := placeholder.X1.FloorDiv(2)
	if got := call(t, half, z); got != math.MaxInt64 {
		t.Errorf("quotient = %v (%T), want %v", got, got, int64(math.MaxInt64))
	}
}

func BenchmarkCall(b *testing.B) {
	b.Run("arith", func(b *testing.B) {
		b.ReportAllocs()
		e := placeholder.X1.Mul(placeholder.X2).Add(1)
		for i := 0; i < b.N; i++ {
			if _, err := e.Call(i, 3); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("index", func(b *testing.B) {
		b.ReportAllocs()
		e := placeholder.Val(map[string]int{"a": 1}).Index(placeholder.X1)
		for i := 0; i < b.N; i++ {
			if _, err := e.Call("a"); err != nil {
				b.Fatal(err)
			}
		}
	})
}
