package mathgen_test

import (
	"testing"

	"github.com/njchilds90/gomathgen"
)

// ============================================================
// Simplify tests
// ============================================================

func TestSimplify_Identities(t *testing.T) {
	zero := mathgen.Int(0)
	cases := []struct {
		name string
		expr mathgen.Expr
		want string
	}{
		{"x + 0", mathgen.Sum(x, zero), "x"},
		{"0 + x", mathgen.Sum(zero, x), "x"},
		{"x - 0", mathgen.Difference(x, zero), "x"},
		{"0 - x", mathgen.Difference(zero, x), "-x"},
		{"x * 1", mathgen.Product(x, one), "x"},
		{"1 * x", mathgen.Product(one, x), "x"},
		{"x * 0", mathgen.Product(x, zero), "0"},
		{"0 * x", mathgen.Product(zero, x), "0"},
		{"x / 1", mathgen.Quotient(x, one), "x"},
		{"0 / x", mathgen.Quotient(zero, x), "0"},
		{"x / x", mathgen.Quotient(x, x), "1"},
		{"x ^ 0", mathgen.Power(x, zero), "1"},
		{"x ^ 1", mathgen.Power(x, one), "x"},
		{"1 ^ x", mathgen.Power(one, x), "1"},
		{"--x", mathgen.Neg(mathgen.Neg(x)), "x"},
	}
	for _, c := range cases {
		if got := mathgen.Simplify(c.expr).String(); got != c.want {
			t.Errorf("%s: want %s, got %s", c.name, c.want, got)
		}
	}
}

func TestSimplify_Collects(t *testing.T) {
	cases := []struct {
		name string
		expr mathgen.Expr
		want string
	}{
		{"x * x", mathgen.Product(x, x), "x ^ (2)"},
		{"x + x", mathgen.Sum(x, x), "2 * x"},
		{"2x + 3x", mathgen.Sum(mathgen.Product(two, x), mathgen.Product(mathgen.Int(3), x)), "5 * x"},
		{"3x - 3x", mathgen.Difference(mathgen.Product(mathgen.Int(3), x), mathgen.Product(mathgen.Int(3), x)), "0"},
		{"x^2 * x^3", mathgen.Product(mathgen.Power(x, two), mathgen.Power(x, mathgen.Int(3))), "x ^ (5)"},
		{"x^5 / x^2", mathgen.Quotient(mathgen.Power(x, mathgen.Int(5)), mathgen.Power(x, two)), "x ^ (3)"},
		{"(x^2)^3", mathgen.Power(mathgen.Power(x, two), mathgen.Int(3)), "x ^ (6)"},
		{"3 * (2 * x)", mathgen.Product(mathgen.Int(3), mathgen.Product(two, x)), "6 * x"},
		{"x * 3", mathgen.Product(x, mathgen.Int(3)), "3 * x"},
		{"-x * -x", mathgen.Product(mathgen.Neg(x), mathgen.Neg(x)), "x ^ (2)"},
		{"-2 * x", mathgen.Product(mathgen.Int(-2), x), "-2 * x"},
		{"x + -3", mathgen.Sum(x, mathgen.Int(-3)), "x - 3"},
		{"x - -3", mathgen.Difference(x, mathgen.Int(-3)), "x + 3"},
		{"x + -(2x)", mathgen.Sum(x, mathgen.Neg(mathgen.Product(two, x))), "-x"},
	}
	for _, c := range cases {
		if got := mathgen.Simplify(c.expr).String(); got != c.want {
			t.Errorf("%s: want %s, got %s", c.name, c.want, got)
		}
	}
}

func TestSimplify_Derivatives(t *testing.T) {
	cases := []struct {
		name string
		expr mathgen.Expr
		want string
	}{
		{"ddx(x * x)", mathgen.Ddx(mathgen.Product(x, x)), "2 * x"},
		{"ddx(x ^ 5)", mathgen.Ddx(mathgen.Power(x, mathgen.Int(5))), "5 * x ^ (4)"},
		{"ddx(3x + 2)", mathgen.Ddx(mathgen.Sum(mathgen.Product(mathgen.Int(3), x), two)), "3"},
	}
	for _, c := range cases {
		if got := mathgen.Simplify(c.expr).String(); got != c.want {
			t.Errorf("%s: want %s, got %s", c.name, c.want, got)
		}
	}
}

func TestSimplify_UnsupportedDerivativeKept(t *testing.T) {
	e := mathgen.Ddx(mathgen.Power(two, mathgen.Sum(x, mathgen.Int(0))))
	want := mathgen.Ddx(mathgen.Power(two, x))
	if got := mathgen.Simplify(e); !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestSimplify_ClosedEqualsEvaluate(t *testing.T) {
	exprs := []mathgen.Expr{
		mathgen.Sum(mathgen.Frac(1, 2), mathgen.Frac(1, 3)),
		mathgen.Quotient(mathgen.Power(two, mathgen.Int(5)), mathgen.Neg(mathgen.Int(6))),
		mathgen.Difference(mathgen.Product(mathgen.Int(7), mathgen.Frac(3, 14)), one),
	}
	for _, e := range exprs {
		want := mathgen.MustEvaluate(e)
		got := mathgen.Simplify(e)
		if !got.Equal(want) {
			t.Errorf("%s: want %s, got %s", e, want, got)
		}
	}
}

// Simplification never changes the value at any point where both sides
// are defined.
func TestSimplify_PreservesValue(t *testing.T) {
	exprs := []mathgen.Expr{
		mathgen.Sum(mathgen.Product(mathgen.Int(3), x), mathgen.Neg(mathgen.Product(x, two))),
		mathgen.Quotient(mathgen.Product(mathgen.Int(6), mathgen.Power(x, mathgen.Int(3))), mathgen.Product(two, x)),
		mathgen.Difference(mathgen.Neg(x), mathgen.Product(mathgen.Int(-4), x)),
		mathgen.Quotient(mathgen.Quotient(x, two), mathgen.Sum(x, one)),
		mathgen.Product(mathgen.Power(x, two), mathgen.Product(x, mathgen.Int(-5))),
		mathgen.Ddx(mathgen.Quotient(mathgen.Power(x, two), mathgen.Sum(x, one))),
	}
	for _, e := range exprs {
		s := mathgen.SimplifyFully(e, mathgen.DefaultMaxPasses)
		for at := int64(1); at <= 4; at++ {
			v := mathgen.Int(at)
			want, err := mathgen.Evaluate(mathgen.Substitute(e, "x", v))
			if err != nil {
				t.Fatalf("%s at %d: %v", e, at, err)
			}
			got, err := mathgen.Evaluate(mathgen.Substitute(s, "x", v))
			if err != nil {
				t.Fatalf("%s at %d: %v", s, at, err)
			}
			if !got.Equal(want) {
				t.Errorf("%s -> %s at x = %d: want %s, got %s", e, s, at, want, got)
			}
		}
	}
}

// d/dx (x / x^3) = -2 * x^-3 at nonzero points.
func TestSimplify_QuotientRuleValue(t *testing.T) {
	e := mathgen.Ddx(mathgen.Quotient(x, mathgen.Power(x, mathgen.Int(3))))
	s := mathgen.SimplifyFully(e, mathgen.DefaultMaxPasses)
	want := mathgen.Product(mathgen.Int(-2), mathgen.Power(x, mathgen.Int(-3)))
	for _, at := range []mathgen.Rational{one, two, mathgen.Int(-3), mathgen.Frac(1, 2)} {
		w := mathgen.MustEvaluate(mathgen.Substitute(want, "x", at))
		got, err := mathgen.Evaluate(mathgen.Substitute(s, "x", at))
		if err != nil {
			t.Fatalf("%s at x = %s: %v", s, at, err)
		}
		if !got.Equal(w) {
			t.Errorf("%s at x = %s: want %s, got %s", s, at, w, got)
		}
	}
}

func TestSimplifyFully_Stable(t *testing.T) {
	e := mathgen.Ddx(mathgen.Quotient(x, mathgen.Power(x, mathgen.Int(3))))
	s := mathgen.SimplifyFully(e, 16)
	if again := mathgen.Simplify(s); !again.Equal(s) {
		t.Errorf("not a fixed point: %s -> %s", s, again)
	}
}

func TestSimplify_DoesNotModifyInput(t *testing.T) {
	e := mathgen.Sum(mathgen.Product(x, one), mathgen.Int(0))
	before := e.String()
	mathgen.Simplify(e)
	if e.String() != before {
		t.Errorf("input changed from %s to %s", before, e.String())
	}
}
