package mathgen_test

import (
	"testing"

	"github.com/njchilds90/gomathgen"
)

func TestLaTeX(t *testing.T) {
	cases := []struct {
		expr mathgen.Expr
		want string
	}{
		{mathgen.Product(two, x), `2 x`},
		{mathgen.Product(two, mathgen.Power(x, mathgen.Int(3))), `2 x^{3}`},
		{mathgen.Product(two, mathgen.Sum(x, one)), `2 \left(x + 1\right)`},
		{mathgen.Product(two, mathgen.Int(3)), `2 \times 3`},
		{mathgen.Quotient(mathgen.Sum(x, one), two), `\frac{x + 1}{2}`},
		{mathgen.Power(x, two), `x^{2}`},
		{mathgen.Power(mathgen.Sum(x, one), two), `\left(x + 1\right)^{2}`},
		{mathgen.Difference(x, mathgen.Frac(1, 2)), `x - \frac{1}{2}`},
		{mathgen.Neg(x), `-x`},
		{mathgen.Ddx(x), `\frac{d}{dx}\left(x\right)`},
		{mathgen.Sin(x), `\sin\left(x\right)`},
		{mathgen.Cos(mathgen.Product(two, x)), `\cos\left(2 x\right)`},
	}
	for _, c := range cases {
		if got := mathgen.LaTeX(c.expr); got != c.want {
			t.Errorf("%s: want %s, got %s", c.expr, c.want, got)
		}
	}
}

func TestEquation_LaTeX(t *testing.T) {
	eq := mathgen.Eq(mathgen.Quotient(x, mathgen.Int(3)), mathgen.Frac(-1, 2))
	want := `\frac{x}{3} = -\frac{1}{2}`
	if eq.LaTeX() != want {
		t.Errorf("want %s, got %s", want, eq.LaTeX())
	}
}
