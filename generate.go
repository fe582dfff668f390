package mathgen

import (
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/exp/slices"
)

// ============================================================
// Problem generation
// ============================================================

var ErrGenerationFailed = errors.New("generation failed")

// Limits bound the trees a Generator builds.
type Limits struct {
	// MaxDepth caps the number of operations wrapped around the unknown.
	MaxDepth int
	// MaxMagnitude caps |numerator| and denominator of every intermediate
	// value, keeping arithmetic far from int64 overflow.
	MaxMagnitude int64
	// MaxAttempts is the number of fresh constructions tried before giving up.
	MaxAttempts int
	Variable    string
}

func DefaultLimits() Limits {
	return Limits{MaxDepth: 6, MaxMagnitude: 1000, MaxAttempts: 100, Variable: "x"}
}

// Generator builds expressions from an injected random source, so a seeded
// source reproduces the same problems.
type Generator struct {
	rng    *rand.Rand
	limits Limits
}

func NewGenerator(rng *rand.Rand, limits Limits) *Generator {
	d := DefaultLimits()
	if limits.MaxDepth <= 0 {
		limits.MaxDepth = d.MaxDepth
	}
	if limits.MaxMagnitude <= 0 {
		limits.MaxMagnitude = d.MaxMagnitude
	}
	if limits.MaxAttempts <= 0 {
		limits.MaxAttempts = d.MaxAttempts
	}
	if limits.Variable == "" {
		limits.Variable = d.Variable
	}
	return &Generator{rng: rng, limits: limits}
}

func (g *Generator) intn(lo, hi int64) int64 { return lo + g.rng.Int63n(hi-lo+1) }

func (g *Generator) nonZero(lo, hi int64) int64 {
	for {
		if n := g.intn(lo, hi); n != 0 {
			return n
		}
	}
}

// LinearEquation plants an integer answer and wraps the unknown in steps
// random operations, tracking the value of the growing expression. The
// result is an equation expr = value whose solution is the planted answer.
// A construction that would divide by zero or leave the magnitude bound is
// abandoned and restarted from scratch.
func (g *Generator) LinearEquation(steps int) (Equation, Rational, error) {
	steps = min(steps, g.limits.MaxDepth)
	for attempt := 0; attempt < g.limits.MaxAttempts; attempt++ {
		answer := Int(g.intn(-10, 10))
		expr, value, ok := g.wrap(Var(g.limits.Variable), answer, steps)
		if !ok {
			continue
		}
		if g.rng.Intn(2) == 0 {
			return Eq(expr, value), answer, nil
		}
		return Eq(value, expr), answer, nil
	}
	return Equation{}, Rational{}, fmt.Errorf("%w: no linear equation within %d attempts", ErrGenerationFailed, g.limits.MaxAttempts)
}

func (g *Generator) wrap(expr Expr, value Rational, steps int) (Expr, Rational, bool) {
	for i := 0; i < steps; i++ {
		k := Int(g.intn(1, 9))
		onLeft := g.rng.Intn(2) == 0
		var next Rational

		switch op := ops[g.rng.Intn(len(ops))]; op {
		case OpAdd:
			next = value.Add(k)
			expr = g.place(expr, op, k, onLeft)
		case OpSub:
			if onLeft {
				next = value.Sub(k)
			} else {
				next = k.Sub(value)
			}
			expr = g.place(expr, op, k, onLeft)
		case OpMul:
			next = value.Mul(k)
			expr = g.place(expr, op, k, onLeft)
		case OpDiv:
			if onLeft {
				next = value.Div(k)
			} else {
				if value.IsZero() {
					return nil, Rational{}, false
				}
				next = k.Div(value)
			}
			expr = g.place(expr, op, k, onLeft)
		case OpPow:
			// Only powers whose principal root recovers value can be solved.
			n := Int(g.intn(2, 3))
			if value.IsNegative() && n.num%2 == 0 {
				return nil, Rational{}, false
			}
			var err error
			if next, err = value.Pow(n); err != nil {
				return nil, Rational{}, false
			}
			expr = Power(expr, n)
		}

		if g.rng.Intn(8) == 0 {
			expr, next = Neg(expr), next.Neg()
		}
		if !g.bounded(next) {
			return nil, Rational{}, false
		}
		value = next
	}
	return expr, value, true
}

func (g *Generator) place(expr Expr, op Op, k Rational, onLeft bool) Expr {
	if onLeft {
		return NewPair(expr, op, k)
	}
	return NewPair(k, op, expr)
}

func (g *Generator) bounded(r Rational) bool {
	m := uint64(g.limits.MaxMagnitude)
	return absInt(r.num) <= m && r.Den() <= m
}

// Polynomial returns sum of c_i * x^i for i from degree down to 0 with
// random integer coefficients and a non-zero leading term.
func (g *Generator) Polynomial(degree int) Expr {
	x := Var(g.limits.Variable)
	var out Expr
	for i := degree; i >= 0; i-- {
		c := g.intn(-9, 9)
		if i == degree {
			c = g.nonZero(-9, 9)
		}
		if c == 0 {
			continue
		}
		var t Expr
		switch i {
		case 0:
			t = Int(absInt64(c))
		case 1:
			t = Product(Int(absInt64(c)), x)
		default:
			t = Product(Int(absInt64(c)), Power(x, Int(int64(i))))
		}
		switch {
		case out == nil && c < 0:
			out = Neg(t)
		case out == nil:
			out = t
		case c < 0:
			out = Difference(out, t)
		default:
			out = Sum(out, t)
		}
	}
	return out
}

func absInt64(n int64) int64 { return int64(absInt(n)) }

// Choices returns n distinct wrong answers near answer.
func (g *Generator) Choices(answer Rational, n int) []Rational {
	out := make([]Rational, 0, n)
	for len(out) < n {
		var c Rational
		if g.rng.Intn(4) == 0 && !answer.IsZero() {
			c = answer.Neg().Add(Int(g.intn(-1, 1)))
		} else {
			c = answer.Add(Int(g.nonZero(-5, 5)))
		}
		if c.Equal(answer) || slices.ContainsFunc(out, func(o Rational) bool { return o.Equal(c) }) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// PolynomialChoices returns up to n distinct expressions that differ from
// answer in at least one literal.
func (g *Generator) PolynomialChoices(answer Expr, n int) []Expr {
	seen := []string{answer.String()}
	var out []Expr
	for attempt := 0; len(out) < n && attempt < g.limits.MaxAttempts; attempt++ {
		c := g.perturb(answer)
		if slices.Contains(seen, c.String()) {
			continue
		}
		seen = append(seen, c.String())
		out = append(out, c)
	}
	return out
}

// perturb rebuilds e with some literals shifted by a small offset. Exponents
// are left alone so the choice keeps the same shape.
func (g *Generator) perturb(e Expr) Expr {
	switch v := e.(type) {
	case Rational:
		if g.rng.Intn(2) == 0 {
			if s := v.Add(Int(g.nonZero(-3, 3))); !s.IsZero() {
				return s
			}
		}
		return v
	case *Pair:
		if v.op == OpPow {
			return Power(g.perturb(v.left), v.right)
		}
		return NewPair(g.perturb(v.left), v.op, g.perturb(v.right))
	case *Negative:
		return Neg(g.perturb(v.inner))
	case *Func:
		return NewFunc(v.kind, g.perturb(v.inner))
	case *Derivative:
		return Ddx(g.perturb(v.inner))
	}
	return e
}
