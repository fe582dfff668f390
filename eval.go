package mathgen

import "fmt"

// Evaluate reduces e to a Rational. It fails with *UnknownError when e
// contains a Variable and *FuncError when it contains a Func. A Derivative
// node is differentiated first and the result evaluated.
func Evaluate(e Expr) (Rational, error) {
	switch v := e.(type) {
	case Rational:
		return v.Simplified(), nil
	case *Variable:
		return Rational{}, &UnknownError{Name: v.name}
	case *Func:
		return Rational{}, &FuncError{Kind: v.kind}
	case *Negative:
		inner, err := Evaluate(v.inner)
		if err != nil {
			return Rational{}, err
		}
		return inner.Neg(), nil
	case *Derivative:
		d, err := Differentiate(v.inner)
		if err != nil {
			return Rational{}, err
		}
		return Evaluate(d)
	case *Pair:
		l, err := Evaluate(v.left)
		if err != nil {
			return Rational{}, err
		}
		r, err := Evaluate(v.right)
		if err != nil {
			return Rational{}, err
		}
		return apply(l, v.op, r)
	}
	return Rational{}, fmt.Errorf("%w: unexpected node %T", ErrInvariant, e)
}

func apply(l Rational, op Op, r Rational) (Rational, error) {
	switch op {
	case OpAdd:
		return l.Add(r), nil
	case OpSub:
		return l.Sub(r), nil
	case OpMul:
		return l.Mul(r), nil
	case OpDiv:
		if r.IsZero() {
			return Rational{}, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, l, r)
		}
		return l.Div(r), nil
	case OpPow:
		return power(l, r)
	}
	return Rational{}, fmt.Errorf("%w: unknown operator %s", ErrInvariant, op)
}

// power evaluates base^exp. A fractional exponent p/q is taken as the
// principal q-th root raised to p, and only when that root is exact.
func power(base, exp Rational) (Rational, error) {
	exp = exp.Simplified()
	if exp.Den() == 1 {
		return base.Pow(exp)
	}
	root, err := base.Root(exp.Den())
	if err != nil {
		return Rational{}, err
	}
	return root.Pow(Int(exp.num))
}

// MustEvaluate is like Evaluate but panics on failure. It is meant for
// trees known to be closed, such as generator output.
func MustEvaluate(e Expr) Rational {
	r, err := Evaluate(e)
	if err != nil {
		panic(fmt.Sprintf("mathgen: evaluate %s: %v", e, err))
	}
	return r
}
