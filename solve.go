package mathgen

import "fmt"

// Solve returns the value of the single unknown in eq.
//
// The side holding the unknown is peeled one node at a time while the
// inverse operation is applied to the other side, which is evaluated once
// the unknown stands alone. The unknown must occur exactly once. Powers are
// inverted with the reciprocal exponent, so only the principal root is
// found.
func Solve(eq Equation) (Rational, error) {
	lu, ru := eq.LHS.Unknowns(), eq.RHS.Unknowns()
	switch n := lu + ru; {
	case n > 1:
		return Rational{}, fmt.Errorf("%w: found %d", ErrTooManyUnknowns, n)
	case n == 0:
		return Rational{}, ErrNoUnknowns
	}

	unknown, constant := eq.LHS, eq.RHS
	if ru == 1 {
		unknown, constant = eq.RHS, eq.LHS
	}

	for {
		switch v := unknown.(type) {
		case Rational:
			return Rational{}, fmt.Errorf("%w: unknown vanished while solving %s", ErrInvariant, eq)
		case *Variable:
			r, err := Evaluate(constant)
			if err != nil {
				return Rational{}, fmt.Errorf("%w %s: %w", ErrFailedToEval, constant, err)
			}
			return r, nil
		case *Negative:
			unknown = v.inner
			constant = Neg(constant)
		case *Derivative:
			d, err := Differentiate(v.inner)
			if err != nil {
				return Rational{}, err
			}
			// Product-rule output repeats the unknown until simplified.
			unknown = Simplify(d)
			switch n := unknown.Unknowns(); {
			case n == 0:
				return Rational{}, fmt.Errorf("%w: differentiation removed the unknown", ErrNoUnknowns)
			case n > 1:
				return Rational{}, fmt.Errorf("%w: %s", ErrTooManyUnknowns, unknown)
			}
		case *Func:
			return Rational{}, fmt.Errorf("%w: inverse of %s", ErrUnsupported, v.kind)
		case *Pair:
			next, folded, err := isolate(v, constant)
			if err != nil {
				return Rational{}, err
			}
			unknown, constant = next, folded
		default:
			return Rational{}, fmt.Errorf("%w: unexpected node %T", ErrInvariant, unknown)
		}
	}
}

// isolate moves the constant operand of p to the other side of the
// equation and returns the operand that still holds the unknown.
func isolate(p *Pair, constant Expr) (Expr, Expr, error) {
	switch {
	case p.left.Unknowns() == 1 && p.right.Unknowns() == 0:
		if p.op == OpPow {
			return p.left, Power(constant, Quotient(Int(1), p.right)), nil
		}
		return p.left, NewPair(constant, p.op.Inverse(), p.right), nil

	case p.right.Unknowns() == 1 && p.left.Unknowns() == 0:
		switch p.op {
		case OpAdd, OpMul:
			return p.right, NewPair(constant, p.op.Inverse(), p.left), nil
		case OpSub, OpDiv:
			// l - x = c gives x = l - c, and l / x = c gives x = l / c.
			return p.right, NewPair(p.left, p.op, constant), nil
		case OpPow:
			return nil, nil, fmt.Errorf("%w: unknown in exponent of %s", ErrUnsupported, p)
		}
	}
	return nil, nil, fmt.Errorf("%w: cannot locate unknown in %s", ErrInvariant, p)
}

// Satisfies reports whether substituting value for the named variable makes
// both sides of eq evaluate to the same Rational.
func Satisfies(eq Equation, name string, value Rational) (bool, error) {
	l, err := Evaluate(Substitute(eq.LHS, name, value))
	if err != nil {
		return false, err
	}
	r, err := Evaluate(Substitute(eq.RHS, name, value))
	if err != nil {
		return false, err
	}
	return l.Equal(r), nil
}
