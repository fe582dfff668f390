package mathgen

import "fmt"

// Differentiate returns the derivative of e with respect to its unknown.
// The result is not simplified. A power whose exponent contains the
// unknown has no rule here and yields ErrUnsupported.
func Differentiate(e Expr) (Expr, error) {
	// Constant subtrees under any operator differentiate to zero.
	if e.Unknowns() == 0 {
		return Int(0), nil
	}

	switch v := e.(type) {
	case Rational:
		return Int(0), nil
	case *Variable:
		return Int(1), nil
	case *Negative:
		d, err := Differentiate(v.inner)
		if err != nil {
			return nil, err
		}
		return Neg(d), nil
	case *Derivative:
		first, err := Differentiate(v.inner)
		if err != nil {
			return nil, err
		}
		return Differentiate(first)
	case *Func:
		d, err := Differentiate(v.inner)
		if err != nil {
			return nil, err
		}
		var outer Expr
		switch v.kind {
		case Sine:
			outer = Cos(v.inner)
		case Cosine:
			outer = Neg(Sin(v.inner))
		default:
			return nil, fmt.Errorf("%w: derivative of %s", ErrUnsupported, v.kind)
		}
		return Product(outer, d), nil
	case *Pair:
		return differentiatePair(v)
	}
	return nil, fmt.Errorf("%w: unexpected node %T", ErrInvariant, e)
}

func differentiatePair(p *Pair) (Expr, error) {
	if p.op == OpPow {
		if p.right.Unknowns() != 0 {
			return nil, fmt.Errorf("%w: exponent %s contains the unknown", ErrUnsupported, p.right)
		}
		db, err := Differentiate(p.left)
		if err != nil {
			return nil, err
		}
		// n * base^(n-1) * base'
		return Product(
			Product(p.right, Power(p.left, Difference(p.right, Int(1)))),
			db,
		), nil
	}

	dl, err := Differentiate(p.left)
	if err != nil {
		return nil, err
	}
	dr, err := Differentiate(p.right)
	if err != nil {
		return nil, err
	}

	switch p.op {
	case OpAdd, OpSub:
		return NewPair(dl, p.op, dr), nil
	case OpMul:
		return Sum(Product(dl, p.right), Product(p.left, dr)), nil
	case OpDiv:
		return Quotient(
			Difference(Product(dl, p.right), Product(p.left, dr)),
			Power(p.right, Int(2)),
		), nil
	}
	return nil, fmt.Errorf("%w: unknown operator %s", ErrInvariant, p.op)
}

// MustDifferentiate is like Differentiate but panics on failure.
func MustDifferentiate(e Expr) Expr {
	d, err := Differentiate(e)
	if err != nil {
		panic(fmt.Sprintf("mathgen: differentiate %s: %v", e, err))
	}
	return d
}

// DifferentiateN applies Differentiate n times.
func DifferentiateN(e Expr, n int) (Expr, error) {
	out := e
	for i := 0; i < n; i++ {
		var err error
		if out, err = Differentiate(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
