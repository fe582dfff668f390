package mathgen

// ============================================================
// Simplification
// ============================================================

// Simplify returns an equivalent expression after one bottom-up pass of
// local rewrite rules. Closed subtrees are folded to a Rational first.
// The pass is not confluent: simplifying the output again can still make
// progress, see SimplifyFully.
func Simplify(e Expr) Expr {
	if r, ok := fold(e); ok {
		return r
	}

	switch v := e.(type) {
	case *Pair:
		l, r := Simplify(v.left), Simplify(v.right)
		simplified := NewPair(l, v.op, r)
		if val, ok := fold(simplified); ok {
			return val
		}
		return rewrite(l, v.op, r)
	case *Negative:
		inner := Simplify(v.inner)
		if n, ok := inner.(*Negative); ok {
			return n.inner
		}
		return Neg(inner)
	case *Derivative:
		d, err := Differentiate(v.inner)
		if err != nil {
			return Ddx(Simplify(v.inner))
		}
		return Simplify(d)
	case *Func:
		return NewFunc(v.kind, Simplify(v.inner))
	}
	return e
}

// SimplifyFully repeats Simplify until the tree stops changing or
// maxPasses passes have run.
func SimplifyFully(e Expr, maxPasses int) Expr {
	cur := Simplify(e)
	for i := 1; i < maxPasses; i++ {
		next := Simplify(cur)
		if next.Equal(cur) {
			break
		}
		cur = next
	}
	return cur
}

// fold evaluates e when it is closed and has an exact value.
func fold(e Expr) (Rational, bool) {
	if e.Unknowns() != 0 {
		return Rational{}, false
	}
	r, err := Evaluate(e)
	return r, err == nil
}

func rewrite(l Expr, op Op, r Expr) Expr {
	switch op {
	case OpAdd:
		return simplifySum(l, r)
	case OpSub:
		return simplifyDifference(l, r)
	case OpMul:
		return simplifyProduct(l, r)
	case OpDiv:
		return simplifyQuotient(l, r)
	case OpPow:
		return simplifyPower(l, r)
	}
	return NewPair(l, op, r)
}

// ============================================================
// Rules per operator. Arguments are already simplified; the first
// matching rule wins.
// ============================================================

func simplifyProduct(l, r Expr) Expr {
	lr, lIsRat := l.(Rational)
	rr, rIsRat := r.(Rational)

	switch {
	case lIsRat && lr.IsZero(), rIsRat && rr.IsZero():
		return Int(0)
	case lIsRat && isOne(lr):
		return r
	case rIsRat && isOne(rr):
		return l
	case lIsRat && rIsRat:
		return lr.Mul(rr)
	case rIsRat:
		// Constants go first.
		return simplifyProduct(r, l)
	}

	ln, lIsNeg := l.(*Negative)
	rn, rIsNeg := r.(*Negative)
	switch {
	case lIsNeg && rIsNeg:
		return simplifyProduct(ln.inner, rn.inner)
	case lIsNeg:
		return negate(simplifyProduct(ln.inner, r))
	case rIsNeg:
		return negate(simplifyProduct(l, rn.inner))
	}

	if lIsRat {
		if lr.IsNegative() {
			return negate(simplifyProduct(lr.Neg(), r))
		}
		if c, rest, ok := coefficient(r); ok {
			return simplifyProduct(lr.Mul(c), rest)
		}
		return Product(l, r)
	}

	if base, exp, ok := combinedPowers(l, r, OpAdd); ok {
		return simplifyPower(base, exp)
	}
	if l.Equal(r) {
		return Power(l, Int(2))
	}

	if c, rest, ok := coefficient(r); ok {
		return simplifyProduct(c, simplifyProduct(l, rest))
	}
	if c, rest, ok := coefficient(l); ok {
		return simplifyProduct(c, simplifyProduct(rest, r))
	}
	return Product(l, r)
}

func simplifySum(l, r Expr) Expr {
	if isZero(l) {
		return r
	}
	if isZero(r) {
		return l
	}
	if rr, ok := r.(Rational); ok && rr.IsNegative() {
		return Difference(l, rr.Neg())
	}
	if rn, ok := r.(*Negative); ok {
		return simplifyDifference(l, rn.inner)
	}
	if ln, ok := l.(*Negative); ok {
		return simplifyDifference(r, ln.inner)
	}
	if c1, u1 := term(l); u1.Unknowns() > 0 {
		if c2, u2 := term(r); u1.Equal(u2) {
			return simplifyProduct(c1.Add(c2), u1)
		}
	}
	return Sum(l, r)
}

func simplifyDifference(l, r Expr) Expr {
	if isZero(l) {
		return negate(r)
	}
	if isZero(r) {
		return l
	}
	if rn, ok := r.(*Negative); ok {
		return simplifySum(l, rn.inner)
	}
	if rr, ok := r.(Rational); ok && rr.IsNegative() {
		return Sum(l, rr.Neg())
	}
	if c1, u1 := term(l); u1.Unknowns() > 0 {
		if c2, u2 := term(r); u1.Equal(u2) {
			return simplifyProduct(c1.Sub(c2), u1)
		}
	}
	return Difference(l, r)
}

func simplifyQuotient(l, r Expr) Expr {
	if rr, ok := r.(Rational); ok && isOne(rr) {
		return l
	}
	if isZero(l) {
		return Int(0)
	}
	if l.Equal(r) {
		return Int(1)
	}

	if ln, ok := l.(*Negative); ok {
		return negate(simplifyQuotient(ln.inner, r))
	}
	if rn, ok := r.(*Negative); ok {
		return negate(simplifyQuotient(l, rn.inner))
	}

	// (a/b)/c = a/(b*c)
	if lp, ok := l.(*Pair); ok && lp.op == OpDiv {
		return simplifyQuotient(lp.left, simplifyProduct(lp.right, r))
	}
	// a/(b/c) = (a*c)/b
	if rp, ok := r.(*Pair); ok && rp.op == OpDiv {
		return simplifyQuotient(simplifyProduct(l, rp.right), rp.left)
	}

	if base, exp, ok := combinedPowers(l, r, OpSub); ok {
		return simplifyPower(base, exp)
	}
	if c, rest, ok := coefficient(l); ok {
		if rr, isRat := r.(Rational); isRat && !rr.IsZero() {
			return simplifyProduct(c.Div(rr), rest)
		}
		return simplifyProduct(c, simplifyQuotient(rest, r))
	}
	return Quotient(l, r)
}

func simplifyPower(base, exp Expr) Expr {
	if er, ok := exp.(Rational); ok {
		if er.IsZero() {
			return Int(1)
		}
		if isOne(er) {
			return base
		}
	}
	if br, ok := base.(Rational); ok && isOne(br) {
		return Int(1)
	}
	// (b^m)^n = b^(m*n)
	if bp, ok := base.(*Pair); ok && bp.op == OpPow {
		return simplifyPower(bp.left, Simplify(Product(bp.right, exp)))
	}
	return Power(base, exp)
}

// ============================================================
// Helpers
// ============================================================

func isOne(r Rational) bool { return r.Equal(Int(1)) }

func isZero(e Expr) bool {
	r, ok := e.(Rational)
	return ok && r.IsZero()
}

// negate wraps e in a Negative, cancelling an existing one.
func negate(e Expr) Expr {
	switch v := e.(type) {
	case *Negative:
		return v.inner
	case Rational:
		return v.Neg()
	}
	return Neg(e)
}

// coefficient splits c*rest when the left factor is a literal.
func coefficient(e Expr) (Rational, Expr, bool) {
	p, ok := e.(*Pair)
	if !ok || p.op != OpMul {
		return Rational{}, nil, false
	}
	c, ok := p.left.(Rational)
	if !ok {
		return Rational{}, nil, false
	}
	return c, p.right, true
}

// term is coefficient with an implicit 1 for uncoefficiented terms.
func term(e Expr) (Rational, Expr) {
	if c, rest, ok := coefficient(e); ok {
		return c, rest
	}
	return Int(1), e
}

// powerOf views e as base^exp, with a bare expression being e^1.
func powerOf(e Expr) (base, exp Expr, explicit bool) {
	if p, ok := e.(*Pair); ok && p.op == OpPow {
		return p.left, p.right, true
	}
	return e, Int(1), false
}

// combinedPowers merges b^m and b^n into b^(m op n) when at least one side
// is an explicit power over the same base.
func combinedPowers(l, r Expr, op Op) (Expr, Expr, bool) {
	lb, le, lpow := powerOf(l)
	rb, re, rpow := powerOf(r)
	if !(lpow || rpow) || !lb.Equal(rb) {
		return nil, nil, false
	}
	return lb, Simplify(NewPair(le, op, re)), true
}
