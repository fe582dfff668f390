package mathgen

// ============================================================
// LaTeX rendering
// ============================================================

func latexBracket(s string) string { return "\\left(" + s + "\\right)" }

func (o Op) LaTeX() string {
	switch o {
	case OpMul:
		return "\\times"
	case OpDiv:
		return "\\div"
	}
	return o.String()
}

func (p *Pair) LaTeX() string {
	lb, rb := p.RequiresBrackets(true, false)
	l, r := p.left.LaTeX(), p.right.LaTeX()
	if lb {
		l = latexBracket(l)
	}
	if rb {
		r = latexBracket(r)
	}

	switch p.op {
	case OpMul:
		// Juxtapose coefficients with variables, powers of variables and
		// bracketed groups: 3x, 2x^{2}, 2\left(x + 1\right).
		if lb || rb || isVariableTerm(p.right) {
			return l + " " + r
		}
		return l + " \\times " + r
	case OpDiv:
		return "\\frac{" + l + "}{" + r + "}"
	case OpPow:
		return l + "^{" + r + "}"
	}
	return l + " " + p.op.LaTeX() + " " + r
}

func isVariableTerm(e Expr) bool {
	switch v := e.(type) {
	case *Variable:
		return true
	case *Pair:
		_, ok := v.left.(*Variable)
		return ok && v.op == OpPow
	}
	return false
}

func (n *Negative) LaTeX() string { return "-" + n.inner.LaTeX() }

func (d *Derivative) LaTeX() string {
	return "\\frac{d}{dx}" + latexBracket(d.inner.LaTeX())
}

func (f *Func) LaTeX() string { return "\\" + f.kind.String() + latexBracket(f.inner.LaTeX()) }

func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }
