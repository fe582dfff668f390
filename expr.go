// Package mathgen is the computer-algebra core behind the maths practice
// problem generator.
//
// Expressions are immutable trees built from Rational, Pair, Negative,
// Variable, Derivative and Func nodes. Four passes operate on them:
//   - Evaluate reduces a closed tree to an exact Rational
//   - Differentiate returns the symbolic derivative
//   - Simplify applies one bottom-up pass of local rewrite rules
//   - Solve isolates the single unknown of an Equation
//
// Every pass is a pure function; no tree is modified after construction,
// so subtrees may appear in several places of a result.
package mathgen

import (
	"fmt"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	String() string
	LaTeX() string
	// Precedence is used for bracket placement only.
	Precedence() int
	// Unknowns counts Variable occurrences beneath the node.
	Unknowns() int
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Op: binary operators
// ============================================================

type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

var ops = []Op{OpAdd, OpSub, OpMul, OpDiv, OpPow}

func (o Op) Precedence() int {
	switch o {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv:
		return 2
	}
	return 3
}

func (o Op) IsAssociative() bool { return o == OpAdd || o == OpMul }

// Inverse returns the operator that undoes o. Pow maps to itself; undoing
// a power means raising to the reciprocal exponent, which callers handle.
func (o Op) Inverse() Op {
	switch o {
	case OpAdd:
		return OpSub
	case OpSub:
		return OpAdd
	case OpMul:
		return OpDiv
	case OpDiv:
		return OpMul
	}
	return OpPow
}

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp is the inverse of Op.String.
func ParseOp(s string) (Op, error) {
	for _, o := range ops {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// ============================================================
// Pair: left op right
// ============================================================

type Pair struct {
	left, right Expr
	op          Op
}

func NewPair(left Expr, op Op, right Expr) *Pair {
	return &Pair{left: left, op: op, right: right}
}

func Sum(l, r Expr) *Pair        { return NewPair(l, OpAdd, r) }
func Difference(l, r Expr) *Pair { return NewPair(l, OpSub, r) }
func Product(l, r Expr) *Pair    { return NewPair(l, OpMul, r) }
func Quotient(l, r Expr) *Pair   { return NewPair(l, OpDiv, r) }
func Power(l, r Expr) *Pair      { return NewPair(l, OpPow, r) }

func (p *Pair) Left() Expr  { return p.left }
func (p *Pair) Right() Expr { return p.right }
func (p *Pair) Op() Op      { return p.op }

func (p *Pair) Precedence() int  { return p.op.Precedence() }
func (p *Pair) Unknowns() int    { return p.left.Unknowns() + p.right.Unknowns() }
func (p *Pair) exprType() string { return "pair" }

func (p *Pair) Equal(other Expr) bool {
	o, ok := other.(*Pair)
	return ok && p.op == o.op && p.left.Equal(o.left) && p.right.Equal(o.right)
}

// RequiresBrackets reports whether the left and right operands need
// parentheses when rendered. divisionAsFraction is set by renderers that
// draw division as a stacked fraction; inlinePowers by renderers that
// write exponents on the baseline with ^.
func (p *Pair) RequiresBrackets(divisionAsFraction, inlinePowers bool) (left, right bool) {
	if p.op == OpDiv && divisionAsFraction {
		return false, false
	}

	prec := p.op.Precedence()
	left = p.left.Precedence() < prec
	rprec := p.right.Precedence()
	right = rprec < prec || (rprec == prec && !p.op.IsAssociative())

	if divisionAsFraction {
		if isFractionLike(p.left) {
			left = false
		}
		if isFractionLike(p.right) {
			right = false
		}
	}

	if p.op == OpPow && !inlinePowers {
		right = false
	}

	if p.op == OpPow {
		if l, ok := p.left.(*Pair); ok && (l.op == OpPow || l.op == OpDiv) {
			left = true
		}
	}
	return left, right
}

// isFractionLike reports whether e is drawn with its own fraction bar.
func isFractionLike(e Expr) bool {
	switch v := e.(type) {
	case Rational:
		return true
	case *Pair:
		return v.op == OpDiv
	}
	return false
}

func (p *Pair) String() string {
	lb, rb := p.RequiresBrackets(false, true)
	l, r := p.left.String(), p.right.String()
	if lb {
		l = "(" + l + ")"
	}
	if rb {
		r = "(" + r + ")"
	}
	return l + " " + p.op.String() + " " + r
}

// ============================================================
// Negative: unary minus
// ============================================================

type Negative struct{ inner Expr }

func Neg(inner Expr) *Negative { return &Negative{inner: inner} }

func (n *Negative) Inner() Expr      { return n.inner }
func (n *Negative) Precedence() int  { return 1 }
func (n *Negative) Unknowns() int    { return n.inner.Unknowns() }
func (n *Negative) String() string   { return "-" + n.inner.String() }
func (n *Negative) exprType() string { return "negative" }
func (n *Negative) Equal(other Expr) bool {
	o, ok := other.(*Negative)
	return ok && n.inner.Equal(o.inner)
}

// ============================================================
// Variable: the unknown
// ============================================================

type Variable struct{ name string }

func Var(name string) *Variable { return &Variable{name: name} }

func (v *Variable) Name() string     { return v.name }
func (v *Variable) Precedence() int  { return 3 }
func (v *Variable) Unknowns() int    { return 1 }
func (v *Variable) String() string   { return v.name }
func (v *Variable) LaTeX() string    { return v.name }
func (v *Variable) exprType() string { return "variable" }
func (v *Variable) Equal(other Expr) bool {
	o, ok := other.(*Variable)
	return ok && v.name == o.name
}

// ============================================================
// Derivative: d/dx of inner, not yet taken
// ============================================================

type Derivative struct{ inner Expr }

func Ddx(inner Expr) *Derivative { return &Derivative{inner: inner} }

func (d *Derivative) Inner() Expr      { return d.inner }
func (d *Derivative) Precedence() int  { return 4 }
func (d *Derivative) Unknowns() int    { return d.inner.Unknowns() }
func (d *Derivative) String() string   { return "ddx(" + d.inner.String() + ")" }
func (d *Derivative) exprType() string { return "derivative" }
func (d *Derivative) Equal(other Expr) bool {
	o, ok := other.(*Derivative)
	return ok && d.inner.Equal(o.inner)
}

// ============================================================
// Func: trigonometric application
// ============================================================

type FuncKind int

const (
	Sine FuncKind = iota
	Cosine
)

func (k FuncKind) String() string {
	switch k {
	case Sine:
		return "sin"
	case Cosine:
		return "cos"
	}
	return fmt.Sprintf("FuncKind(%d)", int(k))
}

func parseFuncKind(s string) (FuncKind, error) {
	switch s {
	case "sin":
		return Sine, nil
	case "cos":
		return Cosine, nil
	}
	return 0, fmt.Errorf("unknown function %q", s)
}

type Func struct {
	kind  FuncKind
	inner Expr
}

func NewFunc(kind FuncKind, inner Expr) *Func { return &Func{kind: kind, inner: inner} }
func Sin(inner Expr) *Func                    { return NewFunc(Sine, inner) }
func Cos(inner Expr) *Func                    { return NewFunc(Cosine, inner) }

func (f *Func) Kind() FuncKind   { return f.kind }
func (f *Func) Inner() Expr      { return f.inner }
func (f *Func) Precedence() int  { return 4 }
func (f *Func) Unknowns() int    { return f.inner.Unknowns() }
func (f *Func) String() string   { return f.kind.String() + "(" + f.inner.String() + ")" }
func (f *Func) exprType() string { return "func" }
func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.kind == o.kind && f.inner.Equal(o.inner)
}

// ============================================================
// Equation
// ============================================================

type Equation struct{ LHS, RHS Expr }

func Eq(lhs, rhs Expr) Equation { return Equation{LHS: lhs, RHS: rhs} }

func (e Equation) String() string { return e.LHS.String() + " = " + e.RHS.String() }
func (e Equation) LaTeX() string  { return e.LHS.LaTeX() + " = " + e.RHS.LaTeX() }
func (e Equation) Unknowns() int  { return e.LHS.Unknowns() + e.RHS.Unknowns() }

// ============================================================
// Top-level queries
// ============================================================

func UnknownCount(e Expr) int { return e.Unknowns() }
func Precedence(e Expr) int   { return e.Precedence() }

// FreeVariables returns the distinct variable names in e in order of first
// appearance, left to right.
func FreeVariables(e Expr) []string {
	seen := map[string]struct{}{}
	var names []string
	walk(e, func(n Expr) {
		if v, ok := n.(*Variable); ok {
			if _, dup := seen[v.name]; !dup {
				seen[v.name] = struct{}{}
				names = append(names, v.name)
			}
		}
	})
	return names
}

func walk(e Expr, visit func(Expr)) {
	visit(e)
	switch v := e.(type) {
	case *Pair:
		walk(v.left, visit)
		walk(v.right, visit)
	case *Negative:
		walk(v.inner, visit)
	case *Derivative:
		walk(v.inner, visit)
	case *Func:
		walk(v.inner, visit)
	}
}

// Substitute replaces every occurrence of the named variable with value.
// Pending derivatives are taken first. The result is not simplified.
func Substitute(e Expr, name string, value Expr) Expr {
	switch v := e.(type) {
	case *Variable:
		if v.name == name {
			return value
		}
		return v
	case *Pair:
		return NewPair(Substitute(v.left, name, value), v.op, Substitute(v.right, name, value))
	case *Negative:
		return Neg(Substitute(v.inner, name, value))
	case *Derivative:
		// Differentiate before the unknown disappears.
		if d, err := Differentiate(v.inner); err == nil {
			return Substitute(d, name, value)
		}
		return Ddx(Substitute(v.inner, name, value))
	case *Func:
		return NewFunc(v.kind, Substitute(v.inner, name, value))
	}
	return e
}

// Depth is the height of the tree; a lone leaf has depth 1.
func Depth(e Expr) int {
	switch v := e.(type) {
	case *Pair:
		return 1 + max(Depth(v.left), Depth(v.right))
	case *Negative:
		return 1 + Depth(v.inner)
	case *Derivative:
		return 1 + Depth(v.inner)
	case *Func:
		return 1 + Depth(v.inner)
	}
	return 1
}

func PrettyPrint(e Expr) string { return "  " + strings.TrimSpace(e.String()) + "\n" }
