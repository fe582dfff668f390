package mathgen

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// ============================================================
// Rational: exact fraction
// ============================================================

// Rational is a fraction with a signed 64-bit numerator and an unsigned
// 64-bit denominator. Values returned by arithmetic are reduced, carry
// their sign in the numerator and normalize zero to 0/1. Values built with
// Frac are kept as given until Simplified is called.
//
// Overflow is not detected; callers keep magnitudes bounded.
//
// The zero value is 0/1.
type Rational struct {
	num int64
	den uint64
}

func Int(n int64) Rational { return Rational{num: n, den: 1} }

// Frac builds n/d without reducing it. It panics if d is zero.
func Frac(n int64, d uint64) Rational {
	if d == 0 {
		panic("mathgen: denominator is zero")
	}
	return Rational{num: n, den: d}
}

func (r Rational) Num() int64 { return r.num }

func (r Rational) Den() uint64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

func (r Rational) Precedence() int  { return 2 }
func (r Rational) Unknowns() int    { return 0 }
func (r Rational) exprType() string { return "rational" }
func (r Rational) IsZero() bool     { return r.num == 0 }
func (r Rational) IsInt() bool      { return r.Simplified().Den() == 1 }
func (r Rational) IsNegative() bool { return r.num < 0 }
func (r Rational) Float64() float64 { return float64(r.num) / float64(r.Den()) }

// Equal compares values, so 2/4 equals 1/2.
func (r Rational) Equal(other Expr) bool {
	o, ok := other.(Rational)
	if !ok {
		return false
	}
	a, b := r.Simplified(), o.Simplified()
	return a.num == b.num && a.Den() == b.Den()
}

// Simplified returns r in lowest terms.
func (r Rational) Simplified() Rational {
	if r.num == 0 {
		return Rational{num: 0, den: 1}
	}
	g := gcd(absInt(r.num), r.Den())
	return Rational{num: r.num / int64(g), den: r.Den() / g}
}

// Cmp orders by the float64 value of each fraction. Fractions closer than
// float64 precision can compare as equal.
func (r Rational) Cmp(o Rational) int {
	a, b := r.Float64(), o.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r Rational) Less(o Rational) bool { return r.Cmp(o) < 0 }

func (r Rational) Neg() Rational { return Rational{num: -r.num, den: r.Den()}.Simplified() }

func (r Rational) Add(o Rational) Rational {
	d := lcm(r.Den(), o.Den())
	n := r.num*int64(d/r.Den()) + o.num*int64(d/o.Den())
	return Rational{num: n, den: d}.Simplified()
}

func (r Rational) Sub(o Rational) Rational { return r.Add(Rational{num: -o.num, den: o.Den()}) }

func (r Rational) Mul(o Rational) Rational {
	// Cross-reduce first to keep intermediate products small.
	g1 := gcd(absInt(r.num), o.Den())
	g2 := gcd(absInt(o.num), r.Den())
	n := (r.num / int64(g1)) * (o.num / int64(g2))
	d := (r.Den() / g2) * (o.Den() / g1)
	return Rational{num: n, den: d}.Simplified()
}

// Div panics when o is zero; Evaluate checks for that case and reports
// ErrDivisionByZero instead.
func (r Rational) Div(o Rational) Rational {
	if o.num == 0 {
		panic("mathgen: division by zero")
	}
	return r.Mul(o.reciprocal())
}

func (r Rational) reciprocal() Rational {
	if r.num < 0 {
		return Rational{num: -int64(r.Den()), den: absInt(r.num)}
	}
	return Rational{num: int64(r.Den()), den: uint64(r.num)}
}

// Pow raises r to an integer exponent. A non-integer exponent yields
// ErrUnsupported; a negative exponent on zero yields ErrDivisionByZero.
func (r Rational) Pow(exp Rational) (Rational, error) {
	exp = exp.Simplified()
	if exp.Den() != 1 {
		return Rational{}, fmt.Errorf("%w: fractional exponent %s", ErrUnsupported, exp)
	}
	if exp.num == 0 {
		return Int(1), nil
	}
	result := Int(1)
	base := r.Simplified()
	for n := absInt(exp.num); n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		if n > 1 {
			base = base.Mul(base)
		}
	}
	if exp.num < 0 {
		if result.IsZero() {
			return Rational{}, fmt.Errorf("%w: %s ^ %s", ErrDivisionByZero, r, exp)
		}
		return result.reciprocal().Simplified(), nil
	}
	return result, nil
}

// Root returns the exact n-th root of r. It fails with ErrUnsupported when
// the root is not rational or r is negative and n even. Only the
// non-negative root is returned.
func (r Rational) Root(n uint64) (Rational, error) {
	if n == 0 {
		return Rational{}, fmt.Errorf("%w: zeroth root", ErrUnsupported)
	}
	s := r.Simplified()
	if s.num < 0 && n%2 == 0 {
		return Rational{}, fmt.Errorf("%w: even root of negative %s", ErrUnsupported, s)
	}
	num, ok := exactRoot(absInt(s.num), n)
	if !ok {
		return Rational{}, fmt.Errorf("%w: %s has no exact root of degree %d", ErrUnsupported, s, n)
	}
	den, ok := exactRoot(s.Den(), n)
	if !ok {
		return Rational{}, fmt.Errorf("%w: %s has no exact root of degree %d", ErrUnsupported, s, n)
	}
	out := Rational{num: int64(num), den: den}
	if s.num < 0 {
		out.num = -out.num
	}
	return out, nil
}

func (r Rational) String() string {
	if r.Den() == 1 {
		return strconv.FormatInt(r.num, 10)
	}
	return fmt.Sprintf("%d / %d", r.num, r.Den())
}

func (r Rational) LaTeX() string {
	if r.Den() == 1 {
		return strconv.FormatInt(r.num, 10)
	}
	if r.num < 0 {
		return fmt.Sprintf("-\\frac{%d}{%d}", absInt(r.num), r.Den())
	}
	return fmt.Sprintf("\\frac{%d}{%d}", r.num, r.Den())
}

// ParseRational reads "n", "n/d" or "n / d". The result is reduced.
func ParseRational(s string) (Rational, error) {
	numStr, denStr, found := strings.Cut(s, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing numerator: %w", err)
	}
	if !found {
		return Int(num), nil
	}
	den, err := strconv.ParseUint(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing denominator: %w", err)
	}
	if den == 0 {
		return Rational{}, fmt.Errorf("invalid rational %q: %w", s, ErrDivisionByZero)
	}
	return Rational{num: num, den: den}.Simplified(), nil
}

func gcd[T constraints.Unsigned](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm[T constraints.Unsigned](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}

func absInt(n int64) uint64 {
	if n < 0 {
		return uint64(-n)
	}
	return uint64(n)
}

// exactRoot returns the integer n-th root of x when x is a perfect power.
func exactRoot(x, n uint64) (uint64, bool) {
	if x < 2 || n == 1 {
		return x, true
	}
	// 2^64 overflows, so no root of degree 64 or more exceeds 1.
	if n >= 64 {
		return 0, false
	}
	guess := uint64(math.Round(math.Pow(float64(x), 1/float64(n))))
	for _, c := range []uint64{guess, guess - 1, guess + 1} {
		if p, ok := powUint(c, n); ok && p == x {
			return c, true
		}
	}
	return 0, false
}

func powUint(b, n uint64) (uint64, bool) {
	if b <= 1 {
		if b == 0 && n > 0 {
			return 0, true
		}
		return 1, true
	}
	out := uint64(1)
	for i := uint64(0); i < n; i++ {
		hi, lo := bits.Mul64(out, b)
		if hi != 0 {
			return 0, false
		}
		out = lo
	}
	return out, true
}
