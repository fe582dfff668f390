package mathgen

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

func (r Rational) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": r.exprType(), "value": fmt.Sprintf("%d/%d", r.num, r.Den())}
}

func (p *Pair) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":  p.exprType(),
		"op":    p.op.String(),
		"left":  p.left.toJSON(),
		"right": p.right.toJSON(),
	}
}

func (n *Negative) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": n.exprType(), "inner": n.inner.toJSON()}
}

func (v *Variable) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": v.exprType(), "name": v.name}
}

func (d *Derivative) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": d.exprType(), "inner": d.inner.toJSON()}
}

func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": f.exprType(), "name": f.kind.String(), "inner": f.inner.toJSON()}
}

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ParseJSON decodes the output of ToJSON.
func ParseJSON(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return FromJSON(m)
}

// FromJSON rebuilds an expression from its decoded JSON object. Trees are
// rebuilt as given, without simplification.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subExpr := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subString := func(field string) (string, error) {
		s, ok := data[field].(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "rational":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		r, err := ParseRational(val)
		if err != nil {
			return nil, fmt.Errorf("rational: %w", err)
		}
		return r, nil

	case "variable":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return Var(name), nil

	case "pair":
		opStr, err := subString("op")
		if err != nil {
			return nil, err
		}
		op, err := ParseOp(opStr)
		if err != nil {
			return nil, fmt.Errorf("pair: %w", err)
		}
		left, err := subExpr("left")
		if err != nil {
			return nil, err
		}
		right, err := subExpr("right")
		if err != nil {
			return nil, err
		}
		return NewPair(left, op, right), nil

	case "negative":
		inner, err := subExpr("inner")
		if err != nil {
			return nil, err
		}
		return Neg(inner), nil

	case "derivative":
		inner, err := subExpr("inner")
		if err != nil {
			return nil, err
		}
		return Ddx(inner), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		kind, err := parseFuncKind(name)
		if err != nil {
			return nil, fmt.Errorf("func: %w", err)
		}
		inner, err := subExpr("inner")
		if err != nil {
			return nil, err
		}
		return NewFunc(kind, inner), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// ExprJSON is the decoded object form, for embedding in other documents.
func ExprJSON(e Expr) map[string]interface{} { return e.toJSON() }
