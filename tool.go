package mathgen

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// DefaultMaxPasses bounds simplify_fully when the request gives no limit.
const DefaultMaxPasses = 8

func HandleToolCall(req ToolRequest) ToolResponse {
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return FromJSON(val)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getInt := func(key string, def int) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return def, nil
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return int(f), nil
	}
	getBool := func(key string) bool {
		b, _ := req.Params[key].(bool)
		return b
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: e.toJSON(), LaTeX: LaTeX(e), String: String(e)}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(Simplify(e))

	case "simplify_fully":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		passes, err := getInt("passes", DefaultMaxPasses)
		if err != nil {
			return fail(err)
		}
		return respond(SimplifyFully(e, passes))

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		r, err := Evaluate(e)
		if err != nil {
			return fail(err)
		}
		return respond(r)

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		d, err := Differentiate(e)
		if err != nil {
			return fail(err)
		}
		if getBool("simplify") {
			d = Simplify(d)
		}
		return respond(d)

	case "solve":
		lhs, err := getExpr("lhs")
		if err != nil {
			return fail(err)
		}
		rhs, err := getExpr("rhs")
		if err != nil {
			return fail(err)
		}
		eq := Eq(lhs, rhs)
		r, err := Solve(eq)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: r.toJSON(), LaTeX: eq.LaTeX(), String: r.String()}

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		name, err := getString("var")
		if err != nil {
			return fail(err)
		}
		value, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(Substitute(e, name, value))

	case "unknowns":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			Result: map[string]interface{}{"count": UnknownCount(e), "variables": FreeVariables(e)},
			String: fmt.Sprint(UnknownCount(e)),
		}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{LaTeX: LaTeX(e), String: String(e)}

	case "requires_brackets":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		p, ok := e.(*Pair)
		if !ok {
			return fail(fmt.Errorf("requires_brackets: expr must be a pair, got %s", e.exprType()))
		}
		l, r := p.RequiresBrackets(getBool("division_as_fraction"), getBool("inline_powers"))
		return ToolResponse{Result: map[string]bool{"left": l, "right": r}}

	case "generate_problem":
		level, err := getInt("level", 1)
		if err != nil {
			return fail(err)
		}
		seed, err := getInt("seed", 1)
		if err != nil {
			return fail(err)
		}
		g := NewGenerator(rand.New(rand.NewSource(int64(seed))), DefaultLimits())
		p, err := g.Problem(level)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: p, LaTeX: p.Prompt.LaTeX(), String: p.Prompt.String()}

	case "tool_spec":
		var spec interface{}
		if err := json.Unmarshal([]byte(ToolSpec()), &spec); err != nil {
			return fail(err)
		}
		return ToolResponse{Result: spec}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func ToolSpec() string {
	expr := map[string]string{"expr": "object"}
	tools := []map[string]interface{}{
		ts("simplify", "One bottom-up simplification pass", []string{"expr"}, expr),
		ts("simplify_fully", "Repeat simplification until stable. Optional: passes (integer)", []string{"expr"}, map[string]string{"expr": "object", "passes": "integer"}),
		ts("evaluate", "Evaluate a closed expression to an exact rational", []string{"expr"}, expr),
		ts("diff", "Derivative with respect to the unknown. Optional: simplify (boolean)", []string{"expr"}, map[string]string{"expr": "object", "simplify": "boolean"}),
		ts("solve", "Solve lhs = rhs for its single unknown", []string{"lhs", "rhs"}, map[string]string{"lhs": "object", "rhs": "object"}),
		ts("substitute", "Replace var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("unknowns", "Count unknown occurrences and list variable names", []string{"expr"}, expr),
		ts("to_latex", "Render as LaTeX", []string{"expr"}, expr),
		ts("requires_brackets", "Bracket placement for a pair's operands", []string{"expr"}, map[string]string{"expr": "object", "division_as_fraction": "boolean", "inline_powers": "boolean"}),
		ts("generate_problem", "Generate a multiple-choice problem. level 1: linear equation, level 2: derivative", []string{}, map[string]string{"level": "integer", "seed": "integer"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
