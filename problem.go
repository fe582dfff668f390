package mathgen

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

var ErrInvalidLevel = errors.New("invalid level")

// Maths is anything that renders both as text and as LaTeX: an Expr or an
// Equation.
type Maths interface {
	String() string
	LaTeX() string
}

type Choice struct {
	Option rune
	Answer Maths
}

func (c Choice) LaTeX() string { return fmt.Sprintf("%c) \\ %s", c.Option, c.Answer.LaTeX()) }
func (c Choice) String() string { return fmt.Sprintf("%c) %s", c.Option, c.Answer.String()) }

// Problem is a multiple-choice question. Choices[Answer] is correct.
type Problem struct {
	ID      uuid.UUID
	Level   int
	Prompt  Maths
	Choices []Choice
	Answer  int
}

var optionLetters = []rune{'a', 'b', 'c', 'd'}

// Levels lists the supported problem levels.
func Levels() []int { return []int{1, 2} }

// Problem generates a multiple-choice problem:
//   - level 1: solve a linear equation for the unknown
//   - level 2: differentiate a polynomial
func (g *Generator) Problem(level int) (*Problem, error) {
	wrong := len(optionLetters) - 1
	var prompt, answer Maths
	var choices []Maths

	switch level {
	case 1:
		eq, value, err := g.LinearEquation(2)
		if err != nil {
			return nil, err
		}
		x := Var(g.limits.Variable)
		for _, c := range g.Choices(value, wrong) {
			choices = append(choices, Eq(x, c))
		}
		prompt, answer = eq, Eq(x, value)
	case 2:
		p := Ddx(g.Polynomial(4))
		simplified := Simplify(p)
		for _, c := range g.PolynomialChoices(simplified, wrong) {
			choices = append(choices, c)
		}
		prompt, answer = p, simplified
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	idx := g.rng.Intn(len(choices) + 1)
	choices = slices.Insert(choices, idx, answer)

	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return nil, fmt.Errorf("problem id: %w", err)
	}
	p := &Problem{ID: id, Level: level, Prompt: prompt, Answer: idx}
	for i, c := range choices {
		p.Choices = append(p.Choices, Choice{Option: optionLetters[i], Answer: c})
	}
	return p, nil
}

type mathsJSON struct {
	String string `json:"string"`
	LaTeX  string `json:"latex"`
}

type choiceJSON struct {
	Option string `json:"option"`
	mathsJSON
}

type problemJSON struct {
	ID      string       `json:"id"`
	Level   int          `json:"level"`
	Prompt  mathsJSON    `json:"prompt"`
	Choices []choiceJSON `json:"choices"`
	Answer  int          `json:"answer"`
}

func (p *Problem) MarshalJSON() ([]byte, error) {
	out := problemJSON{
		ID:     p.ID.String(),
		Level:  p.Level,
		Prompt: mathsJSON{String: p.Prompt.String(), LaTeX: p.Prompt.LaTeX()},
		Answer: p.Answer,
	}
	for _, c := range p.Choices {
		out.Choices = append(out.Choices, choiceJSON{
			Option:    string(c.Option),
			mathsJSON: mathsJSON{String: c.Answer.String(), LaTeX: c.Answer.LaTeX()},
		})
	}
	return json.Marshal(out)
}
