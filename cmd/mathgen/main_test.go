package main

import (
	"bytes"
	"strings"
	"testing"
)

const twoXPlusThree = `{"type":"pair","op":"+","left":{"type":"pair","op":"*","left":{"type":"rational","value":"2/1"},"right":{"type":"variable","name":"x"}},"right":{"type":"rational","value":"3/1"}}`

func TestRun_Problem(t *testing.T) {
	var out bytes.Buffer
	if err := run("problem", []string{"-level", "1", "-n", "2", "-seed", "42"}, &out, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.String(), "answer: "); got != 2 {
		t.Errorf("want 2 answers, got %d in:\n%s", got, out.String())
	}
	for _, opt := range []string{"a) ", "b) ", "c) ", "d) "} {
		if !strings.Contains(out.String(), opt) {
			t.Errorf("missing option %q", opt)
		}
	}
}

func TestRun_ProblemReproducible(t *testing.T) {
	var a, b bytes.Buffer
	args := []string{"-level", "2", "-seed", "9"}
	if err := run("problem", args, &a, false); err != nil {
		t.Fatal(err)
	}
	if err := run("problem", args, &b, false); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("same seed gave different output:\n%s\n%s", a.String(), b.String())
	}
}

func TestRun_ProblemInvalidLevel(t *testing.T) {
	if err := run("problem", []string{"-level", "7", "-seed", "1"}, &bytes.Buffer{}, false); err == nil {
		t.Error("expected error for level 7")
	}
}

func TestRun_Diff(t *testing.T) {
	var out bytes.Buffer
	if err := run("diff", []string{"-simplify", twoXPlusThree}, &out, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "2" {
		t.Errorf("want 2, got %q", got)
	}
}

func TestRun_Solve(t *testing.T) {
	var out bytes.Buffer
	if err := run("solve", []string{twoXPlusThree, `{"type":"rational","value":"7/1"}`}, &out, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "2" {
		t.Errorf("want 2, got %q", got)
	}
}

func TestRun_Eval(t *testing.T) {
	var out bytes.Buffer
	half := `{"type":"pair","op":"/","left":{"type":"rational","value":"1/1"},"right":{"type":"rational","value":"2/1"}}`
	if err := run("eval", []string{half}, &out, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "1 / 2" {
		t.Errorf("want 1 / 2, got %q", got)
	}
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		cmd  string
		args []string
	}{
		{"nope", nil},
		{"eval", nil},
		{"eval", []string{`{"type":"variable","name":"x"}`}},
		{"simplify", []string{`not json`}},
	}
	for _, c := range cases {
		if err := run(c.cmd, c.args, &bytes.Buffer{}, false); err == nil {
			t.Errorf("%s %v: expected error", c.cmd, c.args)
		}
	}
}
