// cmd/mathgen/main.go: command-line front end for mathgen
//
// Usage:
//
//	mathgen problem  [-level 1] [-n 1] [-seed 0] [-latex] [-config mathgen.yaml]
//	mathgen simplify [-passes N] '<expr json>'
//	mathgen diff     [-simplify] '<expr json>'
//	mathgen eval     '<expr json>'
//	mathgen solve    '<lhs json>' '<rhs json>'
//
// Expressions use the JSON form produced by mathgen.ToJSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/njchilds90/gomathgen"
	"github.com/njchilds90/gomathgen/internal/config"
)

const (
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mathgen: ")

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if err := run(os.Args[1], os.Args[2:], os.Stdout, color); err != nil {
		log.Fatal(err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: mathgen <problem|simplify|diff|eval|solve> [flags] [args]")
}

func run(cmd string, args []string, out io.Writer, color bool) error {
	switch cmd {
	case "problem":
		return runProblem(args, out, color)
	case "simplify":
		return runSimplify(args, out)
	case "diff":
		return runDiff(args, out)
	case "eval":
		return runEval(args, out)
	case "solve":
		return runSolve(args, out)
	case "help", "-h", "--help":
		usage(out)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func runProblem(args []string, out io.Writer, color bool) error {
	fs := flag.NewFlagSet("problem", flag.ContinueOnError)
	level := fs.Int("level", 1, "Problem level (1: linear equation, 2: derivative)")
	n := fs.Int("n", 1, "Number of problems")
	seed := fs.Int64("seed", 0, "Random seed (0 uses the config seed, then the clock)")
	latex := fs.Bool("latex", false, "Print LaTeX instead of plain text")
	configPath := fs.String("config", "", "Path to mathgen.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *seed == 0 {
		*seed = cfg.Generator.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gen := mathgen.NewGenerator(rand.New(rand.NewSource(*seed)), cfg.Generator.Limits())

	for i := 0; i < *n; i++ {
		p, err := gen.Problem(*level)
		if err != nil {
			return err
		}
		printProblem(out, p, *latex, color)
	}
	return nil
}

func printProblem(out io.Writer, p *mathgen.Problem, latex, color bool) {
	render := func(m mathgen.Maths) string {
		if latex {
			return m.LaTeX()
		}
		return m.String()
	}
	fmt.Fprintf(out, "[%s] %s\n", p.ID, render(p.Prompt))
	for i, c := range p.Choices {
		line := render(c)
		if i == p.Answer && color {
			line = ansiGreen + line + ansiReset
		}
		fmt.Fprintf(out, "  %s\n", line)
	}
	if !color {
		fmt.Fprintf(out, "answer: %c\n", p.Choices[p.Answer].Option)
	}
}

func parseArg(fs *flag.FlagSet, i int) (mathgen.Expr, error) {
	if fs.NArg() <= i {
		return nil, fmt.Errorf("%s: missing expression argument", fs.Name())
	}
	e, err := mathgen.ParseJSON([]byte(fs.Arg(i)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fs.Name(), err)
	}
	return e, nil
}

func runSimplify(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simplify", flag.ContinueOnError)
	passes := fs.Int("passes", 1, "Maximum simplification passes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := parseArg(fs, 0)
	if err != nil {
		return err
	}
	fmt.Fprint(out, mathgen.PrettyPrint(mathgen.SimplifyFully(e, *passes)))
	return nil
}

func runDiff(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	simplify := fs.Bool("simplify", false, "Simplify the derivative")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := parseArg(fs, 0)
	if err != nil {
		return err
	}
	d, err := mathgen.Differentiate(e)
	if err != nil {
		return err
	}
	if *simplify {
		d = mathgen.Simplify(d)
	}
	fmt.Fprint(out, mathgen.PrettyPrint(d))
	return nil
}

func runEval(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := parseArg(fs, 0)
	if err != nil {
		return err
	}
	r, err := mathgen.Evaluate(e)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, r.String())
	return nil
}

func runSolve(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	lhs, err := parseArg(fs, 0)
	if err != nil {
		return err
	}
	rhs, err := parseArg(fs, 1)
	if err != nil {
		return err
	}
	r, err := mathgen.Solve(mathgen.Eq(lhs, rhs))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, r.String())
	return nil
}
