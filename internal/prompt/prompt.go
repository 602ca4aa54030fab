// Package prompt implements the line-oriented prompts the interactive
// workflows are driven by. "q" or "c" cancels any prompt.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/claude/liftsql/internal/exercise"
	"github.com/claude/liftsql/internal/models"
	"github.com/claude/liftsql/internal/pr"
)

// ErrCancelled is returned when the user enters a cancel sentinel.
var ErrCancelled = errors.New("cancelled")

// IsCancel reports whether s is a cancel sentinel.
func IsCancel(s string) bool {
	return s == "q" || s == "c"
}

// Cancelled reports whether err ends a dialogue the way a cancel does:
// an explicit sentinel or the end of input.
func Cancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, io.EOF)
}

// Prompter reads trimmed lines from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line of output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt and returns the next input line without surrounding
// whitespace. It returns io.EOF once input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Number prompts for a number, showing def in parentheses when set. Empty
// input takes def; anything unparsable, NaN or infinite is rejected and asked again.
func (p *Prompter) Number(label string, def *float64) (float64, error) {
	prompt := label + ": "
	if def != nil {
		prompt = fmt.Sprintf("%s (%s): ", label, pr.Format(*def))
	}
	for {
		in, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		if IsCancel(in) {
			return 0, ErrCancelled
		}
		if in == "" && def != nil {
			return *def, nil
		}
		v, err := strconv.ParseFloat(in, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			p.Println("Invalid input.")
			continue
		}
		return v, nil
	}
}

// Exercise asks for an exercise name until it resolves to exactly one of known.
func (p *Prompter) Exercise(known []models.Exercise) (models.Exercise, error) {
	for {
		in, err := p.Line("+ Exercise: ")
		if err != nil {
			return models.Exercise{}, err
		}
		if IsCancel(in) {
			return models.Exercise{}, ErrCancelled
		}

		m := exercise.Resolve(in, known)
		switch m.Kind {
		case exercise.Matched:
			return m.Exercise, nil
		case exercise.Ambiguous:
			p.Printf("+ !!! Too many exercises match: %s\n", exercise.JoinNames(m.Candidates))
		default:
			p.Printf("+ !!! No matching exercises. Known exercises: %s\n", exercise.JoinNames(known))
		}
	}
}
