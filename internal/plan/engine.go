package plan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/claude/liftsql/internal/pr"
)

var (
	// ErrUnsupportedRule is returned for a percentage-of-max weight combined
	// with AMRAP reps: there is no rep count to take the max at.
	ErrUnsupportedRule = errors.New("percentage of max with AMRAP reps is not supported")

	// ErrDayOutOfRange is returned when rendering a day index the plan does not have.
	ErrDayOutOfRange = errors.New("plan day out of range")
)

// Namer resolves exercise ids to display names.
type Namer interface {
	ExerciseName(ctx context.Context, id int) (string, error)
}

// Engine renders plan days into concrete targets.
type Engine struct {
	plan  Plan
	names Namer
	prs   *pr.Resolver
}

// NewEngine creates an Engine over p.
func NewEngine(p Plan, names Namer, prs *pr.Resolver) *Engine {
	return &Engine{plan: p, names: names, prs: prs}
}

// Plan returns the plan the engine renders.
func (e *Engine) Plan() Plan { return e.plan }

// Target is a rendered prescription. A value whose Known flag is false has
// no record to derive it from and is displayed as pr.Unknown.
type Target struct {
	Exercise    string
	Sets        int
	Weight      float64
	WeightKnown bool
	Reps        float64
	RepsKnown   bool
	AMRAP       bool
	PRAttempt   bool
}

// String formats the target as "Squat 5x5 90kg", marking AMRAP reps and
// 100% attempts with ">" and a trailing tag.
func (t Target) String() string {
	var repsMark, weightMark, tags string
	if t.AMRAP {
		repsMark = ">"
		tags += " *AMRAP*"
	}
	if t.PRAttempt {
		weightMark = ">"
		tags += " *PR*"
	}
	return fmt.Sprintf("%s %dx%s%s %s%skg%s",
		t.Exercise, t.Sets,
		repsMark, pr.FormatOr(t.Reps, t.RepsKnown),
		weightMark, pr.FormatOr(t.Weight, t.WeightKnown),
		tags)
}

// DayView is a rendered plan day.
type DayView struct {
	Name    string
	Targets []Target
}

// Lines returns the day name followed by one line per target.
func (v DayView) Lines() []string {
	lines := make([]string, 0, len(v.Targets)+1)
	lines = append(lines, v.Name)
	for _, t := range v.Targets {
		lines = append(lines, t.String())
	}
	return lines
}

// Render returns the display lines for a day.
func (e *Engine) Render(ctx context.Context, dayIndex int) ([]string, error) {
	v, err := e.RenderDay(ctx, dayIndex)
	if err != nil {
		return nil, err
	}
	return v.Lines(), nil
}

// RenderDay computes every target of a day. A missing PR yields an unknown
// value; an unsupported rule or a storage failure aborts the whole day.
func (e *Engine) RenderDay(ctx context.Context, dayIndex int) (DayView, error) {
	if dayIndex < 0 || dayIndex >= e.plan.Len() {
		return DayView{}, fmt.Errorf("day %d of %d: %w", dayIndex, e.plan.Len(), ErrDayOutOfRange)
	}
	day := e.plan.Days[dayIndex]

	view := DayView{Name: day.Name, Targets: make([]Target, 0, len(day.Prescriptions))}
	for _, p := range day.Prescriptions {
		t, err := e.target(ctx, p)
		if err != nil {
			return DayView{}, fmt.Errorf("rendering %s: %w", day.Name, err)
		}
		view.Targets = append(view.Targets, t)
	}
	return view, nil
}

func (e *Engine) target(ctx context.Context, p Prescription) (Target, error) {
	name, err := e.names.ExerciseName(ctx, p.ExerciseID)
	if err != nil {
		return Target{}, err
	}
	t := Target{
		Exercise:  name,
		Sets:      p.Sets,
		AMRAP:     p.Reps.AMRAP,
		PRAttempt: p.Weight.IsPRAttempt(),
	}

	switch p.Weight.Kind {
	case RelativeToMaxKind:
		if p.Reps.AMRAP {
			return Target{}, fmt.Errorf("%s: %w", strings.TrimSpace(name), ErrUnsupportedRule)
		}
		best, ok, err := e.prs.Weight(ctx, p.ExerciseID, p.Reps.Value)
		if err != nil {
			return Target{}, err
		}
		if ok {
			t.Weight, t.WeightKnown = round2(best*p.Weight.Value/100), true
		}
	case FixedWeightKind:
		t.Weight, t.WeightKnown = p.Weight.Value, true
	}

	if !p.Reps.AMRAP {
		t.Reps, t.RepsKnown = p.Reps.Value, true
		return t, nil
	}
	reps, ok, err := e.prs.Reps(ctx, p.ExerciseID, t.Weight)
	if err != nil {
		return Target{}, err
	}
	t.Reps, t.RepsKnown = reps, ok
	return t, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
