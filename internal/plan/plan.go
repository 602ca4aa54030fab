// Package plan holds the cyclical training plan and computes the concrete
// weight and reps each prescription asks for from lift history.
package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/claude/liftsql/internal/config"
)

// WeightKind selects how a prescription's weight is determined.
type WeightKind int

const (
	// RelativeToMaxKind scales the PR at the prescribed reps by a percentage.
	RelativeToMaxKind WeightKind = iota
	FixedWeightKind
)

// WeightRule is RelativeToMax(percent) or Fixed(kg).
type WeightRule struct {
	Kind  WeightKind
	Value float64
}

// RelativeToMax prescribes percent of the weight PR at the prescribed reps.
func RelativeToMax(percent float64) WeightRule {
	return WeightRule{Kind: RelativeToMaxKind, Value: percent}
}

// FixedWeight prescribes a set weight.
func FixedWeight(kg float64) WeightRule {
	return WeightRule{Kind: FixedWeightKind, Value: kg}
}

// IsPRAttempt reports whether the rule asks for 100% of the current max.
func (w WeightRule) IsPRAttempt() bool {
	return w.Kind == RelativeToMaxKind && w.Value == 100
}

// RepsRule is AMRAP or Fixed(reps).
type RepsRule struct {
	AMRAP bool
	Value float64
}

// AMRAP prescribes as many reps as possible.
func AMRAP() RepsRule { return RepsRule{AMRAP: true} }

// FixedReps prescribes a set rep count.
func FixedReps(n float64) RepsRule { return RepsRule{Value: n} }

// Prescription is one exercise entry of a plan day.
type Prescription struct {
	ExerciseID int
	Weight     WeightRule
	Reps       RepsRule
	Sets       int
}

// Day is one named entry of the cycle.
type Day struct {
	Name          string
	Prescriptions []Prescription
}

// Plan is the ordered cycle of training days.
type Plan struct {
	Days []Day
}

// Len returns the number of days in the cycle.
func (p Plan) Len() int { return len(p.Days) }

// FromConfig converts configured plan days into a Plan.
func FromConfig(days []config.PlanDay) (Plan, error) {
	if len(days) == 0 {
		return Plan{}, fmt.Errorf("plan has no days")
	}
	p := Plan{Days: make([]Day, 0, len(days))}
	for _, d := range days {
		day := Day{Name: d.Name}
		for _, spec := range d.Lifts {
			w, err := ParseWeight(spec.Weight)
			if err != nil {
				return Plan{}, fmt.Errorf("day %q: %w", d.Name, err)
			}
			r, err := ParseReps(spec.Reps)
			if err != nil {
				return Plan{}, fmt.Errorf("day %q: %w", d.Name, err)
			}
			day.Prescriptions = append(day.Prescriptions, Prescription{
				ExerciseID: spec.Exercise,
				Weight:     w,
				Reps:       r,
				Sets:       spec.Sets,
			})
		}
		p.Days = append(p.Days, day)
	}
	return p, nil
}

// ParseWeight reads "90%" as RelativeToMax(90) and "60" as FixedWeight(60).
func ParseWeight(s string) (WeightRule, error) {
	s = strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil || !finite(v) || v <= 0 {
			return WeightRule{}, fmt.Errorf("invalid percentage weight %q", s)
		}
		return RelativeToMax(v), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) || v < 0 {
		return WeightRule{}, fmt.Errorf("invalid weight %q", s)
	}
	return FixedWeight(v), nil
}

// ParseReps reads "amrap" (any case) as AMRAP and a number as FixedReps.
func ParseReps(s string) (RepsRule, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "amrap") {
		return AMRAP(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) || v <= 0 {
		return RepsRule{}, fmt.Errorf("invalid reps %q", s)
	}
	return FixedReps(v), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
