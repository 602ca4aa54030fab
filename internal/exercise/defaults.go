package exercise

import (
	"strings"

	"github.com/claude/liftsql/internal/config"
	"github.com/claude/liftsql/internal/models"
)

// Defaults are the values a lift prompt falls back to on empty input.
// A nil field has no default and must be entered.
type Defaults struct {
	Weight *float64
	Reps   *float64
	Sets   *float64
}

// Fallback applies to exercises without a rule: reps 5, sets 1, weight required.
var Fallback = Defaults{Reps: ptr(5), Sets: ptr(1)}

// Registry resolves the Defaults for an exercise. Rules match by id first,
// then by case-insensitive name. A matching rule replaces Fallback entirely.
type Registry struct {
	byID   map[int]Defaults
	byName map[string]Defaults
}

// NewRegistry builds a Registry from configured rules.
func NewRegistry(rules []config.ExerciseRule) *Registry {
	r := &Registry{
		byID:   make(map[int]Defaults),
		byName: make(map[string]Defaults),
	}
	for _, rule := range rules {
		d := Defaults{Weight: rule.Weight, Reps: rule.Reps, Sets: rule.Sets}
		if rule.ID != 0 {
			r.byID[rule.ID] = d
		}
		if rule.Name != "" {
			r.byName[strings.ToLower(rule.Name)] = d
		}
	}
	return r
}

// For returns the defaults that apply to e.
func (r *Registry) For(e models.Exercise) Defaults {
	if d, ok := r.byID[e.ID]; ok {
		return d
	}
	if d, ok := r.byName[strings.ToLower(e.Name)]; ok {
		return d
	}
	return Fallback
}

func ptr(v float64) *float64 { return &v }
