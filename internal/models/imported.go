package models

import "time"

// ImportedSession is one training session read from an export file.
type ImportedSession struct {
	Name      string
	Date      time.Time
	Exercises []ImportedExercise
}

// ImportedExercise is one exercise block of an imported session.
type ImportedExercise struct {
	Name       string
	Equipment  string
	TargetReps int
	Sets       []ImportedSet
}

// ImportedSet is a single set. Bodyweight sets carry the added load in Weight.
type ImportedSet struct {
	Weight     float64
	Reps       int
	RIR        float64
	Bodyweight bool
	Warmup     bool
}

// WorkingSets returns the sets that are not warmups, in file order.
func (e ImportedExercise) WorkingSets() []ImportedSet {
	var out []ImportedSet
	for _, s := range e.Sets {
		if !s.Warmup {
			out = append(out, s)
		}
	}
	return out
}
