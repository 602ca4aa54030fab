package models

import "time"

// LogStats summarises everything recorded in the log.
type LogStats struct {
	Sessions     int64
	Lifts        int64
	FirstSession *time.Time
	LastSession  *time.Time
	ByExercise   []ExerciseStat
}

// ExerciseStat holds totals for one exercise. Volume is the sum of
// weight x reps x sets.
type ExerciseStat struct {
	Name   string
	Lifts  int64
	Sets   float64
	Volume float64
}
