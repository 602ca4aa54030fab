package models

import "time"

// Exercise is a row of the exercises table.
type Exercise struct {
	ID   int
	Name string
}

// LiftRow is a row ready for insertion into the lifts table.
type LiftRow struct {
	ID         int
	ExerciseID int
	SessionID  int
	Weight     float64
	Reps       float64
	Sets       float64
}

// DateLayout is the calendar-date format used for session dates.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
