package storage

import (
	"context"
	"errors"
	"time"

	"github.com/claude/liftsql/internal/models"
)

// ErrNotFound is returned when a lookup matches no row. It is an expected
// outcome (no PR yet, no previous session) and callers degrade gracefully.
var ErrNotFound = errors.New("not found")

// Store is the record store over exercises, sessions and lifts.
// Both the PostgreSQL DB and the SQLiteStore implement it.
type Store interface {
	CurrentDate(ctx context.Context) (time.Time, error)
	SessionDate(ctx context.Context, id int) (time.Time, error)
	LastSessionID(ctx context.Context) (int, error)
	InsertSession(ctx context.Context, date time.Time) (int, error)
	ExerciseName(ctx context.Context, id int) (string, error)
	WeightPR(ctx context.Context, exerciseID int, reps float64) (float64, error)
	RepsPR(ctx context.Context, exerciseID int, weight float64) (float64, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	InsertExercise(ctx context.Context, name string) (int, error)
	Stats(ctx context.Context) (*models.LogStats, error)

	// Begin opens the single transaction a session is recorded in.
	Begin(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is an open transaction. Nothing written through it is visible to
// other readers until Commit. Rollback after Commit is a no-op.
type Tx interface {
	InsertSession(ctx context.Context, date time.Time) (int, error)
	SessionDate(ctx context.Context, id int) (time.Time, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	InsertExercise(ctx context.Context, name string) (int, error)
	InsertLift(ctx context.Context, lift models.LiftRow) (int, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// DefaultExercises are seeded into a fresh database, in id order.
var DefaultExercises = []string{
	"Squat", "Bench", "Deadlift", "Press", "Chinups",
	"Clean", "Lat pulldowns", "Front squat", "Rows", "Snatch",
}
