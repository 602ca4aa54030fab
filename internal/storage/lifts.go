package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftsql/internal/models"
)

// WeightPR returns the heaviest weight lifted for an exercise at exactly reps.
// Returns ErrNotFound when no such lift exists.
func (db *DB) WeightPR(ctx context.Context, exerciseID int, reps float64) (float64, error) {
	var w float64
	err := db.Pool.QueryRow(ctx,
		`SELECT weight FROM lifts
		 WHERE exercise_id = $1 AND reps = $2
		 ORDER BY weight DESC LIMIT 1`,
		exerciseID, reps).Scan(&w)
	if err != nil {
		return 0, fmt.Errorf("querying weight PR: %w", notFound(err))
	}
	return w, nil
}

// RepsPR returns the most reps performed for an exercise at exactly weight.
// Returns ErrNotFound when no such lift exists.
func (db *DB) RepsPR(ctx context.Context, exerciseID int, weight float64) (float64, error) {
	var r float64
	err := db.Pool.QueryRow(ctx,
		`SELECT reps FROM lifts
		 WHERE exercise_id = $1 AND weight = $2
		 ORDER BY reps DESC LIMIT 1`,
		exerciseID, weight).Scan(&r)
	if err != nil {
		return 0, fmt.Errorf("querying reps PR: %w", notFound(err))
	}
	return r, nil
}

func insertLift(ctx context.Context, q querier, l models.LiftRow) (int, error) {
	var id int
	err := q.QueryRow(ctx,
		`INSERT INTO lifts (exercise_id, session_id, weight, reps, sets)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		l.ExerciseID, l.SessionID, l.Weight, l.Reps, l.Sets).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting lift: %w", err)
	}
	return id, nil
}
