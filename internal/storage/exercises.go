package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftsql/internal/models"
)

// ExerciseName returns the name of an exercise, or ErrNotFound.
func (db *DB) ExerciseName(ctx context.Context, id int) (string, error) {
	var name string
	err := db.Pool.QueryRow(ctx, `SELECT name FROM exercises WHERE id = $1`, id).Scan(&name)
	if err != nil {
		return "", fmt.Errorf("querying exercise %d: %w", id, notFound(err))
	}
	return name, nil
}

// ListExercises returns all exercises ordered by id.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return listExercises(ctx, db.Pool)
}

// InsertExercise adds an exercise and returns its id. Names need not be unique.
func (db *DB) InsertExercise(ctx context.Context, name string) (int, error) {
	return insertExercise(ctx, db.Pool, name)
}

func listExercises(ctx context.Context, q querier) ([]models.Exercise, error) {
	rows, err := q.Query(ctx, `SELECT id, name FROM exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func insertExercise(ctx context.Context, q querier, name string) (int, error) {
	var id int
	err := q.QueryRow(ctx,
		`INSERT INTO exercises (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise: %w", err)
	}
	return id, nil
}
