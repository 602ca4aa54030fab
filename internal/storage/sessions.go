package storage

import (
	"context"
	"fmt"
	"time"
)

// InsertSession inserts a session row outside any transaction. Returns its id.
func (db *DB) InsertSession(ctx context.Context, date time.Time) (int, error) {
	return insertSession(ctx, db.Pool, date)
}

// SessionDate returns the date of a session, or ErrNotFound.
func (db *DB) SessionDate(ctx context.Context, id int) (time.Time, error) {
	return sessionDate(ctx, db.Pool, id)
}

// LastSessionID returns the id of the most recent session by date, or ErrNotFound.
func (db *DB) LastSessionID(ctx context.Context) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx,
		`SELECT id FROM sessions ORDER BY date DESC, id DESC LIMIT 1`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("querying last session: %w", notFound(err))
	}
	return id, nil
}

func insertSession(ctx context.Context, q querier, date time.Time) (int, error) {
	var id int
	err := q.QueryRow(ctx,
		`INSERT INTO sessions (date) VALUES ($1) RETURNING id`, date).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting session: %w", err)
	}
	return id, nil
}

func sessionDate(ctx context.Context, q querier, id int) (time.Time, error) {
	var d time.Time
	err := q.QueryRow(ctx, `SELECT date FROM sessions WHERE id = $1`, id).Scan(&d)
	if err != nil {
		return time.Time{}, fmt.Errorf("querying session %d: %w", id, notFound(err))
	}
	return d, nil
}
