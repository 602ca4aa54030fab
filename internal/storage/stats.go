package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftsql/internal/models"
)

const exerciseStatsQuery = `
SELECT e.name, COUNT(l.id), COALESCE(SUM(l.sets), 0), COALESCE(SUM(l.weight * l.reps * l.sets), 0)
FROM exercises e
JOIN lifts l ON l.exercise_id = e.id
GROUP BY e.id, e.name
ORDER BY COUNT(l.id) DESC, e.id`

// Stats returns aggregate totals over all sessions and lifts.
func (db *DB) Stats(ctx context.Context) (*models.LogStats, error) {
	stats := &models.LogStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(date), MAX(date) FROM sessions`,
	).Scan(&stats.Sessions, &stats.FirstSession, &stats.LastSession)
	if err != nil {
		return nil, fmt.Errorf("querying session range: %w", err)
	}

	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM lifts`).Scan(&stats.Lifts); err != nil {
		return nil, fmt.Errorf("counting lifts: %w", err)
	}

	rows, err := db.Pool.Query(ctx, exerciseStatsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying lifts by exercise: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ExerciseStat
		if err := rows.Scan(&s.Name, &s.Lifts, &s.Sets, &s.Volume); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.ByExercise = append(stats.ByExercise, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
