package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claude/liftsql/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS exercises (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS lifts (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	exercise_id INTEGER NOT NULL REFERENCES exercises (id),
	session_id  INTEGER NOT NULL REFERENCES sessions (id),
	weight      REAL NOT NULL,
	reps        REAL NOT NULL,
	sets        REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS lifts_exercise_reps_idx ON lifts (exercise_id, reps, weight);
CREATE INDEX IF NOT EXISTS sessions_date_idx ON sessions (date);
`

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// sqlQuerier is satisfied by both *sql.DB and *sql.Tx.
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewSQLiteStore opens (or creates) the database at path, applies the schema
// and seeds DefaultExercises into an empty exercises table.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: the workflow holds at most one transaction and every
	// other read happens outside it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&count); err != nil {
		return fmt.Errorf("counting exercises: %w", err)
	}
	if count > 0 {
		return nil
	}

	placeholders := make([]string, len(DefaultExercises))
	args := make([]any, len(DefaultExercises))
	for i, name := range DefaultExercises {
		placeholders[i] = "(?)"
		args[i] = name
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exercises (name) VALUES `+strings.Join(placeholders, ","), args...)
	if err != nil {
		return fmt.Errorf("seeding exercises: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CurrentDate returns today's local calendar date.
func (s *SQLiteStore) CurrentDate(ctx context.Context) (time.Time, error) {
	var raw string
	if err := s.db.QueryRowContext(ctx, `SELECT date('now', 'localtime')`).Scan(&raw); err != nil {
		return time.Time{}, fmt.Errorf("querying current date: %w", err)
	}
	return parseSQLiteDate(raw)
}

func (s *SQLiteStore) SessionDate(ctx context.Context, id int) (time.Time, error) {
	return sqliteSessionDate(ctx, s.db, id)
}

func (s *SQLiteStore) LastSessionID(ctx context.Context) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM sessions ORDER BY date DESC, id DESC LIMIT 1`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("querying last session: %w", sqlNotFound(err))
	}
	return id, nil
}

func (s *SQLiteStore) InsertSession(ctx context.Context, date time.Time) (int, error) {
	return sqliteInsertSession(ctx, s.db, date)
}

func (s *SQLiteStore) ExerciseName(ctx context.Context, id int) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM exercises WHERE id = ?`, id).Scan(&name)
	if err != nil {
		return "", fmt.Errorf("querying exercise %d: %w", id, sqlNotFound(err))
	}
	return name, nil
}

func (s *SQLiteStore) WeightPR(ctx context.Context, exerciseID int, reps float64) (float64, error) {
	var w float64
	err := s.db.QueryRowContext(ctx,
		`SELECT weight FROM lifts
		 WHERE exercise_id = ? AND reps = ?
		 ORDER BY weight DESC LIMIT 1`,
		exerciseID, reps).Scan(&w)
	if err != nil {
		return 0, fmt.Errorf("querying weight PR: %w", sqlNotFound(err))
	}
	return w, nil
}

func (s *SQLiteStore) RepsPR(ctx context.Context, exerciseID int, weight float64) (float64, error) {
	var r float64
	err := s.db.QueryRowContext(ctx,
		`SELECT reps FROM lifts
		 WHERE exercise_id = ? AND weight = ?
		 ORDER BY reps DESC LIMIT 1`,
		exerciseID, weight).Scan(&r)
	if err != nil {
		return 0, fmt.Errorf("querying reps PR: %w", sqlNotFound(err))
	}
	return r, nil
}

func (s *SQLiteStore) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return sqliteListExercises(ctx, s.db)
}

func (s *SQLiteStore) InsertExercise(ctx context.Context, name string) (int, error) {
	return sqliteInsertExercise(ctx, s.db, name)
}

// CountLifts returns the number of lifts recorded for a session.
func (s *SQLiteStore) CountLifts(ctx context.Context, sessionID int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lifts WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting lifts: %w", err)
	}
	return n, nil
}

// CountSessions returns the number of committed sessions.
func (s *SQLiteStore) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}

// Stats returns aggregate totals over all sessions and lifts.
func (s *SQLiteStore) Stats(ctx context.Context) (*models.LogStats, error) {
	stats := &models.LogStats{}

	var first, last sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(date), MAX(date) FROM sessions`,
	).Scan(&stats.Sessions, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("querying session range: %w", err)
	}
	for _, d := range []struct {
		raw sql.NullString
		dst **time.Time
	}{{first, &stats.FirstSession}, {last, &stats.LastSession}} {
		if !d.raw.Valid {
			continue
		}
		t, err := parseSQLiteDate(d.raw.String)
		if err != nil {
			return nil, err
		}
		*d.dst = &t
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lifts`).Scan(&stats.Lifts); err != nil {
		return nil, fmt.Errorf("counting lifts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, exerciseStatsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying lifts by exercise: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st models.ExerciseStat
		if err := rows.Scan(&st.Name, &st.Lifts, &st.Sets, &st.Volume); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.ByExercise = append(stats.ByExercise, st)
	}
	return stats, rows.Err()
}

func (s *SQLiteStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &sqliteTx{tx: tx}, nil
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) InsertSession(ctx context.Context, date time.Time) (int, error) {
	return sqliteInsertSession(ctx, t.tx, date)
}

func (t *sqliteTx) SessionDate(ctx context.Context, id int) (time.Time, error) {
	return sqliteSessionDate(ctx, t.tx, id)
}

func (t *sqliteTx) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return sqliteListExercises(ctx, t.tx)
}

func (t *sqliteTx) InsertExercise(ctx context.Context, name string) (int, error) {
	return sqliteInsertExercise(ctx, t.tx, name)
}

func (t *sqliteTx) InsertLift(ctx context.Context, l models.LiftRow) (int, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO lifts (exercise_id, session_id, weight, reps, sets) VALUES (?, ?, ?, ?, ?)`,
		l.ExerciseID, l.SessionID, l.Weight, l.Reps, l.Sets)
	if err != nil {
		return 0, fmt.Errorf("inserting lift: %w", err)
	}
	return lastID(res)
}

func (t *sqliteTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (t *sqliteTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

func sqliteInsertSession(ctx context.Context, q sqlQuerier, date time.Time) (int, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO sessions (date) VALUES (?)`, date.Format(models.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("inserting session: %w", err)
	}
	return lastID(res)
}

func sqliteSessionDate(ctx context.Context, q sqlQuerier, id int) (time.Time, error) {
	var raw string
	err := q.QueryRowContext(ctx, `SELECT date FROM sessions WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("querying session %d: %w", id, sqlNotFound(err))
	}
	return parseSQLiteDate(raw)
}

func sqliteListExercises(ctx context.Context, q sqlQuerier) ([]models.Exercise, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name FROM exercises ORDER BY id`)
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

func sqliteInsertExercise(ctx context.Context, q sqlQuerier, name string) (int, error) {
	res, err := q.ExecContext(ctx, `INSERT INTO exercises (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise: %w", err)
	}
	return lastID(res)
}

func lastID(res sql.Result) (int, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return int(id), nil
}

func parseSQLiteDate(raw string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	return d, nil
}

func sqlNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
