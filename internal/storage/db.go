package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	liftsql "github.com/claude/liftsql"
	"github.com/claude/liftsql/internal/models"
)

// DB wraps a pgxpool.Pool and implements Store against PostgreSQL.
type DB struct {
	Pool *pgxpool.Pool
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every query
// helper runs unchanged inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// New creates a new DB with a connection pool. The interactive workflow
// never needs more than one connection at a time.
func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	cfg.MaxConns = 2
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}

// IsDatabaseMissing reports whether err is PostgreSQL's invalid_catalog_name
// (3D000), returned when connecting to a database that does not exist.
func IsDatabaseMissing(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "3D000"
}

// CreateDatabase connects to the maintenance database at adminDSN and creates name.
func CreateDatabase(ctx context.Context, adminDSN, name string) error {
	conn, err := pgx.Connect(ctx, adminDSN)
	if err != nil {
		return fmt.Errorf("connecting to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return fmt.Errorf("creating database %s: %w", name, err)
	}
	return nil
}

// RunMigrations applies all pending embedded PostgreSQL migrations.
func RunMigrations(dsn string) error {
	src, err := iofs.New(liftsql.Migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("opening migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// CurrentDate returns the database server's current date.
func (db *DB) CurrentDate(ctx context.Context) (time.Time, error) {
	var d time.Time
	if err := db.Pool.QueryRow(ctx, `SELECT CURRENT_DATE`).Scan(&d); err != nil {
		return time.Time{}, fmt.Errorf("querying current date: %w", err)
	}
	return d, nil
}

// Begin starts the transaction a session is recorded in.
func (db *DB) Begin(ctx context.Context) (Tx, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &pgTx{tx: tx}, nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) InsertSession(ctx context.Context, date time.Time) (int, error) {
	return insertSession(ctx, t.tx, date)
}

func (t *pgTx) SessionDate(ctx context.Context, id int) (time.Time, error) {
	return sessionDate(ctx, t.tx, id)
}

func (t *pgTx) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return listExercises(ctx, t.tx)
}

func (t *pgTx) InsertExercise(ctx context.Context, name string) (int, error) {
	return insertExercise(ctx, t.tx, name)
}

func (t *pgTx) InsertLift(ctx context.Context, lift models.LiftRow) (int, error) {
	return insertLift(ctx, t.tx, lift)
}

func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
