package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/claude/liftsql/internal/ingest"
	"github.com/claude/liftsql/internal/models"
	"github.com/claude/liftsql/internal/storage"
)

// Options controls how exercise names from the export are mapped.
type Options struct {
	// CreateExercises adds exercises missing from the log instead of
	// skipping their sets.
	CreateExercises bool
}

// Importer writes parsed exports into a Store, one transaction per session.
type Importer struct {
	store storage.Store
	log   *slog.Logger
	opts  Options
}

// NewImporter creates an Importer.
func NewImporter(store storage.Store, log *slog.Logger, opts Options) *Importer {
	return &Importer{store: store, log: log, opts: opts}
}

// Import parses r and records every session that yields at least one lift.
// Warmups are not recorded. Exercise names match case-insensitively and
// exactly. A failed session is rolled back and stops the import; sessions
// committed before it stay.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	res := &ingest.Result{SessionsReceived: len(sessions)}
	unknown := map[string]bool{}
	for _, s := range sessions {
		if err := im.importSession(ctx, s, res, unknown); err != nil {
			return res, fmt.Errorf("importing session %s: %w", s.Date.Format(models.DateLayout), err)
		}
	}

	for name := range unknown {
		res.UnknownExercises = append(res.UnknownExercises, name)
	}
	sort.Strings(res.UnknownExercises)
	return res, nil
}

func (im *Importer) importSession(ctx context.Context, s models.ImportedSession, res *ingest.Result, unknown map[string]bool) error {
	tx, err := im.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			im.log.Warn("rollback failed", "error", err)
		}
	}()

	known, err := tx.ListExercises(ctx)
	if err != nil {
		return err
	}
	sessionID, err := tx.InsertSession(ctx, models.Day(s.Date))
	if err != nil {
		return err
	}

	lifts := 0
	for _, ex := range s.Exercises {
		working := ex.WorkingSets()
		res.WarmupsSkipped += len(ex.Sets) - len(working)

		id, ok := findExercise(known, ex.Name)
		if !ok && im.opts.CreateExercises && len(working) > 0 {
			id, err = tx.InsertExercise(ctx, ex.Name)
			if err != nil {
				return err
			}
			known = append(known, models.Exercise{ID: id, Name: ex.Name})
			im.log.Info("exercise created", "id", id, "name", ex.Name)
			ok = true
		}
		if !ok {
			unknown[ex.Name] = true
			res.SetsSkipped += len(working)
			continue
		}

		for _, l := range collapseSets(working) {
			l.ExerciseID, l.SessionID = id, sessionID
			if _, err := tx.InsertLift(ctx, l); err != nil {
				return err
			}
			lifts++
		}
	}

	if lifts == 0 {
		res.SessionsSkipped++
		im.log.Debug("session has no lifts, skipped", "name", s.Name, "date", s.Date.Format(models.DateLayout))
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	res.SessionsImported++
	res.LiftsInserted += lifts
	im.log.Debug("session imported", "session_id", sessionID, "lifts", lifts)
	return nil
}

func findExercise(known []models.Exercise, name string) (int, bool) {
	for _, e := range known {
		if strings.EqualFold(e.Name, name) {
			return e.ID, true
		}
	}
	return 0, false
}

// collapseSets merges runs of consecutive sets with equal weight and reps
// into one lift row carrying the set count.
func collapseSets(sets []models.ImportedSet) []models.LiftRow {
	var rows []models.LiftRow
	for _, s := range sets {
		reps := float64(s.Reps)
		if n := len(rows); n > 0 && rows[n-1].Weight == s.Weight && rows[n-1].Reps == reps {
			rows[n-1].Sets++
			continue
		}
		rows = append(rows, models.LiftRow{Weight: s.Weight, Reps: reps, Sets: 1})
	}
	return rows
}
