// Package session records a workout as one all-or-nothing transaction:
// the session row and every lift entered for it commit together or not at all.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftsql/internal/exercise"
	"github.com/claude/liftsql/internal/models"
	"github.com/claude/liftsql/internal/prompt"
	"github.com/claude/liftsql/internal/storage"
)

// ErrNoLifts is returned when the lift loop ends without a single recorded
// lift. The session is discarded; empty sessions are never stored.
var ErrNoLifts = errors.New("no lifts recorded")

// State is a step of the recording workflow.
type State int

const (
	StateStart State = iota
	StateDateEntry
	StateLiftLoop
	StateConfirm
	StateCommitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateDateEntry:
		return "date_entry"
	case StateLiftLoop:
		return "lift_loop"
	case StateConfirm:
		return "confirm"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result describes how a recording run ended.
type Result struct {
	State     State
	SessionID int
	Date      time.Time
	Lifts     int
}

// Committed reports whether the session was stored.
func (r Result) Committed() bool { return r.State == StateCommitted }

// Recorder drives the interactive session workflow.
type Recorder struct {
	store    storage.Store
	ui       *prompt.Prompter
	defaults *exercise.Registry
	log      *slog.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(store storage.Store, ui *prompt.Prompter, defaults *exercise.Registry, log *slog.Logger) *Recorder {
	return &Recorder{store: store, ui: ui, defaults: defaults, log: log}
}

// Record runs one session dialogue. A cancel at any confirmation point ends
// in StateCancelled with a nil error; storage failures are returned and
// leave nothing behind.
func (r *Recorder) Record(ctx context.Context) (Result, error) {
	log := r.log.With("run_id", uuid.NewString())
	res := Result{State: StateStart}
	step := func(s State) {
		log.Debug("session state", "from", res.State, "to", s)
		res.State = s
	}

	today, err := r.store.CurrentDate(ctx)
	if err != nil {
		return res, err
	}

	step(StateDateEntry)
	date, err := r.askDate(today)
	if prompt.Cancelled(err) {
		step(StateCancelled)
		return res, nil
	}
	if err != nil {
		return res, err
	}

	tx, err := r.store.Begin(ctx)
	if err != nil {
		return res, err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			log.Warn("rollback failed", "error", err)
		}
	}()

	res.SessionID, err = tx.InsertSession(ctx, date)
	if err != nil {
		return res, err
	}
	res.Date, err = tx.SessionDate(ctx, res.SessionID)
	if err != nil {
		return res, err
	}
	r.ui.Printf("+ ... Creating session on %s\n", res.Date.Format("02.01."))

	step(StateLiftLoop)
	res.Lifts, err = r.addLifts(ctx, tx, res.SessionID)
	if err != nil {
		return res, err
	}
	if res.Lifts == 0 {
		step(StateCancelled)
		return res, ErrNoLifts
	}

	step(StateConfirm)
	answer, err := r.ui.Line("+ Log session? ([YES]/cancel) ")
	if err != nil && !prompt.Cancelled(err) {
		return res, err
	}
	if err != nil || answer != "" {
		step(StateCancelled)
		return res, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return res, err
	}
	step(StateCommitted)
	log.Info("session committed", "session_id", res.SessionID, "lifts", res.Lifts)
	return res, nil
}

// askDate accepts empty input for today or a number of days ago.
func (r *Recorder) askDate(today time.Time) (time.Time, error) {
	for {
		in, err := r.ui.Line("+ Session date: ")
		if err != nil {
			return time.Time{}, err
		}
		if in == "" {
			return today, nil
		}
		if prompt.IsCancel(in) {
			return time.Time{}, prompt.ErrCancelled
		}
		if days, err := strconv.Atoi(in); err == nil {
			return today.AddDate(0, 0, -days), nil
		}
		r.ui.Println("+ !!! Invalid input.")
	}
}

// addLifts repeats the single-lift dialogue until the user stops and
// returns how many lifts were inserted.
func (r *Recorder) addLifts(ctx context.Context, tx storage.Tx, sessionID int) (int, error) {
	added := 0
	for {
		ok, err := r.addLift(ctx, tx, sessionID)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		} else {
			r.ui.Println("+ ... Lift cancelled.")
		}

		more, err := r.ui.Line("+ Add more lifts ([YES]/cancel) ? ")
		if err != nil && !prompt.Cancelled(err) {
			return added, err
		}
		if err != nil || more != "" {
			return added, nil
		}
	}
}

// addLift runs one lift dialogue. A cancel returns false with no error and
// leaves earlier lifts untouched.
func (r *Recorder) addLift(ctx context.Context, tx storage.Tx, sessionID int) (bool, error) {
	exercises, err := tx.ListExercises(ctx)
	if err != nil {
		return false, err
	}
	if len(exercises) == 0 {
		r.ui.Println("+ !!! [No defined exercises]")
		return false, nil
	}

	ex, err := r.ui.Exercise(exercises)
	if prompt.Cancelled(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	r.ui.Printf("+ ... Selected '%s'.\n", ex.Name)

	d := r.defaults.For(ex)
	lift := models.LiftRow{ExerciseID: ex.ID, SessionID: sessionID}
	for _, f := range []struct {
		label string
		def   *float64
		dst   *float64
	}{
		{"+ Weight", d.Weight, &lift.Weight},
		{"+ Reps", d.Reps, &lift.Reps},
		{"+ Sets", d.Sets, &lift.Sets},
	} {
		v, err := r.ui.Number(f.label, f.def)
		if prompt.Cancelled(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		*f.dst = v
	}

	if _, err := tx.InsertLift(ctx, lift); err != nil {
		return false, err
	}
	return true, nil
}
