package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftsql/internal/plan"
	"github.com/claude/liftsql/internal/pr"
	"github.com/claude/liftsql/internal/prompt"
	"github.com/claude/liftsql/internal/storage"
)

// PrintLastSession prints when the most recent session happened.
func (a *App) PrintLastSession(ctx context.Context) error {
	id, err := a.store.LastSessionID(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		a.ui.Println("[No previous sessions]")
		return nil
	}
	if err != nil {
		return err
	}
	then, err := a.store.SessionDate(ctx, id)
	if err != nil {
		return err
	}
	now, err := a.store.CurrentDate(ctx)
	if err != nil {
		return err
	}
	a.ui.Printf("Last session on %s (%s)\n", then.Format("Mon 02.01."), FormatAgo(then, now))
	return nil
}

// PlanDialogue shows the current plan day and moves between days with n and
// p, persisting the position after every move.
func (a *App) PlanDialogue(ctx context.Context) {
	day, err := plan.LoadCursor(a.cursorPath)
	if err != nil {
		a.log.Warn("plan cursor unavailable, starting at day 0", "error", err)
		a.ui.Printf("Error loading config: %v\nLoading default instead.\n", err)
	}
	cur := plan.NewCursor(day, a.engine.Plan().Len())

	for {
		lines, err := a.engine.Render(ctx, cur.Day)
		if err != nil {
			a.ui.Printf("Error printing day: %v\n", err)
		}
		for _, l := range lines {
			a.ui.Println(l)
		}
		a.ui.Println("-----")

		in, err := a.ui.Line("Plan (Next/Prev)# ")
		if err != nil || prompt.IsCancel(in) {
			return
		}
		switch in {
		case "n":
			a.ui.Println("Showing Next:")
			cur.Advance()
		case "p":
			a.ui.Println("Showing Prev:")
			cur.Retreat()
		default:
			a.ui.Println("Invalid input.")
			continue
		}

		if err := plan.SaveCursor(a.cursorPath, cur.Day); err != nil {
			a.log.Warn("saving plan cursor failed", "error", err)
			a.ui.Printf("ERROR SAVING CONFIG: %v\n", err)
		}
	}
}

// GetPR asks for an exercise and a rep count and prints the best weight.
// It returns false when the user cancels.
func (a *App) GetPR(ctx context.Context) (bool, error) {
	exercises, err := a.store.ListExercises(ctx)
	if err != nil {
		return false, err
	}
	if len(exercises) == 0 {
		a.ui.Println("+ !!! [No defined exercises]")
		return true, nil
	}

	ex, err := a.ui.Exercise(exercises)
	if prompt.Cancelled(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	a.ui.Printf("+ ... Selected '%s'.\n", ex.Name)

	reps, err := a.ui.Number("+ Reps", a.defaults.For(ex).Reps)
	if prompt.Cancelled(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	w, ok, err := a.prs.Weight(ctx, ex.ID, reps)
	if err != nil {
		return false, err
	}
	if !ok {
		a.ui.Println("[No such lifts found.]")
		return true, nil
	}
	a.ui.Println(FormatPR(ex.Name, w, reps))
	return true, nil
}

// FormatPR renders a weight PR as "Squat: 100x5".
func FormatPR(name string, weight, reps float64) string {
	return fmt.Sprintf("%s: %sx%s", name, pr.Format(weight), pr.Format(reps))
}

// AddExercise asks for a name and stores a new exercise. An empty name or a
// cancel returns false.
func (a *App) AddExercise(ctx context.Context) (bool, error) {
	name, err := a.ui.Line("Exercise name: ")
	if prompt.Cancelled(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if name == "" || prompt.IsCancel(name) {
		return false, nil
	}
	id, err := a.store.InsertExercise(ctx, name)
	if err != nil {
		return false, err
	}
	a.log.Info("exercise added", "id", id, "name", name)
	return true, nil
}
