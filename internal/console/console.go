// Package console is the interactive text front end: a top-level menu that
// dispatches to the session, plan, PR and exercise dialogues.
package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/claude/liftsql/internal/exercise"
	"github.com/claude/liftsql/internal/plan"
	"github.com/claude/liftsql/internal/pr"
	"github.com/claude/liftsql/internal/prompt"
	"github.com/claude/liftsql/internal/session"
	"github.com/claude/liftsql/internal/storage"
)

const menuHelp = "n) New session\np) Show plan\ng) Get pr\na) Add exercise\nq) Quit"

// App wires the dialogues to one store and one prompter.
type App struct {
	store      storage.Store
	ui         *prompt.Prompter
	engine     *plan.Engine
	prs        *pr.Resolver
	defaults   *exercise.Registry
	recorder   *session.Recorder
	cursorPath string
	log        *slog.Logger
}

// New creates an App. The plan cursor is persisted at cursorPath.
func New(store storage.Store, ui *prompt.Prompter, p plan.Plan, defaults *exercise.Registry, cursorPath string, log *slog.Logger) *App {
	prs := pr.New(store)
	return &App{
		store:      store,
		ui:         ui,
		engine:     plan.NewEngine(p, store, prs),
		prs:        prs,
		defaults:   defaults,
		recorder:   session.NewRecorder(store, ui, defaults, log),
		cursorPath: cursorPath,
		log:        log,
	}
}

// Run shows the last-session banner and serves the menu until q, c or end of input.
func (a *App) Run(ctx context.Context) error {
	if err := a.PrintLastSession(ctx); err != nil {
		a.log.Warn("last session lookup failed", "error", err)
		a.ui.Println("COULDN'T GET LAST SESSION INFO")
	}

	a.ui.Println(menuHelp)
	for {
		a.ui.Println("=====")
		in, err := a.ui.Line("$ ")
		if err != nil {
			if prompt.Cancelled(err) {
				return nil
			}
			return err
		}

		switch in {
		case "n":
			a.newSession(ctx)
		case "p":
			a.PlanDialogue(ctx)
		case "g":
			ok, err := a.GetPR(ctx)
			switch {
			case err != nil:
				a.log.Error("get pr failed", "error", err)
				a.ui.Printf("ERROR GETTING PR: %v\n", err)
			case !ok:
				a.ui.Println("Getting pr cancelled.")
			}
		case "a":
			ok, err := a.AddExercise(ctx)
			switch {
			case err != nil:
				a.log.Error("add exercise failed", "error", err)
				a.ui.Printf("ERROR ADDING EXERCISE: %v\n", err)
			case ok:
				a.ui.Println("Exercise added.")
			default:
				a.ui.Println("Exercise add cancelled.")
			}
		case "q", "c":
			return nil
		default:
			a.ui.Println("Invalid input.")
		}
	}
}

func (a *App) newSession(ctx context.Context) {
	res, err := a.recorder.Record(ctx)
	switch {
	case errors.Is(err, session.ErrNoLifts):
		a.ui.Println("+ No lifts added, session discarded.")
	case err != nil:
		a.log.Error("recording session failed", "error", err)
		a.ui.Printf("+ ERROR CREATING NEW SESSION: %v\n", err)
	case res.Committed():
		a.ui.Println("+ Session logged.")
	default:
		a.ui.Println("+ Session creation cancelled.")
	}
}
