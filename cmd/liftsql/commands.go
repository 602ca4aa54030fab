package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claude/liftsql/internal/console"
	"github.com/claude/liftsql/internal/exercise"
	"github.com/claude/liftsql/internal/ingest/alpha"
	"github.com/claude/liftsql/internal/models"
	"github.com/claude/liftsql/internal/plan"
	"github.com/claude/liftsql/internal/pr"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database if needed and apply the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), e.cfg, e.log)
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newPlanCmd(e *env) *cobra.Command {
	var day int
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print a plan day with its targets",
		Long: `Print one day of the training plan. Without --day the saved
plan position is used; the position is not changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("day") {
				var err error
				day, err = plan.LoadCursor(e.cfg.State.CursorPath)
				if err != nil {
					e.log.Warn("plan cursor unavailable, using day 0", "error", err)
				}
			}
			cur := plan.NewCursor(day, e.plan.Len())

			store, err := openStore(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer store.Close()

			lines, err := plan.NewEngine(e.plan, store, pr.New(store)).Render(ctx, cur.Day)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "plan day index, wrapped into range")
	return cmd
}

func newPRCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "pr <exercise> [reps]",
		Short: "Print the heaviest weight lifted for a rep count",
		Long: `Print the weight PR for an exercise at an exact rep count. The
exercise is matched by case-insensitive prefix. Reps default to the
exercise's configured default.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer store.Close()

			known, err := store.ListExercises(ctx)
			if err != nil {
				return err
			}
			m := exercise.Resolve(args[0], known)
			switch m.Kind {
			case exercise.Ambiguous:
				return fmt.Errorf("too many exercises match %q: %s", args[0], exercise.JoinNames(m.Candidates))
			case exercise.NoMatch:
				return fmt.Errorf("no exercise matches %q, known exercises: %s", args[0], exercise.JoinNames(known))
			}

			var reps float64
			if len(args) == 2 {
				reps, err = strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("parsing reps %q: %w", args[1], err)
				}
			} else {
				def := e.defaults.For(m.Exercise).Reps
				if def == nil {
					return errors.New("reps required for " + m.Exercise.Name)
				}
				reps = *def
			}

			w, ok, err := pr.New(store).Weight(ctx, m.Exercise.ID, reps)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "[No such lifts found.]")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), console.FormatPR(m.Exercise.Name, w, reps))
			return nil
		},
	}
}

func newExerciseCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage exercises",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add an exercise",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			ctx := cmd.Context()
			store, err := openStore(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.InsertExercise(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exercise added: %s (%d)\n", name, id)
			return nil
		},
	})
	return cmd
}

func newImportCmd(e *env) *cobra.Command {
	var opts alpha.Options
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import sessions from an Alpha Progression CSV export",
		Long: `Import every session of an Alpha Progression CSV export. Each session
is written in its own transaction. Warmup sets are not recorded and
consecutive identical sets become one lift with a set count.

Exercise names must match an existing exercise (case-insensitive)
unless --create-exercises is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening export: %w", err)
			}
			defer f.Close()

			ctx := cmd.Context()
			store, err := openStore(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := alpha.NewImporter(store, e.log, opts).Import(ctx, f)
			if res != nil {
				fmt.Fprintln(cmd.OutOrStdout(), res)
				if len(res.UnknownExercises) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Unknown exercises: %s\n", strings.Join(res.UnknownExercises, "; "))
				}
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.CreateExercises, "create-exercises", false, "add exercises missing from the log")
	return cmd
}

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sessions: %d\nLifts:    %d\n", stats.Sessions, stats.Lifts)
			if stats.FirstSession != nil && stats.LastSession != nil {
				fmt.Fprintf(out, "Range:    %s to %s\n",
					stats.FirstSession.Format(models.DateLayout), stats.LastSession.Format(models.DateLayout))
			}
			for _, s := range stats.ByExercise {
				fmt.Fprintf(out, "%-16s %4d lifts %6s sets %10skg\n", s.Name, s.Lifts, pr.Format(s.Sets), pr.Format(s.Volume))
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "liftsql", Version)
		},
	}
}
