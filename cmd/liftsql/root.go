package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/claude/liftsql/internal/config"
	"github.com/claude/liftsql/internal/console"
	"github.com/claude/liftsql/internal/exercise"
	"github.com/claude/liftsql/internal/plan"
	"github.com/claude/liftsql/internal/prompt"
	"github.com/claude/liftsql/internal/storage"
)

// env is what every command needs once the config is loaded.
type env struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
	plan       plan.Plan
	defaults   *exercise.Registry
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "liftsql",
		Short: "Strength training log",
		Long: `liftsql records training sessions and shows the next plan day with
targets computed from your personal records.

Run without arguments for the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer store.Close()

			ui := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			app := console.New(store, ui, e.plan, e.defaults, e.cfg.State.CursorPath, e.log)
			return app.Run(ctx)
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "path to config file (default: built-in config)")

	root.AddCommand(
		newMigrateCmd(e),
		newPlanCmd(e),
		newPRCmd(e),
		newExerciseCmd(e),
		newImportCmd(e),
		newStatsCmd(e),
		newVersionCmd(),
	)
	return root
}

func (e *env) load(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	p, err := plan.FromConfig(cfg.Plan)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	e.cfg = cfg
	e.plan = p
	e.defaults = exercise.NewRegistry(cfg.Exercises)
	e.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	e.log.Debug("config loaded", "backend", cfg.Database.Backend, "plan_days", p.Len())
	return nil
}

// openStore connects the configured backend. A PostgreSQL database that does
// not exist yet is created; pending migrations are applied either way.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Store, error) {
	if cfg.Database.Backend == config.BackendSQLite {
		s, err := storage.NewSQLiteStore(ctx, cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		log.Debug("database opened", "backend", "sqlite", "path", cfg.Database.Path)
		return s, nil
	}

	dsn := cfg.Database.DSN()
	db, err := storage.New(ctx, dsn)
	if storage.IsDatabaseMissing(err) {
		log.Warn("database does not exist, creating it", "name", cfg.Database.Name)
		if err := storage.CreateDatabase(ctx, cfg.Database.AdminDSN(), cfg.Database.Name); err != nil {
			return nil, err
		}
		db, err = storage.New(ctx, dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}

	if err := storage.RunMigrations(dsn); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("database connected", "backend", "postgres", "name", cfg.Database.Name)
	return db, nil
}
