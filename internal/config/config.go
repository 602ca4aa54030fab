package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig `yaml:"database"`
	State     StateConfig    `yaml:"state"`
	Log       LogConfig      `yaml:"log"`
	Exercises []ExerciseRule `yaml:"exercises"`
	Plan      []PlanDay      `yaml:"plan"`
}

type DatabaseConfig struct {
	Backend  string `yaml:"backend"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type StateConfig struct {
	CursorPath string `yaml:"cursor_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// ExerciseRule sets the prompt defaults for one exercise, matched by id or
// name. A nil value means the prompt has no default.
type ExerciseRule struct {
	ID     int      `yaml:"id"`
	Name   string   `yaml:"name"`
	Weight *float64 `yaml:"weight"`
	Reps   *float64 `yaml:"reps"`
	Sets   *float64 `yaml:"sets"`
}

// PlanDay is one day of the training cycle as written in the config file.
type PlanDay struct {
	Name  string             `yaml:"name"`
	Lifts []PrescriptionSpec `yaml:"lifts"`
}

// PrescriptionSpec is a raw prescription. Weight is "90%" (of the PR at the
// prescribed reps) or a fixed number; Reps is "amrap" or a fixed number.
type PrescriptionSpec struct {
	Exercise int    `yaml:"exercise"`
	Weight   string `yaml:"weight"`
	Reps     string `yaml:"reps"`
	Sets     int    `yaml:"sets"`
}

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return d.dsnFor(d.Name)
}

// AdminDSN returns a connection string for the maintenance database, used to
// create Name when it does not exist yet.
func (d DatabaseConfig) AdminDSN() string {
	return d.dsnFor("postgres")
}

func (d DatabaseConfig) dsnFor(name string) string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	auth := d.User
	if d.Password != "" {
		auth += ":" + d.Password
	}
	return fmt.Sprintf("postgres://%s@%s:%d/%s?sslmode=%s",
		auth, d.Host, d.Port, name, sslmode)
}

// SlogLevel maps Log.Level onto a slog level. Unknown values mean warn.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Default returns the built-in configuration: a local PostgreSQL database
// named liftsql, the classic exercise defaults and the six-day plan.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Database: DatabaseConfig{
			Backend: BackendPostgres,
			Host:    "localhost",
			Port:    5432,
			Name:    "liftsql",
			User:    "postgres",
			Path:    filepath.Join(home, ".local", "share", "liftsql", "liftsql.db"),
		},
		State:     StateConfig{CursorPath: filepath.Join(home, ".config", ".liftsql")},
		Log:       LogConfig{Level: "warn"},
		Exercises: DefaultExerciseRules(),
		Plan:      DefaultPlan(),
	}
}

// Load reads config from a YAML file over the built-in defaults, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix LIFTSQL_:
//
//	LIFTSQL_DB_BACKEND, LIFTSQL_DB_HOST, LIFTSQL_DB_PORT, LIFTSQL_DB_NAME,
//	LIFTSQL_DB_USER, LIFTSQL_DB_PASSWORD, LIFTSQL_DB_SSLMODE, LIFTSQL_DB_PATH,
//	LIFTSQL_CURSOR_PATH, LIFTSQL_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTSQL_DB_BACKEND"); v != "" {
		cfg.Database.Backend = v
	}
	if v := os.Getenv("LIFTSQL_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("LIFTSQL_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("LIFTSQL_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("LIFTSQL_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("LIFTSQL_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("LIFTSQL_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("LIFTSQL_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("LIFTSQL_CURSOR_PATH"); v != "" {
		cfg.State.CursorPath = v
	}
	if v := os.Getenv("LIFTSQL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	switch c.Database.Backend {
	case BackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	case BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("database.backend %q is not one of %s, %s",
			c.Database.Backend, BackendPostgres, BackendSQLite)
	}
	if c.State.CursorPath == "" {
		return fmt.Errorf("state.cursor_path is required")
	}
	if len(c.Plan) == 0 {
		return fmt.Errorf("plan must have at least one day")
	}
	for i, day := range c.Plan {
		if day.Name == "" {
			return fmt.Errorf("plan[%d].name is required", i)
		}
		for j, l := range day.Lifts {
			if l.Exercise <= 0 {
				return fmt.Errorf("plan[%d].lifts[%d].exercise must be an exercise id", i, j)
			}
			if l.Sets <= 0 {
				return fmt.Errorf("plan[%d].lifts[%d].sets must be positive", i, j)
			}
		}
	}
	for i, r := range c.Exercises {
		if r.ID == 0 && r.Name == "" {
			return fmt.Errorf("exercises[%d] needs an id or a name", i)
		}
	}
	return nil
}
