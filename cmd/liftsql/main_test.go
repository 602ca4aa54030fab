package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the root command against a SQLite database in dir.
func runCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LIFTSQL_DB_BACKEND", "sqlite")
	t.Setenv("LIFTSQL_DB_PATH", filepath.Join(dir, "lifts.db"))
	t.Setenv("LIFTSQL_CURSOR_PATH", filepath.Join(dir, "cursor"))

	if args == nil {
		args = []string{}
	}
	var out, errOut strings.Builder
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	err := cmd.Execute()
	return out.String(), err
}

// TestVersionCmd verifies the version subcommand prints the build version.
func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, t.TempDir(), "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "liftsql dev\n" {
		t.Errorf("output = %q, want %q", out, "liftsql dev\n")
	}
}

// TestMigrateCmd verifies migrate opens and initialises the database.
func TestMigrateCmd(t *testing.T) {
	out, err := runCmd(t, t.TempDir(), "migrate")
	if err != nil {
		t.Fatal(err)
	}
	if out != "migrations applied\n" {
		t.Errorf("output = %q", out)
	}
}

// TestPlanCmd verifies --day selects the day and wraps out-of-range values.
func TestPlanCmd(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"plan"}, "Volume Bench\n"},
		{[]string{"plan", "--day", "1"}, "Recovery Press\n"},
		{[]string{"plan", "--day=-1"}, "PR Bench\n"},
		{[]string{"plan", "--day", "8"}, "PR Press\n"},
	}
	for _, tt := range tests {
		out, err := runCmd(t, dir, tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if !strings.HasPrefix(out, tt.want) {
			t.Errorf("%v output = %q, want prefix %q", tt.args, out, tt.want)
		}
	}
}

// TestExerciseAddAndPR verifies an added exercise is resolvable by the pr command.
func TestExerciseAddAndPR(t *testing.T) {
	dir := t.TempDir()

	out, err := runCmd(t, dir, "exercise", "add", "Ring", "dips")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Exercise added: Ring dips (11)\n" {
		t.Errorf("add output = %q", out)
	}

	out, err = runCmd(t, dir, "pr", "ring", "8")
	if err != nil {
		t.Fatal(err)
	}
	if out != "[No such lifts found.]\n" {
		t.Errorf("pr output = %q", out)
	}
}

// TestPRCmdErrors covers unresolvable exercises and unparsable reps.
func TestPRCmdErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"ambiguous", []string{"pr", "s"}, "too many exercises match"},
		{"no match", []string{"pr", "zzz"}, "no exercise matches"},
		{"bad reps", []string{"pr", "squat", "five"}, "parsing reps"},
		{"no reps default", []string{"pr", "chin"}, "reps required for Chinups"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, dir, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

// TestRootCmdQuitsOnEndOfInput verifies the interactive menu exits cleanly
// when stdin is empty.
func TestRootCmdQuitsOnEndOfInput(t *testing.T) {
	out, err := runCmd(t, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[No previous sessions]") {
		t.Errorf("output = %q", out)
	}
}

// TestImportCmd verifies an export is imported and its PRs become queryable.
func TestImportCmd(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "export.csv")
	data := `"Push";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench · Barbell · 6 reps";"WU1 · 40 kg · 10 reps"
#;KG;REPS;RIR
1;82,5;6;0
2;82,5;6;0
"2. Dips · Bodyweight · 10 reps"
#;KG;REPS;RIR
1;+0;10;1
`
	if err := os.WriteFile(csv, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, dir, "import", csv)
	if err != nil {
		t.Fatal(err)
	}
	want := "1 of 1 sessions imported (1 lifts), 0 skipped, 1 warmups and 1 sets of unknown exercises ignored\n" +
		"Unknown exercises: Dips\n"
	if out != want {
		t.Errorf("import output = %q, want %q", out, want)
	}

	out, err = runCmd(t, dir, "pr", "bench", "6")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Bench: 82.5x6\n" {
		t.Errorf("pr output = %q", out)
	}
}

// TestStatsCmd verifies the summary after an import.
func TestStatsCmd(t *testing.T) {
	dir := t.TempDir()
	out, err := runCmd(t, dir, "stats")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Sessions: 0\nLifts:    0\n" {
		t.Errorf("empty stats output = %q", out)
	}

	csv := filepath.Join(dir, "export.csv")
	data := `"Push";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench · Barbell · 6 reps"
#;KG;REPS;RIR
1;80;5;0
2;80;5;0
`
	if err := os.WriteFile(csv, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, dir, "import", csv); err != nil {
		t.Fatal(err)
	}

	out, err = runCmd(t, dir, "stats")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Sessions: 1\n", "Lifts:    1\n", "Range:    2026-02-17 to 2026-02-17\n", "Bench", "800kg"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}
