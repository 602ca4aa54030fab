package alpha

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/claude/liftsql/internal/models"
)

const sampleCSV = `
"Legs · Day 2 · Week 4 · Push-Pull-Legs";"2026-02-19 4:54 h";"1:02 hr"
"1. Squat · Barbell · 5 reps";"WU1 · 60 kg · 5 reps<br>WU2 · 80 kg · 3 reps"
#;KG;REPS;RIR
1;102,5;5;2
2;102,5;5;1
3;105;3;0
"2. Sumo Squats · Smith machine · 10 reps";"WU1 · 35 kg · 8 reps"
#;KG;REPS;RIR
1;70;8;1
2;70;12;1
"3. Chinups · Bodyweight · 8 reps · 2 dropsets";"WU1 · +0 kg · 5 reps"
#;KG;REPS;RIR
1;+10;8;0,5
2;+0;12;1

"Push · Day 1 · Week 4 · Push-Pull-Legs";"2026-02-17 17:04 h";"1:12 hr"
"1. Bench · Barbell · 6 reps"
#;KG;REPS;RIR
1;80;6;0
2;80;6;0
`

// TestParseSessions verifies a multi-session export with warmups, bodyweight
// sets and multi-word equipment.
func TestParseSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if want := time.Date(2026, 2, 19, 4, 54, 0, 0, time.UTC); !s1.Date.Equal(want) {
		t.Errorf("s1.Date = %v, want %v", s1.Date, want)
	}
	if len(s1.Exercises) != 3 {
		t.Fatalf("s1 exercises = %d, want 3", len(s1.Exercises))
	}

	squat := s1.Exercises[0]
	wantSquat := models.ImportedExercise{
		Name:       "Squat",
		Equipment:  "Barbell",
		TargetReps: 5,
		Sets: []models.ImportedSet{
			{Weight: 60, Reps: 5, Warmup: true},
			{Weight: 80, Reps: 3, Warmup: true},
			{Weight: 102.5, Reps: 5, RIR: 2},
			{Weight: 102.5, Reps: 5, RIR: 1},
			{Weight: 105, Reps: 3},
		},
	}
	if diff := cmp.Diff(wantSquat, squat); diff != "" {
		t.Errorf("squat mismatch (-want +got):\n%s", diff)
	}

	if got := s1.Exercises[1].Equipment; got != "Smith machine" {
		t.Errorf("equipment = %q, want Smith machine", got)
	}

	chin := s1.Exercises[2]
	if chin.Name != "Chinups" || chin.TargetReps != 8 {
		t.Errorf("chinups header = %q/%d", chin.Name, chin.TargetReps)
	}
	wantChin := []models.ImportedSet{
		{Weight: 10, Reps: 8, RIR: 0.5, Bodyweight: true},
		{Weight: 0, Reps: 12, RIR: 1, Bodyweight: true},
	}
	if diff := cmp.Diff(wantChin, chin.WorkingSets()); diff != "" {
		t.Errorf("chinups working sets mismatch (-want +got):\n%s", diff)
	}

	s2 := sessions[1]
	if s2.Name != "Push · Day 1 · Week 4 · Push-Pull-Legs" {
		t.Errorf("s2.Name = %q", s2.Name)
	}
	if s2.Date.Hour() != 17 {
		t.Errorf("s2 hour = %d, want 17", s2.Date.Hour())
	}
}

// TestParseWeight covers comma decimals and the +N bodyweight notation.
func TestParseWeight(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantBW bool
	}{
		{"102,5", 102.5, false},
		{"80", 80, false},
		{"+35", 35, true},
		{"+0", 0, true},
		{" 7,25 ", 7.25, false},
		{"nan", 0, false},
		{"+inf", 0, true},
	}
	for _, tt := range tests {
		got, bw := parseWeight(tt.in)
		if got != tt.want || bw != tt.wantBW {
			t.Errorf("parseWeight(%q) = %v, %v; want %v, %v", tt.in, got, bw, tt.want, tt.wantBW)
		}
	}
}

// TestParseWarmups verifies warmups are split on <br> and marked.
func TestParseWarmups(t *testing.T) {
	sets := parseWarmups("WU1 · 37,5 kg · 9 reps<br>WU2 · +0 kg · 7 reps<br>garbage")
	want := []models.ImportedSet{
		{Weight: 37.5, Reps: 9, Warmup: true},
		{Weight: 0, Reps: 7, Bodyweight: true, Warmup: true},
	}
	if diff := cmp.Diff(want, sets); diff != "" {
		t.Errorf("warmups mismatch (-want +got):\n%s", diff)
	}
}

// TestParseEmptyInput verifies empty input yields no sessions and no error.
func TestParseEmptyInput(t *testing.T) {
	sessions, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
}

// TestParseOrphanLines verifies exercises and sets outside their parent are rejected.
func TestParseOrphanLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"exercise without session", "\"1. Squat · Barbell · 5 reps\"\n", "line 1: exercise without session"},
		{"set without exercise", "\"Legs\";\"2026-02-19 4:54 h\";\"1:02 hr\"\n1;100;5;1\n", "line 2: set without exercise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
