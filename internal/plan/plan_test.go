package plan

import (
	"testing"

	"github.com/claude/liftsql/internal/config"
)

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in      string
		want    WeightRule
		wantErr bool
	}{
		{in: "90%", want: RelativeToMax(90)},
		{in: " 72.5 % ", want: RelativeToMax(72.5)},
		{in: "0", want: FixedWeight(0)},
		{in: "60", want: FixedWeight(60)},
		{in: "", wantErr: true},
		{in: "%", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "heavy", wantErr: true},
		{in: "inf", wantErr: true},
		{in: "NaN%", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeight(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseWeight(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseReps(t *testing.T) {
	tests := []struct {
		in      string
		want    RepsRule
		wantErr bool
	}{
		{in: "amrap", want: AMRAP()},
		{in: "AMRAP", want: AMRAP()},
		{in: "5", want: FixedReps(5)},
		{in: "0", wantErr: true},
		{in: "many", wantErr: true},
		{in: "nan", wantErr: true},
		{in: "+Inf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReps(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseReps(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// TestFromConfigDefaultPlan verifies the shipped plan converts cleanly and
// keeps the order and rules of its days.
func TestFromConfigDefaultPlan(t *testing.T) {
	p, err := FromConfig(config.DefaultPlan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", p.Len())
	}
	if p.Days[0].Name != "Volume Bench" || p.Days[5].Name != "PR Bench" {
		t.Errorf("day order = %q ... %q", p.Days[0].Name, p.Days[5].Name)
	}
	chin := p.Days[1].Prescriptions[2]
	if chin.ExerciseID != 5 || chin.Weight != FixedWeight(0) || !chin.Reps.AMRAP {
		t.Errorf("recovery chin-ups = %+v", chin)
	}
	if !p.Days[2].Prescriptions[0].Weight.IsPRAttempt() {
		t.Error("PR Press squat should be a PR attempt")
	}
}

// TestFromConfigRejectsBadRules verifies a malformed rule names the day it is on.
func TestFromConfigRejectsBadRules(t *testing.T) {
	_, err := FromConfig([]config.PlanDay{{Name: "Odd", Lifts: []config.PrescriptionSpec{
		{Exercise: 1, Weight: "lots", Reps: "5", Sets: 1},
	}}})
	if err == nil {
		t.Fatal("expected error for bad weight")
	}
	if _, err := FromConfig(nil); err == nil {
		t.Fatal("expected error for empty plan")
	}
}
