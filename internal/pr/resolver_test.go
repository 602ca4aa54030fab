package pr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/claude/liftsql/internal/storage"
)

type key struct {
	id int
	v  float64
}

type fakeSource struct {
	weights map[key]float64
	reps    map[key]float64
	err     error
}

func (f *fakeSource) WeightPR(_ context.Context, id int, reps float64) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	w, ok := f.weights[key{id, reps}]
	if !ok {
		return 0, fmt.Errorf("querying weight PR: %w", storage.ErrNotFound)
	}
	return w, nil
}

func (f *fakeSource) RepsPR(_ context.Context, id int, weight float64) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	r, ok := f.reps[key{id, weight}]
	if !ok {
		return 0, fmt.Errorf("querying reps PR: %w", storage.ErrNotFound)
	}
	return r, nil
}

// TestResolverFound verifies recorded PRs are returned with ok set.
func TestResolverFound(t *testing.T) {
	r := New(&fakeSource{
		weights: map[key]float64{{1, 5}: 100},
		reps:    map[key]float64{{5, 0}: 12},
	})
	ctx := context.Background()

	w, ok, err := r.Weight(ctx, 1, 5)
	if err != nil || !ok || w != 100 {
		t.Errorf("Weight(1, 5) = %v, %v, %v; want 100, true, nil", w, ok, err)
	}
	n, ok, err := r.Reps(ctx, 5, 0)
	if err != nil || !ok || n != 12 {
		t.Errorf("Reps(5, 0) = %v, %v, %v; want 12, true, nil", n, ok, err)
	}
}

// TestResolverNotFoundIsNotAnError verifies a missing record degrades to ok=false
// so callers can show a placeholder instead of failing.
func TestResolverNotFoundIsNotAnError(t *testing.T) {
	r := New(&fakeSource{})
	_, ok, err := r.Weight(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("ok = true for missing record")
	}
}

// TestResolverStorageFailure verifies real storage errors still propagate.
func TestResolverStorageFailure(t *testing.T) {
	boom := errors.New("connection refused")
	r := New(&fakeSource{err: boom})
	if _, _, err := r.Reps(context.Background(), 1, 100); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    float64
		ok   bool
		want string
	}{
		{90, true, "90"},
		{72.5, true, "72.5"},
		{0, true, "0"},
		{100, false, "?"},
	}
	for _, tt := range tests {
		if got := FormatOr(tt.v, tt.ok); got != tt.want {
			t.Errorf("FormatOr(%v, %v) = %q, want %q", tt.v, tt.ok, got, tt.want)
		}
	}
}
