// Package pr looks up personal records from lift history.
package pr

import (
	"context"
	"errors"
	"strconv"

	"github.com/claude/liftsql/internal/storage"
)

// Unknown is displayed in place of a value that has no record yet.
const Unknown = "?"

// Source is the part of the record store PR lookups read from.
type Source interface {
	WeightPR(ctx context.Context, exerciseID int, reps float64) (float64, error)
	RepsPR(ctx context.Context, exerciseID int, weight float64) (float64, error)
}

// Resolver answers PR questions. A missing record is reported through the
// ok result, never as an error; errors are storage failures.
type Resolver struct {
	src Source
}

// New creates a Resolver reading from src.
func New(src Source) *Resolver {
	return &Resolver{src: src}
}

// Weight returns the heaviest weight ever lifted for the exercise at exactly reps.
func (r *Resolver) Weight(ctx context.Context, exerciseID int, reps float64) (float64, bool, error) {
	return found(r.src.WeightPR(ctx, exerciseID, reps))
}

// Reps returns the most reps ever performed for the exercise at exactly weight.
func (r *Resolver) Reps(ctx context.Context, exerciseID int, weight float64) (float64, bool, error) {
	return found(r.src.RepsPR(ctx, exerciseID, weight))
}

func found(v float64, err error) (float64, bool, error) {
	if errors.Is(err, storage.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// Format renders a weight or rep count without trailing zeros (90, 72.5).
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatOr renders v, or Unknown when ok is false.
func FormatOr(v float64, ok bool) string {
	if !ok {
		return Unknown
	}
	return Format(v)
}
