// Package ingest holds what every export importer reports back.
package ingest

import "fmt"

// Result holds the outcome of an import.
type Result struct {
	SessionsReceived int
	SessionsImported int
	// SessionsSkipped counts sessions left with no lift to record.
	SessionsSkipped int
	LiftsInserted   int
	WarmupsSkipped  int
	// SetsSkipped counts working sets of exercises that are not in the log.
	SetsSkipped      int
	UnknownExercises []string
}

func (r Result) String() string {
	return fmt.Sprintf("%d of %d sessions imported (%d lifts), %d skipped, %d warmups and %d sets of unknown exercises ignored",
		r.SessionsImported, r.SessionsReceived, r.LiftsInserted, r.SessionsSkipped, r.WarmupsSkipped, r.SetsSkipped)
}
