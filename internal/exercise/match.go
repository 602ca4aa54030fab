// Package exercise maps typed exercise names to known exercises and holds
// the per-exercise defaults offered when recording a lift.
package exercise

import (
	"strings"

	"github.com/claude/liftsql/internal/models"
)

// MatchKind is the outcome of resolving typed input against known exercises.
type MatchKind int

const (
	NoMatch MatchKind = iota
	Matched
	Ambiguous
)

func (k MatchKind) String() string {
	switch k {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no match"
	}
}

// Match is the result of Resolve. Exercise is set only for Matched;
// Candidates lists every matching exercise for Ambiguous.
type Match struct {
	Kind       MatchKind
	Exercise   models.Exercise
	Candidates []models.Exercise
}

// Resolve matches input case-insensitively as a prefix of each known name.
// Empty input never matches. Names are not unique, so two exercises with the
// same name are reported as Ambiguous rather than picked silently.
func Resolve(input string, known []models.Exercise) Match {
	if input == "" {
		return Match{Kind: NoMatch}
	}
	prefix := strings.ToLower(input)

	var candidates []models.Exercise
	for _, e := range known {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			candidates = append(candidates, e)
		}
	}

	switch len(candidates) {
	case 0:
		return Match{Kind: NoMatch}
	case 1:
		return Match{Kind: Matched, Exercise: candidates[0], Candidates: candidates}
	default:
		return Match{Kind: Ambiguous, Candidates: candidates}
	}
}

// JoinNames lists exercise names separated by "; ".
func JoinNames(exercises []models.Exercise) string {
	names := make([]string, len(exercises))
	for i, e := range exercises {
		names[i] = e.Name
	}
	return strings.Join(names, "; ")
}
