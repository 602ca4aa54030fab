package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Cursor points at the current day of a plan of length n.
// Day always stays within [0, n).
type Cursor struct {
	Day int
	n   int
}

// NewCursor returns a cursor over n days positioned at day, wrapped into range.
func NewCursor(day, n int) Cursor {
	if n <= 0 {
		return Cursor{}
	}
	return Cursor{Day: floorMod(day, n), n: n}
}

// Advance moves to the next day, wrapping to the first.
func (c *Cursor) Advance() {
	if c.n > 0 {
		c.Day = (c.Day + 1) % c.n
	}
}

// Retreat moves to the previous day, wrapping to the last.
func (c *Cursor) Retreat() {
	if c.n > 0 {
		c.Day = (c.Day + c.n - 1) % c.n
	}
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// LoadCursor reads the persisted day index. The file holds a single integer.
// On a missing or unparsable file it returns 0 with the error, which callers
// report as a warning.
func LoadCursor(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading cursor file: %w", err)
	}
	day, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parsing cursor file %s: %w", path, err)
	}
	return day, nil
}

// SaveCursor writes the day index to path, creating its directory.
func SaveCursor(path string, day int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cursor dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(day)), 0o644); err != nil {
		return fmt.Errorf("writing cursor file: %w", err)
	}
	return nil
}
