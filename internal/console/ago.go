package console

import (
	"fmt"
	"time"

	"github.com/claude/liftsql/internal/models"
)

// FormatAgo describes how many calendar days lie between then and now:
// "4 days ago", "1 day ago", or "2 days AHEAD" when then is after now.
func FormatAgo(then, now time.Time) string {
	days := int(models.Day(now).Sub(models.Day(then)).Hours() / 24)

	n := days
	if n < 0 {
		n = -n
	}
	unit := "days"
	if n == 1 {
		unit = "day"
	}
	if days < 0 {
		return fmt.Sprintf("%d %s AHEAD", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
