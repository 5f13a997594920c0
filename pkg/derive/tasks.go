package derive

import (
	"fmt"
	"math"
	"time"
)

// DueLabel renders a due date relative to now, the way the task list shows it
func DueLabel(due *time.Time, now time.Time) string {
	if due == nil {
		return ""
	}

	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return fmt.Sprintf("OVERDUE (%d days ago)", -days)
	case days == 0:
		return "TODAY"
	case days == 1:
		return "Tomorrow"
	case days <= 7:
		return fmt.Sprintf("In %d days", days)
	default:
		return due.Local().Format(DayLayout)
	}
}
