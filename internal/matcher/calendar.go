package matcher

import (
	"time"

	"github.com/garagepay/paytrack/internal/model"
)

// LastDay returns the number of days in month of year.
func LastDay(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AdjustDueDate applies the month-end rule: a due day of 29, 30 or 31 that
// does not exist in its month becomes the last day of that month.
// 2025-02-30 -> 2025-02-28, 2024-04-31 -> 2024-04-30.
func AdjustDueDate(d model.CivilDate) time.Time {
	day := d.Day
	if last := LastDay(d.Year, d.Month); day >= 29 && day <= 31 && day > last {
		day = last
	}
	return time.Date(d.Year, d.Month, day, 0, 0, 0, 0, time.UTC)
}
