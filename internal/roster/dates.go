package roster

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey serializes a civil date as ISO YYYY-MM-DD. All snapshot maps are
// keyed by this form; the time component and location are ignored.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDateKey parses an ISO date key back into a civil date (UTC midnight).
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q ist kein Datum", ErrValidation, s)
	}
	return t, nil
}

// Date builds a civil date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last day of the month.
func MonthBounds(year, month int) (time.Time, time.Time) {
	first := Date(year, time.Month(month), 1)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// DaysInMonth returns the number of days in the month.
func DaysInMonth(year, month int) int {
	_, last := MonthBounds(year, month)
	return last.Day()
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
