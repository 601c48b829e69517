package taxcal

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ParseDueDate parses the calendar's "D-M-YYYY" format (day and month unpadded).
func ParseDueDate(due string) (time.Time, error) {
	parts := strings.Split(due, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed due date %q", due)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed due date %q: %v", due, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed due date %q: %v", due, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed due date %q: %v", due, err)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// DaysUntil returns the whole days remaining from ref until the due date,
// rounding up partial days. Positive means the date is still ahead, zero means
// it falls on ref's day, negative means overdue. Malformed dates count as
// already due.
func DaysUntil(due string, ref time.Time) int {
	d, err := ParseDueDate(due)
	if err != nil {
		return 0
	}
	return int(math.Ceil(d.Sub(ref).Hours() / 24))
}

// DaysUntilNow is DaysUntil against the current clock.
func DaysUntilNow(due string) int {
	return DaysUntil(due, time.Now())
}

// LessByDueDate orders two due-date strings chronologically by their parsed
// dates. Unparseable dates sort last.
func LessByDueDate(a, b string) bool {
	da, errA := ParseDueDate(a)
	db, errB := ParseDueDate(b)
	if errA != nil {
		return false
	}
	if errB != nil {
		return true
	}
	return da.Before(db)
}

// SortByDueDate stably sorts items ascending by the due date reported by the
// due func, so records sharing a filing date keep their original order.
func SortByDueDate[T any](items []T, due func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return LessByDueDate(due(items[i]), due(items[j]))
	})
}
