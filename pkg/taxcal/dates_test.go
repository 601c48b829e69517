package taxcal

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("3-9-2025")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if d.Day() != 3 || d.Month() != time.September || d.Year() != 2025 {
		t.Fatalf("got %v, want 3 Sep 2025", d)
	}
	if _, err := ParseDueDate("3/9/2025"); err == nil {
		t.Fatalf("expected error for wrong separator")
	}
	if _, err := ParseDueDate("3-9"); err == nil {
		t.Fatalf("expected error for missing year")
	}
	if _, err := ParseDueDate("x-9-2025"); err == nil {
		t.Fatalf("expected error for non-numeric day")
	}
}

func TestDaysUntil(t *testing.T) {
	// reference mid-day, like a live clock
	ref := time.Date(2025, 8, 20, 10, 30, 0, 0, time.Local)
	cases := []struct {
		due  string
		want int
	}{
		{"20-8-2025", 0},  // due today
		{"21-8-2025", 1},  // tomorrow, partial day rounds up
		{"19-8-2025", -1}, // yesterday
		{"27-8-2025", 7},
		{"28-8-2025", 8},
		{"24-10-2025", 65},
		{"12-8-2025", -8},
	}
	for _, c := range cases {
		if got := DaysUntil(c.due, ref); got != c.want {
			t.Fatalf("DaysUntil(%s, %v) = %d, want %d", c.due, ref, got, c.want)
		}
	}
}

func TestDaysUntilMidnightReference(t *testing.T) {
	ref := time.Date(2025, 9, 3, 0, 0, 0, 0, time.Local)
	if got := DaysUntil("3-9-2025", ref); got != 0 {
		t.Fatalf("same-day at midnight should be 0, got %d", got)
	}
	if got := DaysUntil("2-9-2025", ref); got >= 0 {
		t.Fatalf("past date should be negative, got %d", got)
	}
}

func TestLessByDueDate(t *testing.T) {
	if !LessByDueDate("26-8-2025", "1-9-2025") {
		t.Fatalf("august should order before september")
	}
	if LessByDueDate("1-10-2025", "26-9-2025") {
		t.Fatalf("october should not order before september")
	}
	if LessByDueDate("26-8-2025", "26-8-2025") {
		t.Fatalf("equal dates should not be less")
	}
}

func TestSortByDueDateIsStableAndNonDecreasing(t *testing.T) {
	type rec struct {
		id  int
		due string
	}
	items := []rec{
		{1, "24-10-2025"},
		{2, "12-8-2025"},
		{3, "3-9-2025"},
		{4, "12-8-2025"},
		{5, "1-9-2025"},
	}
	SortByDueDate(items, func(r rec) string { return r.due })
	for i := 1; i < len(items); i++ {
		if LessByDueDate(items[i].due, items[i-1].due) {
			t.Fatalf("sequence decreases at %d: %v", i, items)
		}
	}
	// ids 2 and 4 share a date; insertion order must survive
	if items[0].id != 2 || items[1].id != 4 {
		t.Fatalf("equal dates lost insertion order: %v", items)
	}
}
