package taxcal

import "testing"

func TestCalendarHasAllSuffixes(t *testing.T) {
	if n := CalendarSize(); n != 100 {
		t.Fatalf("calendar should cover suffixes 00..99, has %d entries", n)
	}
	for i := 0; i < 100; i++ {
		suffix := string([]byte{byte('0' + i/10), byte('0' + i%10)})
		d, ok := dueDateCalendar[suffix]
		if !ok || d == "" {
			t.Fatalf("suffix %s has no due date", suffix)
		}
		if _, err := ParseDueDate(d); err != nil {
			t.Fatalf("suffix %s maps to unparseable date %q: %v", suffix, d, err)
		}
	}
}

func TestDueDateForKnownSuffixes(t *testing.T) {
	cases := []struct {
		cedula string
		want   string
	}{
		{"87063031", "3-9-2025"},
		{"87063000", "24-10-2025"},
		{"87063007", "15-8-2025"},
		{"87063020", "26-8-2025"},
		{"1085291051", "17-9-2025"}, // long cedula, only last two digits matter
	}
	for _, c := range cases {
		if got := DueDateFor(c.cedula); got != c.want {
			t.Fatalf("DueDateFor(%s) = %s, want %s", c.cedula, got, c.want)
		}
	}
}

func TestDueDateForPadsShortCedulas(t *testing.T) {
	// "7" pads to "07"
	if got := DueDateFor("7"); got != "15-8-2025" {
		t.Fatalf("DueDateFor(7) = %s, want 15-8-2025", got)
	}
	if got := DueDateFor(""); got != FallbackDueDate {
		t.Fatalf("DueDateFor(\"\") = %s, want fallback %s", got, FallbackDueDate)
	}
}

func TestDueDateForIsDeterministic(t *testing.T) {
	first := DueDateFor("98339322")
	for i := 0; i < 10; i++ {
		if got := DueDateFor("98339322"); got != first {
			t.Fatalf("repeated resolution diverged: %s vs %s", got, first)
		}
	}
}

func TestFallbackIsLastCalendarDate(t *testing.T) {
	last, err := ParseDueDate(FallbackDueDate)
	if err != nil {
		t.Fatalf("fallback unparseable: %v", err)
	}
	for suffix, d := range dueDateCalendar {
		pd, err := ParseDueDate(d)
		if err != nil {
			t.Fatalf("suffix %s unparseable: %v", suffix, err)
		}
		if pd.After(last) {
			t.Fatalf("suffix %s (%s) is after the fallback date %s", suffix, d, FallbackDueDate)
		}
	}
}
