package taxcal

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want Urgency
	}{
		{-31, UrgencyOverdue},
		{-1, UrgencyOverdue},
		{0, UrgencyUrgent},
		{7, UrgencyUrgent},
		{8, UrgencyUpcoming},
		{30, UrgencyUpcoming},
		{31, UrgencyPending},
		{365, UrgencyPending},
	}
	for _, c := range cases {
		if got := Classify(c.days); got != c.want {
			t.Fatalf("Classify(%d) = %s, want %s", c.days, got, c.want)
		}
	}
}

func TestActionableCutoff(t *testing.T) {
	if !Actionable(-30) {
		t.Fatalf("30 days overdue should still be actionable")
	}
	if Actionable(-31) {
		t.Fatalf("31 days overdue should not be actionable")
	}
	if !Actionable(0) || !Actionable(90) {
		t.Fatalf("current and future dates should be actionable")
	}
}
