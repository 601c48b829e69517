package taxcal

// Urgency buckets how close a filing date is.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyUrgent   Urgency = "urgent"   // due within a week
	UrgencyUpcoming Urgency = "upcoming" // due within a month
	UrgencyPending  Urgency = "pending"
)

// Classify buckets a day delta (as produced by DaysUntil) into an urgency level.
func Classify(daysUntil int) Urgency {
	switch {
	case daysUntil < 0:
		return UrgencyOverdue
	case daysUntil <= 7:
		return UrgencyUrgent
	case daysUntil <= 30:
		return UrgencyUpcoming
	default:
		return UrgencyPending
	}
}

// Actionable reports whether a reminder still makes sense. Past 30 days overdue
// the case needs escalation with DIAN directly, not a WhatsApp nudge.
func Actionable(daysUntil int) bool {
	return daysUntil >= -30
}
