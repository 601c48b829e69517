package models

import "time"

// Taxpayer is one tracked declarante. FechaVencimiento is always derived from
// the cedula via the filing calendar and is never accepted from callers. The
// unique index on Cedula is what actually enforces uniqueness; application-side
// checks are only a fast path.
type Taxpayer struct {
	ID               uint `gorm:"primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Cedula           string `gorm:"size:20;not null;uniqueIndex"`
	Nombres          string `gorm:"size:255;not null"` // stored upper-cased
	Celular          string `gorm:"size:10;not null"`
	FechaVencimiento string `gorm:"size:16;not null"` // "D-M-YYYY"
	Notificado       bool   `gorm:"default:false;not null"`
	// LastNotification is nil until the first reminder is recorded; once set it
	// only moves forward. There is no path back to the un-notified state.
	LastNotification *time.Time
}
