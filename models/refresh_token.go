package models

import "time"

// RefreshToken stores only the hash of an issued refresh token, with expiry and
// revocation state for session rotation.
type RefreshToken struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint      `gorm:"index;not null"`
	TokenHash string    `gorm:"size:128;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"default:false"`
}
