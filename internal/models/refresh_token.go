package models

import (
	"time"
)

// RefreshToken tracks an issued refresh JWT by its jti so it can be
// rotated or revoked.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	TokenID   string    `gorm:"uniqueIndex;size:36;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (t RefreshToken) OwnerID() uint { return t.UserID }
