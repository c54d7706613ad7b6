package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingSignup holds an unverified registration until the emailed token is
// redeemed. Deliberately no uniqueness constraints: repeated signup requests
// for the same email each create a fresh pending row, and only one can win
// promotion. Rows older than the verification-token TTL are swept by the
// cron worker.
type PendingSignup struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:text;not null"`
	Email        string    `gorm:"type:text;not null;index"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
