package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationToken is a single-use email verification token. UsedAt
// is the consumption marker; a non-nil value makes every later
// redemption fail, regardless of expiry.
type VerificationToken struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProfileID uuid.UUID  `json:"profile_id" db:"profile_id" gorm:"type:uuid;not null;index"`
	Token     string     `json:"-" db:"token" gorm:"type:varchar(128);not null;uniqueIndex"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at,omitempty" db:"used_at"`

	Profile *Profile `json:"-" gorm:"foreignKey:ProfileID;references:ID"`
}

// Expired reports whether the token's validity window has passed.
func (t VerificationToken) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}

// Used reports whether the token has already been redeemed.
func (t VerificationToken) Used() bool {
	return t.UsedAt != nil
}
