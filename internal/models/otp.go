package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTPTTL is the validity window of a verification code.
const OTPTTL = 5 * time.Minute

// OTP is a single-use phone verification code tied to a (user, phone) pair.
// Rows are never deleted by the verification flow; a cleanup job prunes
// long-expired ones.
type OTP struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Phone     string    `json:"phone" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"not null"` // 6 digits, leading zeros kept
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Used      bool      `json:"used" gorm:"default:false"`

	// VerifiedAt is set when the code is consumed successfully,
	// left nil when it was superseded or simply expired.
	VerifiedAt *time.Time `json:"verified_at"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook to auto-generate the record ID
func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Active reports whether the code can still be consumed at the given instant.
func (o *OTP) Active(now time.Time) bool {
	return !o.Used && now.Before(o.ExpiresAt)
}
