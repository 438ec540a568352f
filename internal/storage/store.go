package storage

import (
	"errors"
	"time"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for storage operations
type Store interface {
	// Listing operations
	CreateListing(listing *models.Listing) (*models.Listing, error)
	GetListing(id string) (*models.Listing, error)
	GetAllListings() ([]*models.Listing, error)
	GetListingsByUser(userID string) ([]*models.Listing, error)
	UpdateListing(listing *models.Listing) error
	UpdateListingStatus(id string, status string) error
	DeleteListing(id string) error

	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUser(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error

	// OTP operations.
	//
	// ReplaceActiveOTP marks every unused code of the owner as used and
	// inserts the new record, as one atomic step - at most one unused code
	// may exist per user at any time.
	//
	// ConsumeOTP looks up the newest record matching (userID, phone, code)
	// that is unused and unexpired at `now`, marks it used and flips the
	// owner's phone_verified flag, all atomically. Returns ErrNotFound when
	// no such record exists; a consumed code never matches twice.
	ReplaceActiveOTP(otp *models.OTP) (*models.OTP, error)
	ConsumeOTP(userID, phone, code string, now time.Time) (*models.OTP, error)
	GetOTPsByUser(userID string) ([]*models.OTP, error)
	DeleteExpiredOTPs(before time.Time) (int64, error)
}
