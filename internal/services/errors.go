package services

import "errors"

// Service-level errors surfaced to handlers
var (
	// ErrInvalidPhoneFormat rejects phone numbers outside the UAE format
	ErrInvalidPhoneFormat = errors.New("phone number must be a valid UAE number (+971 followed by 9 digits)")

	// ErrInvalidOrExpired is the single failure for verification. It covers
	// wrong code, expired code, consumed code and never-issued code alike so
	// callers cannot probe which one happened.
	ErrInvalidOrExpired = errors.New("verification code is invalid or expired")

	// ErrDispatchFailed means the code was persisted but SMS delivery failed;
	// it stays valid until its natural expiry and the user can ask for a resend
	ErrDispatchFailed = errors.New("failed to send verification code")

	// ErrEmailTaken rejects signup with an already registered email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials is the single failure for login
	ErrInvalidCredentials = errors.New("invalid email or password")
)
