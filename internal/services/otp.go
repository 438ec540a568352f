package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/logger"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/storage"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/utils"
)

// uaePhonePattern accepts +971 followed by exactly 9 digits
var uaePhonePattern = regexp.MustCompile(`^\+971[0-9]{9}$`)

// OTPConfirmation is what the caller gets back after a send request.
// Code is only populated when echo mode is on.
type OTPConfirmation struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
	Code      string    `json:"code,omitempty"`
}

// OTPService issues and verifies single-use phone verification codes
type OTPService struct {
	store     storage.Store
	notifier  Notifier
	echoCodes bool
}

// NewOTPService creates a new OTP service. echoCodes must stay false outside
// of test setups.
func NewOTPService(store storage.Store, notifier Notifier, echoCodes bool) *OTPService {
	return &OTPService{store: store, notifier: notifier, echoCodes: echoCodes}
}

// RequestCode issues a fresh code for the user's phone and sends it by SMS.
// Any previously unused codes of the user are superseded in the same store
// transaction, so at most one code is live at a time. When dispatch fails the
// code stays persisted and ErrDispatchFailed is returned so the caller can
// offer a resend.
func (s *OTPService) RequestCode(userID, phone string) (*OTPConfirmation, error) {
	if !uaePhonePattern.MatchString(phone) {
		return nil, ErrInvalidPhoneFormat
	}

	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	otp := &models.OTP{
		UserID:    userID,
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(models.OTPTTL),
	}
	if _, err := s.store.ReplaceActiveOTP(otp); err != nil {
		return nil, fmt.Errorf("failed to store code: %w", err)
	}

	body := fmt.Sprintf("Your Wheel Deals verification code is %s. It expires in 5 minutes.", code)
	if err := s.notifier.SendSMS(phone, body); err != nil {
		logger.Warn("OTP dispatch failed, code remains valid",
			zap.String("user_id", userID), zap.Error(err))
		return nil, ErrDispatchFailed
	}

	confirmation := &OTPConfirmation{Phone: phone, ExpiresAt: otp.ExpiresAt}
	if s.echoCodes {
		confirmation.Code = code
	}
	return confirmation, nil
}

// VerifyCode consumes the submitted code and marks the user's phone verified.
// Every failure mode - wrong code, expired, already used, never issued, wrong
// owner - comes back as the same ErrInvalidOrExpired.
func (s *OTPService) VerifyCode(userID, phone, code string) error {
	_, err := s.store.ConsumeOTP(userID, phone, code, time.Now())
	if errors.Is(err, storage.ErrNotFound) {
		return ErrInvalidOrExpired
	}
	if err != nil {
		return fmt.Errorf("failed to verify code: %w", err)
	}

	logger.Info("phone verified", zap.String("user_id", userID))
	return nil
}
