package services

import (
	"go.uber.org/zap"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/logger"
)

// LogNotifier writes messages to the log instead of sending them. Used in
// local development when no Twilio credentials are configured.
type LogNotifier struct{}

// SendSMS logs the message and reports success
func (LogNotifier) SendSMS(to string, body string) error {
	logger.Info("SMS (log only)", zap.String("to", to), zap.String("body", body))
	return nil
}
