package services

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/config"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/logger"
)

// Notifier dispatches a message to a phone number, best effort
type Notifier interface {
	SendSMS(to string, body string) error
}

// TwilioService sends SMS through the Twilio REST API
type TwilioService struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService(cfg config.TwilioConfig) (*TwilioService, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioService{
		client: client,
		from:   cfg.FromNumber,
	}, nil
}

// SendSMS sends a text message via Twilio
func (t *TwilioService) SendSMS(to string, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		logger.Error("failed to send SMS", zap.String("to", to), zap.Error(err))
		return err
	}

	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, *resp.ErrorMessage)
	}

	logger.Info("SMS sent", zap.String("to", to), zap.Stringp("sid", resp.Sid))
	return nil
}
