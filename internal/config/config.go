package config

import (
	"os"

	"github.com/joho/godotenv"
)

// TwilioConfig holds SMS dispatch credentials
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Config collects everything the service reads from the environment
type Config struct {
	Port           string
	Environment    string
	UseMemoryStore bool
	JWTSecret      string
	Twilio         TwilioConfig

	// OTPEchoCodes makes the send-code endpoint echo the raw code back in
	// the response. Test convenience only - never enable in production.
	OTPEchoCodes bool
}

// Load reads the .env file (if present) and assembles the config
func Load() *Config {
	// Ignore a missing .env; environment variables may already be set
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("environments/.env.development")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		UseMemoryStore: os.Getenv("USE_MEMORY_STORE") == "true",
		JWTSecret:      getEnv("JWT_SECRET", ""),
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		},
		OTPEchoCodes: os.Getenv("OTP_ECHO_CODES") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
