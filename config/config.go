package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fenilmodi00/ipo-monitor/shared"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultOfferAmountThreshold is the qualifying threshold applied when
// OFFER_AMOUNT_THRESHOLD is not set: $200 million USD.
const DefaultOfferAmountThreshold = 200_000_000

// Config holds all settings for a monitor run. It is constructed once at
// process start and passed by parameter; nothing reads the environment after
// LoadConfig returns.
type Config struct {
	FinnhubAPIKey        string
	EmailSender          string
	EmailPassword        string
	EmailRecipient       string
	SMTPServer           string
	SMTPPort             int
	OfferAmountThreshold float64
	ReferenceTimezone    string
	Location             *time.Location
	LogLevel             string
	HTTPTimeout          time.Duration
	HTTPMaxRetries       int
}

// LoadConfig reads configuration from the environment (and an optional .env
// file) and validates it. Any missing required variable or malformed value is
// a fatal configuration error, reported before any network call is made.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	cfg := &Config{
		FinnhubAPIKey:     getEnv("FINNHUB_API_KEY", ""),
		EmailSender:       getEnv("EMAIL_SENDER", ""),
		EmailPassword:     getEnv("EMAIL_PASSWORD", ""),
		EmailRecipient:    getEnv("EMAIL_RECIPIENT", ""),
		SMTPServer:        getEnv("SMTP_SERVER", "smtp.gmail.com"),
		ReferenceTimezone: getEnv("REFERENCE_TIMEZONE", "Asia/Dubai"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	// The recipient may be omitted; reports then go back to the sender.
	if cfg.EmailRecipient == "" {
		cfg.EmailRecipient = cfg.EmailSender
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, configError(fmt.Sprintf("invalid SMTP_PORT: %v", err))
	}
	cfg.SMTPPort = smtpPort

	threshold, err := strconv.ParseFloat(getEnv("OFFER_AMOUNT_THRESHOLD", strconv.Itoa(DefaultOfferAmountThreshold)), 64)
	if err != nil {
		return nil, configError(fmt.Sprintf("invalid OFFER_AMOUNT_THRESHOLD: %v", err))
	}
	if threshold < 0 {
		return nil, configError("OFFER_AMOUNT_THRESHOLD must not be negative")
	}
	cfg.OfferAmountThreshold = threshold

	timeoutSeconds, err := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, configError(fmt.Sprintf("invalid HTTP_TIMEOUT_SECONDS: %v", err))
	}
	cfg.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second

	maxRetries, err := strconv.Atoi(getEnv("HTTP_MAX_RETRIES", "3"))
	if err != nil {
		return nil, configError(fmt.Sprintf("invalid HTTP_MAX_RETRIES: %v", err))
	}
	cfg.HTTPMaxRetries = maxRetries

	location, err := time.LoadLocation(cfg.ReferenceTimezone)
	if err != nil {
		return nil, configError(fmt.Sprintf("invalid REFERENCE_TIMEZONE %q: %v", cfg.ReferenceTimezone, err))
	}
	cfg.Location = location

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every required variable is present, reporting all
// missing names at once so the operator can fix them in a single pass.
func (c *Config) Validate() error {
	var missing []string
	if c.FinnhubAPIKey == "" {
		missing = append(missing, "FINNHUB_API_KEY")
	}
	if c.EmailSender == "" {
		missing = append(missing, "EMAIL_SENDER")
	}
	if c.EmailPassword == "" {
		missing = append(missing, "EMAIL_PASSWORD")
	}

	if len(missing) > 0 {
		return configError(fmt.Sprintf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func configError(message string) *shared.ServiceError {
	return shared.NewServiceError(
		shared.ErrorCategoryConfiguration,
		shared.CodeConfigInvalid,
		message,
		"LoadConfig",
		false,
		nil,
	)
}

// getEnv returns the environment value for key, treating an empty string the
// same as unset so CI systems that export blank values fall back correctly.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
