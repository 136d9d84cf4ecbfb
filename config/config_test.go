package config

import (
	"testing"
	"time"

	"github.com/fenilmodi00/ipo-monitor/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the minimum viable environment for LoadConfig. UTC is
// used as the zone so the tests do not depend on a system tzdata install.
func setRequiredEnv(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "test-api-key")
	t.Setenv("EMAIL_SENDER", "sender@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("REFERENCE_TIMEZONE", "UTC")
}

func clearOptionalEnv(t *testing.T) {
	for _, key := range []string{
		"EMAIL_RECIPIENT", "SMTP_SERVER", "SMTP_PORT",
		"OFFER_AMOUNT_THRESHOLD", "LOG_LEVEL",
		"HTTP_TIMEOUT_SECONDS", "HTTP_MAX_RETRIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sender@example.com", cfg.EmailRecipient, "recipient defaults to the sender")
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPServer)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, float64(DefaultOfferAmountThreshold), cfg.OfferAmountThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.HTTPMaxRetries)
	require.NotNil(t, cfg.Location)
}

func TestLoadConfigExplicitValues(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("EMAIL_RECIPIENT", "alerts@example.com")
	t.Setenv("OFFER_AMOUNT_THRESHOLD", "50000000")
	t.Setenv("SMTP_PORT", "465")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "alerts@example.com", cfg.EmailRecipient)
	assert.Equal(t, 50_000_000.0, cfg.OfferAmountThreshold)
	assert.Equal(t, 465, cfg.SMTPPort)
}

func TestLoadConfigMissingRequiredVariables(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("FINNHUB_API_KEY", "")
	t.Setenv("EMAIL_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)

	assert.Equal(t, shared.ErrorCategoryConfiguration, shared.CategoryOf(err))
	assert.Contains(t, err.Error(), "FINNHUB_API_KEY")
	assert.Contains(t, err.Error(), "EMAIL_PASSWORD")
	assert.NotContains(t, err.Error(), "EMAIL_SENDER")
}

func TestLoadConfigMalformedValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "threshold not numeric", key: "OFFER_AMOUNT_THRESHOLD", value: "two hundred million"},
		{name: "threshold negative", key: "OFFER_AMOUNT_THRESHOLD", value: "-1"},
		{name: "port not numeric", key: "SMTP_PORT", value: "gmail"},
		{name: "timeout not numeric", key: "HTTP_TIMEOUT_SECONDS", value: "soon"},
		{name: "unknown timezone", key: "REFERENCE_TIMEZONE", value: "Atlantis/Sunken_City"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			clearOptionalEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Equal(t, shared.ErrorCategoryConfiguration, shared.CategoryOf(err))
		})
	}
}
