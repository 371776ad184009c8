package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:    "dev",
		Server: ServerConfig{MaxBodyBytes: 1024},
		Payment: PaymentConfig{
			Provider:       "mock",
			Currency:       "INR",
			GatewayTimeout: time.Second,
		},
		Events: EventsConfig{Broker: "log", OutboxBatchSize: 10},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"razorpay needs keys", func(c *Config) { c.Payment.Provider = "razorpay" }, "RAZORPAY_KEY_ID"},
		{"razorpay with keys", func(c *Config) {
			c.Payment.Provider = "razorpay"
			c.Razorpay = RazorpayConfig{KeyID: "rzp_test_1", KeySecret: "secret"}
		}, ""},
		{"stripe needs key", func(c *Config) { c.Payment.Provider = "stripe" }, "STRIPE_SECRET_KEY"},
		{"stripe webhook secret in prod", func(c *Config) {
			c.Env = "prod"
			c.Payment.Provider = "stripe"
			c.Stripe.SecretKey = "sk_live_x"
		}, "STRIPE_WEBHOOK_SECRET"},
		{"mock refused in prod", func(c *Config) { c.Env = "prod" }, "not allowed in production"},
		{"unknown provider", func(c *Config) { c.Payment.Provider = "paypal" }, "PAYMENT_PROVIDER"},
		{"bad currency", func(c *Config) { c.Payment.Currency = "RUPEES" }, "PAYMENT_CURRENCY"},
		{"unknown broker", func(c *Config) { c.Events.Broker = "sqs" }, "EVENTS_BROKER"},
		{"kafka needs topic", func(c *Config) {
			c.Events.Broker = "kafka"
			c.Events.KafkaBrokers = []string{"localhost:9092"}
		}, "KAFKA_TOPIC"},
		{"sentry needs dsn", func(c *Config) { c.Sentry.Enabled = true }, "SENTRY_DSN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("VERDANT_TEST_DURATION", "250ms")
	t.Setenv("VERDANT_TEST_BAD_DURATION", "soon")
	t.Setenv("VERDANT_TEST_LIST", " a:1, b:2 ,,")
	t.Setenv("VERDANT_TEST_INT", "42")

	assert.Equal(t, 250*time.Millisecond, getEnvDuration("VERDANT_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("VERDANT_TEST_BAD_DURATION", time.Second))
	assert.Equal(t, []string{"a:1", "b:2"}, getEnvList("VERDANT_TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, getEnvList("VERDANT_TEST_UNSET", []string{"x"}))
	assert.Equal(t, 42, getEnvInt("VERDANT_TEST_INT", 7))
	assert.Equal(t, 7, getEnvInt("VERDANT_TEST_UNSET", 7))
}

func TestEmailConfig_Enabled(t *testing.T) {
	assert.False(t, EmailConfig{}.Enabled())
	assert.True(t, EmailConfig{Host: "smtp.example.com"}.Enabled())
	assert.True(t, EmailConfig{PostmarkToken: "pm"}.Enabled())
}
