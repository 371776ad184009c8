package billing

import (
	"errors"
	"strings"
)

// StripeConfig configures StripeProvider. WebhookSecret is only needed when
// the Stripe webhook endpoint is mounted.
type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	// MaxRetries bounds SDK network retries; zero means 2.
	MaxRetries int64
}

func (c *StripeConfig) Validate() error {
	switch {
	case c.APIKey == "":
		return errors.New("stripe: API key is required")
	case !strings.HasPrefix(c.APIKey, "sk_") && !strings.HasPrefix(c.APIKey, "rk_"):
		return errors.New("stripe: API key must be a secret (sk_) or restricted (rk_) key")
	}
	return nil
}

func (c *StripeConfig) IsTestMode() bool {
	return strings.Contains(c.APIKey, "_test_")
}

// RazorpayConfig configures RazorpayProvider with a key pair.
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

func (c *RazorpayConfig) Validate() error {
	if c.KeyID == "" || c.KeySecret == "" {
		return errors.New("razorpay: key id and key secret are required")
	}
	return nil
}

func (c *RazorpayConfig) IsTestMode() bool {
	return strings.HasPrefix(c.KeyID, "rzp_test_")
}
