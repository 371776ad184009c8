package email

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidFromAddress = errors.New("email: invalid from address")
	ErrInvalidToAddress   = errors.New("email: invalid to address")
)

func ErrTemplateNotFound(name string) error {
	return fmt.Errorf("email: template %s not found", name)
}

// Email is one outgoing message. From falls back to the sender's default.
// Headers may carry tagHeader, which senders map to their own tagging.
type Email struct {
	To       []string
	From     string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}

// Sender delivers an Email and returns the provider's message id, if any.
type Sender interface {
	Send(ctx context.Context, email *Email) (string, error)
}
