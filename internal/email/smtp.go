package email

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

const smtpTimeout = 30 * time.Second

// SMTPConfig holds the relay settings. Username and Password are optional
// for relays that accept unauthenticated mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender delivers mail through go-mail, one connection per message.
type SMTPSender struct {
	config SMTPConfig
	opts   []mail.Option
	logger *slog.Logger
}

func NewSMTPSender(config SMTPConfig, logger *slog.Logger) *SMTPSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPSender{config: config, opts: smtpOptions(config), logger: logger}
}

// smtpOptions picks TLS by port: 465 is implicit TLS, 587 requires
// STARTTLS, and local catchers such as Mailpit on 1025 get opportunistic TLS.
func smtpOptions(c SMTPConfig) []mail.Option {
	opts := []mail.Option{mail.WithPort(c.Port), mail.WithTimeout(smtpTimeout)}
	switch c.Port {
	case 465:
		opts = append(opts, mail.WithSSL())
	case 587:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if c.Username != "" && c.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
			mail.WithUsername(c.Username),
			mail.WithPassword(c.Password),
		)
	}
	return opts
}

func (s *SMTPSender) Send(ctx context.Context, email *Email) (string, error) {
	msg, err := s.message(email)
	if err != nil {
		return "", err
	}

	client, err := mail.NewClient(s.config.Host, s.opts...)
	if err != nil {
		return "", fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	s.logger.Debug("email sent over smtp", "to", email.To, "subject", email.Subject)
	// Relays rarely return a usable id.
	return "smtp-" + strconv.FormatInt(time.Now().UnixNano(), 36), nil
}

func (s *SMTPSender) message(email *Email) (*mail.Msg, error) {
	msg := mail.NewMsg()

	var err error
	switch {
	case email.From != "":
		err = msg.From(email.From)
	case s.config.FromName != "":
		err = msg.FromFormat(s.config.FromName, s.config.From)
	default:
		err = msg.From(s.config.From)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFromAddress, err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToAddress, err)
	}
	msg.Subject(email.Subject)

	switch {
	case email.TextBody != "" && email.HTMLBody != "":
		msg.SetBodyString(mail.TypeTextPlain, email.TextBody)
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTMLBody)
	case email.HTMLBody != "":
		msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)
	default:
		msg.SetBodyString(mail.TypeTextPlain, email.TextBody)
	}

	for k, v := range email.Headers {
		msg.SetGenHeader(mail.Header(k), v)
	}
	return msg, nil
}
