package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
)

// tagHeader carries the email type; Postmark maps it to a message tag.
const tagHeader = "X-PM-Tag"

// Notifier composes customer notifications and hands them to a Sender
type Notifier struct {
	sender    Sender
	templates map[string]*template.Template
}

// NewNotifier parses the embedded templates
func NewNotifier(sender Sender) (*Notifier, error) {
	n := &Notifier{
		sender:    sender,
		templates: make(map[string]*template.Template),
	}
	for _, name := range []string{"order_confirmation.html", "payment_failed.html"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
		}
		n.templates[name] = tmpl
	}
	return n, nil
}

// SendOrderConfirmation sends an order confirmation email
func (n *Notifier) SendOrderConfirmation(ctx context.Context, data OrderConfirmationEmail) error {
	return n.send(ctx, data, "order_confirmation")
}

// SendPaymentFailed sends a payment failure email
func (n *Notifier) SendPaymentFailed(ctx context.Context, data PaymentFailedEmail) error {
	return n.send(ctx, data, "payment_failed")
}

func (n *Notifier) send(ctx context.Context, data EmailTemplate, tag string) error {
	if data.Recipient() == "" {
		return ErrInvalidToAddress
	}

	htmlBody, textBody, err := n.renderTemplate(data.TemplateName(), data)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", data.TemplateName(), err)
	}

	_, err = n.sender.Send(ctx, &Email{
		To:       []string{data.Recipient()},
		Subject:  data.Subject(),
		HTMLBody: htmlBody,
		TextBody: textBody,
		Headers:  map[string]string{tagHeader: tag},
	})
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", tag, err)
	}
	return nil
}

// renderTemplate returns the HTML body and its plain text rendition
func (n *Notifier) renderTemplate(templateName string, data EmailTemplate) (string, string, error) {
	tmpl, ok := n.templates[templateName]
	if !ok {
		return "", "", ErrTemplateNotFound(templateName)
	}

	var htmlBuf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBuf, "email_layout", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	htmlBody := htmlBuf.String()
	return htmlBody, generatePlainText(htmlBody), nil
}

// generatePlainText creates a simple plain text version from HTML
func generatePlainText(html string) string {
	text := html

	text = strings.ReplaceAll(text, "<br>", "\n")
	text = strings.ReplaceAll(text, "<br/>", "\n")
	text = strings.ReplaceAll(text, "<br />", "\n")
	text = strings.ReplaceAll(text, "</p>", "\n\n")
	text = strings.ReplaceAll(text, "</div>", "\n")
	text = strings.ReplaceAll(text, "</tr>", "\n")
	text = strings.ReplaceAll(text, "</td>", " ")
	text = strings.ReplaceAll(text, "</h1>", "\n\n")
	text = strings.ReplaceAll(text, "</h2>", "\n\n")
	text = strings.ReplaceAll(text, "</h3>", "\n\n")

	for {
		start := strings.Index(text, "<")
		if start < 0 {
			break
		}
		end := strings.Index(text[start:], ">")
		if end < 0 {
			break
		}
		text = text[:start] + text[start+end+1:]
	}

	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", "\"")
	text = strings.ReplaceAll(text, "&#34;", "\"")
	text = strings.ReplaceAll(text, "&#39;", "'")

	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
