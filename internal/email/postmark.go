package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const postmarkAPI = "https://api.postmarkapp.com"

// PostmarkSender posts messages to Postmark's /email endpoint.
type PostmarkSender struct {
	token   string
	from    string
	baseURL string
	client  *http.Client
}

func NewPostmarkSender(token, from string) *PostmarkSender {
	return &PostmarkSender{
		token:   token,
		from:    from,
		baseURL: postmarkAPI,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type postmarkHeader struct {
	Name  string
	Value string
}

// postmarkEmail uses Postmark's PascalCase field names, so no tags are needed
// except to drop empty fields.
type postmarkEmail struct {
	From     string
	To       string
	Subject  string
	HtmlBody string           `json:",omitempty"`
	TextBody string           `json:",omitempty"`
	Tag      string           `json:",omitempty"`
	Headers  []postmarkHeader `json:",omitempty"`
}

type postmarkResult struct {
	MessageID string
	ErrorCode int
	Message   string
}

// Send maps tagHeader to Postmark's Tag field and passes other headers through.
func (p *PostmarkSender) Send(ctx context.Context, email *Email) (string, error) {
	body := postmarkEmail{
		From:     email.From,
		To:       strings.Join(email.To, ","),
		Subject:  email.Subject,
		HtmlBody: email.HTMLBody,
		TextBody: email.TextBody,
	}
	if body.From == "" {
		body.From = p.from
	}
	for k, v := range email.Headers {
		if k == tagHeader {
			body.Tag = v
			continue
		}
		body.Headers = append(body.Headers, postmarkHeader{Name: k, Value: v})
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("postmark: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/email", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("postmark: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("postmark: %w", err)
	}
	defer resp.Body.Close()

	// Error responses carry the same shape, so decode failures only matter on 200.
	var result postmarkResult
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode != http.StatusOK || result.ErrorCode != 0 {
		return "", fmt.Errorf("postmark error %d (status %d): %s", result.ErrorCode, resp.StatusCode, result.Message)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("postmark: decode response: %w", decodeErr)
	}
	return result.MessageID, nil
}
