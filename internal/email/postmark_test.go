package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostmarkSender_Send(t *testing.T) {
	var got postmarkEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email", r.URL.Path)
		assert.Equal(t, "token-1", r.Header.Get("X-Postmark-Server-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"To":"a@example.com","MessageID":"pm-42","ErrorCode":0}`))
	}))
	defer srv.Close()

	p := NewPostmarkSender("token-1", "shop@example.com")
	p.baseURL = srv.URL

	id, err := p.Send(context.Background(), &Email{
		To:       []string{"a@example.com"},
		Subject:  "Hello",
		TextBody: "hi",
		Headers:  map[string]string{tagHeader: "order_confirmation"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pm-42", id)
	assert.Equal(t, "shop@example.com", got.From)
	assert.Equal(t, "order_confirmation", got.Tag)
	assert.Empty(t, got.Headers)
}

func TestPostmarkSender_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"ErrorCode":300,"Message":"Invalid email request"}`))
	}))
	defer srv.Close()

	p := NewPostmarkSender("token-1", "shop@example.com")
	p.baseURL = srv.URL

	_, err := p.Send(context.Background(), &Email{To: []string{"a@example.com"}})
	assert.ErrorContains(t, err, "postmark error 300")
}
