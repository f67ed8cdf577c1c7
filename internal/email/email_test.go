package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nfrund/atelier/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailService(t *testing.T) {
	s, err := NewEmailService(config.EmailCfg{Provider: "log"})
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)
	assert.NoError(t, s.Send(context.Background(), "a@b.com", "Hi", "<p>hi</p>"))

	s, err = NewEmailService(config.EmailCfg{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = NewEmailService(config.EmailCfg{Provider: "resend"})
	assert.ErrorContains(t, err, "EMAIL_API_KEY")

	_, err = NewEmailService(config.EmailCfg{Provider: "pigeon"})
	assert.ErrorContains(t, err, "unknown email provider")
}

func TestResendSender_Send(t *testing.T) {
	var got resendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewResendSender("key", "Atelier <no-reply@atelier.test>")
	s.endpoint = srv.URL

	require.NoError(t, s.Send(context.Background(), "a@b.com", "Confirm", "<a>link</a>"))
	assert.Equal(t, resendPayload{From: "Atelier <no-reply@atelier.test>", To: "a@b.com", Subject: "Confirm", HTML: "<a>link</a>"}, got)
}

func TestResendSender_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	s := NewResendSender("key", "")
	s.endpoint = srv.URL

	err := s.Send(context.Background(), "a@b.com", "Confirm", "x")
	assert.ErrorContains(t, err, "status 422: invalid from")
}
