package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/nfrund/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsProviderError(t *testing.T) {
	t.Run("returns the same provider error", func(t *testing.T) {
		pe := domain.NewProviderError("User already registered", http.StatusUnprocessableEntity, domain.ErrUserAlreadyExists)
		wrapped := fmt.Errorf("signup: %w", pe)

		got := domain.AsProviderError(wrapped)
		assert.Same(t, pe, got)
		assert.True(t, errors.Is(got, domain.ErrUserAlreadyExists))
	})

	t.Run("converts foreign errors into a generic message", func(t *testing.T) {
		got := domain.AsProviderError(errors.New("dial tcp: connection refused"))
		require.NotNil(t, got)
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.NotContains(t, got.Message, "dial tcp")
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, domain.AsProviderError(nil))
	})
}

func TestSignUpCredentials_Credentials(t *testing.T) {
	su := domain.SignUpCredentials{Email: "a@b.com", Password: "abcdefgh", ConfirmPassword: "abcdefgh"}
	assert.Equal(t, domain.Credentials{Email: "a@b.com", Password: "abcdefgh"}, su.Credentials())
}
