// Package identity contains the identity providers the auth flow can be
// wired to: a GoTrue (Supabase Auth) REST client, SurrealDB record access
// and a Redis-backed local provider for development.
package identity

import (
	"context"
	"net/http"

	"github.com/nfrund/atelier/internal/domain"
)

// Messages reported to users. They mirror GoTrue's wording so the forms read
// the same whichever provider is configured.
const (
	MsgInvalidCredentials = "Invalid login credentials"
	MsgAlreadyRegistered  = "User already registered"
	MsgEmailNotConfirmed  = "Email not confirmed"
	MsgInvalidLink        = "Email link is invalid or has expired"
	MsgUnavailable        = "Authentication service is unavailable. Please try again."
)

// Confirmer is implemented by providers that confirm email addresses through
// a link served by this application.
type Confirmer interface {
	Confirm(ctx context.Context, token string) error
}

func invalidCredentials() *domain.ProviderError {
	return domain.NewProviderError(MsgInvalidCredentials, http.StatusBadRequest, domain.ErrInvalidCredentials)
}

func alreadyRegistered() *domain.ProviderError {
	return domain.NewProviderError(MsgAlreadyRegistered, http.StatusUnprocessableEntity, domain.ErrUserAlreadyExists)
}

func unavailable(cause error) *domain.ProviderError {
	return domain.NewProviderError(MsgUnavailable, http.StatusServiceUnavailable, cause)
}
