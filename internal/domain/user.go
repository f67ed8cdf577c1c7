package domain

import (
	"context"
	"time"
)

// User is the account identity returned by the identity provider.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the outcome of a successful sign-in or sign-up. AccessToken is
// empty when the provider created the account but still waits for the user
// to confirm their email address.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// Authenticated reports whether the session carries a usable access token.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// IdentityProvider is the external service that verifies and creates user
// accounts and issues sessions. Failures are returned as *ProviderError.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, creds Credentials) (*Session, error)
	SignUp(ctx context.Context, creds Credentials) (*Session, error)
	User(ctx context.Context, token string) (*User, error)
}
