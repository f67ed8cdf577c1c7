// Package auth holds the login and sign-up actions. An action only talks to
// the identity provider; the success effect (cache invalidation and redirect)
// belongs to the caller so the actions stay testable without HTTP.
package auth

import (
	"context"

	"github.com/nfrund/atelier/internal/cache"
	"github.com/nfrund/atelier/internal/domain"
)

// RootPath is where users land after a successful login or sign-up.
const RootPath = "/"

// Actions forwards validated credentials to the identity provider.
type Actions struct {
	provider domain.IdentityProvider
}

// NewActions creates Actions for the given provider.
func NewActions(provider domain.IdentityProvider) *Actions {
	return &Actions{provider: provider}
}

// Login signs the user in with email and password. A provider failure is
// returned untouched.
func (a *Actions) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	return a.provider.SignInWithPassword(ctx, domain.Credentials{Email: creds.Email, Password: creds.Password})
}

// Signup creates the account. The password confirmation is dropped before
// the provider is called.
func (a *Actions) Signup(ctx context.Context, creds domain.SignUpCredentials) (*domain.Session, error) {
	return a.provider.SignUp(ctx, creds.Credentials())
}

// Complete runs the success effect: the whole layout under RootPath is
// marked stale, then redirect is called with RootPath. redirect is expected
// to end the request.
func Complete(ctx context.Context, inv cache.Invalidator, redirect func(path string) error) error {
	if err := Invalidate(ctx, inv); err != nil {
		return err
	}
	return redirect(RootPath)
}

// Invalidate flushes the application-wide layout scope.
func Invalidate(ctx context.Context, inv cache.Invalidator) error {
	return inv.Invalidate(ctx, RootPath, cache.ScopeLayout)
}
