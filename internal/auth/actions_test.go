package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/nfrund/atelier/internal/auth"
	"github.com/nfrund/atelier/internal/cache"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProvider captures the credentials it receives.
type recordingProvider struct {
	signIn []domain.Credentials
	signUp []domain.Credentials
	err    error
}

func (p *recordingProvider) SignInWithPassword(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	p.signIn = append(p.signIn, creds)
	if p.err != nil {
		return nil, p.err
	}
	return &domain.Session{AccessToken: "token", User: domain.User{ID: "u1", Email: creds.Email}}, nil
}

func (p *recordingProvider) SignUp(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	p.signUp = append(p.signUp, creds)
	if p.err != nil {
		return nil, p.err
	}
	return &domain.Session{User: domain.User{ID: "u1", Email: creds.Email}}, nil
}

func (p *recordingProvider) User(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func TestSignup_StripsConfirmPassword(t *testing.T) {
	p := &recordingProvider{}
	a := auth.NewActions(p)

	session, err := a.Signup(context.Background(), domain.SignUpCredentials{
		Email: "a@b.com", Password: "abcdefgh", ConfirmPassword: "abcdefgh",
	})
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
	require.Len(t, p.signUp, 1)
	assert.Equal(t, domain.Credentials{Email: "a@b.com", Password: "abcdefgh"}, p.signUp[0])
}

func TestSignup_ReturnsProviderErrorUnchanged(t *testing.T) {
	providerErr := domain.NewProviderError("User already registered", http.StatusUnprocessableEntity, nil)
	p := &recordingProvider{err: providerErr}
	a := auth.NewActions(p)

	session, err := a.Signup(context.Background(), domain.SignUpCredentials{
		Email: "a@b.com", Password: "abcdefgh", ConfirmPassword: "abcdefgh",
	})
	assert.Nil(t, session)
	assert.Same(t, providerErr, err)
	assert.Len(t, p.signUp, 1, "no retry")
}

func TestLogin(t *testing.T) {
	t.Run("forwards credentials", func(t *testing.T) {
		p := &recordingProvider{}
		session, err := auth.NewActions(p).Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "abcdefgh"})
		require.NoError(t, err)
		assert.True(t, session.Authenticated())
		assert.Equal(t, []domain.Credentials{{Email: "a@b.com", Password: "abcdefgh"}}, p.signIn)
	})

	t.Run("returns provider error unchanged", func(t *testing.T) {
		providerErr := domain.NewProviderError("Invalid login credentials", http.StatusBadRequest, nil)
		p := &recordingProvider{err: providerErr}
		_, err := auth.NewActions(p).Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "abcdefgh"})
		assert.Same(t, providerErr, err)
		assert.Len(t, p.signIn, 1)
	})
}

func TestComplete_InvalidatesBeforeRedirect(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()
	before, _ := store.Version(ctx, "/dashboard")

	var redirectedTo string
	err := auth.Complete(ctx, store, func(path string) error {
		after, _ := store.Version(ctx, "/dashboard")
		assert.NotEqual(t, before, after, "cache must be stale before the redirect runs")
		redirectedTo = path
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "/", redirectedTo)
}
