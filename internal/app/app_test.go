package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nfrund/atelier/internal/cache"
	"github.com/nfrund/atelier/internal/config"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/identity"
	"github.com/nfrund/atelier/internal/testutils"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig(t *testing.T) *config.Config {
	cfg := testutils.ConfigForTests(t)
	cfg.Email.Provider = "log"
	return cfg
}

func TestApp_LocalProviderWithRedis(t *testing.T) {
	mr, _ := testutils.Redis(t)
	cfg := baseConfig(t)
	cfg.Cache.Backend = config.CacheRedis
	cfg.Redis.Addr = mr.Addr()

	a := New(cfg)
	defer a.Close()

	s, err := a.Server()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	pages := do.MustInvoke[cache.Cache](a.injector)
	assert.IsType(t, &cache.Redis{}, pages)

	provider := do.MustInvoke[domain.IdentityProvider](a.injector)
	assert.IsType(t, &identity.Local{}, provider)
}

func TestApp_GoTrueSkipsRedis(t *testing.T) {
	cfg := baseConfig(t)
	cfg.IdentityProvider = config.ProviderGoTrue
	cfg.GoTrue = config.GoTrueCfg{URL: "http://gotrue.invalid", AnonKey: "anon", Timeout: time.Second}
	cfg.Redis.Addr = "127.0.0.1:1"

	a := New(cfg)
	defer a.Close()

	s, err := a.Server()
	require.NoError(t, err)
	require.NotNil(t, s)

	pages := do.MustInvoke[cache.Cache](a.injector)
	assert.IsType(t, &cache.Memory{}, pages)
}

func TestApp_RedisUnavailable(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Redis.Addr = "127.0.0.1:1"

	a := New(cfg)
	defer a.Close()

	_, err := a.Server()
	assert.ErrorContains(t, err, "failed to connect to redis")
}

func TestApp_ConfirmationFollowsEmailProvider(t *testing.T) {
	for _, tc := range []struct {
		emailProvider string
		authenticated bool
	}{
		{emailProvider: "none", authenticated: true},
		{emailProvider: "log", authenticated: false},
	} {
		t.Run(tc.emailProvider, func(t *testing.T) {
			mr, _ := testutils.Redis(t)
			cfg := baseConfig(t)
			cfg.Redis.Addr = mr.Addr()
			cfg.Email.Provider = tc.emailProvider

			a := New(cfg)
			defer a.Close()

			provider := do.MustInvoke[domain.IdentityProvider](a.injector)
			session, err := provider.SignUp(context.Background(), domain.Credentials{
				Email:    "ada@example.com",
				Password: "password123",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.authenticated, session.Authenticated())
		})
	}
}
