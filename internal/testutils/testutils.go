// Package testutils holds fixtures shared by tests across packages.
package testutils

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nfrund/atelier/internal/config"
	"github.com/redis/go-redis/v9"
)

// Redis starts an in-process Redis server and returns it with a client
// connected to it. Both are closed when the test ends.
func Redis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// ConfigForTests returns a valid configuration for the local provider that
// does not read .env or the environment. Tests adjust the fields they care
// about.
func ConfigForTests(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		App: config.AppCfg{
			Addr:          ":0",
			BaseURL:       "http://localhost:8080",
			SessionSecret: "a-very-secret-key-for-testing-!",
			RateLimit:     100,
		},
		Log:              config.LogCfg{Format: "text", Level: "error"},
		IdentityProvider: config.ProviderLocal,
		Redis:            config.RedisCfg{Addr: "localhost:6379"},
		Cache:            config.CacheCfg{Backend: config.CacheMemory, TTL: time.Minute},
		Local:            config.LocalCfg{JWTSecret: "jwt-secret-for-tests", TokenTTL: time.Hour},
		Email:            config.EmailCfg{Provider: "none"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test configuration is invalid: %v", err)
	}
	return cfg
}
