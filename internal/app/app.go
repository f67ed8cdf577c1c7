// Package app wires the application's services together with samber/do.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/atelier/internal/cache"
	"github.com/nfrund/atelier/internal/config"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/email"
	"github.com/nfrund/atelier/internal/identity"
	"github.com/nfrund/atelier/internal/logging"
	"github.com/nfrund/atelier/internal/server"
	"github.com/nfrund/atelier/internal/validation"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
)

// App owns the dependency container. Services are built lazily the first
// time something asks for them, so Redis is only dialled when a selected
// backend needs it.
type App struct {
	injector *do.RootScope
}

// New registers every service provider for cfg.
func New(cfg *config.Config) *App {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.Provide(i, newLogger)
	do.Provide(i, newRedis)
	do.Provide(i, newPageCache)
	do.Provide(i, newMailer)
	do.Provide(i, newIdentityProvider)
	do.Provide(i, func(do.Injector) (*validation.Validator, error) { return validation.New(), nil })
	do.Provide(i, newServer)
	return &App{injector: i}
}

// Server builds the HTTP server with its routes registered.
func (a *App) Server() (*server.Server, error) {
	if _, err := do.Invoke[*slog.Logger](a.injector); err != nil {
		return nil, err
	}
	return do.Invoke[*server.Server](a.injector)
}

// Close shuts down every service that was built, including the Redis client.
func (a *App) Close() {
	a.injector.Shutdown()
}

func newLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return logging.New(cfg.Log), nil
}

const redisDialTimeout = 5 * time.Second

// redisClient closes the underlying client when the container shuts down.
type redisClient struct {
	*redis.Client
}

func (r redisClient) Shutdown() error {
	return r.Close()
}

func newRedis(i do.Injector) (redisClient, error) {
	cfg := do.MustInvoke[*config.Config](i)
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return redisClient{}, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	slog.Info("Connected to redis", "addr", cfg.Redis.Addr)
	return redisClient{Client: client}, nil
}

func newPageCache(i do.Injector) (cache.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.Cache.Backend != config.CacheRedis {
		return cache.NewMemory(), nil
	}
	rdb, err := do.Invoke[redisClient](i)
	if err != nil {
		return nil, err
	}
	return cache.NewRedis(rdb.Client, ""), nil
}

func newMailer(i do.Injector) (domain.EmailSender, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return email.NewEmailService(cfg.Email)
}

func newIdentityProvider(i do.Injector) (domain.IdentityProvider, error) {
	cfg := do.MustInvoke[*config.Config](i)

	var rdb redis.Cmdable
	if cfg.IdentityProvider == config.ProviderLocal {
		client, err := do.Invoke[redisClient](i)
		if err != nil {
			return nil, err
		}
		rdb = client.Client
	}
	mailer, err := do.Invoke[domain.EmailSender](i)
	if err != nil {
		return nil, err
	}
	return identity.New(cfg, rdb, mailer)
}

func newServer(i do.Injector) (*server.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	provider, err := do.Invoke[domain.IdentityProvider](i)
	if err != nil {
		return nil, err
	}
	pages, err := do.Invoke[cache.Cache](i)
	if err != nil {
		return nil, err
	}
	s := server.New(cfg, provider, do.MustInvoke[*validation.Validator](i), pages)
	s.RegisterRoutes()
	return s, nil
}
