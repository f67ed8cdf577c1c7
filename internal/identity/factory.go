package identity

import (
	"errors"
	"fmt"

	"github.com/nfrund/atelier/internal/config"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/redis/go-redis/v9"
)

// New returns the provider selected by cfg.IdentityProvider. rdb is only
// used by the local provider; mailer, when non-nil, turns on email
// confirmation for it.
func New(cfg *config.Config, rdb redis.Cmdable, mailer domain.EmailSender) (domain.IdentityProvider, error) {
	switch cfg.IdentityProvider {
	case config.ProviderGoTrue:
		return NewGoTrue(cfg.GoTrue.URL, cfg.GoTrue.AnonKey, cfg.GoTrue.Timeout), nil
	case config.ProviderSurreal:
		return NewSurreal(cfg.Surreal), nil
	case config.ProviderLocal:
		if rdb == nil {
			return nil, errors.New("identity provider 'local' requires a redis client")
		}
		var opts []LocalOption
		if mailer != nil {
			opts = append(opts, WithConfirmation(mailer, cfg.App.BaseURL))
		}
		return NewLocal(rdb, cfg.Local.JWTSecret, cfg.Local.TokenTTL, opts...), nil
	default:
		return nil, fmt.Errorf("unknown identity provider: %s", cfg.IdentityProvider)
	}
}
