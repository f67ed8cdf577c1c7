package email

import (
	"fmt"

	"github.com/nfrund/atelier/internal/config"
	"github.com/nfrund/atelier/internal/domain"
)

// NewEmailService creates and returns an email sender based on the configuration.
// Provider "none" returns a nil sender, which turns email confirmation off.
func NewEmailService(cfg config.EmailCfg) (domain.EmailSender, error) {
	switch cfg.Provider {
	case "none":
		return nil, nil
	case "log":
		return &LogSender{senderAddress: cfg.Sender}, nil
	case "resend":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("email provider is 'resend' but EMAIL_API_KEY is not set")
		}
		return NewResendSender(cfg.APIKey, cfg.Sender), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}
