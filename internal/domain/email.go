package domain

import "context"

// EmailSender defines the interface for sending emails, such as the account
// confirmation link of the local identity provider.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
