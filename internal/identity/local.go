package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLocalPrefix = "atelier:identity:"
	confirmTokenTTL    = 24 * time.Hour
	// ConfirmPath is the route serving confirmation links.
	ConfirmPath = "/auth/confirm"
)

// Local is a development identity provider. Users live in Redis hashes,
// passwords are hashed with argon2id and sessions are HS256 JWTs. When a
// mailer is configured new accounts must confirm their email first.
type Local struct {
	rdb        redis.Cmdable
	prefix     string
	tokens     *tokenSigner
	mailer     domain.EmailSender
	confirmURL string
}

// LocalOption configures a Local provider.
type LocalOption func(*Local)

// WithConfirmation requires new accounts to follow a link sent by mailer.
// baseURL is the public address of this application.
func WithConfirmation(mailer domain.EmailSender, baseURL string) LocalOption {
	return func(l *Local) {
		l.mailer = mailer
		l.confirmURL = strings.TrimRight(baseURL, "/") + ConfirmPath
	}
}

// WithKeyPrefix namespaces the Redis keys.
func WithKeyPrefix(prefix string) LocalOption {
	return func(l *Local) { l.prefix = prefix }
}

// WithClock replaces time.Now for token timestamps.
func WithClock(now func() time.Time) LocalOption {
	return func(l *Local) { l.tokens.now = now }
}

// NewLocal creates a Local provider signing tokens with secret.
func NewLocal(rdb redis.Cmdable, secret string, ttl time.Duration, opts ...LocalOption) *Local {
	l := &Local{
		rdb:    rdb,
		prefix: defaultLocalPrefix,
		tokens: &tokenSigner{secret: []byte(secret), ttl: ttl, now: time.Now},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) userKey(email string) string    { return l.prefix + "user:" + email }
func (l *Local) confirmKey(token string) string { return l.prefix + "confirm:" + token }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp stores the account. With confirmation enabled the session carries
// no access token until Confirm is called.
func (l *Local) SignUp(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	email := normalizeEmail(creds.Email)
	hash, err := hashPassword(creds.Password)
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to hash password: %w", err))
	}

	user := domain.User{ID: uuid.NewString(), Email: email}
	key := l.userKey(email)

	created, err := l.rdb.HSetNX(ctx, key, "id", user.ID).Result()
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to create user: %w", err))
	}
	if !created {
		return nil, alreadyRegistered()
	}

	confirmed := "1"
	if l.mailer != nil {
		confirmed = "0"
	}
	if err := l.rdb.HSet(ctx, key, "email", email, "password", hash, "confirmed", confirmed).Err(); err != nil {
		l.rdb.Del(ctx, key)
		return nil, unavailable(fmt.Errorf("failed to store user: %w", err))
	}

	if l.mailer == nil {
		return l.session(user)
	}

	if err := l.sendConfirmation(ctx, email); err != nil {
		l.rdb.Del(ctx, key)
		return nil, unavailable(err)
	}
	slog.InfoContext(ctx, "Confirmation email sent", "email", email)
	return &domain.Session{User: user}, nil
}

func (l *Local) sendConfirmation(ctx context.Context, email string) error {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate confirmation token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := l.rdb.Set(ctx, l.confirmKey(token), email, confirmTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to store confirmation token: %w", err)
	}

	link := l.confirmURL + "?token=" + url.QueryEscape(token)
	body := fmt.Sprintf(`<p>Follow this link to confirm your email address:</p><p><a href="%s">Confirm your email</a></p>`, html.EscapeString(link))
	if err := l.mailer.Send(ctx, email, "Confirm your email", body); err != nil {
		l.rdb.Del(ctx, l.confirmKey(token))
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// Confirm marks the account behind a confirmation token as confirmed. Tokens
// work once.
func (l *Local) Confirm(ctx context.Context, token string) error {
	if token == "" {
		return domain.NewProviderError(MsgInvalidLink, http.StatusForbidden, domain.ErrInvalidLink)
	}
	email, err := l.rdb.GetDel(ctx, l.confirmKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.NewProviderError(MsgInvalidLink, http.StatusForbidden, domain.ErrInvalidLink)
	}
	if err != nil {
		return unavailable(fmt.Errorf("failed to read confirmation token: %w", err))
	}

	key := l.userKey(email)
	n, err := l.rdb.Exists(ctx, key).Result()
	if err != nil {
		return unavailable(fmt.Errorf("failed to load user: %w", err))
	}
	if n == 0 {
		return domain.NewProviderError(MsgInvalidLink, http.StatusForbidden, domain.ErrInvalidLink)
	}
	if err := l.rdb.HSet(ctx, key, "confirmed", "1").Err(); err != nil {
		return unavailable(fmt.Errorf("failed to confirm user: %w", err))
	}
	return nil
}

// SignInWithPassword verifies the password against the stored hash.
func (l *Local) SignInWithPassword(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	email := normalizeEmail(creds.Email)
	fields, err := l.rdb.HGetAll(ctx, l.userKey(email)).Result()
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to load user: %w", err))
	}
	if fields["password"] == "" {
		return nil, invalidCredentials()
	}

	ok, err := verifyPassword(creds.Password, fields["password"])
	if err != nil {
		return nil, unavailable(fmt.Errorf("stored hash for %s: %w", email, err))
	}
	if !ok {
		return nil, invalidCredentials()
	}
	if fields["confirmed"] != "1" {
		return nil, domain.NewProviderError(MsgEmailNotConfirmed, http.StatusBadRequest, domain.ErrEmailNotConfirmed)
	}
	return l.session(domain.User{ID: fields["id"], Email: email})
}

// User verifies an access token issued by this provider.
func (l *Local) User(_ context.Context, token string) (*domain.User, error) {
	user, err := l.tokens.verify(token)
	if err != nil {
		return nil, domain.NewProviderError("Invalid or expired session", http.StatusUnauthorized,
			fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err))
	}
	return user, nil
}

func (l *Local) session(user domain.User) (*domain.Session, error) {
	token, exp, err := l.tokens.issue(user)
	if err != nil {
		return nil, unavailable(err)
	}
	return &domain.Session{AccessToken: token, ExpiresAt: exp, User: user}, nil
}
