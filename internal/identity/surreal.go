package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nfrund/atelier/internal/config"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// Surreal authenticates against a SurrealDB record access method, e.g.
//
//	DEFINE ACCESS account ON DATABASE TYPE RECORD
//	  SIGNUP ( CREATE user SET email = $email, password = crypto::argon2::generate($password) )
//	  SIGNIN ( SELECT * FROM user WHERE email = $email AND crypto::argon2::compare(password, $password) );
//
// Signing in changes the authentication state of a connection, so every
// call runs on its own short-lived connection.
type Surreal struct {
	url    string
	ns     string
	db     string
	access string
}

// NewSurreal creates a provider for the given connection settings.
func NewSurreal(cfg config.SurrealCfg) *Surreal {
	return &Surreal{url: cfg.URL, ns: cfg.NS, db: cfg.DB, access: cfg.Access}
}

type surrealUser struct {
	ID    *models.RecordID `json:"id,omitempty"`
	Email string           `json:"email"`
}

func (s *Surreal) connect(ctx context.Context) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, s.url)
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to connect to surrealdb: %w", err))
	}
	if err := db.Use(ctx, s.ns, s.db); err != nil {
		db.Close(ctx)
		return nil, unavailable(fmt.Errorf("failed to use namespace/db: %w", err))
	}
	return db, nil
}

func (s *Surreal) vars(creds domain.Credentials) map[string]any {
	return map[string]any{
		"ns":       s.ns,
		"db":       s.db,
		"ac":       s.access,
		"email":    creds.Email,
		"password": creds.Password,
	}
}

// SignInWithPassword signs in through the record access method.
func (s *Surreal) SignInWithPassword(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close(ctx)

	token, err := db.SignIn(ctx, s.vars(creds))
	if err != nil {
		slog.DebugContext(ctx, "SurrealDB sign-in rejected", "email", creds.Email, "error", err)
		return nil, invalidCredentials()
	}
	return s.session(ctx, db, token)
}

// SignUp creates the record through the access method. SurrealDB has no
// confirmation step, so the new account is signed in immediately.
func (s *Surreal) SignUp(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close(ctx)

	token, err := db.SignUp(ctx, s.vars(creds))
	if err != nil {
		if isDuplicate(err) {
			return nil, alreadyRegistered()
		}
		return nil, unavailable(fmt.Errorf("surrealdb signup: %w", err))
	}
	return s.session(ctx, db, token)
}

// User validates token and loads its record.
func (s *Surreal) User(ctx context.Context, token string) (*domain.User, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close(ctx)

	if err := db.Authenticate(ctx, token); err != nil {
		return nil, domain.NewProviderError("Invalid or expired session", http.StatusUnauthorized, domain.ErrInvalidCredentials)
	}
	return s.currentUser(ctx, db)
}

func (s *Surreal) session(ctx context.Context, db *surrealdb.DB, token string) (*domain.Session, error) {
	user, err := s.currentUser(ctx, db)
	if err != nil {
		return nil, err
	}
	return &domain.Session{AccessToken: token, ExpiresAt: tokenExpiry(token), User: *user}, nil
}

func (s *Surreal) currentUser(ctx context.Context, db *surrealdb.DB) (*domain.User, error) {
	res, err := surrealdb.Query[[]surrealUser](ctx, db, "SELECT id, email FROM $auth", nil)
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to get authenticated user: %w", err))
	}
	if res == nil || len(*res) == 0 || len((*res)[0].Result) == 0 || (*res)[0].Result[0].ID == nil {
		return nil, domain.NewProviderError("Invalid or expired session", http.StatusUnauthorized, domain.ErrNotFound)
	}
	u := (*res)[0].Result[0]
	return &domain.User{ID: u.ID.String(), Email: u.Email}, nil
}

func isDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "already contains")
}

// tokenExpiry reads exp from a token issued by SurrealDB. The server already
// verified it, so the signature is not checked here.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
