package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nfrund/atelier/internal/domain"
)

// GoTrue talks to a GoTrue server, the auth API behind Supabase.
type GoTrue struct {
	baseURL string
	anonKey string
	client  *http.Client
}

// NewGoTrue creates a client for the project at baseURL (without /auth/v1).
func NewGoTrue(baseURL, anonKey string, timeout time.Duration) *GoTrue {
	return &GoTrue{
		baseURL: strings.TrimRight(baseURL, "/") + "/auth/v1",
		anonKey: anonKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// gotrueSession covers both shapes /signup answers with: a full session, or
// just the user while the email awaits confirmation.
type gotrueSession struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	ExpiresAt   int64       `json:"expires_at"`
	User        *gotrueUser `json:"user"`

	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s gotrueSession) session() *domain.Session {
	out := &domain.Session{AccessToken: s.AccessToken}
	if s.User != nil {
		out.User = domain.User{ID: s.User.ID, Email: s.User.Email}
	} else {
		out.User = domain.User{ID: s.ID, Email: s.Email}
	}
	switch {
	case s.ExpiresAt > 0:
		out.ExpiresAt = time.Unix(s.ExpiresAt, 0)
	case s.ExpiresIn > 0:
		out.ExpiresAt = time.Now().Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return out
}

type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e gotrueError) text() string {
	for _, m := range []string{e.Msg, e.ErrorDescription, e.Message, e.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

// SignInWithPassword exchanges email and password for a session.
func (g *GoTrue) SignInWithPassword(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var s gotrueSession
	if err := g.do(ctx, http.MethodPost, "/token?grant_type=password", "", creds, &s); err != nil {
		return nil, err
	}
	return s.session(), nil
}

// SignUp registers the account. The returned session has no access token
// when the project requires email confirmation.
func (g *GoTrue) SignUp(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var s gotrueSession
	if err := g.do(ctx, http.MethodPost, "/signup", "", creds, &s); err != nil {
		return nil, err
	}
	return s.session(), nil
}

// User resolves an access token.
func (g *GoTrue) User(ctx context.Context, token string) (*domain.User, error) {
	var u gotrueUser
	if err := g.do(ctx, http.MethodGet, "/user", token, nil, &u); err != nil {
		return nil, err
	}
	return &domain.User{ID: u.ID, Email: u.Email}, nil
}

func (g *GoTrue) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode gotrue request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create gotrue request: %w", err)
	}
	req.Header.Set("apikey", g.anonKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return unavailable(fmt.Errorf("gotrue %s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return unavailable(fmt.Errorf("failed to decode gotrue response: %w", err))
	}
	return nil
}

func statusError(resp *http.Response) error {
	var ge gotrueError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &ge)

	msg := ge.text()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var cause error
	switch {
	case msg == MsgInvalidCredentials:
		cause = domain.ErrInvalidCredentials
	case msg == MsgAlreadyRegistered:
		cause = domain.ErrUserAlreadyExists
	case msg == MsgEmailNotConfirmed:
		cause = domain.ErrEmailNotConfirmed
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		cause = domain.ErrInvalidCredentials
	default:
		cause = errors.New("gotrue: " + resp.Status)
	}
	return domain.NewProviderError(msg, resp.StatusCode, cause)
}
