package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/atelier/internal/auth"
	"github.com/nfrund/atelier/internal/cache"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/form"
	"github.com/nfrund/atelier/internal/identity"
	"github.com/nfrund/atelier/internal/middleware"
	"github.com/nfrund/atelier/internal/validation"
	"github.com/nfrund/atelier/internal/view"
	dto "github.com/nfrund/atelier/internal/view/dto/auth"
	"github.com/nfrund/atelier/web/src/templates/pages"
)

const (
	msgAlreadySubmitting = "This form is already being submitted."
	defaultSessionTTL    = 24 * time.Hour
)

// AuthHandler serves the login and sign-up forms.
type AuthHandler struct {
	actions   *auth.Actions
	validator *validation.Validator
	cache     cache.Invalidator
	confirmer identity.Confirmer
	inflight  *form.InFlight
}

// NewAuthHandler creates a new AuthHandler. Email confirmation links are
// served when provider implements identity.Confirmer.
func NewAuthHandler(provider domain.IdentityProvider, v *validation.Validator, inv cache.Invalidator) *AuthHandler {
	h := &AuthHandler{
		actions:   auth.NewActions(provider),
		validator: v,
		cache:     inv,
		inflight:  form.NewInFlight(),
	}
	if c, ok := provider.(identity.Confirmer); ok {
		h.confirmer = c
	}
	return h
}

// LoginGet renders the login page (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	data := dto.LoginData{
		Email:  view.PopFormEmail(c),
		FormID: uuid.NewString(),
	}
	return renderPage(c, http.StatusOK, "Login", pages.Login(data))
}

// LoginValidate reports field errors while the user types (POST /login/validate).
func (h *AuthHandler) LoginValidate(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	_, errs := h.validator.Login(req.credentials())
	errs = visibleErrors(c, errs, map[string]string{
		validation.FieldEmail:    req.Email,
		validation.FieldPassword: req.Password,
	})
	return c.Render(http.StatusOK, "", pages.LoginValidation(errs))
}

// LoginPost signs the user in (POST /login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	data := dto.LoginData{Email: req.Email, FormID: formID(req.FormID)}

	creds, errs := h.validator.Login(req.credentials())
	if !errs.Empty() {
		data.Errors = errs
		return h.renderLogin(c, http.StatusUnprocessableEntity, data)
	}

	if !h.inflight.Acquire(req.FormID) {
		return echo.NewHTTPError(http.StatusConflict, msgAlreadySubmitting)
	}
	defer h.inflight.Release(req.FormID)

	session, err := h.actions.Login(ctx, creds)
	if err != nil {
		pe := domain.AsProviderError(err)
		logger.Warn("Failed login attempt", "email", creds.Email, "status", pe.Status, "error", err)
		data.SubmitError = pe.Message
		return h.renderLogin(c, http.StatusUnprocessableEntity, data)
	}

	setAuthCookie(c, session)
	view.SetFlashSuccess(c, "Logged in successfully!")
	logger.Info("User logged in", "user_id", session.User.ID)
	return auth.Complete(ctx, h.cache, func(path string) error { return redirectTo(c, path) })
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, data dto.LoginData) error {
	return renderForm(c, status, "Login", pages.LoginForm(data), pages.Login(data))
}

// RegisterGet renders the sign-up page (GET /register). An error_description
// query parameter replaces the form with an invalid link notice.
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	m := form.NewSignup(c.QueryParam("error_description"))
	data := dto.RegisterData{
		Email:  view.PopFormEmail(c),
		FormID: uuid.NewString(),
	}.FromMachine(m)
	return renderPage(c, http.StatusOK, "Sign Up", pages.Register(data))
}

// RegisterValidate handles a change of the sign-up form
// (POST /register/validate). A submit error on screen is cleared first.
func (h *AuthHandler) RegisterValidate(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	m := req.machine()
	if err := m.Change(); err != nil {
		return c.NoContent(http.StatusNoContent)
	}

	_, errs := h.validator.SignUp(req.credentials())
	errs = visibleErrors(c, errs, map[string]string{
		validation.FieldEmail:           req.Email,
		validation.FieldPassword:        req.Password,
		validation.FieldConfirmPassword: req.ConfirmPassword,
	})
	return c.Render(http.StatusOK, "", pages.RegisterValidation(errs, dto.RegisterData{}.FromMachine(m)))
}

// RegisterPost creates the account (POST /register).
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	m := req.machine()
	data := dto.RegisterData{Email: req.Email, FormID: formID(req.FormID)}

	creds, errs := h.validator.SignUp(req.credentials())
	if !errs.Empty() {
		if err := m.Change(); err != nil {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		data.Errors = errs
		return h.renderRegister(c, http.StatusUnprocessableEntity, data.FromMachine(m))
	}

	if err := m.Submit(); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if !h.inflight.Acquire(req.FormID) {
		return echo.NewHTTPError(http.StatusConflict, msgAlreadySubmitting)
	}
	defer h.inflight.Release(req.FormID)

	session, err := h.actions.Signup(ctx, creds)
	if rerr := m.Resolve(err); rerr != nil {
		return rerr
	}
	if err != nil {
		logger.Warn("Failed sign-up attempt", "email", creds.Email, "error", err)
		return h.renderRegister(c, http.StatusUnprocessableEntity, data.FromMachine(m))
	}

	logger.Info("User signed up", "user_id", session.User.ID, "confirmed", session.Authenticated())
	if session.Authenticated() {
		setAuthCookie(c, session)
		view.SetFlashSuccess(c, "Account created successfully!")
		return auth.Complete(ctx, h.cache, func(path string) error { return redirectTo(c, path) })
	}

	if err := auth.Invalidate(ctx, h.cache); err != nil {
		return err
	}
	return h.renderRegister(c, http.StatusOK, data.FromMachine(m))
}

func (h *AuthHandler) renderRegister(c echo.Context, status int, data dto.RegisterData) error {
	return renderForm(c, status, "Sign Up", pages.RegisterForm(data), pages.Register(data))
}

// Confirm serves the link sent in confirmation emails (GET /auth/confirm).
// A bad link lands on the sign-up page with error_description set.
func (h *AuthHandler) Confirm(c echo.Context) error {
	if h.confirmer == nil {
		return echo.ErrNotFound
	}
	ctx := c.Request().Context()

	if err := h.confirmer.Confirm(ctx, c.QueryParam("token")); err != nil {
		pe := domain.AsProviderError(err)
		middleware.FromContext(ctx).Warn("Email confirmation failed", "error", err)
		return c.Redirect(http.StatusSeeOther, "/register?error_description="+url.QueryEscape(pe.Message))
	}

	if err := auth.Invalidate(ctx, h.cache); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "Your email has been confirmed. You can now log in.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Logout clears the auth cookie (GET /logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearAuthCookie(c)
	if err := auth.Invalidate(c.Request().Context(), h.cache); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// visibleErrors keeps the errors of fields the user has filled in and of the
// field that triggered the request, so untouched inputs stay quiet.
func visibleErrors(c echo.Context, errs validation.FieldErrors, values map[string]string) validation.FieldErrors {
	trigger := c.Request().Header.Get(headerHXTrigger)
	out := validation.FieldErrors{}
	for _, fe := range errs {
		if values[fe.Field] != "" || fe.Field == trigger {
			out = append(out, fe)
		}
	}
	return out
}

// formID keeps the posted instance id, or starts a new one for clients that
// did not send it.
func formID(posted string) string {
	if posted != "" {
		return posted
	}
	return uuid.NewString()
}

// setAuthCookie stores the session's access token. Secure follows the
// connection so local development works over plain HTTP.
func setAuthCookie(c echo.Context, s *domain.Session) {
	expires := s.ExpiresAt
	if expires.IsZero() {
		expires = time.Now().Add(defaultSessionTTL)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    s.AccessToken,
		Path:     "/",
		Expires:  expires.UTC(),
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
