package view

import (
	"fmt"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyEmail    = "form_email"
)

// FlashData holds the one-time messages shown at the top of a page.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		c.Logger().Warnf("flash session unavailable: %v", err)
		return
	}
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFormEmail remembers the submitted email for the next render of a form.
func SetFormEmail(c echo.Context, email string) {
	setFlash(c, flashKeyEmail, email)
}

// PopFormEmail returns and clears the email stored by SetFormEmail.
func PopFormEmail(c echo.Context) string {
	values := popFlashes(c, flashKeyEmail)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// GetFlashData retrieves and clears the success and error messages.
func GetFlashData(c echo.Context) FlashData {
	return FlashData{
		Success: popFlashes(c, flashKeySuccess),
		Error:   popFlashes(c, flashKeyError),
	}
}

// popFlashes reads the flashes under key. The session is only saved when
// something was consumed so plain page views do not set a cookie.
func popFlashes(c echo.Context, key string) []string {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes(key)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, fmt.Sprint(v))
	}
	_ = sess.Save(c.Request(), c.Response())
	return out
}
