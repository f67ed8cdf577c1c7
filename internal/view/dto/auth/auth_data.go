package auth

import (
	"github.com/nfrund/atelier/internal/form"
	"github.com/nfrund/atelier/internal/validation"
)

// LoginData is the view model of the login form. Passwords are never
// echoed back.
type LoginData struct {
	Email       string
	FormID      string
	Errors      validation.FieldErrors
	SubmitError string
}

// RegisterData is the view model of the sign-up form.
type RegisterData struct {
	Email       string
	FormID      string
	Errors      validation.FieldErrors
	State       form.State
	SubmitError string
	LinkError   string
}

// FromMachine copies the form state and its messages.
func (d RegisterData) FromMachine(m *form.Machine) RegisterData {
	d.State = m.State()
	d.SubmitError = m.SubmitError()
	d.LinkError = m.LinkError()
	return d
}
