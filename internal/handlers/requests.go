package handlers

import (
	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/form"
)

// loginRequest is the form posted to /login and /login/validate.
type loginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	FormID   string `form:"form_id"`
}

func (r loginRequest) credentials() domain.Credentials {
	return domain.Credentials{Email: r.Email, Password: r.Password}
}

// registerRequest is the form posted to /register and /register/validate.
type registerRequest struct {
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	FormID          string `form:"form_id"`
	FormState       string `form:"form_state"`
}

func (r registerRequest) credentials() domain.SignUpCredentials {
	return domain.SignUpCredentials{Email: r.Email, Password: r.Password, ConfirmPassword: r.ConfirmPassword}
}

// machine restores the sign-up state machine from the posted state.
func (r registerRequest) machine() *form.Machine {
	state, _ := form.ParseState(r.FormState)
	return form.Resume(state)
}
