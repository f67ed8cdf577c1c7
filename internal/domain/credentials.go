package domain

// Credentials are the email and password submitted on the login form.
type Credentials struct {
	Email    string `form:"email" json:"email" validate:"email"`
	Password string `form:"password" json:"password" validate:"min=8"`
}

// SignUpCredentials are the fields of the registration form. ConfirmPassword
// only exists for validation and is never sent to the identity provider.
type SignUpCredentials struct {
	Email           string `form:"email" json:"email" validate:"email"`
	Password        string `form:"password" json:"password" validate:"min=8"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword" validate:"min=8"`
}

// Credentials strips the password confirmation.
func (s SignUpCredentials) Credentials() Credentials {
	return Credentials{Email: s.Email, Password: s.Password}
}
