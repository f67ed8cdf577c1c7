// Package validation implements the login and sign-up form schemas on top of
// go-playground/validator. Field rules live in struct tags; cross-field rules
// are refinements reported alongside any field rule failures.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/nfrund/atelier/internal/domain"
)

// User-facing messages. They are part of the form contract.
const (
	MsgInvalidEmail      = "Invalid email"
	MsgPasswordTooShort  = "Password must be at least {0} characters"
	MsgPasswordsMismatch = "Passwords do not match"
)

// Field names as they appear in the HTML forms.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Refinement is a rule over the whole value, reported against Field.
type Refinement[T any] struct {
	Field   string
	Message string
	Check   func(T) bool
}

// passwordsMatch compares the two passwords byte for byte.
var passwordsMatch = Refinement[domain.SignUpCredentials]{
	Field:   FieldConfirmPassword,
	Message: MsgPasswordsMismatch,
	Check: func(s domain.SignUpCredentials) bool {
		return s.Password == s.ConfirmPassword
	},
}

// Validator validates form values. It is safe for concurrent use.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a Validator with the English messages registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name so errors line up with the inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	register := func(tag, text string, param func(validator.FieldError) string) {
		_ = v.RegisterTranslation(tag, trans, func(t ut.Translator) error {
			return t.Add(tag, text, true)
		}, func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, param(fe))
			if err != nil {
				return fe.Error()
			}
			return msg
		})
	}
	register("email", MsgInvalidEmail, func(fe validator.FieldError) string { return fe.Field() })
	register("min", MsgPasswordTooShort, func(fe validator.FieldError) string { return fe.Param() })

	return &Validator{validate: v, translator: trans}
}

// Validate checks value against its struct tags and the refinements. Every
// violated rule is reported, so a refinement failure can sit next to a field
// rule failure. A nil result means value is valid.
func Validate[T any](v *Validator, value T, refinements ...Refinement[T]) FieldErrors {
	var errs FieldErrors

	if err := v.validate.Struct(value); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			// Not a struct validation result; value cannot be refined.
			errs.add("", err.Error())
			return errs
		}
		for _, fe := range ve {
			errs.add(fe.Field(), fe.Translate(v.translator))
		}
	}

	for _, r := range refinements {
		if !r.Check(value) {
			errs.add(r.Field, r.Message)
		}
	}
	return errs
}

// Login validates the login form.
func (v *Validator) Login(raw domain.Credentials) (domain.Credentials, FieldErrors) {
	return raw, Validate(v, raw)
}

// SignUp validates the registration form, including the password confirmation.
func (v *Validator) SignUp(raw domain.SignUpCredentials) (domain.SignUpCredentials, FieldErrors) {
	return raw, Validate(v, raw, passwordsMatch)
}
