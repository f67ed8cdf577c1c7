package pages

import (
	"github.com/nfrund/atelier/internal/form"
	"github.com/nfrund/atelier/internal/validation"
	"github.com/nfrund/atelier/internal/view/dto/auth"
	"github.com/nfrund/atelier/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// Element ids the handlers target with htmx swaps.
const (
	LoginFormID    = "login-form"
	RegisterFormID = "register-form"
	FormIDInput    = "form-id"
	FormStateInput = "form-state"
)

// Hidden field names posted with the forms.
const (
	FieldFormID    = "form_id"
	FieldFormState = "form_state"
)

func authCard(heading, subheading string, body cmp.Node, footer cmp.Node) cmp.Node {
	return g.Div(
		g.Class("mx-auto flex w-full flex-col justify-center gap-6 sm:w-[350px]"),
		g.A(g.Href("/"), g.Class("text-sm text-gray-500"), cmp.Text("Back")),
		g.Div(
			g.Class("flex flex-col gap-2 text-center"),
			g.H1(g.Class("text-2xl font-semibold tracking-tight"), cmp.Text(heading)),
			cmp.If(subheading != "", g.P(g.Class("text-sm text-gray-500"), cmp.Text(subheading))),
		),
		body,
		footer,
	)
}

// Login renders the login page content.
func Login(data auth.LoginData) cmp.Node {
	return authCard("Welcome back", "Login to your account",
		LoginForm(data),
		g.P(g.Class("px-8 text-center text-sm text-gray-500"),
			g.A(g.Href("/register"), g.Class("underline underline-offset-4"), cmp.Text("Don't have an account? Sign Up")),
		),
	)
}

// LoginForm is the part of the login page replaced after a failed submit.
func LoginForm(data auth.LoginData) cmp.Node {
	return g.Form(
		g.ID(LoginFormID),
		g.Method("post"),
		g.Action("/login"),
		hx.Post("/login"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.Class("grid gap-4"),
		cmp.Attr("novalidate"),
		components.HiddenInput(FormIDInput, FieldFormID, data.FormID, false),
		components.Field(components.FieldProps{
			Name: validation.FieldEmail, Label: "Email", Type: "email", Value: data.Email,
			AutoComplete: "email", Placeholder: "name@example.com",
			Errors: data.Errors.For(validation.FieldEmail), ValidateURL: "/login/validate",
		}),
		components.Field(components.FieldProps{
			Name: validation.FieldPassword, Label: "Password", Type: "password",
			AutoComplete: "current-password",
			Errors:       data.Errors.For(validation.FieldPassword), ValidateURL: "/login/validate",
		}),
		components.SubmitError(data.SubmitError, false),
		components.SubmitButton("Login"),
	)
}

// LoginValidation is the out-of-band response to a login form change.
func LoginValidation(errs validation.FieldErrors) cmp.Node {
	return cmp.Group{
		components.FieldErrors(validation.FieldEmail, errs.For(validation.FieldEmail), true),
		components.FieldErrors(validation.FieldPassword, errs.For(validation.FieldPassword), true),
	}
}

// Register renders the sign-up page content for the current form state.
func Register(data auth.RegisterData) cmp.Node {
	if data.State == form.InvalidLinkShown {
		return authCard("Invalid Link", "", g.P(g.Class("text-center text-sm"), cmp.Text(data.LinkError)),
			g.P(g.Class("text-center text-sm"), g.A(g.Href("/register"), g.Class("underline"), cmp.Text("Back to sign up"))),
		)
	}
	return authCard("Create an account", "Enter your email below to create your account",
		RegisterForm(data),
		g.P(g.Class("px-8 text-center text-sm text-gray-500"),
			g.A(g.Href("/login"), g.Class("underline underline-offset-4"), cmp.Text("Already have an account? Login")),
		),
	)
}

// RegisterForm is the part of the sign-up page replaced after a submit.
func RegisterForm(data auth.RegisterData) cmp.Node {
	if data.State == form.ConfirmationShown {
		return g.Div(
			g.ID(RegisterFormID),
			g.Class("rounded-md bg-green-50 p-4 text-center"),
			g.Role("status"),
			g.H2(g.Class("font-semibold"), cmp.Text("Check your email.")),
			g.P(g.Class("text-sm"), cmp.Text("An email confirmation has been sent.")),
		)
	}
	return g.Form(
		g.ID(RegisterFormID),
		g.Method("post"),
		g.Action("/register"),
		hx.Post("/register"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.Class("grid gap-4"),
		cmp.Attr("novalidate"),
		components.HiddenInput(FormIDInput, FieldFormID, data.FormID, false),
		components.HiddenInput(FormStateInput, FieldFormState, data.State.String(), false),
		components.Field(components.FieldProps{
			Name: validation.FieldEmail, Label: "Email", Type: "email", Value: data.Email,
			AutoComplete: "email", Placeholder: "name@example.com",
			Errors: data.Errors.For(validation.FieldEmail), ValidateURL: "/register/validate",
		}),
		components.Field(components.FieldProps{
			Name: validation.FieldPassword, Label: "Password", Type: "password",
			AutoComplete: "new-password",
			Errors:       data.Errors.For(validation.FieldPassword), ValidateURL: "/register/validate",
		}),
		components.Field(components.FieldProps{
			Name: validation.FieldConfirmPassword, Label: "Confirm Password", Type: "password",
			AutoComplete: "new-password",
			Errors:       data.Errors.For(validation.FieldConfirmPassword), ValidateURL: "/register/validate",
		}),
		components.SubmitError(data.SubmitError, false),
		components.SubmitButton("Create Account"),
	)
}

// RegisterValidation is the out-of-band response to a sign-up form change.
// It also carries the cleared submit error and the new form state.
func RegisterValidation(errs validation.FieldErrors, data auth.RegisterData) cmp.Node {
	return cmp.Group{
		components.FieldErrors(validation.FieldEmail, errs.For(validation.FieldEmail), true),
		components.FieldErrors(validation.FieldPassword, errs.For(validation.FieldPassword), true),
		components.FieldErrors(validation.FieldConfirmPassword, errs.For(validation.FieldConfirmPassword), true),
		components.SubmitError(data.SubmitError, true),
		components.HiddenInput(FormStateInput, FieldFormState, data.State.String(), true),
	}
}
