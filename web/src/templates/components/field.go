package components

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// SubmitErrorID is the element holding the provider message of a form.
const SubmitErrorID = "submit-error"

// FieldProps describes one labelled input.
type FieldProps struct {
	Name         string
	Label        string
	Type         string
	Value        string
	AutoComplete string
	Placeholder  string
	Errors       []string
	// ValidateURL receives the whole form on every change.
	ValidateURL string
}

// ErrorID is the id of the element listing the errors of field name.
func ErrorID(name string) string {
	return name + "-error"
}

// Field renders a label, an input and its error slot.
func Field(p FieldProps) cmp.Node {
	return g.Div(
		g.Class("grid gap-1"),
		g.Label(g.For(p.Name), g.Class("text-sm font-medium"), cmp.Text(p.Label)),
		g.Input(
			g.ID(p.Name),
			g.Name(p.Name),
			g.Type(p.Type),
			cmp.If(p.Value != "", g.Value(p.Value)),
			cmp.If(p.AutoComplete != "", g.AutoComplete(p.AutoComplete)),
			cmp.If(p.Placeholder != "", g.Placeholder(p.Placeholder)),
			g.Class("rounded-md border px-3 py-2 text-sm"),
			cmp.If(len(p.Errors) > 0, g.Aria("invalid", "true")),
			g.Aria("describedby", ErrorID(p.Name)),
			cmp.If(p.ValidateURL != "", cmp.Group{
				hx.Post(p.ValidateURL),
				hx.Trigger("input changed delay:300ms, blur"),
				hx.Include("closest form"),
				hx.Swap("none"),
			}),
		),
		FieldErrors(p.Name, p.Errors, false),
	)
}

// FieldErrors renders the error slot of a field. With oob set it replaces the
// slot already on the page.
func FieldErrors(name string, errs []string, oob bool) cmp.Node {
	return g.Div(
		g.ID(ErrorID(name)),
		g.Class("text-sm text-red-600"),
		cmp.If(oob, hx.SwapOOB("true")),
		cmp.Map(errs, func(msg string) cmp.Node {
			return g.P(cmp.Text(msg))
		}),
	)
}

// SubmitError renders the message reported by the identity provider.
func SubmitError(msg string, oob bool) cmp.Node {
	return g.Div(
		g.ID(SubmitErrorID),
		g.Class("text-sm text-red-600"),
		cmp.If(msg != "", g.Role("alert")),
		cmp.If(oob, hx.SwapOOB("true")),
		cmp.If(msg != "", cmp.Text(msg)),
	)
}

// SubmitButton disables itself while its request is in flight.
func SubmitButton(label string) cmp.Node {
	return g.Button(
		g.Type("submit"),
		g.Class("w-full rounded-md bg-indigo-600 px-4 py-2 text-white disabled:opacity-50"),
		cmp.Attr("hx-disabled-elt", "this"),
		cmp.Text(label),
	)
}

// HiddenInput renders an input of type hidden. With oob set it replaces the
// input with the same id.
func HiddenInput(id, name, value string, oob bool) cmp.Node {
	return g.Input(
		g.ID(id),
		g.Type("hidden"),
		g.Name(name),
		g.Value(value),
		cmp.If(oob, hx.SwapOOB("true")),
	)
}
