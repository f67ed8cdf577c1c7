package partials

import (
	"github.com/nfrund/atelier/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Flash renders the one-time success and error messages.
func Flash(f view.FlashData) cmp.Node {
	if f.Empty() {
		return cmp.Group{}
	}
	return g.Div(
		g.ID("flash"),
		g.Class("mx-auto mt-4 w-full max-w-md space-y-2"),
		cmp.Map(f.Success, func(msg string) cmp.Node {
			return g.Div(g.Class("rounded-md bg-green-50 p-3 text-sm text-green-800"), g.Role("status"), cmp.Text(msg))
		}),
		cmp.Map(f.Error, func(msg string) cmp.Node {
			return g.Div(g.Class("rounded-md bg-red-50 p-3 text-sm text-red-800"), g.Role("alert"), cmp.Text(msg))
		}),
	)
}
