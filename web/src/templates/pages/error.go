package pages

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Error renders a status page for requests that ended in an HTTP error.
func Error(status int, message string) cmp.Node {
	return g.Section(
		g.Class("mx-auto max-w-md py-16 text-center"),
		g.P(g.Class("text-5xl font-bold text-gray-400"), cmp.Text(strconv.Itoa(status))),
		g.H1(g.Class("mt-4 text-xl font-semibold"), cmp.Text(message)),
		g.A(g.Href("/"), g.Class("mt-8 inline-block text-indigo-600"), cmp.Text("Back home")),
	)
}
