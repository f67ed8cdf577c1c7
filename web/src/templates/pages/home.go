package pages

import (
	"github.com/nfrund/atelier/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Home is the landing page.
func Home(user *domain.User) cmp.Node {
	return g.Section(
		g.Class("mx-auto max-w-2xl py-16 text-center"),
		g.H1(g.Class("text-4xl font-extrabold tracking-tight"), cmp.Text("Atelier")),
		g.P(g.Class("mt-4 text-gray-600"), cmp.Text("A shared workspace for your team's documents and folders.")),
		g.Div(
			g.Class("mt-8 flex justify-center gap-4"),
			cmp.If(user == nil, cmp.Group{
				g.A(g.Href("/register"), g.Class("rounded-md bg-indigo-600 px-4 py-2 text-white"), cmp.Text("Get started")),
				g.A(g.Href("/login"), g.Class("rounded-md border px-4 py-2"), cmp.Text("Login")),
			}),
			cmp.If(user != nil,
				g.A(g.Href("/dashboard"), g.Class("rounded-md bg-indigo-600 px-4 py-2 text-white"), cmp.Text("Go to dashboard")),
			),
		),
	)
}
