package layouts

import (
	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/view"
	"github.com/nfrund/atelier/web/src/templates/partials"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// htmxConfig lets 422 responses swap so re-rendered forms show their errors.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"409","swap":false,"error":true},{"code":"[45]..","swap":false,"error":true}]}`

// PageProps is what every full page needs besides its content.
type PageProps struct {
	Title   string
	Flashes view.FlashData
	User    *domain.User
}

// Base wraps content in the HTML document shared by all pages.
func Base(p PageProps, content cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.Meta(g.Name("htmx-config"), g.Content(htmxConfig)),
				g.TitleEl(cmp.Text(CalculateTitle(p.Title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				g.Script(g.Src(htmxSrc), g.Defer()),
			),
			g.Body(
				hx.Boost("true"),
				g.Class("min-h-screen bg-gray-50 text-gray-900"),
				nav(p.User),
				partials.Flash(p.Flashes),
				g.Main(g.Class("container mx-auto px-4 py-8"), content),
			),
		),
	)
}

func nav(user *domain.User) cmp.Node {
	return g.Nav(
		g.Class("flex items-center justify-between border-b bg-white px-6 py-3"),
		g.A(g.Href("/"), g.Class("font-semibold"), cmp.Text(appName)),
		g.Div(
			g.Class("flex gap-4 text-sm"),
			cmp.If(user == nil, cmp.Group{
				g.A(g.Href("/login"), cmp.Text("Login")),
				g.A(g.Href("/register"), cmp.Text("Sign Up")),
			}),
			cmp.Iff(user != nil, func() cmp.Node {
				return cmp.Group{
					g.Span(g.Class("text-gray-500"), cmp.Text(user.Email)),
					g.A(g.Href("/dashboard"), cmp.Text("Dashboard")),
					g.A(g.Href("/logout"), cmp.Text("Logout")),
				}
			}),
		),
	)
}
