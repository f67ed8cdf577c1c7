package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Dashboard is the signed-in landing page.
func Dashboard(ctx context.Context, user *domain.User) cmp.Node {
	return g.Section(
		g.Class("mx-auto max-w-2xl"),
		g.H1(g.Class("mb-6 text-3xl font-bold"), cmp.Text("Dashboard")),
		view.AdaptTemplToGomponentContext(ctx, accountCard(user)),
	)
}

// accountCard is written against templ so it can move into a .templ file
// without touching its callers.
func accountCard(user *domain.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="rounded-xl bg-white p-6 shadow" id="account-card">`+
			`<p class="text-sm text-gray-500">Signed in as</p>`+
			`<p class="text-lg font-medium">`+templ.EscapeString(user.Email)+`</p>`+
			`</div>`)
		return err
	})
}
