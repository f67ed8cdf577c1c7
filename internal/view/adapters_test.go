package view_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/nfrund/atelier/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents/html"
)

type ctxKey struct{}

func TestAdapters(t *testing.T) {
	t.Run("gomponent inside templ", func(t *testing.T) {
		var buf bytes.Buffer
		c := view.AdaptGomponentToTempl(g.P(g.Class("x")))
		require.NoError(t, c.Render(context.Background(), &buf))
		assert.Equal(t, `<p class="x"></p>`, buf.String())
	})

	t.Run("templ inside gomponents keeps the context", func(t *testing.T) {
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			v, _ := ctx.Value(ctxKey{}).(string)
			_, err := io.WriteString(w, "<span>"+v+"</span>")
			return err
		})
		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")

		var buf bytes.Buffer
		require.NoError(t, g.Div(view.AdaptTemplToGomponentContext(ctx, component)).Render(&buf))
		assert.Equal(t, "<div><span>req-1</span></div>", buf.String())

		buf.Reset()
		require.NoError(t, view.AdaptTemplToGomponent(component).Render(&buf))
		assert.Equal(t, "<span></span>", buf.String())
	})
}
