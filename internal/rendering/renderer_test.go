package rendering_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/gallery/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

func TestRenderComponent(t *testing.T) {
	r := rendering.NewUniversalRenderer()
	ctx := context.Background()

	t.Run("gomponents node", func(t *testing.T) {
		out, err := r.RenderComponent(ctx, html.P(g.Text("hi")))
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(out))
	})

	t.Run("templ component", func(t *testing.T) {
		comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<b>templ</b>")
			return err
		})
		out, err := r.RenderComponent(ctx, comp)
		require.NoError(t, err)
		assert.Equal(t, "<b>templ</b>", string(out))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := r.RenderComponent(ctx, 42)
		assert.Error(t, err)
	})
}

func TestRenderPage(t *testing.T) {
	e := echo.New()
	r := rendering.NewUniversalRenderer()
	e.Renderer = r

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, r.RenderPage(c, http.StatusTeapot, html.Div(html.ID("x"))))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, `<div id="x"></div>`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.Render(http.StatusOK, "", html.Span(g.Text("via echo"))))
	assert.Equal(t, "<span>via echo</span>", rec.Body.String())
}
