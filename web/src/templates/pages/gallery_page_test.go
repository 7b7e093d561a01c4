package pages_test

import (
	"strings"
	"testing"

	"github.com/nfrund/gallery/internal/gallery"
	"github.com/nfrund/gallery/internal/i18n"
	"github.com/nfrund/gallery/internal/view"
	"github.com/nfrund/gallery/web/src/templates/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryPage(t *testing.T) {
	snap := gallery.Snapshot{
		Profile: gallery.ProfileView{Name: "Jacques", About: "Explorer", Loaded: true},
		Cards:   []gallery.CardView{{ID: "a", Name: "Lake", ImageURL: "https://x/lake.jpg"}},
		Labels:  i18n.Default(),
	}

	render := func(t *testing.T, snap gallery.Snapshot, livePath string) string {
		t.Helper()
		var b strings.Builder
		require.NoError(t, pages.GalleryPage(snap, view.FlashData{}, livePath).Render(&b))
		return b.String()
	}

	t.Run("full document around the gallery", func(t *testing.T) {
		out := render(t, snap, "/live")
		assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
		assert.Contains(t, out, `<html lang="en">`)
		assert.Contains(t, out, "<title>Jacques - Gallery</title>")
		assert.Contains(t, out, `hx-ext="ws"`)
		assert.Contains(t, out, `ws-connect="/live"`)
		assert.Contains(t, out, `<div id="gallery"`)
		assert.Contains(t, out, `id="card-a"`)
	})

	t.Run("no live connection without a path", func(t *testing.T) {
		out := render(t, snap, "")
		assert.NotContains(t, out, "ws-connect")
	})

	t.Run("untitled profile falls back to the app name", func(t *testing.T) {
		empty := snap
		empty.Profile = gallery.ProfileView{}
		out := render(t, empty, "")
		assert.Contains(t, out, "<title>Gallery</title>")
	})
}
