package pages

import (
	"github.com/nfrund/gallery/internal/gallery"
	"github.com/nfrund/gallery/internal/view"
	"github.com/nfrund/gallery/web/src/templates/components"
	"github.com/nfrund/gallery/web/src/templates/layouts"
	g "maragu.dev/gomponents"
)

// GalleryPage is the full document served at the root path.
func GalleryPage(snap gallery.Snapshot, flash view.FlashData, livePath string) g.Node {
	return layouts.Document(snap.Profile.Name, snap.Labels.Tag.String(), livePath,
		components.Gallery(snap, flash),
	)
}
