package components

import (
	"github.com/nfrund/gallery/internal/gallery"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
)

// LiveUpdate is pushed over the websocket after a change. The profile
// header and the card list replace their counterparts by id; popups are
// left alone so a form open in another tab is not disturbed.
func LiveUpdate(snap gallery.Snapshot) g.Node {
	return g.Group{
		Profile(snap, hx.SwapOOB("true")),
		CardList(snap.Cards, snap.Labels, hx.SwapOOB("true")),
	}
}
