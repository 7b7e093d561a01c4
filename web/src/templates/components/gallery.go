// Package components renders the gallery page fragments from a synchronizer
// snapshot.
package components

import (
	"strconv"

	"github.com/nfrund/gallery/internal/gallery"
	"github.com/nfrund/gallery/internal/i18n"
	"github.com/nfrund/gallery/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// Element ids the htmx swaps target.
const (
	GalleryID = "gallery"
	ProfileID = "profile"
	CardsID   = "cards"
)

const galleryTarget = "#" + GalleryID

// Gallery is the swappable root of the page: flash notices, profile header,
// card list and every popup.
func Gallery(snap gallery.Snapshot, flash view.FlashData) g.Node {
	return Div(
		ID(GalleryID),
		Class("space-y-8"),
		Flash(flash),
		Profile(snap),
		CardList(snap.Cards, snap.Labels),
		Popups(snap),
	)
}

// Flash shows the notices stored in the session for this request.
func Flash(flash view.FlashData) g.Node {
	if len(flash.Success) == 0 && len(flash.Error) == 0 {
		return nil
	}
	return Div(
		ID("flash"),
		Role("status"),
		g.Map(flash.Error, func(msg string) g.Node {
			return P(Class("p-3 rounded bg-red-900/40 border border-red-600"), g.Text(msg))
		}),
		g.Map(flash.Success, func(msg string) g.Node {
			return P(Class("p-3 rounded bg-green-900/40 border border-green-600"), g.Text(msg))
		}),
	)
}

// Profile is the header with the avatar, name, description and the
// buttons that open the profile, avatar and card forms.
func Profile(snap gallery.Snapshot, attrs ...g.Node) g.Node {
	p, l := snap.Profile, snap.Labels
	return Section(
		ID(ProfileID),
		g.Group(attrs),
		Class("flex items-center gap-6"),
		Button(
			Type("button"),
			Class("w-28 h-28 rounded-full overflow-hidden bg-neutral-800"),
			Aria("label", l.UpdateAvatar),
			action("/avatar/open"),
			g.If(p.AvatarURL != "", Img(Src(p.AvatarURL), Alt(p.Name), Class("w-full h-full object-cover"))),
		),
		Div(
			Class("flex-1"),
			Div(
				Class("flex items-center gap-3"),
				H1(Class("text-4xl font-medium"), g.Text(p.Name)),
				Button(Type("button"), Class("border px-2"), Aria("label", l.EditProfile), action("/profile/open"), g.Text("✎")),
			),
			P(Class("text-lg text-neutral-300"), g.Text(p.About)),
		),
		Button(Type("button"), Class("border px-8 py-4 text-2xl"), Aria("label", l.NewPlace), action("/cards/open"), g.Text("+")),
	)
}

// CardList renders the cards in server order.
func CardList(cards []gallery.CardView, l i18n.Labels, attrs ...g.Node) g.Node {
	if len(cards) == 0 {
		return Section(ID(CardsID), g.Group(attrs), P(Class("text-neutral-400"), g.Text(l.EmptyGallery)))
	}
	return Section(
		ID(CardsID),
		g.Group(attrs),
		Ul(
			Class("grid grid-cols-1 sm:grid-cols-3 gap-4"),
			g.Map(cards, func(c gallery.CardView) g.Node { return Card(c, l) }),
		),
	)
}

// Card renders one card. The delete control exists only on owned cards and
// the like control is filled when the current user liked it.
func Card(c gallery.CardView, l i18n.Labels) g.Node {
	likeClass := "like"
	if c.Liked {
		likeClass = "like like_active text-red-500"
	}
	return Li(
		ID("card-"+c.ID),
		Class("relative bg-white text-black rounded-lg overflow-hidden"),
		Img(
			Src(c.ImageURL),
			Alt(c.Name),
			Class("w-full h-72 object-cover cursor-pointer"),
			action("/cards/"+c.ID+"/preview"),
		),
		g.If(c.CanDelete,
			Button(
				Type("button"),
				Class("absolute top-4 right-4"),
				Aria("label", l.Delete),
				action("/cards/"+c.ID+"/delete"),
				g.Text("🗑"),
			),
		),
		Div(
			Class("flex items-center justify-between p-4"),
			H2(Class("text-2xl font-black truncate"), g.Text(c.Name)),
			Div(
				Class("flex flex-col items-center"),
				Button(
					Type("button"),
					Class(likeClass),
					Aria("label", l.Like),
					Aria("pressed", strconv.FormatBool(c.Liked)),
					action("/cards/"+c.ID+"/like"),
					g.Text("♥"),
				),
				Span(Class("like-count text-sm"), g.Text(strconv.Itoa(c.LikeCount))),
			),
		),
	)
}

// action posts to path and replaces the gallery with the answer.
func action(path string) g.Node {
	return g.Group{
		hx.Post(path),
		hx.Target(galleryTarget),
		hx.Swap("outerHTML"),
	}
}
