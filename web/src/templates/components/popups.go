package components

import (
	"strconv"

	"github.com/nfrund/gallery/internal/gallery"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// Popups renders every popup; closed ones are hidden.
func Popups(snap gallery.Snapshot) g.Node {
	l, f := snap.Labels, snap.Fields
	return g.Group{
		popup(snap, gallery.PopupEditProfile, l.EditProfile,
			form("/profile", snap, gallery.PopupEditProfile, l.Saving,
				field("name", l.NameField, "text", f.ProfileName, 2, 40),
				field("about", l.AboutField, "text", f.ProfileAbout, 2, 200),
			),
		),
		popup(snap, gallery.PopupNewCard, l.NewPlace,
			form("/cards", snap, gallery.PopupNewCard, l.Creating,
				field("name", l.PlaceField, "text", f.CardName, 2, 30),
				field("link", l.LinkField, "url", f.CardLink, 0, 0),
			),
		),
		popup(snap, gallery.PopupUpdateAvatar, l.UpdateAvatar,
			form("/avatar", snap, gallery.PopupUpdateAvatar, l.Saving,
				field("avatar", l.AvatarField, "url", f.AvatarURL, 0, 0),
			),
		),
		popup(snap, gallery.PopupImagePreview, "",
			g.El("figure",
				Img(Src(snap.Preview.ImageURL), Alt(snap.Preview.Name), Class("max-h-[75vh] max-w-[75vw]")),
				g.El("figcaption", Class("mt-2 text-sm"), g.Text(snap.Preview.Name)),
			),
		),
	}
}

func popup(snap gallery.Snapshot, id gallery.PopupID, heading string, content g.Node) g.Node {
	open := snap.IsOpen(id)
	class := "popup fixed inset-0 flex items-center justify-center bg-black/50"
	if open {
		class += " popup_opened"
	}
	return Div(
		ID("popup-"+string(id)),
		Class(class),
		g.If(!open, g.Attr("hidden")),
		Data("state", snap.Popups[id].String()),
		Div(
			Class("relative bg-white text-black rounded-lg p-8 min-w-80"),
			Button(
				Type("button"),
				Class("absolute -top-10 -right-10 text-white text-3xl"),
				Aria("label", snap.Labels.Close),
				action("/popups/"+string(id)+"/close"),
				g.Text("×"),
			),
			g.If(heading != "", H3(Class("text-2xl font-black mb-6"), g.Text(heading))),
			content,
		),
	)
}

// form posts its fields and swaps the gallery. While the request is in
// flight the submit button shows busy.
func form(path string, snap gallery.Snapshot, id gallery.PopupID, busy string, fields ...g.Node) g.Node {
	idle := snap.SubmitLabels[id]
	return g.El("form",
		Name(string(id)),
		Class("flex flex-col gap-4"),
		g.Attr("novalidate"),
		hx.Post(path),
		hx.Target(galleryTarget),
		hx.Swap("outerHTML"),
		hx.On("htmx:before-request", swapLabel(busy)),
		hx.On("htmx:after-request", swapLabel(idle)),
		g.Group(fields),
		Button(
			Type("submit"),
			Class("bg-black text-white py-3 rounded"),
			Data("idle", idle),
			Data("busy", busy),
			g.Text(idle),
		),
	)
}

func swapLabel(text string) string {
	return "this.querySelector('button[type=submit]').textContent = " + strconv.Quote(text)
}

// field is a labelled input. Zero bounds emit no length constraints.
func field(name, label, typ, value string, minLen, maxLen int) g.Node {
	return g.El("label",
		Class("flex flex-col text-sm"),
		g.Text(label),
		Input(
			Type(typ),
			Name(name),
			Value(value),
			Required(),
			Class("border-b py-2 text-base"),
			g.If(minLen > 0, MinLength(strconv.Itoa(minLen))),
			g.If(maxLen > 0, MaxLength(strconv.Itoa(maxLen))),
		),
	)
}
