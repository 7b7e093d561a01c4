package layouts

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

const (
	htmxSrc   = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSSrc = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
	tailwind  = "https://cdn.tailwindcss.com"
)

// Document is the HTML document shell. livePath, when set, connects the body to
// the websocket that pushes out-of-band updates.
func Document(title, lang, livePath string, body ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang(lang),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(CalculateTitle(title))),
				Script(Src(tailwind)),
				Script(Src(htmxSrc), Defer()),
				Script(Src(htmxWSSrc), Defer()),
			),
			Body(
				Class("bg-neutral-950 text-white min-h-screen"),
				g.If(livePath != "", g.Group{hx.Ext("ws"), g.Attr("ws-connect", livePath)}),
				Main(Class("max-w-4xl mx-auto p-6"), g.Group(body)),
			),
		),
	)
}
