package view

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// PageTitle appends the application name to a page title.
func PageTitle(title string) string {
	if title != "" {
		return title + " - askby"
	}
	return "askby"
}

// Page wraps body in the base HTML5 layout with flash messages on top.
func Page(title string, flash FlashData, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    PageTitle(title),
		Language: "zh-TW",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Link(h.Rel("stylesheet"), h.Href("/static/askby.css")),
			h.Script(h.Src(htmxSrc), h.Defer()),
		},
		Body: []g.Node{
			h.Class("bg-white text-gray-900"),
			h.Main(
				h.Class("container mx-auto p-8"),
				Flashes(flash),
				g.Group(body),
			),
		},
	})
}

// Flashes renders the queued messages, or nothing when there are none.
func Flashes(flash FlashData) g.Node {
	if len(flash.Error) == 0 {
		return nil
	}
	return h.Div(
		h.ID("flash"),
		g.Map(flash.Error, func(msg string) g.Node {
			return h.P(h.Class("flash-error text-red-700"), h.Role("alert"), g.Text(msg))
		}),
	)
}
