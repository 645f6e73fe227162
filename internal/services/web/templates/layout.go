package templates

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

// LayoutView carries the document chrome for a page.
type LayoutView struct {
	Title       string
	Description string
	Lang        string
	CurrentPath string
	Loc         Localizer
	Year        int
	Scripts     []string
}

type navItem struct {
	key  string
	path string
}

var navItems = []navItem{
	{key: "nav.home", path: routepath.Root},
	{key: "nav.pricing", path: routepath.Pricing},
	{key: "nav.features", path: routepath.Features},
	{key: "nav.about", path: routepath.About},
}

// Layout wraps the children in the document shell with navigation and footer.
func Layout(view LayoutView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)
		h := newHTMLWriter(ctx, w)

		lang := strings.TrimSpace(view.Lang)
		if lang == "" {
			lang = "en-US"
		}
		siteName := T(view.Loc, "site.name")
		title := siteName
		if t := strings.TrimSpace(view.Title); t != "" {
			title = t + " | " + siteName
		}
		year := view.Year
		if year == 0 {
			year = time.Now().Year()
		}

		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", lang)
		h.open("head")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if desc := strings.TrimSpace(view.Description); desc != "" {
			h.open("meta", "name", "description", "content", desc)
		}
		h.element("title", title)
		h.open("link", "rel", "stylesheet", "href", routepath.StaticStylesheet)
		h.close("head")

		h.open("body")
		h.open("header", "class", "site-header")
		h.open("nav", "class", "site-nav", "aria-label", "Main")
		h.link(routepath.Root, siteName, "class", "brand")
		h.open("ul")
		for _, item := range navItems {
			h.open("li")
			attrs := []string{}
			if item.path == view.CurrentPath {
				attrs = append(attrs, "aria-current", "page")
			}
			h.link(item.path, T(view.Loc, item.key), attrs...)
			h.close("li")
		}
		h.close("ul")
		h.link(routepath.Pricing, T(view.Loc, "nav.get_started"), "class", "button")
		h.close("nav")
		h.close("header")

		h.open("main", "id", "main")
		h.component(children)
		h.close("main")

		h.open("footer", "class", "site-footer")
		h.open("p")
		h.link(routepath.Terms, T(view.Loc, "footer.terms"))
		h.raw(" &middot; ")
		h.link(routepath.Privacy, T(view.Loc, "footer.privacy"))
		h.close("p")
		h.element("p", T(view.Loc, "footer.copyright", year))
		h.close("footer")

		for _, src := range view.Scripts {
			h.open("script", "src", src, "defer", "defer")
			h.close("script")
		}
		h.close("body")
		h.close("html")
		return h.err
	})
}
