package layout

import (
	"html/template"

	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/urls"
	hb "github.com/gouniverse/hb"
)

// Options bundles parameters for rendering the full HTML layout.
type Options struct {
	Title        string
	BasePath     string
	ActionParam  string
	MainHTML     string
	StatusText   string // footer text, e.g. the open database
	ExtraHead    []hb.TagInterface
	ExtraBodyEnd []hb.TagInterface
}

// Render builds the full HTML page using hb and returns it as a safe HTML string.
// - title: page title text
// - basePath: base path for navigation links
// - mainHTML: the pre-rendered inner HTML for the main content area
// - extraHead: optional extra <head> tags for page-specific assets
// - extraBodyEnd: optional extra tags right before </body> (e.g., scripts)
func Render(title, basePath, mainHTML string, extraHead []hb.TagInterface, extraBodyEnd []hb.TagInterface) template.HTML {
	return RenderWith(Options{
		Title:        title,
		BasePath:     basePath,
		MainHTML:     mainHTML,
		ExtraHead:    extraHead,
		ExtraBodyEnd: extraBodyEnd,
	})
}

// RenderWith builds the full HTML using the provided options struct.
func RenderWith(o Options) template.HTML {
	headChildren := []hb.TagInterface{
		hb.NewTag("meta").Attr("charset", "utf-8"),
		hb.NewTag("meta").Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1"),
		hb.NewTag("title").Text(o.Title + " · WeeViz"),
		// Tailwind via CDN for quick styling
		hb.ScriptURL("https://cdn.tailwindcss.com"),
	}
	if len(o.ExtraHead) > 0 {
		headChildren = append(headChildren, o.ExtraHead...)
	}

	nav := hb.Nav().Class("wv-nav").Children([]hb.TagInterface{
		hb.A().Href(o.BasePath).Text("Home"),
		hb.A().Href(urls.Build(o.BasePath, o.ActionParam, constants.ActionHealthz)).Text("Health"),
	})

	header := hb.Header().
		Class("wv-header").
		Child(
			hb.Div().
				Class("wv-container").
				Children([]hb.TagInterface{
					hb.Heading1().
						Class("wv-title").
						Child(hb.A().Href(o.BasePath).Text("WeeViz")),
					nav,
				}),
		)

	main := hb.Main().Class("wv-main grow p-4").
		Child(hb.Div().Class("wv-container").
			Child(hb.Raw(o.MainHTML)))

	status := o.StatusText
	if status == "" {
		status = "No database loaded"
	}
	footer := hb.Footer().Class("wv-footer wv-container").Child(
		hb.NewTag("small").Attr("id", "wv-status").Text(status),
	)

	bodyChildren := []hb.TagInterface{
		header,
		main,
		footer,
	}
	if len(o.ExtraBodyEnd) > 0 {
		bodyChildren = append(bodyChildren, o.ExtraBodyEnd...)
	}

	html := hb.NewTag("html").
		Attr("lang", "en").
		Children([]hb.TagInterface{
			hb.NewTag("head").
				Children(headChildren),
			hb.NewTag("body").
				Children(bodyChildren),
		})

	// Wrap in <!doctype html>
	return template.HTML("<!doctype html>" + html.ToHTML())
}
