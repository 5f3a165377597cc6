package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dracory/weeviz/shared/layout"
)

func TestRenderWith(t *testing.T) {
	html := string(layout.RenderWith(layout.Options{
		Title:       "Explorer",
		BasePath:    "/viz",
		ActionParam: "do",
		MainHTML:    `<div id="app"></div>`,
	}))

	assert.Regexp(t, `(?i)^<!doctype\s+html>`, html)
	assert.Contains(t, html, "Explorer · WeeViz")
	assert.Contains(t, html, `<div id="app"></div>`)
	assert.Contains(t, html, "/viz?do=healthz")
	assert.Contains(t, html, "No database loaded")
}
