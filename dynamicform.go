package dynamicform

import (
	"io/fs"

	"github.com/goliatone/go-dynamicform/pkg/page"
	"github.com/goliatone/go-dynamicform/pkg/widget"
)

// Config aliases widget.Config so callers of the quick entry points need only
// the root package.
type Config = widget.Config

// Option aliases widget.Option.
type Option = widget.Option

// Fragment is one widget rendered on its own page: the wrapper element plus
// the page scripts it registered.
type Fragment struct {
	// HTML is the wrapper element holding the (possibly stripped) body.
	HTML string
	// Head is the options variable script for the document head.
	Head string
	// EndBody holds the script files and the ready/load wiring.
	EndBody string
}

// RenderHTML runs a widget for cfg over already captured markup on a fresh
// page. Build cfg from widget.DefaultConfig so Min keeps its default of 1.
// Use widget.New with a shared page.Page to render several widgets into one
// document.
func RenderHTML(cfg Config, markup string, options ...Option) (Fragment, error) {
	w, err := widget.New(cfg, options...)
	if err != nil {
		return Fragment{}, err
	}

	p := page.New()
	out, err := w.Run(p, markup)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{HTML: out, Head: p.HeadHTML(), EndBody: p.EndBodyHTML()}, nil
}

// EmbeddedScripts exposes the built-in wrapper and wiring templates so
// callers can start a custom widget.WithScriptRenderer from them.
func EmbeddedScripts() fs.FS {
	return widget.ScriptsFS()
}
