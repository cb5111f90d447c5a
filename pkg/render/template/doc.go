// Package template defines the renderer-agnostic template seam used to render
// widget bodies, wrapper markup and client wiring scripts. The gotemplate
// subpackage provides the default pongo2-backed implementation.
package template
