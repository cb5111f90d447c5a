// Package page holds the state collected while one HTML response is built:
// which dynamic form containers have been registered, and the scripts the
// widgets asked to inject into the document. A Page lives for one response and
// is not safe for concurrent use.
package page

import (
	"context"
	"html"
	"strings"
)

// Position selects where an inline script is emitted.
type Position int

const (
	// PositionHead emits the script inside <head>.
	PositionHead Position = iota
	// PositionReady runs the script once the DOM is ready.
	PositionReady
	// PositionLoad runs the script after the window load event.
	PositionLoad
)

// Page is the request-scoped registry shared by every widget rendered into the
// same response.
type Page struct {
	widgets map[string]string
	order   []string

	files     []string
	fileIndex map[string]struct{}

	scripts     map[Position][]string
	scriptIndex map[Position]map[string]struct{}
}

// New returns an empty page.
func New() *Page {
	return &Page{
		widgets:     make(map[string]string),
		fileIndex:   make(map[string]struct{}),
		scripts:     make(map[Position][]string),
		scriptIndex: make(map[Position]map[string]struct{}),
	}
}

// Register records identifier for container unless the container is already
// known. It returns the identifier in effect and whether this call stored it.
// An existing entry is never overwritten.
func (p *Page) Register(container, identifier string) (string, bool) {
	if existing, ok := p.widgets[container]; ok {
		return existing, false
	}
	p.widgets[container] = identifier
	p.order = append(p.order, container)
	return identifier, true
}

// Lookup returns the identifier registered for container.
func (p *Page) Lookup(container string) (string, bool) {
	identifier, ok := p.widgets[container]
	return identifier, ok
}

// Containers lists registered containers in registration order.
func (p *Page) Containers() []string {
	return append([]string(nil), p.order...)
}

// RegisterScriptFile adds an external script, once per src.
func (p *Page) RegisterScriptFile(src string) {
	src = strings.TrimSpace(src)
	if src == "" {
		return
	}
	if _, ok := p.fileIndex[src]; ok {
		return
	}
	p.fileIndex[src] = struct{}{}
	p.files = append(p.files, src)
}

// RegisterJS adds an inline script at pos. Identical scripts at the same
// position are emitted once.
func (p *Page) RegisterJS(pos Position, js string) {
	js = strings.TrimSpace(js)
	if js == "" {
		return
	}
	index := p.scriptIndex[pos]
	if index == nil {
		index = make(map[string]struct{})
		p.scriptIndex[pos] = index
	}
	if _, ok := index[js]; ok {
		return
	}
	index[js] = struct{}{}
	p.scripts[pos] = append(p.scripts[pos], js)
}

// Scripts returns the inline scripts registered at pos.
func (p *Page) Scripts(pos Position) []string {
	return append([]string(nil), p.scripts[pos]...)
}

// ScriptFiles returns the external scripts in registration order.
func (p *Page) ScriptFiles() []string {
	return append([]string(nil), p.files...)
}

// HeadHTML renders the head scripts, or "" when there are none.
func (p *Page) HeadHTML() string {
	head := p.scripts[PositionHead]
	if len(head) == 0 {
		return ""
	}
	return "<script>" + strings.Join(head, "\n") + "</script>"
}

// EndBodyHTML renders external scripts followed by the ready and load blocks.
// It belongs right before </body>.
func (p *Page) EndBodyHTML() string {
	var b strings.Builder
	for _, src := range p.files {
		b.WriteString(`<script src="`)
		b.WriteString(html.EscapeString(src))
		b.WriteString(`"></script>`)
		b.WriteString("\n")
	}
	if ready := p.scripts[PositionReady]; len(ready) > 0 {
		b.WriteString("<script>jQuery(function ($) {\n")
		b.WriteString(strings.Join(ready, "\n"))
		b.WriteString("\n});</script>\n")
	}
	if load := p.scripts[PositionLoad]; len(load) > 0 {
		b.WriteString("<script>jQuery(window).on('load', function () {\n")
		b.WriteString(strings.Join(load, "\n"))
		b.WriteString("\n});</script>\n")
	}
	return b.String()
}

type ctxKey struct{}

// WithPage attaches p to ctx.
func WithPage(ctx context.Context, p *Page) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the page attached to ctx.
func FromContext(ctx context.Context) (*Page, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(ctxKey{}).(*Page)
	return p, ok && p != nil
}
