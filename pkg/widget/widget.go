package widget

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-dynamicform/pkg/page"
	"github.com/goliatone/go-dynamicform/pkg/render/template"
)

// DefaultAssetURL is where the browser runtime is expected to be served.
const DefaultAssetURL = "/assets/dynamicform/dynamicform.js"

// Option configures a Widget.
type Option func(*config)

type config struct {
	scripts     template.TemplateRenderer
	assetURL    string
	scriptFiles []string
	policy      *bluemonday.Policy
}

// WithScriptRenderer replaces the renderer used for the wrapper element and
// the client wiring scripts. It must provide the ReadyTemplate, LoadTemplate
// and WrapperTemplate templates.
func WithScriptRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.scripts = renderer
		}
	}
}

// WithAssetURL overrides the URL of the browser runtime. An empty URL skips
// registering the runtime, for pages that bundle it themselves.
func WithAssetURL(url string) Option {
	return func(cfg *config) {
		cfg.assetURL = strings.TrimSpace(url)
	}
}

// WithScriptFiles registers extra script files (jQuery, for instance) ahead
// of the runtime.
func WithScriptFiles(srcs ...string) Option {
	return func(cfg *config) {
		cfg.scriptFiles = append(cfg.scriptFiles, srcs...)
	}
}

// WithTemplatePolicy sanitizes the extracted item template with policy
// before it is sent to the client. See FormPolicy.
func WithTemplatePolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.policy = policy
	}
}

// Widget renders one dynamic form container. It is immutable after New and
// may be reused across pages.
type Widget struct {
	cfg         Config
	options     Options
	scripts     template.TemplateRenderer
	assetURL    string
	scriptFiles []string
	policy      *bluemonday.Policy
}

// Result is the outcome of post-processing captured markup.
type Result struct {
	// Options holds the client options including the extracted template.
	Options Options
	// Encoded is the JSON encoding of Options.
	Encoded []byte
	// HashVar is the identifier derived from Encoded.
	HashVar string
	// Markup is the body to emit, with initial items stripped when required.
	Markup string
}

// New validates cfg and prepares the client options.
func New(cfg Config, options ...Option) (*Widget, error) {
	cfg = cfg.Normalize()
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	settings := config{assetURL: DefaultAssetURL}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&settings)
	}

	if settings.scripts == nil {
		renderer, err := defaultScriptRenderer()
		if err != nil {
			return nil, err
		}
		settings.scripts = renderer
	}

	return &Widget{
		cfg:         cfg,
		options:     BuildOptions(cfg),
		scripts:     settings.scripts,
		assetURL:    settings.assetURL,
		scriptFiles: append([]string(nil), settings.scriptFiles...),
		policy:      settings.policy,
	}, nil
}

// Config returns a copy of the normalized configuration.
func (w *Widget) Config() Config {
	cfg := w.cfg
	cfg.Fields = append([]string(nil), w.cfg.Fields...)
	return cfg
}

// Options returns the client options without a template.
func (w *Widget) Options() Options {
	opts := w.options
	opts.Fields = append([]FieldRef(nil), w.options.Fields...)
	return opts
}

// Capture runs render against an in-memory buffer and returns what it wrote.
func (w *Widget) Capture(render func(io.Writer) error) (string, error) {
	if render == nil {
		return "", errors.New("widget: capture requires a render func")
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return "", fmt.Errorf("widget: capture body: %w", err)
	}
	return buf.String(), nil
}

// CaptureTemplate renders the named template as the widget body.
func (w *Widget) CaptureTemplate(renderer template.TemplateRenderer, name string, data any) (string, error) {
	if renderer == nil {
		return "", errors.New("widget: capture requires a template renderer")
	}
	return w.Capture(func(out io.Writer) error {
		_, err := renderer.RenderTemplate(name, data, out)
		return err
	})
}

// Process extracts the item template from markup, strips the initial items
// when the config asks for it, and encodes the client options.
func (w *Widget) Process(markup string) (Result, error) {
	tpl, err := ExtractTemplate(markup, w.cfg.Item)
	if err != nil {
		return Result{}, err
	}
	tpl = sanitizeTemplate(w.policy, tpl)

	final := markup
	if ShouldStrip(w.cfg) {
		if final, err = StripItems(markup, w.cfg.Item); err != nil {
			return Result{}, err
		}
	}

	opts := w.Options()
	opts.Template = tpl

	encoded, err := opts.Encode()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Options: opts,
		Encoded: encoded,
		HashVar: HashName(encoded),
		Markup:  final,
	}, nil
}

// Run processes markup and returns the wrapper element. The first widget for
// a container on p registers the options variable and client scripts; later
// widgets for the same container reuse that identifier and add nothing to
// the page. Nothing is registered when an error is returned.
func (w *Widget) Run(p *page.Page, markup string) (string, error) {
	if p == nil {
		return "", errors.New("widget: page is required")
	}

	result, err := w.Process(markup)
	if err != nil {
		return "", err
	}

	if id, ok := p.Lookup(w.cfg.Container); ok {
		return w.wrap(result.Markup, id)
	}

	scripts, err := w.renderScripts(result.HashVar)
	if err != nil {
		return "", err
	}
	out, err := w.wrap(result.Markup, result.HashVar)
	if err != nil {
		return "", err
	}

	id, _ := p.Register(w.cfg.Container, result.HashVar)
	p.RegisterJS(page.PositionHead, fmt.Sprintf("var %s = %s;", id, result.Encoded))
	for _, src := range w.scriptFiles {
		p.RegisterScriptFile(src)
	}
	p.RegisterScriptFile(w.assetURL)
	p.RegisterJS(page.PositionReady, scripts.ready)
	p.RegisterJS(page.PositionLoad, scripts.load)

	return out, nil
}

// Render captures the body through render and runs the widget on p.
func (w *Widget) Render(p *page.Page, render func(io.Writer) error) (string, error) {
	markup, err := w.Capture(render)
	if err != nil {
		return "", err
	}
	return w.Run(p, markup)
}
