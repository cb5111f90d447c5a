package widget

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/goliatone/go-dynamicform/pkg/render/template"
	"github.com/goliatone/go-dynamicform/pkg/render/template/gotemplate"
)

// Template names a custom script renderer must provide.
const (
	ReadyTemplate   = "ready"
	LoadTemplate    = "load"
	WrapperTemplate = "wrapper"
)

//go:embed scripts/*.tpl
var embeddedScripts embed.FS

var (
	scriptEngineOnce sync.Once
	scriptEngine     *gotemplate.Engine
	scriptEngineErr  error
)

// ScriptsFS exposes the built-in wrapper and client wiring templates.
func ScriptsFS() fs.FS {
	sub, err := fs.Sub(embeddedScripts, "scripts")
	if err != nil {
		return embeddedScripts
	}
	return sub
}

func defaultScriptRenderer() (template.TemplateRenderer, error) {
	scriptEngineOnce.Do(func() {
		scriptEngine, scriptEngineErr = gotemplate.New(gotemplate.WithFS(ScriptsFS()))
	})
	if scriptEngineErr != nil {
		return nil, fmt.Errorf("widget: configure script renderer: %w", scriptEngineErr)
	}
	return scriptEngine, nil
}

type clientScripts struct {
	ready string
	load  string
}

func (w *Widget) renderScripts(id string) (clientScripts, error) {
	data := map[string]any{
		"id":           id,
		"form":         "#" + w.cfg.FormID,
		"container":    "." + w.cfg.Container,
		"insertButton": w.cfg.InsertButton,
		"deleteButton": w.cfg.DeleteButton,
	}

	ready, err := w.scripts.RenderTemplate(ReadyTemplate, data)
	if err != nil {
		return clientScripts{}, fmt.Errorf("widget: render ready script: %w", err)
	}
	load, err := w.scripts.RenderTemplate(LoadTemplate, data)
	if err != nil {
		return clientScripts{}, fmt.Errorf("widget: render load script: %w", err)
	}
	return clientScripts{ready: ready, load: load}, nil
}

func (w *Widget) wrap(content, id string) (string, error) {
	out, err := w.scripts.RenderTemplate(WrapperTemplate, map[string]any{
		"container": w.cfg.Container,
		"id":        id,
		"content":   content,
	})
	if err != nil {
		return "", fmt.Errorf("widget: render wrapper: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
