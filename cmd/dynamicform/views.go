package main

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/goliatone/go-dynamicform/pkg/page"
	"github.com/goliatone/go-dynamicform/pkg/render/template"
	"github.com/goliatone/go-dynamicform/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedViews embed.FS

func newViews() (*gotemplate.Engine, error) {
	sub, err := fs.Sub(embeddedViews, "templates")
	if err != nil {
		return nil, err
	}
	return gotemplate.New(gotemplate.WithFS(sub))
}

type document struct {
	Title   string
	Head    string
	Body    string
	EndBody string
}

func pageDocument(title, body string, p *page.Page) document {
	return document{Title: title, Head: p.HeadHTML(), Body: body, EndBody: p.EndBodyHTML()}
}

func writeDocument(views template.TemplateRenderer, out io.Writer, doc document) error {
	_, err := views.RenderTemplate("document", map[string]any{
		"title":   doc.Title,
		"head":    doc.Head,
		"body":    doc.Body,
		"endBody": doc.EndBody,
	}, out)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}
