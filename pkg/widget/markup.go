package widget

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractTemplate returns the outer HTML of the first element in markup that
// matches the item selector, trimmed of surrounding whitespace. markup itself
// is left untouched; the lookup runs on a freshly parsed tree. Items may be
// table parts, e.g. bare `<tr class="item">` rows.
func ExtractTemplate(markup, item string) (string, error) {
	doc, err := parseFragment(markup, item)
	if err != nil {
		return "", err
	}

	first := doc.Find(item).First()
	if first.Length() == 0 {
		return "", fmt.Errorf("%w: no element matches %q", ErrTemplateNotFound, item)
	}

	out, err := goquery.OuterHtml(first)
	if err != nil {
		return "", fmt.Errorf("widget: render template: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// StripItems removes every element matching the item selector and returns
// the remaining markup. markup must be a body fragment: document-level tags
// (<html>, <head>, <body>) are dropped while head content such as <title>
// is kept in place.
func StripItems(markup, item string) (string, error) {
	doc, err := parseFragment(markup, item)
	if err != nil {
		return "", err
	}

	// Find resolves the full match set before Remove detaches anything.
	doc.Find(item).Remove()

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("widget: render markup: %w", err)
	}
	return out, nil
}

// ShouldStrip reports whether the initial items must be dropped: the record
// is new and the container may be empty.
func ShouldStrip(cfg Config) bool {
	return cfg.Min == 0 && cfg.Record != nil && cfg.Record.IsNewRecord()
}

// parseFragment parses markup as the content of a <template> element, whose
// insertion mode accepts table parts (<tr>, <td>, <tbody>) at the top level,
// and wraps the resulting nodes in a detached root so queries only see the
// fragment.
func parseFragment(markup, item string) (*goquery.Document, error) {
	if _, err := cascadia.Compile(item); err != nil {
		return nil, configError("widgetItem", "invalid selector %q: %v", item, err)
	}

	context := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Template.String(),
		DataAtom: atom.Template,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("widget: parse markup: %w", err)
	}

	root := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Body.String(),
		DataAtom: atom.Body,
	}
	for _, node := range nodes {
		root.AppendChild(node)
	}
	return goquery.NewDocumentFromNode(root), nil
}
