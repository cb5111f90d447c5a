package widget_test

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynamicform/pkg/model"
	"github.com/goliatone/go-dynamicform/pkg/page"
	"github.com/goliatone/go-dynamicform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-dynamicform/pkg/testsupport"
	"github.com/goliatone/go-dynamicform/pkg/widget"
)

//go:embed testdata/templates/*.tpl
var bodyTemplates embed.FS

func contactConfig() widget.Config {
	cfg := widget.DefaultConfig()
	cfg.Container = "contacts"
	cfg.Body = ".container-items"
	cfg.Item = ".item"
	cfg.FormID = "contact-form"
	cfg.InsertButton = ".add-item"
	cfg.DeleteButton = ".remove-item"
	cfg.Fields = []string{"email"}
	cfg.Record = testsupport.NewContact(true)
	return cfg
}

func mustWidget(t *testing.T, cfg widget.Config, opts ...widget.Option) *widget.Widget {
	t.Helper()
	w, err := widget.New(cfg, opts...)
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	return w
}

const endToEndMarkup = `<div class="cf"><div class="item"><input id="i" name="Contact[0][email]"></div></div>`

func endToEndConfig() widget.Config {
	cfg := widget.DefaultConfig()
	cfg.Container = "cf"
	cfg.Body = ".cf"
	cfg.Item = ".item"
	cfg.FormID = "f1"
	cfg.InsertButton = ".add-item"
	cfg.DeleteButton = ".remove-item"
	cfg.Fields = []string{"email"}
	cfg.Min = 1
	cfg.Record = testsupport.NewContact(true)
	return cfg
}

func TestWidget_EndToEnd(t *testing.T) {
	markup := endToEndMarkup
	w := mustWidget(t, endToEndConfig())
	p := page.New()

	out, err := w.Run(p, markup)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	result, err := w.Process(markup)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	wantTemplate := `<div class="item"><input id="i" name="Contact[0][email]"/></div>`
	if result.Options.Template != wantTemplate {
		t.Fatalf("template mismatch\nwant: %s\n got: %s", wantTemplate, result.Options.Template)
	}

	wantEncoded := `{"deleteButton":".remove-item","fields":[{"id":"contact-{}-email","name":"Contact[{}][email]"}],` +
		`"formId":"f1","insertButton":".add-item","insertPosition":"bottom","limit":999,"min":1,` +
		`"widgetBody":".cf","widgetContainer":"cf","widgetItem":".item",` +
		`"template":"\u003cdiv class=\"item\"\u003e\u003cinput id=\"i\" name=\"Contact[0][email]\"/\u003e\u003c/div\u003e"}`
	if diff := cmp.Diff(wantEncoded, string(result.Encoded)); diff != "" {
		t.Fatalf("encoded options mismatch (-want +got):\n%s", diff)
	}

	if result.HashVar != "dynamicform_56e051e3" {
		t.Fatalf("unexpected hash var %q", result.HashVar)
	}

	wantOut := `<div class="cf" data-dynamicform="dynamicform_56e051e3">` + markup + `</div>`
	if out != wantOut {
		t.Fatalf("wrapper mismatch\nwant: %s\n got: %s", wantOut, out)
	}

	if got := p.HeadHTML(); got != "<script>var dynamicform_56e051e3 = "+wantEncoded+";</script>" {
		t.Fatalf("unexpected head scripts: %s", got)
	}
	if diff := cmp.Diff([]string{widget.DefaultAssetURL}, p.ScriptFiles()); diff != "" {
		t.Fatalf("script files mismatch (-want +got):\n%s", diff)
	}

	ready := p.Scripts(page.PositionReady)
	if len(ready) != 1 {
		t.Fatalf("expected one ready script, got %d", len(ready))
	}
	for _, fragment := range []string{
		`jQuery("#f1").on("click", ".add-item", function (e) {`,
		`jQuery(".cf").triggerHandler("beforeInsert", [jQuery(this)]);`,
		`jQuery(".cf").yiiDynamicForm("addItem", dynamicform_56e051e3, e, jQuery(this));`,
		`jQuery("#f1").on("click", ".remove-item", function (e) {`,
		`jQuery(".cf").yiiDynamicForm("deleteItem", dynamicform_56e051e3, e, jQuery(this));`,
	} {
		if !strings.Contains(ready[0], fragment) {
			t.Fatalf("ready script missing %q:\n%s", fragment, ready[0])
		}
	}

	load := p.Scripts(page.PositionLoad)
	if diff := cmp.Diff([]string{`jQuery("#f1").yiiDynamicForm(dynamicform_56e051e3);`}, load); diff != "" {
		t.Fatalf("load scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_EndBodyGolden(t *testing.T) {
	p := page.New()
	if _, err := mustWidget(t, endToEndConfig()).Run(p, endToEndMarkup); err != nil {
		t.Fatalf("run: %v", err)
	}

	golden := filepath.Join("testdata", "endbody.golden")
	got := p.EndBodyHTML()
	if testsupport.WriteMaybeGolden(t, golden, []byte(got)) {
		return
	}
	if diff := testsupport.CompareGolden(testsupport.MustReadGoldenString(t, golden), got); diff != "" {
		t.Fatalf("end of body scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_RunDeduplicatesContainer(t *testing.T) {
	p := page.New()

	first := mustWidget(t, contactConfig())
	firstOut, err := first.Run(p, testsupport.ContactMarkup)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstID, _ := p.Lookup("contacts")

	cfg := contactConfig()
	cfg.Fields = []string{"email", "phone"}
	second := mustWidget(t, cfg)

	result, err := second.Process(testsupport.ContactMarkup)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.HashVar == firstID {
		t.Fatalf("expected different options to hash differently")
	}

	secondOut, err := second.Run(p, testsupport.ContactMarkup)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if firstOut != secondOut {
		t.Fatalf("expected second render to reuse the first identifier\nfirst:  %s\nsecond: %s", firstOut, secondOut)
	}
	if got := p.Scripts(page.PositionHead); len(got) != 1 {
		t.Fatalf("expected options serialized once, got %d head scripts", len(got))
	}
	if strings.Contains(p.HeadHTML(), result.HashVar) {
		t.Fatalf("second widget options must not be serialized")
	}
	if got := p.Scripts(page.PositionLoad); len(got) != 1 {
		t.Fatalf("expected one load script, got %d", len(got))
	}
}

func TestWidget_RunSeparateContainers(t *testing.T) {
	p := page.New()

	if _, err := mustWidget(t, contactConfig()).Run(p, testsupport.ContactMarkup); err != nil {
		t.Fatalf("run contacts: %v", err)
	}

	cfg := contactConfig()
	cfg.Container = "phones"
	if _, err := mustWidget(t, cfg).Run(p, testsupport.ContactMarkup); err != nil {
		t.Fatalf("run phones: %v", err)
	}

	if diff := cmp.Diff([]string{"contacts", "phones"}, p.Containers()); diff != "" {
		t.Fatalf("containers mismatch (-want +got):\n%s", diff)
	}
	if got := p.Scripts(page.PositionHead); len(got) != 2 {
		t.Fatalf("expected two option variables, got %d", len(got))
	}
	if got := p.ScriptFiles(); len(got) != 1 {
		t.Fatalf("expected runtime registered once, got %v", got)
	}
}

func TestWidget_StripsItemsForNewRecordWithZeroMin(t *testing.T) {
	cfg := contactConfig()
	cfg.Min = 0

	result, err := mustWidget(t, cfg).Process(testsupport.ContactMarkup)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if strings.Contains(result.Markup, `class="item"`) {
		t.Fatalf("expected all items stripped, got %s", result.Markup)
	}
	if !strings.HasPrefix(result.Options.Template, `<div class="item">`) {
		t.Fatalf("template must be extracted before stripping, got %q", result.Options.Template)
	}
}

func TestWidget_KeepsItemsOtherwise(t *testing.T) {
	cases := map[string]func(*widget.Config){
		"min one":      func(c *widget.Config) { c.Min = 1 },
		"saved record": func(c *widget.Config) { c.Min = 0; c.Record = testsupport.NewContact(false) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := contactConfig()
			mutate(&cfg)

			result, err := mustWidget(t, cfg).Process(testsupport.ContactMarkup)
			if err != nil {
				t.Fatalf("process: %v", err)
			}
			if result.Markup != testsupport.ContactMarkup {
				t.Fatalf("expected markup unchanged, got %s", result.Markup)
			}
		})
	}
}

func TestWidget_TemplateNotFoundLeavesPageUntouched(t *testing.T) {
	p := page.New()
	w := mustWidget(t, contactConfig())

	out, err := w.Run(p, `<div class="container-items"></div>`)
	if !errors.Is(err, widget.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	if len(p.Containers()) != 0 || p.HeadHTML() != "" || p.EndBodyHTML() != "" {
		t.Fatalf("page must stay empty after a failed render")
	}
}

func TestWidget_RunRequiresPage(t *testing.T) {
	if _, err := mustWidget(t, contactConfig()).Run(nil, testsupport.ContactMarkup); err == nil {
		t.Fatalf("expected error without page")
	}
}

func TestWidget_CaptureTemplate(t *testing.T) {
	templates, err := fs.Sub(bodyTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithFS(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	w := mustWidget(t, contactConfig())
	markup, err := w.CaptureTemplate(engine, "contacts", map[string]any{
		"contacts": []map[string]string{{"email": "ada@example.com"}, {"email": "alan@example.com"}},
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}

	want := `<div class="container-items">` +
		`<div class="item"><input id="contact-0-email" name="Contact[0][email]" value="ada@example.com"/></div>` +
		`<div class="item"><input id="contact-1-email" name="Contact[1][email]" value="alan@example.com"/></div>` +
		`</div>`
	if diff := cmp.Diff(want, markup); diff != "" {
		t.Fatalf("captured markup mismatch (-want +got):\n%s", diff)
	}

	result, err := w.Process(markup)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Options.Template != `<div class="item"><input id="contact-0-email" name="Contact[0][email]" value="ada@example.com"/></div>` {
		t.Fatalf("unexpected template %s", result.Options.Template)
	}
}

func TestWidget_Render(t *testing.T) {
	p := page.New()
	w := mustWidget(t, contactConfig())

	out, err := w.Render(p, func(out io.Writer) error {
		_, err := io.WriteString(out, testsupport.ContactMarkup)
		return err
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	id, ok := p.Lookup("contacts")
	if !ok {
		t.Fatalf("expected container registered")
	}
	if out != fmt.Sprintf(`<div class="contacts" data-dynamicform="%s">%s</div>`, id, testsupport.ContactMarkup) {
		t.Fatalf("unexpected output %s", out)
	}

	_, err = w.Render(page.New(), func(io.Writer) error { return errors.New("boom") })
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected capture error, got %v", err)
	}
}

func TestWidget_ScriptFilesAndAssetURL(t *testing.T) {
	p := page.New()
	w := mustWidget(t, contactConfig(),
		widget.WithScriptFiles("https://code.jquery.com/jquery-3.7.1.min.js"),
		widget.WithAssetURL("/static/dynamicform.js"),
	)

	if _, err := w.Run(p, testsupport.ContactMarkup); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"https://code.jquery.com/jquery-3.7.1.min.js", "/static/dynamicform.js"}
	if diff := cmp.Diff(want, p.ScriptFiles()); diff != "" {
		t.Fatalf("script files mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_TemplatePolicy(t *testing.T) {
	markup := `<div class="container-items"><div class="item" data-row="0">` +
		`<input name="Contact[0][email]" onfocus="steal()"/><script>alert(1)</script>` +
		`</div></div>`

	w := mustWidget(t, contactConfig(), widget.WithTemplatePolicy(widget.FormPolicy()))
	result, err := w.Process(markup)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	tpl := result.Options.Template
	for _, keep := range []string{`class="item"`, `data-row="0"`, `name="Contact[0][email]"`} {
		if !strings.Contains(tpl, keep) {
			t.Fatalf("sanitized template lost %q: %s", keep, tpl)
		}
	}
	for _, drop := range []string{"onfocus", "<script", "alert"} {
		if strings.Contains(tpl, drop) {
			t.Fatalf("sanitized template kept %q: %s", drop, tpl)
		}
	}
	if result.Markup != markup {
		t.Fatalf("sanitizing must only affect the template")
	}
}

func TestWidget_OptionsIsolatedFromResults(t *testing.T) {
	w := mustWidget(t, contactConfig())

	result, err := w.Process(testsupport.ContactMarkup)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	result.Options.Fields[0].Name = "mutated"

	if got := w.Options().Fields[0].Name; got != "Contact[{}][email]" {
		t.Fatalf("widget options changed through result: %q", got)
	}
	if w.Options().Template != "" {
		t.Fatalf("widget options must not carry a template")
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := widget.LoadConfig(filepath.Join("testdata", "contact.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Container != "contacts" || cfg.InsertPosition != widget.InsertTop || cfg.Min != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Limit != widget.DefaultLimit {
		t.Fatalf("expected default limit, got %d", cfg.Limit)
	}
	if diff := cmp.Diff([]string{"name", "email"}, cfg.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.Record(model.NewRecord("Contact", true)), cfg.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	if _, err := widget.New(cfg); err != nil {
		t.Fatalf("loaded config must validate: %v", err)
	}
}

func TestParseConfig_DefaultsAndRoundTrip(t *testing.T) {
	cfg, err := widget.ParseConfig([]byte("container: cf\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Min != widget.DefaultMin || cfg.Limit != widget.DefaultLimit || cfg.InsertPosition != widget.InsertBottom {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Record != nil {
		t.Fatalf("expected no record without a record block")
	}

	full := contactConfig()
	data, err := widget.MarshalConfig(full)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := widget.ParseConfig(data)
	if err != nil {
		t.Fatalf("parse marshalled: %v", err)
	}
	if diff := cmp.Diff(full, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := widget.ParseConfig([]byte("fields: [unterminated")); err == nil {
		t.Fatalf("expected yaml error")
	}
}
