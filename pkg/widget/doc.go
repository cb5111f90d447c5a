// Package widget renders dynamic form containers: groups of form inputs the
// user can repeat ("add another phone number") inside an HTML form.
//
// A Widget is built from a validated Config and used in three steps:
//
//	w, err := widget.New(cfg)
//	markup, err := w.CaptureTemplate(engine, "contacts", data) // render the body
//	html, err := w.Run(p, markup)                              // post-process and emit
//
// Run extracts the first item matching Config.Item as the client template,
// strips the initial items for new records when Config.Min is zero, encodes
// the client options as JSON and registers them on the page once per
// container. The returned wrapper carries the registered identifier in its
// data-dynamicform attribute.
package widget
