// Package model defines the bound-record capability the dynamic form widget
// consumes. A Record resolves attribute expressions such as `[{}]email` into
// the `id` and `name` attributes of a form input and reports whether the
// underlying entity has been persisted yet. The `{}` placeholder stands for
// the row index and is replaced by the browser runtime when a row is cloned.
package model
