package model

import (
	"regexp"
	"strings"
)

// IndexPlaceholder marks the per-row index inside generated ids and names.
const IndexPlaceholder = "{}"

// Record is the capability a bound data record must provide so the widget can
// describe its repeated inputs.
type Record interface {
	// InputID returns the id attribute for the attribute expression.
	InputID(attribute string) string
	// InputName returns the name attribute for the attribute expression.
	InputName(attribute string) string
	// IsNewRecord reports whether the record has not been persisted yet.
	IsNewRecord() bool
}

// FormRecord is a Record keyed by a form name, producing tabular input names
// like `Contact[{}][email]`.
type FormRecord struct {
	Form string `json:"form" yaml:"form"`
	New  bool   `json:"new" yaml:"new"`
}

var _ Record = FormRecord{}

// NewRecord builds a FormRecord for the given form name.
func NewRecord(form string, isNew bool) FormRecord {
	return FormRecord{Form: strings.TrimSpace(form), New: isNew}
}

// FormName returns the name used as the outer key of input names.
func (r FormRecord) FormName() string {
	return r.Form
}

// IsNewRecord implements Record.
func (r FormRecord) IsNewRecord() bool {
	return r.New
}

// InputName implements Record. Attribute expressions carry an optional prefix
// and suffix around the attribute, e.g. `[{}]email` or `[{}]phones[0]`.
// Without a form name the attribute leads and the prefix follows it, so
// `[{}]email` becomes `email[{}]`.
func (r FormRecord) InputName(attribute string) string {
	prefix, attr, suffix := ParseAttribute(attribute)
	if attr == "" {
		return attribute
	}
	if r.Form == "" {
		return attr + prefix + suffix
	}
	return r.Form + prefix + "[" + attr + "]" + suffix
}

// InputID implements Record.
func (r FormRecord) InputID(attribute string) string {
	return InputIDFromName(r.InputName(attribute))
}

var idReplacer = strings.NewReplacer(
	"[]", "",
	"][", "-",
	"[", "-",
	"]", "",
	" ", "-",
	".", "-",
)

// InputIDFromName derives an id attribute from an input name:
// `Contact[{}][email]` becomes `contact-{}-email`.
func InputIDFromName(name string) string {
	return strings.ToLower(idReplacer.Replace(name))
}

var attributePattern = regexp.MustCompile(`^(.*\])?([\w.+]+)(\[.*)?$`)

// ParseAttribute splits an attribute expression into prefix, attribute name
// and suffix. Expressions that do not contain a bare attribute return empty
// parts.
func ParseAttribute(expr string) (prefix, attribute, suffix string) {
	match := attributePattern.FindStringSubmatch(strings.TrimSpace(expr))
	if match == nil {
		return "", "", ""
	}
	return match[1], match[2], match[3]
}
