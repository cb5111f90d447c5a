package widget

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// FormPolicy returns a shared sanitizer for item templates. It keeps form
// controls, layout elements and the attributes the browser runtime relies on
// (ids, names, classes, data-*), and drops scripts and event handlers.
func FormPolicy() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()

		policy.AllowElements(
			"div", "span", "p", "label", "fieldset", "legend", "small", "strong",
			"em", "b", "i", "ul", "ol", "li", "table", "thead", "tbody", "tr",
			"th", "td", "input", "select", "option", "optgroup", "textarea", "button",
		)

		policy.AllowAttrs("id", "class", "title", "role", "aria-label", "aria-hidden").Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs(
			"name", "type", "value", "placeholder", "checked", "disabled", "readonly",
			"required", "min", "max", "step", "minlength", "maxlength", "pattern",
			"autocomplete",
		).OnElements("input")
		policy.AllowAttrs("name", "disabled", "required", "multiple", "size").OnElements("select")
		policy.AllowAttrs("value", "selected", "disabled", "label").OnElements("option")
		policy.AllowAttrs("label", "disabled").OnElements("optgroup")
		policy.AllowAttrs(
			"name", "rows", "cols", "placeholder", "disabled", "readonly", "required",
			"minlength", "maxlength",
		).OnElements("textarea")
		policy.AllowAttrs("type", "name", "value", "disabled").OnElements("button")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("colspan", "rowspan").OnElements("td", "th")

		formPolicy = policy
	})
	return formPolicy
}

func sanitizeTemplate(policy *bluemonday.Policy, template string) string {
	if policy == nil {
		return template
	}
	return strings.TrimSpace(policy.Sanitize(template))
}
