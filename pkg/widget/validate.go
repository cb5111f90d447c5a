package widget

import (
	"reflect"
	"regexp"

	"github.com/goliatone/go-dynamicform/pkg/model"
)

var containerPattern = regexp.MustCompile(`^\w+$`)

// Validate checks cfg and returns a *ConfigError for the first violated rule.
// Rules run in a fixed order: container, body, item, record, form id, insert
// position, fields, then the min/limit bounds.
func Validate(cfg Config) error {
	if cfg.Container == "" || !containerPattern.MatchString(cfg.Container) {
		return configError("widgetContainer", "allowed only alphanumeric characters plus underline: [A-Za-z0-9_]")
	}
	if cfg.Body == "" {
		return configError("widgetBody", "must be set")
	}
	if cfg.Item == "" {
		return configError("widgetItem", "must be set")
	}
	if isNilRecord(cfg.Record) {
		return configError("model", "must be set and implement model.Record")
	}
	if cfg.FormID == "" {
		return configError("formId", "must be set")
	}
	if cfg.InsertPosition != InsertBottom && cfg.InsertPosition != InsertTop {
		return configError("insertPosition", "allowed values: %q or %q, got %q", InsertBottom, InsertTop, cfg.InsertPosition)
	}
	if len(cfg.Fields) == 0 {
		return configError("formFields", "must be set")
	}
	if cfg.Min < 0 {
		return configError("min", "must not be negative, got %d", cfg.Min)
	}
	if cfg.Limit < 1 || cfg.Limit < cfg.Min {
		return configError("limit", "must be at least 1 and not below min (%d), got %d", cfg.Min, cfg.Limit)
	}
	return nil
}

func isNilRecord(record model.Record) bool {
	if record == nil {
		return true
	}
	rv := reflect.ValueOf(record)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
