package widget

import (
	"github.com/goliatone/go-dynamicform/pkg/model"
)

// WidgetName prefixes every generated options identifier.
const WidgetName = "dynamicform"

// Insert positions accepted by Config.InsertPosition.
const (
	InsertBottom = "bottom"
	InsertTop    = "top"
)

const (
	DefaultMin   = 1
	DefaultLimit = 999
)

// Config describes one dynamic form container. Start from DefaultConfig:
// Normalize cannot tell an unset Min from an explicit zero, so a literal
// Config runs with Min 0 and strips the initial items of a new record.
type Config struct {
	// Container is the class token of the wrapper element. Only word
	// characters are allowed: it is a single token, not a CSS selector.
	Container string `yaml:"container"`
	// Body selects the element new items are inserted into.
	Body string `yaml:"body"`
	// Item selects one repeatable item.
	Item string `yaml:"item"`
	// FormID is the id of the enclosing form element.
	FormID       string `yaml:"formId"`
	InsertButton string `yaml:"insertButton"`
	DeleteButton string `yaml:"deleteButton"`
	// InsertPosition is InsertTop or InsertBottom.
	InsertPosition string `yaml:"insertPosition"`
	// Min is the minimum number of items. Zero lets a new record start
	// without rows.
	Min int `yaml:"min"`
	// Limit is the maximum number of items.
	Limit int `yaml:"limit"`
	// Fields lists the attribute names of one item, in order.
	Fields []string `yaml:"fields"`
	// Record resolves input ids and names.
	Record model.Record `yaml:"-"`
}

// DefaultConfig returns a Config with the default insert position, minimum
// and limit set.
func DefaultConfig() Config {
	return Config{
		InsertPosition: InsertBottom,
		Min:            DefaultMin,
		Limit:          DefaultLimit,
	}
}

// Normalize fills an empty insert position and a non-positive limit with
// their defaults and copies Fields so later edits by the caller do not leak
// into the widget.
func (c Config) Normalize() Config {
	if c.InsertPosition == "" {
		c.InsertPosition = InsertBottom
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.Fields != nil {
		c.Fields = append([]string(nil), c.Fields...)
	}
	return c
}
