package widget

import (
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/goliatone/go-dynamicform/pkg/model"
)

// FieldRef is the id/name pair of one input inside an item. Both contain
// model.IndexPlaceholder where the row index goes.
type FieldRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Options is the client configuration serialized into the page. Field order
// fixes the JSON key order and therefore the identifier hash.
type Options struct {
	DeleteButton    string     `json:"deleteButton"`
	Fields          []FieldRef `json:"fields"`
	FormID          string     `json:"formId"`
	InsertButton    string     `json:"insertButton"`
	InsertPosition  string     `json:"insertPosition"`
	Limit           int        `json:"limit"`
	Min             int        `json:"min"`
	WidgetBody      string     `json:"widgetBody"`
	WidgetContainer string     `json:"widgetContainer"`
	WidgetItem      string     `json:"widgetItem"`
	Template        string     `json:"template"`
}

// BuildOptions derives the client options from a validated config. The
// template is left empty until the body markup has been processed.
func BuildOptions(cfg Config) Options {
	fields := make([]FieldRef, 0, len(cfg.Fields))
	for _, field := range cfg.Fields {
		attribute := "[" + model.IndexPlaceholder + "]" + field
		fields = append(fields, FieldRef{
			ID:   cfg.Record.InputID(attribute),
			Name: cfg.Record.InputName(attribute),
		})
	}

	return Options{
		DeleteButton:    cfg.DeleteButton,
		Fields:          fields,
		FormID:          cfg.FormID,
		InsertButton:    cfg.InsertButton,
		InsertPosition:  cfg.InsertPosition,
		Limit:           cfg.Limit,
		Min:             cfg.Min,
		WidgetBody:      cfg.Body,
		WidgetContainer: cfg.Container,
		WidgetItem:      cfg.Item,
	}
}

// marshalOptions is swapped in tests.
var marshalOptions = json.Marshal

// Encode serializes the options as compact JSON. Options built by
// BuildOptions always encode; a failure is reported as ErrSerialization.
func (o Options) Encode() ([]byte, error) {
	encoded, err := marshalOptions(o)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return encoded, nil
}

// HashName names the page variable holding the encoded options: WidgetName,
// an underscore, and the CRC-32 of the encoding as eight hex digits.
func HashName(encoded []byte) string {
	return fmt.Sprintf("%s_%08x", WidgetName, crc32.ChecksumIEEE(encoded))
}
