package widget

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynamicform/pkg/model"
)

// configFile is the on-disk shape of a Config: the config keys plus an
// optional record block, e.g.
//
//	container: contacts
//	item: .item
//	record:
//	  form: Contact
//	  new: true
type configFile struct {
	Config `yaml:",inline"`
	Record *model.FormRecord `yaml:"record,omitempty"`
}

// LoadConfig reads a YAML config file. Missing keys keep the DefaultConfig
// values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("widget: read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("widget: config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	doc := configFile{Config: DefaultConfig()}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	cfg := doc.Config
	if doc.Record != nil {
		cfg.Record = model.NewRecord(doc.Record.Form, doc.Record.New)
	}
	return cfg, nil
}

// MarshalConfig encodes cfg as YAML. Only model.FormRecord records are
// written; other record types are left for the caller to bind.
func MarshalConfig(cfg Config) ([]byte, error) {
	doc := configFile{Config: cfg}
	if record, ok := cfg.Record.(model.FormRecord); ok {
		doc.Record = &record
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("widget: encode config: %w", err)
	}
	return out, nil
}
