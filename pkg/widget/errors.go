package widget

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration matches every *ConfigError.
	ErrInvalidConfiguration = errors.New("widget: invalid configuration")
	// ErrTemplateNotFound reports that no element matched the item selector.
	ErrTemplateNotFound = errors.New("widget: template not found")
	// ErrSerialization reports that the client options could not be encoded.
	ErrSerialization = errors.New("widget: serialization failure")
)

// ConfigError identifies the configuration property that failed validation.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("widget: invalid configuration to property %q: %s", e.Field, e.Message)
}

// Is reports ErrInvalidConfiguration as a match.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func configError(field, format string, args ...any) error {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
