package settings

import (
	"fmt"
)

// Type is the declared value type of a setting.
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeBoolean, TypeInteger, TypeArray, TypeObject:
		return true
	}
	return false
}

// Sanitizer cleans a raw value before it is stored.
type Sanitizer func(v any) any

// Setting defines a registered setting.
type Setting struct {
	// Group is the settings group the option belongs to.
	Group string

	// Name is the option name under which the value is stored.
	Name string

	// Type is the value type.
	Type Type

	// Description is human-readable documentation.
	Description string

	// ShowInREST exposes the setting through the host's REST settings view.
	ShowInREST bool

	// Default is returned when no value has been stored.
	Default any

	// Sanitize runs on every write. Nil means the value is stored as given.
	Sanitize Sanitizer

	// SanitizerName names Sanitize for listings ("" when nil).
	SanitizerName string
}

// Check reports whether value matches the setting's type.
func (s *Setting) Check(value any) error {
	switch s.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%s: expected string, got %T", s.Name, value)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s: expected boolean, got %T", s.Name, value)
		}
	case TypeInteger:
		switch value.(type) {
		case int, int64:
		default:
			return fmt.Errorf("%s: expected integer, got %T", s.Name, value)
		}
	case TypeArray:
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("%s: expected array, got %T", s.Name, value)
		}
	case TypeObject:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("%s: expected object, got %T", s.Name, value)
		}
	default:
		return fmt.Errorf("%s: %w: %q", s.Name, ErrInvalidType, s.Type)
	}
	return nil
}
