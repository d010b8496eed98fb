package settings

import "errors"

// Sentinel errors for the settings registry.
var (
	// ErrUnknownSetting is returned for names that were never registered.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrInvalidType is returned when a setting declares an unknown type.
	ErrInvalidType = errors.New("invalid setting type")

	// ErrEmptyName is returned when a setting has no name.
	ErrEmptyName = errors.New("setting name cannot be empty")
)
