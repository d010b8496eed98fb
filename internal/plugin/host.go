package plugin

import (
	"context"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/settings"
)

// Host is the platform the plugin runs inside.
type Host interface {
	// Hooks is the host's action dispatcher.
	Hooks() hook.Dispatcher

	// Options is the host's persisted option store.
	Options() OptionStore

	// Settings is the host's settings registry.
	Settings() SettingsRegistry

	// TextDomains loads translations.
	TextDomains() TextDomainLoader

	// Locale is the active locale in host form, e.g. "de_DE".
	Locale() string
}

// OptionStore reads and writes named options.
type OptionStore interface {
	GetOption(ctx context.Context, name string) (any, bool, error)
	UpdateOption(ctx context.Context, name string, value any) (bool, error)
	AddOption(ctx context.Context, name string, value any, autoload bool) error
	DeleteOption(ctx context.Context, name string) (bool, error)
}

// SettingsRegistry registers settings and reads their values.
type SettingsRegistry interface {
	Register(s settings.Setting) error
	Value(ctx context.Context, name string) (any, error)
	String(ctx context.Context, name string) (string, error)
	Bool(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, name string, raw any) (bool, error)
}

// TextDomainLoader loads translation files for a text domain.
type TextDomainLoader interface {
	LoadTextDomain(domain, dir, locale string) (bool, error)
}
