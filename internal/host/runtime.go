// Package host is a minimal plugin host runtime.
//
// It bundles the services a plugin expects from its host (action dispatch,
// option storage, settings, translations) and drives the host lifecycle:
// Boot fires "plugins_loaded", "init" and "wp_loaded" in that order.
package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/i18n"
	"github.com/roach88/blockart/internal/plugin"
	"github.com/roach88/blockart/internal/settings"
	"github.com/roach88/blockart/internal/store"
)

// Host lifecycle actions, in firing order.
const (
	ActionPluginsLoaded = "plugins_loaded"
	ActionInit          = "init"
	ActionLoaded        = "wp_loaded"
)

// Runtime implements plugin.Host on top of the SQLite options store.
type Runtime struct {
	hooks    *hook.Registry
	options  *store.Store
	settings *settings.Registry
	i18n     *i18n.Loader
	locale   string
}

// New creates a runtime using st for option storage.
func New(st *store.Store, locale string) *Runtime {
	return &Runtime{
		hooks:    hook.NewRegistry(),
		options:  st,
		settings: settings.NewRegistry(st),
		i18n:     i18n.NewLoader(),
		locale:   locale,
	}
}

// Hooks implements plugin.Host.
func (r *Runtime) Hooks() hook.Dispatcher { return r.hooks }

// Options implements plugin.Host.
func (r *Runtime) Options() plugin.OptionStore { return r.options }

// Settings implements plugin.Host.
func (r *Runtime) Settings() plugin.SettingsRegistry { return r.settings }

// TextDomains implements plugin.Host.
func (r *Runtime) TextDomains() plugin.TextDomainLoader { return r.i18n }

// Locale implements plugin.Host.
func (r *Runtime) Locale() string { return r.locale }

// Registry exposes the concrete hook registry for inspection.
func (r *Runtime) Registry() *hook.Registry { return r.hooks }

// SettingsRegistry exposes the concrete settings registry.
func (r *Runtime) SettingsRegistry() *settings.Registry { return r.settings }

// Translations exposes the concrete translation loader.
func (r *Runtime) Translations() *i18n.Loader { return r.i18n }

// Store exposes the options store.
func (r *Runtime) Store() *store.Store { return r.options }

// Boot runs the host lifecycle. The first failing action stops the boot.
func (r *Runtime) Boot(ctx context.Context) error {
	for _, action := range []string{ActionPluginsLoaded, ActionInit, ActionLoaded} {
		slog.Debug("host action", "action", action)
		if err := r.hooks.DoAction(ctx, action); err != nil {
			return fmt.Errorf("boot: %w", err)
		}
	}
	return nil
}

// Activate fires the activation action for a plugin slug.
func (r *Runtime) Activate(ctx context.Context, slug string) error {
	return r.hooks.DoAction(ctx, ActivationAction(slug))
}

// Deactivate fires the deactivation action for a plugin slug.
func (r *Runtime) Deactivate(ctx context.Context, slug string) error {
	return r.hooks.DoAction(ctx, DeactivationAction(slug))
}

// ActivationAction returns the action fired when slug is activated.
func ActivationAction(slug string) string { return "activate_" + slug }

// DeactivationAction returns the action fired when slug is deactivated.
func DeactivationAction(slug string) string { return "deactivate_" + slug }

// Do fires an arbitrary action, as a request handler in the host would.
func (r *Runtime) Do(ctx context.Context, action string, args ...any) error {
	return r.hooks.DoAction(ctx, action, args...)
}
