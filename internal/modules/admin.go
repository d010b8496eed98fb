package modules

import (
	"context"
	"sync"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/plugin"
)

// Admin actions.
const (
	ActionAdminInit = "admin_init"
	ActionAdminMenu = "admin_menu"

	// SettingsPage is the slug of the BlockArt settings screen.
	SettingsPage = "blockart"
)

// Admin owns the settings screen and the post-activation redirect.
type Admin struct {
	mu         sync.Mutex
	menu       []string
	redirectTo string
}

// Name implements plugin.Module.
func (*Admin) Name() string { return NameAdmin }

// Init implements plugin.Module.
func (a *Admin) Init(p *plugin.Plugin) error {
	hooks := p.Host().Hooks()

	hooks.AddAction(ActionAdminMenu, hook.DefaultPriority, func(ctx context.Context, _ ...any) error {
		a.mu.Lock()
		a.menu = append(a.menu, SettingsPage)
		a.mu.Unlock()
		return nil
	})

	hooks.AddAction(ActionAdminInit, hook.DefaultPriority, func(ctx context.Context, _ ...any) error {
		deleted, err := p.Host().Options().DeleteOption(ctx, RedirectOption)
		if err != nil {
			return err
		}
		if deleted {
			a.mu.Lock()
			a.redirectTo = "admin.php?page=" + SettingsPage
			a.mu.Unlock()
			p.Logger().Debug("redirecting after activation", "page", SettingsPage)
		}
		return nil
	})
	return nil
}

// Menu returns the admin pages registered so far.
func (a *Admin) Menu() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.menu...)
}

// Redirect returns the pending post-activation redirect, if any.
func (a *Admin) Redirect() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.redirectTo
}
