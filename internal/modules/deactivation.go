package modules

import (
	"context"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/host"
	"github.com/roach88/blockart/internal/plugin"
)

// Deactivation clears activation state.
type Deactivation struct{}

// Name implements plugin.Module.
func (*Deactivation) Name() string { return NameDeactivation }

// Init implements plugin.Module.
func (d *Deactivation) Init(p *plugin.Plugin) error {
	opts := p.Host().Options()
	p.Host().Hooks().AddAction(host.DeactivationAction(Slug), hook.DefaultPriority, func(ctx context.Context, _ ...any) error {
		if _, err := opts.DeleteOption(ctx, RedirectOption); err != nil {
			return err
		}
		p.Logger().Info("plugin deactivated")
		return nil
	})
	return nil
}
