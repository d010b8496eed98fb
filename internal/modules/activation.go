package modules

import (
	"context"
	"errors"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/host"
	"github.com/roach88/blockart/internal/plugin"
	"github.com/roach88/blockart/internal/store"
)

// RedirectOption is set on activation and consumed by the admin module.
const RedirectOption = "_blockart_activation_redirect"

// Activation flags a one-time redirect to the settings screen.
type Activation struct{}

// Name implements plugin.Module.
func (*Activation) Name() string { return NameActivation }

// Init implements plugin.Module.
func (a *Activation) Init(p *plugin.Plugin) error {
	opts := p.Host().Options()
	p.Host().Hooks().AddAction(host.ActivationAction(Slug), hook.DefaultPriority, func(ctx context.Context, _ ...any) error {
		err := opts.AddOption(ctx, RedirectOption, true, false)
		if errors.Is(err, store.ErrOptionExists) {
			return nil
		}
		if err == nil {
			p.Logger().Info("plugin activated")
		}
		return err
	})
	return nil
}
