package modules

import (
	"context"
	"sync"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/plugin"
	"github.com/roach88/blockart/internal/settings"
)

// Review decides whether the footer rating notice is shown.
type Review struct {
	mu         sync.Mutex
	showNotice bool
}

// Name implements plugin.Module.
func (*Review) Name() string { return NameReview }

// Init implements plugin.Module.
func (r *Review) Init(p *plugin.Plugin) error {
	p.Host().Hooks().AddAction(plugin.InitAction, hook.DefaultPriority, func(ctx context.Context, _ ...any) error {
		rated, err := p.Host().Settings().Bool(ctx, settings.FooterTextRated)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.showNotice = !rated
		r.mu.Unlock()
		return nil
	})
	return nil
}

// ShowNotice reports whether the rating notice should be shown.
func (r *Review) ShowNotice() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.showNotice
}
