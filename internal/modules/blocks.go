package modules

import (
	"context"
	"sync"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/plugin"
)

// ActionRegisterBlocks fires after the built-in blocks are registered so
// extensions can add their own.
const ActionRegisterBlocks = "blockart_register_blocks"

// BlockTypes are the built-in blocks, registered in this order.
var BlockTypes = []string{
	"blockart/section",
	"blockart/column",
	"blockart/heading",
	"blockart/paragraph",
	"blockart/buttons",
	"blockart/button",
	"blockart/image",
}

// Blocks registers block types on host init, after the startup sequence.
type Blocks struct {
	mu         sync.Mutex
	registered []string
}

// Name implements plugin.Module.
func (*Blocks) Name() string { return NameBlocks }

// Init implements plugin.Module.
func (b *Blocks) Init(p *plugin.Plugin) error {
	hooks := p.Host().Hooks()
	hooks.AddAction(plugin.HostInitAction, hook.DefaultPriority, func(ctx context.Context, _ ...any) error {
		b.mu.Lock()
		b.registered = append(b.registered[:0], BlockTypes...)
		b.mu.Unlock()
		p.Logger().Debug("blocks registered", "count", len(BlockTypes))
		return hooks.DoAction(ctx, ActionRegisterBlocks, b)
	})
	return nil
}

// Register adds a block type. Extensions call it from ActionRegisterBlocks.
func (b *Blocks) Register(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registered = append(b.registered, name)
}

// Registered returns the registered block types.
func (b *Blocks) Registered() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.registered...)
}
