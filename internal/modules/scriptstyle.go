package modules

import (
	"context"
	"sync"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/plugin"
	"github.com/roach88/blockart/internal/settings"
)

// ActionEnqueueScripts is the host action that enqueues front-end assets.
const ActionEnqueueScripts = "wp_enqueue_scripts"

// CSS print methods.
const (
	CSSInternal = "internal-css"
	CSSExternal = "external-css"
)

// ScriptStyle decides how block CSS is delivered and enqueues assets.
type ScriptStyle struct {
	mu       sync.Mutex
	method   string
	enqueued []string
}

// Name implements plugin.Module.
func (*ScriptStyle) Name() string { return NameScriptStyle }

// Init implements plugin.Module.
func (s *ScriptStyle) Init(p *plugin.Plugin) error {
	hooks := p.Host().Hooks()

	hooks.AddAction(plugin.InitAction, hook.DefaultPriority, func(ctx context.Context, _ ...any) error {
		method, err := p.Host().Settings().String(ctx, settings.CSSPrintMethod)
		if err != nil {
			return err
		}
		if method != CSSInternal && method != CSSExternal {
			p.Logger().Warn("unknown css print method, using internal", "method", method)
			method = CSSInternal
		}
		s.mu.Lock()
		s.method = method
		s.mu.Unlock()
		return nil
	})

	hooks.AddAction(ActionEnqueueScripts, hook.DefaultPriority, func(ctx context.Context, _ ...any) error {
		assets := []string{p.Utils().AssetPath("blocks.js")}
		if s.Method() == CSSExternal {
			assets = append(assets, p.Utils().AssetPath("blocks.css"))
		}
		s.mu.Lock()
		s.enqueued = append(s.enqueued, assets...)
		s.mu.Unlock()
		return nil
	})
	return nil
}

// Method returns the CSS print method read at startup ("" before it).
func (s *ScriptStyle) Method() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

// Enqueued returns the asset paths enqueued so far.
func (s *ScriptStyle) Enqueued() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.enqueued...)
}
