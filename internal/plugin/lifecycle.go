package plugin

import (
	"context"
	"fmt"

	"github.com/roach88/blockart/internal/settings"
)

// afterHostInit is attached to the host "init" action.
func (p *Plugin) afterHostInit(ctx context.Context, _ ...any) error {
	p.mu.Lock()
	if p.state != stateIdle {
		p.mu.Unlock()
		p.logger.Debug("startup already ran, skipping")
		return nil
	}
	p.state = stateRunning
	p.mu.Unlock()

	err := p.startup(ctx)

	p.mu.Lock()
	if err != nil {
		p.state = stateFailed
	} else {
		p.state = stateDone
	}
	p.mu.Unlock()

	if err != nil {
		p.logger.Error("startup failed", "error", err)
		return err
	}
	p.logger.Info("plugin started", "version", Version)
	return nil
}

func (p *Plugin) startup(ctx context.Context) error {
	hooks := p.host.Hooks()

	if err := hooks.DoAction(ctx, BeforeInitAction, p); err != nil {
		return err
	}
	if err := p.updateVersion(ctx); err != nil {
		return err
	}
	if err := p.loadTextDomain(); err != nil {
		return err
	}
	if err := p.registerSettings(); err != nil {
		return err
	}
	return hooks.DoAction(ctx, InitAction, p)
}

func (p *Plugin) updateVersion(ctx context.Context) error {
	changed, err := p.host.Options().UpdateOption(ctx, VersionOption, Version)
	if err != nil {
		return fmt.Errorf("update plugin version: %w", err)
	}
	if changed {
		p.logger.Info("plugin version recorded", "version", Version)
	}
	return nil
}

func (p *Plugin) loadTextDomain() error {
	loaded, err := p.host.TextDomains().LoadTextDomain(TextDomain, p.utils.LanguagesDir(), p.host.Locale())
	if err != nil {
		return err
	}
	p.logger.Debug("text domain", "locale", p.host.Locale(), "loaded", loaded)
	return nil
}

func (p *Plugin) registerSettings() error {
	reg := p.host.Settings()
	for _, s := range settings.BlockArt() {
		if err := reg.Register(s); err != nil {
			return fmt.Errorf("register settings: %w", err)
		}
	}
	return nil
}
