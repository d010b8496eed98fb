package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/blockart/internal/config"
	"github.com/roach88/blockart/internal/host"
	"github.com/roach88/blockart/internal/modules"
	"github.com/roach88/blockart/internal/plugin"
	"github.com/roach88/blockart/internal/store"
)

// session is one booted host with the plugin loaded, as a single request
// to the host would see it.
type session struct {
	cfg     config.Config
	store   *store.Store
	runtime *host.Runtime
	modules *modules.Set
	plugin  *plugin.Plugin
}

// sessionHooks lets a command act between plugin load and host boot.
type sessionHooks struct {
	beforeBoot func(ctx context.Context, s *session) error
}

// openSession opens the database, loads the plugin and boots the host.
// The caller must Close the session.
func openSession(ctx context.Context, cmd *cobra.Command, opts *RootOptions, hooks sessionHooks) (*session, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}

	logger := newLogger(cmd, cfg)
	slog.SetDefault(logger)

	logger.Debug("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}

	s := &session{
		cfg:     cfg,
		store:   st,
		runtime: host.New(st, cfg.Locale),
		modules: modules.Default(),
	}

	loader := plugin.NewLoader(s.runtime, plugin.Config{
		Dir:         cfg.PluginDir,
		IDGenerator: opts.IDGenerator,
		Logger:      logger,
	}, s.modules.List())

	s.plugin, err = loader.Get()
	if err != nil {
		s.Close()
		return nil, WrapExitError(ExitFailure, ErrCodeBoot, "failed to load plugin", err)
	}

	if hooks.beforeBoot != nil {
		if err := hooks.beforeBoot(ctx, s); err != nil {
			s.Close()
			return nil, err
		}
	}

	if err := s.runtime.Boot(ctx); err != nil {
		s.Close()
		return nil, WrapExitError(ExitFailure, ErrCodeBoot, "host boot failed", err)
	}
	return s, nil
}

// Close releases the database.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
