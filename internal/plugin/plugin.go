package plugin

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/blockart/internal/hook"
)

// Plugin identity and hook names.
const (
	// Version is the plugin version recorded on every startup.
	Version = "2.2.0"

	// TextDomain is the translation domain of the plugin.
	TextDomain = "blockart"

	// VersionOption stores the last started plugin version.
	VersionOption = "_blockart_version"

	// HostInitAction is the host action the startup sequence attaches to.
	HostInitAction = "init"

	// InitPriority runs the startup sequence ahead of default-priority listeners.
	InitPriority = 0

	// BeforeInitAction fires before any startup work.
	BeforeInitAction = "blockart_before_init"

	// InitAction fires once startup is complete.
	InitAction = "blockart_init"
)

// ErrNilHost is returned when a Loader is built without a host.
var ErrNilHost = errors.New("plugin host cannot be nil")

// Module is a collaborator initialized when the Plugin is created.
type Module interface {
	// Name identifies the module in logs and errors.
	Name() string

	// Init attaches the module to the plugin. Called exactly once.
	Init(p *Plugin) error
}

// Config controls Plugin construction.
type Config struct {
	// Dir is the plugin directory (translations live under Dir/languages).
	Dir string

	// IDGenerator produces the instance ID. Defaults to UUIDv7Generator.
	IDGenerator IDGenerator

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// noCopy marks Plugin as non-copyable for go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type startState int

const (
	stateIdle startState = iota
	stateRunning
	stateDone
	stateFailed
)

// Plugin is the BlockArt application context.
type Plugin struct {
	noCopy noCopy

	id      string
	host    Host
	utils   *Utils
	logger  *slog.Logger
	modules []string

	initListener hook.ID

	mu    sync.Mutex
	state startState
}

// newPlugin builds the plugin: properties, then modules in order, then hooks.
func newPlugin(host Host, cfg Config, modules []Module) (*Plugin, error) {
	if host == nil {
		return nil, ErrNilHost
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Plugin{host: host}
	p.id = gen.Generate()
	p.logger = logger.With("plugin", TextDomain, "instance", p.id)
	p.utils = newUtils(cfg.Dir, p.logger)

	for _, m := range modules {
		p.logger.Debug("initializing module", "module", m.Name())
		if err := m.Init(p); err != nil {
			return nil, fmt.Errorf("init module %s: %w", m.Name(), err)
		}
		p.modules = append(p.modules, m.Name())
	}

	p.initListener = host.Hooks().AddAction(HostInitAction, InitPriority, p.afterHostInit)

	p.logger.Info("plugin loaded", "version", Version, "modules", len(p.modules))
	return p, nil
}

// ID returns the instance identifier.
func (p *Plugin) ID() string {
	return p.id
}

// Host returns the host the plugin runs in.
func (p *Plugin) Host() Host {
	return p.host
}

// Utils returns the shared utilities handle.
func (p *Plugin) Utils() *Utils {
	return p.utils
}

// Logger returns the plugin logger.
func (p *Plugin) Logger() *slog.Logger {
	return p.logger
}

// Modules returns the names of initialized modules in initialization order.
func (p *Plugin) Modules() []string {
	return append([]string(nil), p.modules...)
}

// Ready reports whether p was built by a Loader. A zero Plugin, including
// one produced by decoding into a Plugin value, is not ready.
func (p *Plugin) Ready() bool {
	return p != nil && p.host != nil && p.id != ""
}

// Started reports whether the startup sequence completed.
func (p *Plugin) Started() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == stateDone
}
