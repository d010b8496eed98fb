package plugin

import "sync"

// Loader hands out the single Plugin of a process.
//
// The Plugin is built on the first Get; every later Get returns the same
// pointer, or the same construction error.
type Loader struct {
	host    Host
	cfg     Config
	modules []Module

	once   sync.Once
	plugin *Plugin
	err    error
}

// NewLoader prepares a loader. modules are initialized in slice order.
func NewLoader(host Host, cfg Config, modules []Module) *Loader {
	return &Loader{
		host:    host,
		cfg:     cfg,
		modules: append([]Module(nil), modules...),
	}
}

// Get returns the Plugin, building it on first use.
func (l *Loader) Get() (*Plugin, error) {
	l.once.Do(func() {
		l.plugin, l.err = newPlugin(l.host, l.cfg, l.modules)
	})
	return l.plugin, l.err
}
