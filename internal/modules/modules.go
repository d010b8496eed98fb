// Package modules holds the BlockArt collaborator modules.
//
// Each module attaches listeners to host and plugin actions when it is
// initialized; none of them does work at initialization time.
package modules

import (
	"github.com/roach88/blockart/internal/plugin"
)

// Slug is the plugin slug used in host activation actions.
const Slug = "blockart"

// Module names, in initialization order.
const (
	NameActivation   = "activation"
	NameDeactivation = "deactivation"
	NameAdmin        = "admin"
	NameReview       = "review"
	NameBlocks       = "blocks"
	NameScriptStyle  = "script-style"
	NameAjax         = "ajax"
)

// Order is the initialization order of Default. Activation and deactivation
// come first so their host actions exist before any other module runs.
var Order = []string{
	NameActivation,
	NameDeactivation,
	NameAdmin,
	NameReview,
	NameBlocks,
	NameScriptStyle,
	NameAjax,
}

// Set is the collaborator set returned by Default, kept addressable so
// callers can inspect module state.
type Set struct {
	Activation   *Activation
	Deactivation *Deactivation
	Admin        *Admin
	Review       *Review
	Blocks       *Blocks
	ScriptStyle  *ScriptStyle
	Ajax         *Ajax
}

// Default returns fresh collaborators.
func Default() *Set {
	return &Set{
		Activation:   &Activation{},
		Deactivation: &Deactivation{},
		Admin:        &Admin{},
		Review:       &Review{},
		Blocks:       &Blocks{},
		ScriptStyle:  &ScriptStyle{},
		Ajax:         &Ajax{},
	}
}

// List returns the modules in Order.
func (s *Set) List() []plugin.Module {
	return []plugin.Module{
		s.Activation,
		s.Deactivation,
		s.Admin,
		s.Review,
		s.Blocks,
		s.ScriptStyle,
		s.Ajax,
	}
}
