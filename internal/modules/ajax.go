package modules

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/blockart/internal/hook"
	"github.com/roach88/blockart/internal/plugin"
	"github.com/roach88/blockart/internal/settings"
)

// ActionAjaxSaveCSS is the AJAX action that saves generated widget CSS.
const ActionAjaxSaveCSS = "wp_ajax_blockart_save_widget_css"

// ErrBadRequest is returned by AJAX handlers for malformed arguments.
var ErrBadRequest = errors.New("bad ajax request")

// Ajax handles asynchronous admin requests.
type Ajax struct{}

// Name implements plugin.Module.
func (*Ajax) Name() string { return NameAjax }

// Init implements plugin.Module.
func (a *Ajax) Init(p *plugin.Plugin) error {
	p.Host().Hooks().AddAction(ActionAjaxSaveCSS, hook.DefaultPriority, func(ctx context.Context, args ...any) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: want 1 argument, got %d", ErrBadRequest, len(args))
		}
		css, ok := args[0].(string)
		if !ok {
			return fmt.Errorf("%w: css must be a string, got %T", ErrBadRequest, args[0])
		}
		_, err := p.Host().Settings().Update(ctx, settings.WidgetCSS, css)
		return err
	})
	return nil
}
