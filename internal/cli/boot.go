package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/blockart/internal/modules"
	"github.com/roach88/blockart/internal/plugin"
	"github.com/roach88/blockart/internal/settings"
)

// BootOptions holds flags for the boot command.
type BootOptions struct {
	*RootOptions
	Activate   bool
	Deactivate bool
}

// BootResult describes a completed host boot.
type BootResult struct {
	PluginID  string   `json:"plugin_id"`
	Version   string   `json:"version"`
	Started   bool     `json:"started"`
	Modules   []string `json:"modules"`
	Actions   []string `json:"actions"`
	CSSMethod string   `json:"css_print_method"`
	Redirect  string   `json:"redirect,omitempty"`
}

// RenderText implements TextRenderer.
func (r BootResult) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"BlockArt %s booted (instance %s)\nModules: %s\nActions: %s\nCSS print method: %s\n",
		r.Version, r.PluginID,
		strings.Join(r.Modules, ", "),
		strings.Join(r.Actions, " -> "),
		r.CSSMethod,
	)
	if err == nil && r.Redirect != "" {
		_, err = fmt.Fprintf(w, "Redirect: %s\n", r.Redirect)
	}
	return err
}

// NewBootCommand creates the boot command.
func NewBootCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BootOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "boot",
		Short: "Load the plugin and run the host lifecycle once",
		Long: `Load the plugin into a host backed by the options database and fire the
host lifecycle (plugins_loaded, init, wp_loaded). With --activate the
plugin activation action is fired before the lifecycle, as on the request
that activates the plugin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoot(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Activate, "activate", false, "fire the plugin activation action before booting")
	cmd.Flags().BoolVar(&opts.Deactivate, "deactivate", false, "fire the plugin deactivation action before booting")
	cmd.MarkFlagsMutuallyExclusive("activate", "deactivate")

	return cmd
}

func runBoot(cmd *cobra.Command, opts *BootOptions) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(cmd, opts.RootOptions)

	s, err := openSession(ctx, cmd, opts.RootOptions, sessionHooks{
		beforeBoot: func(ctx context.Context, s *session) error {
			switch {
			case opts.Activate:
				formatter.VerboseLog("Activating %s", modules.Slug)
				return wrapActivation(s.runtime.Activate(ctx, modules.Slug))
			case opts.Deactivate:
				formatter.VerboseLog("Deactivating %s", modules.Slug)
				return wrapActivation(s.runtime.Deactivate(ctx, modules.Slug))
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	defer s.Close()

	// The admin screen only loads on admin requests; an activation boot is one.
	if opts.Activate {
		if err := s.runtime.Do(ctx, modules.ActionAdminInit); err != nil {
			return WrapExitError(ExitFailure, ErrCodeBoot, "admin init failed", err)
		}
	}

	result := BootResult{
		PluginID:  s.plugin.ID(),
		Version:   plugin.Version,
		Started:   s.plugin.Started(),
		Modules:   s.plugin.Modules(),
		Actions:   s.runtime.Registry().Fired(),
		CSSMethod: s.modules.ScriptStyle.Method(),
		Redirect:  s.modules.Admin.Redirect(),
	}
	if result.CSSMethod == "" {
		result.CSSMethod = settings.DefaultCSSPrinter
	}
	return formatter.Success(result)
}

func wrapActivation(err error) error {
	if err != nil {
		return WrapExitError(ExitFailure, ErrCodeBoot, "activation failed", err)
	}
	return nil
}
