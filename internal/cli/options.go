package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/blockart/internal/canon"
	"github.com/roach88/blockart/internal/settings"
)

// OptionEntry is one option in a listing.
type OptionEntry struct {
	Name     string `json:"name"`
	Value    any    `json:"value"`
	Autoload bool   `json:"autoload"`
}

// OptionList is the result of options list.
type OptionList struct {
	Options []OptionEntry `json:"options"`
}

// RenderText implements TextRenderer.
func (l OptionList) RenderText(w io.Writer) error {
	if len(l.Options) == 0 {
		_, err := fmt.Fprintln(w, "No options stored.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVALUE\tAUTOLOAD")
	for _, o := range l.Options {
		fmt.Fprintf(tw, "%s\t%s\t%t\n", o.Name, formatValue(o.Value), o.Autoload)
	}
	return tw.Flush()
}

// OptionValue is the result of options get and options set.
type OptionValue struct {
	Name    string `json:"name"`
	Value   any    `json:"value"`
	Default bool   `json:"default,omitempty"`
	Changed *bool  `json:"changed,omitempty"`
}

// RenderText implements TextRenderer.
func (v OptionValue) RenderText(w io.Writer) error {
	suffix := ""
	switch {
	case v.Default:
		suffix = " (default)"
	case v.Changed != nil && !*v.Changed:
		suffix = " (unchanged)"
	}
	_, err := fmt.Fprintf(w, "%s = %s%s\n", v.Name, formatValue(v.Value), suffix)
	return err
}

// ImportResult is the result of options import.
type ImportResult struct {
	File    string   `json:"file"`
	Changed []string `json:"changed"`
	Skipped []string `json:"skipped"`
}

// RenderText implements TextRenderer.
func (r ImportResult) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Imported %s: %d changed, %d unchanged\n", r.File, len(r.Changed), len(r.Skipped)); err != nil {
		return err
	}
	for _, name := range r.Changed {
		if _, err := fmt.Fprintf(w, "  %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

// formatValue renders a stored value as canonical JSON.
func formatValue(v any) string {
	data, err := canon.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// NewOptionsCommand creates the options command group.
func NewOptionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Inspect and change persisted plugin options",
	}

	cmd.AddCommand(newOptionsListCommand(rootOpts))
	cmd.AddCommand(newOptionsGetCommand(rootOpts))
	cmd.AddCommand(newOptionsSetCommand(rootOpts))
	cmd.AddCommand(newOptionsImportCommand(rootOpts))

	return cmd
}

func newOptionsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stored option",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, err := openSession(ctx, cmd, opts, sessionHooks{})
			if err != nil {
				return err
			}
			defer s.Close()

			rows, err := s.store.ListOptions(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, ErrCodeStore, "failed to list options", err)
			}
			list := OptionList{Options: make([]OptionEntry, 0, len(rows))}
			for _, row := range rows {
				list.Options = append(list.Options, OptionEntry{
					Name:     row.Name,
					Value:    row.Value,
					Autoload: row.Autoload,
				})
			}
			return newFormatter(cmd, opts).Success(list)
		},
	}
}

func newOptionsGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print one option, falling back to the setting default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, err := openSession(ctx, cmd, opts, sessionHooks{})
			if err != nil {
				return err
			}
			defer s.Close()

			name := args[0]
			v, found, err := s.store.GetOption(ctx, name)
			if err != nil {
				return WrapExitError(ExitCommandError, ErrCodeStore, "failed to read option", err)
			}
			result := OptionValue{Name: name, Value: v}
			if !found {
				setting, ok := s.runtime.SettingsRegistry().Lookup(name)
				if !ok {
					return NewExitError(ExitFailure, ErrCodeUnknownOption, fmt.Sprintf("option %q not found", name))
				}
				result.Value = setting.Default
				result.Default = true
			}
			return newFormatter(cmd, opts).Success(result)
		},
	}
}

func newOptionsSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Update a registered setting",
		Long: `Update a registered setting. The value is passed through the setting's
sanitizer and checked against its type before it is stored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, err := openSession(ctx, cmd, opts, sessionHooks{})
			if err != nil {
				return err
			}
			defer s.Close()

			name := args[0]
			reg := s.runtime.SettingsRegistry()
			changed, err := reg.Update(ctx, name, args[1])
			if err != nil {
				return settingError(name, err)
			}
			v, err := reg.Value(ctx, name)
			if err != nil {
				return WrapExitError(ExitCommandError, ErrCodeStore, "failed to read option", err)
			}
			return newFormatter(cmd, opts).Success(OptionValue{Name: name, Value: v, Changed: &changed})
		},
	}
}

func newOptionsImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.cue>",
		Short: "Validate a CUE document of option values and store them",
		Long: `Validate the options field of a CUE document against the registered
settings and store every value it sets:

  options: {
    "_blockart_dynamic_css_print_method": "external-css"
  }

Nothing is stored if validation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			path := args[0]

			src, err := os.ReadFile(path)
			if err != nil {
				return WrapExitError(ExitCommandError, ErrCodeImport, "failed to read import file", err)
			}

			s, err := openSession(ctx, cmd, opts, sessionHooks{})
			if err != nil {
				return err
			}
			defer s.Close()

			reg := s.runtime.SettingsRegistry()
			values, err := reg.ValidateCUE(src, filepath.Base(path))
			if err != nil {
				return WrapExitError(ExitFailure, ErrCodeImport, "invalid import document", err)
			}

			result := ImportResult{File: path, Changed: []string{}, Skipped: []string{}}
			for _, name := range canon.SortedKeys(values) {
				changed, err := reg.Update(ctx, name, values[name])
				if err != nil {
					return settingError(name, err)
				}
				if changed {
					result.Changed = append(result.Changed, name)
				} else {
					result.Skipped = append(result.Skipped, name)
				}
			}
			return newFormatter(cmd, opts).Success(result)
		},
	}
}

func settingError(name string, err error) error {
	if errors.Is(err, settings.ErrUnknownSetting) {
		return WrapExitError(ExitFailure, ErrCodeUnknownOption, fmt.Sprintf("unknown setting %q", name), err)
	}
	return WrapExitError(ExitFailure, ErrCodeInvalidValue, fmt.Sprintf("invalid value for %q", name), err)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
