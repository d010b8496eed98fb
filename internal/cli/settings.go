package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/blockart/internal/settings"
)

// SettingEntry is one registered setting in a listing.
type SettingEntry struct {
	Group       string `json:"group"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     any    `json:"default"`
	ShowInREST  bool   `json:"show_in_rest"`
	Sanitizer   string `json:"sanitizer,omitempty"`
	Description string `json:"description,omitempty"`
}

// SettingList is the result of the settings command.
type SettingList struct {
	Settings []SettingEntry `json:"settings"`
}

// RenderText implements TextRenderer.
func (l SettingList) RenderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tNAME\tTYPE\tDEFAULT\tREST\tSANITIZER")
	for _, s := range l.Settings {
		sanitizer := s.Sanitizer
		if sanitizer == "" {
			sanitizer = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			s.Group, s.Name, s.Type, formatValue(s.Default), s.ShowInREST, sanitizer)
	}
	return tw.Flush()
}

// SchemaText is the result of settings --schema.
type SchemaText struct {
	Schema string `json:"schema"`
}

// RenderText implements TextRenderer.
func (s SchemaText) RenderText(w io.Writer) error {
	_, err := io.WriteString(w, s.Schema)
	return err
}

// NewSettingsCommand creates the settings command.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	var schema bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "List the settings registered by the plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, err := openSession(ctx, cmd, rootOpts, sessionHooks{})
			if err != nil {
				return err
			}
			defer s.Close()

			reg := s.runtime.SettingsRegistry()
			formatter := newFormatter(cmd, rootOpts)
			if schema {
				return formatter.Success(SchemaText{Schema: reg.Schema()})
			}
			return formatter.Success(settingList(reg.All()))
		},
	}

	cmd.Flags().BoolVar(&schema, "schema", false, "print the CUE schema accepted by options import")

	return cmd
}

func settingList(all []settings.Setting) SettingList {
	list := SettingList{Settings: make([]SettingEntry, 0, len(all))}
	for _, s := range all {
		list.Settings = append(list.Settings, SettingEntry{
			Group:       s.Group,
			Name:        s.Name,
			Type:        string(s.Type),
			Default:     s.Default,
			ShowInREST:  s.ShowInREST,
			Sanitizer:   s.SanitizerName,
			Description: s.Description,
		})
	}
	return list
}
