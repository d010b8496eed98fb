package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/blockart/internal/plugin"
)

// VersionInfo is the result of the version command.
type VersionInfo struct {
	Version    string `json:"version"`
	TextDomain string `json:"text_domain"`
}

// RenderText implements TextRenderer.
func (v VersionInfo) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "blockart %s\n", v.Version)
	return err
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the plugin version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newFormatter(cmd, rootOpts).Success(VersionInfo{
				Version:    plugin.Version,
				TextDomain: plugin.TextDomain,
			})
		},
	}
}
