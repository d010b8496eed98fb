// Command blockart boots the BlockArt plugin in a minimal host and manages
// its persisted options.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/roach88/blockart/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		f := &cli.OutputFormatter{
			Format:    formatFlag(cmd.PersistentFlags().Lookup("format").Value.String()),
			Writer:    os.Stderr,
			ErrWriter: os.Stderr,
		}
		code := f.ReportError(err)
		stop()
		os.Exit(code)
	}
}

// formatFlag falls back to text when the flag itself was rejected.
func formatFlag(v string) string {
	if v == "json" {
		return v
	}
	return "text"
}
