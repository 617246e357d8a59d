// Package cli implements the dungeongen command-line interface.
//
// The root command wires logging (charmbracelet/log, --verbose for debug
// output) and localisation, then dispatches to:
//   - generate: place rooms, connect them and print or export the layout
//   - version: print build information
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dungeongen/pkg/game/renderer/tui"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by the version command.
// Typically called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

type rootOptions struct {
	verbose    bool
	locale     string
	localesDir string
}

// NewRootCommand builds the full command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "dungeongen",
		Short:         "dungeongen generates room-and-corridor level layouts",
		Long:          `dungeongen scatters rectangular rooms on a square grid and links them with L-shaped corridors along a minimum spanning tree, optionally adding loops.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)

			tui.LoadLocale(opts.localesDir, opts.locale)
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "en_GB", "language for labels")
	root.PersistentFlags().StringVar(&opts.localesDir, "locales-dir", "locales", "directory holding <locale>/default.po files")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI and returns an error if any command fails
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "dungeongen %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
			return err
		},
	}
}
