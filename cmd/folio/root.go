package main

import (
	"fmt"
	"os"

	"github.com/localnerve/visionfolio/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	locale  string
	log     zerolog.Logger
)

// newRootCmd builds the command tree. Tests build their own copy.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio content tools",
		Long: `folio works with the portfolio content compiled into the service.
It exports locale seeds and talks to the portfolio assistant from a terminal.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			log = logging.New(logging.Options{Level: level, Format: "console", Writer: cmd.ErrOrStderr()})
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&locale, "locale", "l", "en", "Content locale")

	root.AddCommand(newSeedCmd(), newLocalesCmd(), newAskCmd(), newChatCmd())
	return root
}

// Execute runs the CLI and exits non-zero on error
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
