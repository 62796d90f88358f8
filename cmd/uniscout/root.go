package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for uniscout.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uniscout",
		Short: "Compare university transfer destinations",
		Long: `uniscout ranks transfer destinations for a university student.

For every target in the mission file it searches the official program pages,
extracts the curriculum, estimates how many of your courses would be
recognised and weighs the result against prestige and cost of living.

Every stage caches its result, so a second run only redoes what you ask for
with the --refresh flags.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewPurgeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
