package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/view"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string // path to shipcheck.yaml; empty tries ./shipcheck.yaml
	Database string // overrides the configured database path

	// Clipboard overrides the system clipboard (for testing).
	Clipboard view.Clipboard
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the shipcheck CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipcheck",
		Short: "Track project build steps, tests and submission links",
		Long: `Track a project checklist through to shipping.

Steps and tests are checked off in the checklist. The proof page summarises
progress, takes the three submission links, and derives the project status:
not-started, in-progress or shipped. All state lives in one SQLite profile
database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to config file (default ./shipcheck.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite profile database (overrides config)")

	// Checklist surface
	cmd.AddCommand(NewChecklistCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts, true))
	cmd.AddCommand(NewToggleCommand(opts, false))

	// Proof surface
	cmd.AddCommand(NewProofCommand(opts))
	cmd.AddCommand(NewSubmitCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewSubmissionCommand(opts))
	cmd.AddCommand(NewCopyCommand(opts))

	// Store inspection
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
