package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/view"
)

// NewProofCommand creates the proof command.
func NewProofCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "proof",
		Short: "Show the proof page: summary, tests, links and status",
		Long: `Show the proof page.

Lists step completion, the passed/remaining test count and the saved
submission links, then derives the project status and stores it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProof(rootOpts, cmd)
		},
	}
}

func runProof(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	page, err := s.proof().Load(cmd.Context())
	if err != nil {
		return s.fail(err)
	}

	if s.formatter.IsJSON() {
		return s.formatter.Success(page)
	}
	view.WritePage(s.formatter.Writer, page)
	return nil
}
