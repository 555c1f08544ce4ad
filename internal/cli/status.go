package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Derive, store and print the project status",
		Long: `Derive the project status from the saved links and test results.

shipped      all three links saved and all 10 tests passed
in-progress  links saved, or at least one test passed
not-started  otherwise

The stored status is always overwritten; it is never read back.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	page, err := s.proof().Load(cmd.Context())
	if err != nil {
		return s.fail(err)
	}
	eval := page.Evaluation

	if s.formatter.IsJSON() {
		return s.formatter.Success(eval)
	}

	links := "incomplete"
	if eval.HasAllLinks {
		links = "complete"
	}
	w := s.formatter.Writer
	fmt.Fprintf(w, "%s (%s)\n", eval.Status, eval.Label)
	fmt.Fprintf(w, "tests: %d / %d passed\n", eval.Passed, eval.Passed+eval.Remaining)
	fmt.Fprintf(w, "links: %s\n", links)
	return nil
}
