package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SubmissionResult is the JSON payload of the submission command.
type SubmissionResult struct {
	Text string `json:"text"`
}

// NewSubmissionCommand creates the submission command.
func NewSubmissionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "submission",
		Short:         "Print the final submission block",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmission(rootOpts, cmd)
		},
	}
}

func runSubmission(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	text, err := s.proof().SubmissionText(cmd.Context())
	if err != nil {
		return s.fail(err)
	}

	if s.formatter.IsJSON() {
		return s.formatter.Success(SubmissionResult{Text: text})
	}
	fmt.Fprintln(s.formatter.Writer, text)
	return nil
}
