package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/tracker"
	"github.com/roach88/shipcheck/internal/view"
)

// SubmitOptions holds flags for the submit command.
type SubmitOptions struct {
	*RootOptions
	Lovable  string
	GitHub   string
	Deployed string
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and save the three submission links",
		Long: `Validate and save the submission links.

Each link must be an absolute http or https URL. If any link is invalid,
every invalid field is reported and nothing is saved. On success the links
are stored together and the project status is derived again.

Example:
  shipcheck submit \
    --lovable https://lovable.dev/projects/abc \
    --github https://github.com/me/job-tracker \
    --deployed https://job-tracker.example.com`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Lovable, "lovable", "", "Lovable project link")
	cmd.Flags().StringVar(&opts.GitHub, "github", "", "GitHub repository link")
	cmd.Flags().StringVar(&opts.Deployed, "deployed", "", "live deployment link")

	return cmd
}

func runSubmit(opts *SubmitOptions, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.proof().SubmitArtifacts(cmd.Context(), opts.Lovable, opts.GitHub, opts.Deployed)
	if err != nil {
		var verrs tracker.ValidationErrors
		if errors.As(err, &verrs) && !s.formatter.IsJSON() {
			view.WriteValidationErrors(s.formatter.Writer, verrs)
			return reported(WrapExitError(ExitFailure, "artifacts not saved", err))
		}
		return s.fail(err)
	}

	if s.formatter.IsJSON() {
		return s.formatter.Success(res)
	}
	view.WriteNotifications(s.formatter.Writer, res.Notifications)
	fmt.Fprintf(s.formatter.Writer, "Status: %s\n", res.Evaluation.Label)
	return nil
}
