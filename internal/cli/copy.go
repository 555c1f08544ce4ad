package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/view"
)

// NewCopyCommand creates the copy command.
func NewCopyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy the final submission block to the clipboard",
		Long: `Copy the final submission block to the clipboard.

Only available once the project is shipped. A failed copy is reported and
not retried.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(rootOpts, cmd)
		},
	}
}

func runCopy(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.proof().Copy(cmd.Context())
	if err != nil {
		var clipErr *view.ClipboardError
		if errors.As(err, &clipErr) && !s.formatter.IsJSON() {
			view.WriteNotifications(s.formatter.Writer, []view.Notification{n})
			return reported(WrapExitError(ExitFailure, "copy failed", err))
		}
		return s.fail(err)
	}

	if s.formatter.IsJSON() {
		return s.formatter.Success(n)
	}
	view.WriteNotifications(s.formatter.Writer, []view.Notification{n})
	return nil
}
