package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored records with their last write",
		Long: `List every record in the profile database in write order, with the
write sequence number and time of its most recent update.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd)
		},
	}
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.store.Entries(cmd.Context())
	if err != nil {
		return s.fail(err)
	}

	if s.formatter.IsJSON() {
		return s.formatter.Success(entries)
	}
	writeHistory(s, entries)
	return nil
}

func writeHistory(s *session, entries []store.Entry) {
	w := s.formatter.Writer
	if len(entries) == 0 {
		fmt.Fprintln(w, "No records stored yet")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%4d  %s  %-16s %s\n", e.Seq, e.UpdatedAt.Format(time.RFC3339), e.Key, e.Value)
	}
}
