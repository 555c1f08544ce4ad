package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/view"
	"github.com/roach88/shipcheck/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-render the proof page whenever the database changes",
		Long: `Show the proof page and re-render it each time another shipcheck
process writes the profile database. Stops on Ctrl-C.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, rootOpts, cmd)
		},
	}
}

func runWatch(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	proof := s.proof()
	render := func(ctx context.Context, seq int64) error {
		page, err := proof.Load(ctx)
		if err != nil {
			return err
		}
		if s.formatter.IsJSON() {
			return s.formatter.Success(page)
		}
		fmt.Fprintf(s.formatter.Writer, "── seq %d ──\n", seq)
		view.WritePage(s.formatter.Writer, page)
		return nil
	}

	seq, err := s.store.LastSeq(ctx)
	if err != nil {
		return s.fail(err)
	}
	if err := render(ctx, seq); err != nil {
		return s.fail(err)
	}

	w := watch.New(s.store.Path(), s.store, func(ctx context.Context, seq int64) error {
		return render(ctx, seq)
	}, watch.WithLogger(s.logger))
	if err := w.Run(ctx); err != nil {
		return s.fail(err)
	}
	return nil
}
