package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/tracker"
	"github.com/roach88/shipcheck/internal/view"
)

// ChecklistResult is the JSON payload of the checklist command.
type ChecklistResult struct {
	Steps []view.Row `json:"steps,omitempty"`
	Tests []view.Row `json:"tests,omitempty"`
}

// NewChecklistCommand creates the checklist command.
func NewChecklistCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checklist [steps|tests]",
		Short: "Show steps and tests with their checked state",
		Long: `Show the fixed checklist: 8 build steps and 10 acceptance tests.

Pass "steps" or "tests" to show only one section.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var only tracker.Kind
			if len(args) == 1 {
				kind, err := tracker.ParseKind(args[0])
				if err != nil {
					return NewExitError(ExitCommandError, err.Error())
				}
				only = kind
			}
			return runChecklist(rootOpts, only, cmd)
		},
	}
}

func runChecklist(opts *RootOptions, only tracker.Kind, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	c := s.checklist()

	var result ChecklistResult
	if only == "" || only == tracker.KindStep {
		if result.Steps, err = c.LoadSteps(ctx); err != nil {
			return s.fail(err)
		}
	}
	if only == "" || only == tracker.KindTest {
		if result.Tests, err = c.LoadTests(ctx); err != nil {
			return s.fail(err)
		}
	}

	if s.formatter.IsJSON() {
		return s.formatter.Success(result)
	}

	w := s.formatter.Writer
	if result.Steps != nil {
		view.WriteChecklist(w, tracker.KindStep, result.Steps)
	}
	if result.Steps != nil && result.Tests != nil {
		fmt.Fprintln(w)
	}
	if result.Tests != nil {
		view.WriteChecklist(w, tracker.KindTest, result.Tests)
	}
	return nil
}
