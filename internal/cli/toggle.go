package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/tracker"
)

// ToggleResult is the JSON payload of check/uncheck.
type ToggleResult struct {
	Kind    tracker.Kind `json:"kind"`
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Checked bool         `json:"checked"`
}

// NewToggleCommand creates the check (checked=true) or uncheck command.
func NewToggleCommand(rootOpts *RootOptions, checked bool) *cobra.Command {
	use, short := "check", "Mark a step or test as done"
	if !checked {
		use, short = "uncheck", "Mark a step or test as not done"
	}

	return &cobra.Command{
		Use:   use + " <step|test> <id>",
		Short: short,
		Long: fmt.Sprintf(`%s.

Only the map for the chosen kind is rewritten; the other map and the
artifact links are left untouched.

Examples:
  shipcheck %s step 3
  shipcheck %s test 10`, short, use, use),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := tracker.ParseKind(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q: must be a number", args[1]))
			}
			return runToggle(rootOpts, kind, id, checked, cmd)
		},
	}
}

func runToggle(opts *RootOptions, kind tracker.Kind, id int, checked bool, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.checklist().Toggle(cmd.Context(), kind, id, checked); err != nil {
		return s.fail(err)
	}

	name := tracker.StepName(id)
	if kind == tracker.KindTest {
		name = tracker.TestName(id)
	}

	if s.formatter.IsJSON() {
		return s.formatter.Success(ToggleResult{Kind: kind, ID: id, Name: name, Checked: checked})
	}

	state := "checked"
	if !checked {
		state = "unchecked"
	}
	fmt.Fprintf(s.formatter.Writer, "✓ %s %d (%s) %s\n", kind, id, name, state)
	return nil
}
