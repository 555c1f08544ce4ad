package view

import (
	"fmt"
	"io"

	"github.com/roach88/shipcheck/internal/tracker"
)

const notSet = "-"

// WriteChecklist renders one catalog section with checkboxes.
func WriteChecklist(w io.Writer, kind tracker.Kind, rows []Row) {
	checked := 0
	for _, r := range rows {
		if r.Checked {
			checked++
		}
	}

	title := "Steps"
	if kind == tracker.KindTest {
		title = "Tests"
	}
	fmt.Fprintf(w, "%s (%d/%d)\n", title, checked, len(rows))
	for _, r := range rows {
		mark := " "
		if r.Checked {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %-2d %s\n", mark, r.ID, r.Name)
	}
}

// WritePage renders a proof page load.
func WritePage(w io.Writer, page Page) {
	fmt.Fprintf(w, "Status: %s\n\n", page.Evaluation.Label)

	fmt.Fprintln(w, "Step Completion Summary")
	for _, r := range page.Summary {
		fmt.Fprintf(w, "  %-28s %s\n", fmt.Sprintf("Step %d: %s", r.ID, r.Name), r.State)
	}
	fmt.Fprintln(w)

	WriteTestStatus(w, page.Tests)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Artifacts")
	for _, f := range tracker.ArtifactFields {
		v := page.Artifacts.Get(f)
		if v == "" {
			v = notSet
		}
		fmt.Fprintf(w, "  %-18s %s\n", f.Label(), v)
	}
	fmt.Fprintln(w)

	copyState := "disabled"
	if page.Evaluation.CopyEnabled {
		copyState = "enabled"
	}
	fmt.Fprintf(w, "Copy Final Submission: %s\n", copyState)

	WriteNotifications(w, page.Notifications)
}

// WriteTestStatus renders the passed/remaining block.
func WriteTestStatus(w io.Writer, ts TestStatus) {
	fmt.Fprintln(w, "Test Status")
	fmt.Fprintf(w, "  %-16s %d / %d\n", "Tests Passed", ts.Passed, ts.Total)
	fmt.Fprintf(w, "  %-16s %d\n", "Tests Remaining", ts.Remaining)
}

// WriteValidationErrors renders one line per invalid field.
func WriteValidationErrors(w io.Writer, errs tracker.ValidationErrors) {
	fmt.Fprintln(w, "✗ Artifacts not saved")
	for _, e := range errs {
		fmt.Fprintf(w, "  %-18s %s\n", e.Field.Label(), e.Message)
	}
}

// WriteNotifications renders notifications, alerts marked distinctly.
func WriteNotifications(w io.Writer, ns []Notification) {
	for _, n := range ns {
		mark := "✓"
		if n.Level == LevelAlert {
			mark = "!"
		}
		fmt.Fprintf(w, "%s %s\n", mark, n.Text)
	}
}
