package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/shipcheck/internal/store"
)

// AssertionContext provides what assertions need to inspect final state.
type AssertionContext struct {
	Records *store.Records
	Log     store.Log
	Copies  []string
	Ctx     context.Context
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Diff     string       // cmp.Diff output for record mismatches
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Diff != "" {
		fmt.Fprintf(&buf, "  Diff (-want +got):\n%s", e.Diff)
	}

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s -> %s (seq %d)\n", i+1, event.Action, event.Target, event.Outcome, event.Seq)
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertStatus:
		return assertStatus(result.Trace, a, actx)
	case AssertRecord:
		return assertRecord(result, a)
	case AssertRecordAbsent:
		return assertRecordAbsent(result, a)
	case AssertWriteCount:
		return assertWriteCount(result.Trace, a, actx)
	case AssertCopied:
		return assertCopied(result.Trace, a, actx.Copies)
	case AssertCopyCount:
		return assertCopyCount(result.Trace, a, actx.Copies)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertStatus reads the stored status record, not the last derived one.
func assertStatus(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	got, found, err := actx.Records.Status(actx.Ctx)
	if err != nil {
		return err
	}
	actual := string(got)
	if !found {
		actual = "(absent)"
	}
	if found && actual == a.Expect {
		return nil
	}
	return &AssertionError{
		Type:     AssertStatus,
		Expected: a.Expect,
		Actual:   actual,
		Trace:    trace,
	}
}

// assertRecord compares the stored value with the expected one. When both
// parse as JSON they are compared structurally, so key order and spacing
// do not matter.
func assertRecord(result *Result, a Assertion) error {
	got, ok := result.Records[a.Key]
	if !ok {
		return &AssertionError{
			Type:     AssertRecord,
			Expected: fmt.Sprintf("%s = %s", a.Key, a.Value),
			Actual:   "not stored",
			Trace:    result.Trace,
		}
	}

	var wantJSON, gotJSON any
	if json.Unmarshal([]byte(a.Value), &wantJSON) == nil && json.Unmarshal([]byte(got), &gotJSON) == nil {
		if diff := cmp.Diff(wantJSON, gotJSON); diff != "" {
			return &AssertionError{
				Type:     AssertRecord,
				Expected: fmt.Sprintf("%s = %s", a.Key, a.Value),
				Actual:   got,
				Diff:     diff,
				Trace:    result.Trace,
			}
		}
		return nil
	}

	if got != a.Value {
		return &AssertionError{
			Type:     AssertRecord,
			Expected: fmt.Sprintf("%s = %q", a.Key, a.Value),
			Actual:   fmt.Sprintf("%q", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertRecordAbsent(result *Result, a Assertion) error {
	got, ok := result.Records[a.Key]
	if !ok {
		return nil
	}
	return &AssertionError{
		Type:     AssertRecordAbsent,
		Expected: fmt.Sprintf("%s not stored", a.Key),
		Actual:   got,
		Trace:    result.Trace,
	}
}

func assertWriteCount(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	seq, err := actx.Log.LastSeq(actx.Ctx)
	if err != nil {
		return err
	}
	if seq == int64(a.Count) {
		return nil
	}
	return &AssertionError{
		Type:     AssertWriteCount,
		Expected: fmt.Sprintf("%d writes", a.Count),
		Actual:   fmt.Sprintf("%d writes", seq),
		Trace:    trace,
	}
}

func assertCopied(trace []TraceEvent, a Assertion, copies []string) error {
	for _, c := range copies {
		if strings.Contains(c, a.Contains) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertCopied,
		Expected: fmt.Sprintf("a copy containing %q", a.Contains),
		Actual:   fmt.Sprintf("%d copies, none matching", len(copies)),
		Trace:    trace,
	}
}

func assertCopyCount(trace []TraceEvent, a Assertion, copies []string) error {
	if len(copies) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCopyCount,
		Expected: fmt.Sprintf("%d copies", a.Count),
		Actual:   fmt.Sprintf("%d copies", len(copies)),
		Trace:    trace,
	}
}
