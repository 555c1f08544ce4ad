package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/roach88/shipcheck/internal/store"
	"github.com/roach88/shipcheck/internal/testutil"
	"github.com/roach88/shipcheck/internal/tracker"
	"github.com/roach88/shipcheck/internal/view"
)

// Epoch is the first timestamp the deterministic clock hands out.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// ErrClipboardRejected is what the fake clipboard returns when a scenario
// sets clipboard: fail.
var ErrClipboardRejected = errors.New("clipboard rejected the write")

// Harness executes scenario actions against one store.
type Harness struct {
	store     *store.Store
	checklist *view.Checklist
	proof     *view.Proof
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database with a deterministic clock
// 2. Execute setup steps (each must succeed)
// 3. Execute flow steps, checking expect clauses
// 4. Snapshot the final records and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:", store.WithClock(testutil.NewDeterministicClock(Epoch, time.Second).Now))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	clip := &testutil.FakeClipboard{}
	if scenario.Clipboard == ClipboardFail {
		clip.Err = ErrClipboardRejected
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	records := store.NewRecords(st, store.DefaultPrefix)
	h := &Harness{
		store:     st,
		checklist: view.NewChecklist(records, logger),
		proof:     view.NewProof(records, view.WithClipboard(clip), view.WithLogger(logger)),
	}

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Setup {
		events, err := h.execute(ctx, i+1, step)
		if err != nil {
			return nil, fmt.Errorf("setup[%d]: %w", i, err)
		}
		for _, e := range events {
			if e.Outcome != OutcomeOK {
				return nil, fmt.Errorf("setup[%d]: %s %s: %s", i, e.Action, e.Target, e.Outcome)
			}
		}
	}

	for i, step := range scenario.Flow {
		events, err := h.execute(ctx, i+1, step)
		if err != nil {
			return nil, fmt.Errorf("flow[%d]: %w", i, err)
		}
		for _, e := range events {
			result.addEvent(e)
			for _, msg := range checkExpect(step.Expect, e) {
				result.AddError(fmt.Sprintf("flow[%d] %s %s: %s", i, e.Action, e.Target, msg))
			}
		}
	}

	entries, err := st.Entries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		result.Records[e.Key] = e.Value
	}
	result.Copies = clip.Copies()

	actx := &AssertionContext{
		Records: records,
		Log:     st,
		Copies:  result.Copies,
		Ctx:     ctx,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// execute runs one step and returns its trace events. Errors that map to a
// known outcome are recorded in the event; anything else aborts the run.
func (h *Harness) execute(ctx context.Context, index int, step Step) ([]TraceEvent, error) {
	switch step.Action {
	case ActionCheck, ActionUncheck:
		kind, err := tracker.ParseKind(step.Kind)
		if err != nil {
			return nil, err
		}
		events := make([]TraceEvent, 0, len(step.IDs))
		for _, id := range step.IDs {
			e := TraceEvent{Step: index, Action: step.Action, Target: fmt.Sprintf("%s %d", kind, id)}
			err := h.checklist.Toggle(ctx, kind, id, step.Action == ActionCheck)
			if e.Outcome, err = outcomeOf(err); err != nil {
				return nil, err
			}
			if err := h.stamp(ctx, &e); err != nil {
				return nil, err
			}
			events = append(events, e)
		}
		return events, nil

	case ActionSubmit:
		e := TraceEvent{Step: index, Action: step.Action}
		res, err := h.proof.SubmitArtifacts(ctx, step.Links.Lovable, step.Links.GitHub, step.Links.Deployed)
		var verrs tracker.ValidationErrors
		if errors.As(err, &verrs) {
			for _, f := range verrs.Fields() {
				e.InvalidFields = append(e.InvalidFields, string(f))
			}
		}
		if e.Outcome, err = outcomeOf(err); err != nil {
			return nil, err
		}
		if e.Outcome == OutcomeOK {
			e.Status = string(res.Evaluation.Status)
			e.Notifications = texts(res.Notifications)
		}
		return h.single(ctx, e)

	case ActionLoad:
		e := TraceEvent{Step: index, Action: step.Action}
		page, err := h.proof.Load(ctx)
		if e.Outcome, err = outcomeOf(err); err != nil {
			return nil, err
		}
		if e.Outcome == OutcomeOK {
			e.Status = string(page.Evaluation.Status)
			e.Notifications = texts(page.Notifications)
		}
		return h.single(ctx, e)

	case ActionCopy:
		e := TraceEvent{Step: index, Action: step.Action}
		n, err := h.proof.Copy(ctx)
		if e.Outcome, err = outcomeOf(err); err != nil {
			return nil, err
		}
		if n.Text != "" {
			e.Notifications = []string{n.Text}
		}
		return h.single(ctx, e)

	case ActionPut:
		e := TraceEvent{Step: index, Action: step.Action, Target: step.Key, Outcome: OutcomeOK}
		if err := h.store.Set(ctx, step.Key, []byte(step.Value)); err != nil {
			return nil, err
		}
		return h.single(ctx, e)

	default:
		return nil, fmt.Errorf("unknown action %q", step.Action)
	}
}

func (h *Harness) single(ctx context.Context, e TraceEvent) ([]TraceEvent, error) {
	if err := h.stamp(ctx, &e); err != nil {
		return nil, err
	}
	return []TraceEvent{e}, nil
}

// stamp records the store's write seq after the action.
func (h *Harness) stamp(ctx context.Context, e *TraceEvent) error {
	seq, err := h.store.LastSeq(ctx)
	if err != nil {
		return err
	}
	e.Seq = seq
	return nil
}

// outcomeOf classifies an action error. Unclassified errors are returned.
func outcomeOf(err error) (string, error) {
	var (
		verrs   tracker.ValidationErrors
		clipErr *view.ClipboardError
	)
	switch {
	case err == nil:
		return OutcomeOK, nil
	case errors.As(err, &verrs):
		return OutcomeInvalidLinks, nil
	case errors.As(err, &clipErr):
		return OutcomeClipboardFailed, nil
	case errors.Is(err, store.ErrCorruptRecord):
		return OutcomeCorruptRecord, nil
	case errors.Is(err, view.ErrUnknownItem):
		return OutcomeUnknownItem, nil
	case errors.Is(err, view.ErrCopyDisabled):
		return OutcomeCopyDisabled, nil
	default:
		return "", err
	}
}

// checkExpect compares one event with the step's expect clause.
func checkExpect(x *Expect, e TraceEvent) []string {
	if x == nil {
		return nil
	}

	var errs []string
	want := x.Outcome
	if want == "" {
		want = OutcomeOK
	}
	if e.Outcome != want {
		errs = append(errs, fmt.Sprintf("outcome = %s, expected %s", e.Outcome, want))
	}
	if x.Status != "" && e.Status != x.Status {
		errs = append(errs, fmt.Sprintf("status = %q, expected %q", e.Status, x.Status))
	}
	if x.InvalidFields != nil && !slices.Equal(e.InvalidFields, x.InvalidFields) {
		errs = append(errs, fmt.Sprintf("invalid fields = %v, expected %v", e.InvalidFields, x.InvalidFields))
	}
	if x.Notifications != nil && !slices.Equal(e.Notifications, x.Notifications) {
		errs = append(errs, fmt.Sprintf("notifications = %q, expected %q", e.Notifications, x.Notifications))
	}
	return errs
}

func texts(ns []view.Notification) []string {
	if len(ns) == 0 {
		return nil
	}
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Text
	}
	return out
}
