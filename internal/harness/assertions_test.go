package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shipcheck/internal/store"
	"github.com/roach88/shipcheck/internal/tracker"
)

func newAssertionContext(t *testing.T) (*AssertionContext, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return &AssertionContext{
		Records: store.NewRecords(kv, store.DefaultPrefix),
		Log:     kv,
		Ctx:     context.Background(),
	}, kv
}

func TestAssertStatus(t *testing.T) {
	actx, _ := newAssertionContext(t)
	result := NewResult()

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertStatus, Expect: "not-started"}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Actual: (absent)")

	require.NoError(t, actx.Records.SetStatus(actx.Ctx, tracker.StatusShipped))
	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertStatus, Expect: "shipped"}}, actx))
}

func TestAssertRecord_JSONIgnoresKeyOrder(t *testing.T) {
	actx, _ := newAssertionContext(t)
	result := NewResult()
	result.Records["jnt_artifacts"] = `{"lovable":"a","github":"b"}`

	ok := Assertion{Type: AssertRecord, Key: "jnt_artifacts", Value: `{ "github": "b", "lovable": "a" }`}
	assert.Empty(t, EvaluateAssertions(result, []Assertion{ok}, actx))

	bad := Assertion{Type: AssertRecord, Key: "jnt_artifacts", Value: `{"github":"c","lovable":"a"}`}
	errs := EvaluateAssertions(result, []Assertion{bad}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Diff (-want +got)")
}

func TestAssertRecord_RawValue(t *testing.T) {
	actx, _ := newAssertionContext(t)
	result := NewResult()
	result.Records["jnt_status"] = "shipped"

	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertRecord, Key: "jnt_status", Value: "shipped"}}, actx))

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertRecord, Key: "jnt_status", Value: "in-progress"}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `Actual: "shipped"`)

	errs = EvaluateAssertions(result, []Assertion{{Type: AssertRecord, Key: "jnt_steps", Value: "{}"}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "not stored")
}

func TestAssertRecordAbsent(t *testing.T) {
	actx, _ := newAssertionContext(t)
	result := NewResult()
	result.Records["jnt_steps"] = `{"1":true}`

	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertRecordAbsent, Key: "jnt_tests"}}, actx))
	assert.Len(t, EvaluateAssertions(result, []Assertion{{Type: AssertRecordAbsent, Key: "jnt_steps"}}, actx), 1)
}

func TestAssertWriteCount(t *testing.T) {
	actx, kv := newAssertionContext(t)
	result := NewResult()

	require.NoError(t, kv.Set(actx.Ctx, "a", []byte("1")))
	require.NoError(t, kv.Set(actx.Ctx, "a", []byte("2")))

	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertWriteCount, Count: 2}}, actx))
	errs := EvaluateAssertions(result, []Assertion{{Type: AssertWriteCount, Count: 1}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Actual: 2 writes")
}

func TestAssertCopies(t *testing.T) {
	actx, _ := newAssertionContext(t)
	actx.Copies = []string{"first block", "second block"}
	result := NewResult()

	assert.Empty(t, EvaluateAssertions(result, []Assertion{
		{Type: AssertCopied, Contains: "second"},
		{Type: AssertCopyCount, Count: 2},
	}, actx))

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertCopied, Contains: "third"},
		{Type: AssertCopyCount, Count: 0},
	}, actx)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "assertions[0]")
	assert.Contains(t, errs[1], "assertions[1]")
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	err := &AssertionError{
		Type:     AssertStatus,
		Expected: "shipped",
		Actual:   "in-progress",
		Trace:    []TraceEvent{{Step: 1, Action: ActionCheck, Target: "test 1", Outcome: OutcomeOK, Seq: 1}},
	}
	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: status")
	assert.Contains(t, msg, "[1] check test 1 -> ok (seq 1)")
}
