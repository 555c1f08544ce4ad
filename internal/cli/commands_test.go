package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shipcheck/internal/store"
	"github.com/roach88/shipcheck/internal/testutil"
	"github.com/roach88/shipcheck/internal/tracker"
	"github.com/roach88/shipcheck/internal/view"
)

// runCLI executes one shipcheck invocation and returns everything written to
// stdout. clip replaces the system clipboard when non-nil.
func runCLI(t *testing.T, clip view.Clipboard, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(&RootOptions{Clipboard: clip})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "profile.db")
}

// withRecords opens the database directly for setup or inspection.
func withRecords(t *testing.T, path string, fn func(*store.Records)) {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	fn(store.NewRecords(st, store.DefaultPrefix))
}

func decodeResponse(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var resp CLIResponse
	if data != nil {
		resp.Data = data
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestChecklist_FreshDatabase(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, nil, "--db", db, "checklist")
	require.NoError(t, err)
	assert.Contains(t, out, "Steps (0/8)")
	assert.Contains(t, out, "Tests (0/10)")
	assert.Contains(t, out, "[ ] 1  Project Setup")
}

func TestChecklist_OnlyTests(t *testing.T) {
	out, err := runCLI(t, nil, "--db", tempDB(t), "checklist", "tests")
	require.NoError(t, err)
	assert.NotContains(t, out, "Steps")
	assert.Contains(t, out, "Tests (0/10)")
}

func TestChecklist_UnknownSection(t *testing.T) {
	_, err := runCLI(t, nil, "--db", tempDB(t), "checklist", "bugs")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheckAndUncheck(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, nil, "--db", db, "check", "step", "3")
	require.NoError(t, err)
	assert.Equal(t, "✓ step 3 (Daily Digest System) checked\n", out)

	out, err = runCLI(t, nil, "--db", db, "checklist", "steps")
	require.NoError(t, err)
	assert.Contains(t, out, "Steps (1/8)")
	assert.Contains(t, out, "[x] 3  Daily Digest System")

	_, err = runCLI(t, nil, "--db", db, "uncheck", "step", "3")
	require.NoError(t, err)

	withRecords(t, db, func(r *store.Records) {
		steps, err := r.Completion(context.Background(), tracker.KindStep)
		require.NoError(t, err)
		assert.Equal(t, tracker.CompletionMap{3: false}, steps)

		tests, err := r.Completion(context.Background(), tracker.KindTest)
		require.NoError(t, err)
		assert.Empty(t, tests)
	})
}

func TestCheck_RejectsOutOfCatalogID(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, nil, "--db", db, "check", "test", "11")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E104]")

	_, err = runCLI(t, nil, "--db", db, "check", "step", "three")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_JSON(t *testing.T) {
	out, err := runCLI(t, nil, "--db", tempDB(t), "--format", "json", "check", "test", "10")
	require.NoError(t, err)

	var result ToggleResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Session)
	assert.Equal(t, ToggleResult{Kind: tracker.KindTest, ID: 10, Name: tracker.TestName(10), Checked: true}, result)
}

func TestSubmit_Valid(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, nil, "--db", db, "submit",
		"--lovable", "  https://lovable.dev/projects/jnt  ",
		"--github", "https://github.com/me/jnt",
		"--deployed", "http://jnt.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Artifacts saved successfully!")
	assert.Contains(t, out, "Status: In Progress")

	withRecords(t, db, func(r *store.Records) {
		a, err := r.Artifacts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://lovable.dev/projects/jnt", a.Lovable)

		st, ok, err := r.Status(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, tracker.StatusInProgress, st)
	})
}

func TestSubmit_InvalidSavesNothing(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, nil, "--db", db, "submit",
		"--lovable", "https://lovable.dev/projects/jnt",
		"--github", "github.com/me/jnt",
		"--deployed", "ftp://jnt.example.com")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Artifacts not saved")
	assert.Contains(t, out, "GitHub Repository")
	assert.Contains(t, out, "Live Deployment")
	assert.NotContains(t, out, "Lovable Project")
	assert.Equal(t, 2, strings.Count(out, tracker.InvalidURLMessage))

	out, err = runCLI(t, nil, "--db", db, "history")
	require.NoError(t, err)
	assert.Equal(t, "No records stored yet\n", out)
}

func TestSubmit_InvalidJSON(t *testing.T) {
	out, err := runCLI(t, nil, "--db", tempDB(t), "--format", "json", "submit", "--lovable", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)

	details, ok := resp.Error.Details.([]any)
	require.True(t, ok)
	assert.Len(t, details, 3)
}

func TestStatus_Transitions(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, nil, "--db", db, "status")
	require.NoError(t, err)
	assert.Equal(t, "not-started (Not Started)\ntests: 0 / 10 passed\nlinks: incomplete\n", out)

	_, err = runCLI(t, nil, "--db", db, "check", "test", "1")
	require.NoError(t, err)
	out, err = runCLI(t, nil, "--db", db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "in-progress (In Progress)")

	withRecords(t, db, func(r *store.Records) { testutil.Ship(t, r) })
	out, err = runCLI(t, nil, "--db", db, "status")
	require.NoError(t, err)
	assert.Equal(t, "shipped (Shipped)\ntests: 10 / 10 passed\nlinks: complete\n", out)

	// Unchecking a test moves the project back.
	_, err = runCLI(t, nil, "--db", db, "uncheck", "test", "4")
	require.NoError(t, err)
	out, err = runCLI(t, nil, "--db", db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "in-progress (In Progress)")
}

func TestProof_ShippedPage(t *testing.T) {
	db := tempDB(t)
	withRecords(t, db, func(r *store.Records) { testutil.Ship(t, r) })

	out, err := runCLI(t, nil, "--db", db, "proof")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Shipped")
	assert.Contains(t, out, "Copy Final Submission: enabled")
	assert.Contains(t, out, "✓ Project 1 Shipped Successfully.")

	withRecords(t, db, func(r *store.Records) {
		st, _, err := r.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tracker.StatusShipped, st)
	})
}

func TestProof_JSON(t *testing.T) {
	out, err := runCLI(t, nil, "--db", tempDB(t), "--format", "json", "proof")
	require.NoError(t, err)

	var page view.Page
	resp := decodeResponse(t, out, &page)
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, page.Summary, tracker.StepCount)
	assert.Equal(t, tracker.StatusNotStarted, page.Evaluation.Status)
	assert.Equal(t, tracker.TestCount, page.Tests.Remaining)
}

func TestSubmission_AbsentFieldsRenderEmpty(t *testing.T) {
	out, err := runCLI(t, nil, "--db", tempDB(t), "submission")
	require.NoError(t, err)
	assert.Contains(t, out, "Job Notification Tracker")
	assert.Contains(t, out, "Lovable Project:\n\n")
	assert.Contains(t, out, "Core Features:")
}

func TestCopy_DisabledUntilShipped(t *testing.T) {
	clip := &testutil.FakeClipboard{}

	out, err := runCLI(t, clip, "--db", tempDB(t), "copy")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E105]")
	assert.Empty(t, clip.Copies())
}

func TestCopy_Shipped(t *testing.T) {
	db := tempDB(t)
	withRecords(t, db, func(r *store.Records) { testutil.Ship(t, r) })
	clip := &testutil.FakeClipboard{}

	out, err := runCLI(t, clip, "--db", db, "copy")
	require.NoError(t, err)
	assert.Equal(t, "✓ "+view.MsgCopied+"\n", out)

	copies := clip.Copies()
	require.Len(t, copies, 1)
	assert.Contains(t, copies[0], testutil.FullLinks.Deployed)

	submission, err := runCLI(t, nil, "--db", db, "submission")
	require.NoError(t, err)
	assert.Equal(t, submission, copies[0]+"\n")
}

func TestCopy_ClipboardFailure(t *testing.T) {
	db := tempDB(t)
	withRecords(t, db, func(r *store.Records) { testutil.Ship(t, r) })
	clip := &testutil.FakeClipboard{Err: errors.New("no display")}

	out, err := runCLI(t, clip, "--db", db, "copy")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "! "+view.MsgCopyFailed+"\n", out)

	out, err = runCLI(t, clip, "--db", db, "--format", "json", "copy")
	require.Error(t, err)
	resp := decodeResponse(t, out, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeClipboard, resp.Error.Code)
}

func TestHistory_ListsWritesInOrder(t *testing.T) {
	db := tempDB(t)

	_, err := runCLI(t, nil, "--db", db, "check", "step", "1")
	require.NoError(t, err)
	_, err = runCLI(t, nil, "--db", db, "status")
	require.NoError(t, err)

	out, err := runCLI(t, nil, "--db", db, "--format", "json", "history")
	require.NoError(t, err)

	var entries []store.Entry
	decodeResponse(t, out, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "jnt_steps", entries[0].Key)
	assert.Equal(t, `{"1":true}`, entries[0].Value)
	assert.Equal(t, "jnt_status", entries[1].Key)
	assert.Equal(t, "not-started", entries[1].Value)
	assert.Less(t, entries[0].Seq, entries[1].Seq)
}

func TestCorruptRecord(t *testing.T) {
	db := tempDB(t)
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Set(context.Background(), "jnt_tests", []byte("{not json")))
	require.NoError(t, st.Close())

	out, err := runCLI(t, nil, "--db", db, "status")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E103]")
	assert.Contains(t, out, "jnt_tests")
}

func TestConfig_PrefixAndProject(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "shipcheck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`key_prefix: "p2_"
project:
  title: Resume Builder
  label: Project 2
  features:
    - PDF export
`), 0o644))
	db := filepath.Join(dir, "profile.db")

	st, err := store.Open(db)
	require.NoError(t, err)
	rec := store.NewRecords(st, "p2_")
	testutil.Ship(t, rec)
	require.NoError(t, st.Close())

	out, err := runCLI(t, nil, "--config", cfgPath, "--db", db, "proof")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Project 2 Shipped Successfully.")

	out, err = runCLI(t, nil, "--config", cfgPath, "--db", db, "submission")
	require.NoError(t, err)
	assert.Contains(t, out, "Resume Builder")
	assert.Contains(t, out, "- PDF export")
}

func TestConfig_Invalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "shipcheck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("colour: blue\n"), 0o644))

	out, err := runCLI(t, nil, "--config", cfgPath, "--db", tempDB(t), "status")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E107]")
}
