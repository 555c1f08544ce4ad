package view

import (
	"bytes"
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shipcheck/internal/testutil"
	"github.com/roach88/shipcheck/internal/tracker"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteChecklist_Golden(t *testing.T) {
	ctx := context.Background()
	records, _ := testutil.NewRecords(t)
	require.NoError(t, records.SetCompletion(ctx, tracker.KindStep, tracker.CompletionMap{1: true, 2: true, 5: false}))
	require.NoError(t, records.SetCompletion(ctx, tracker.KindTest, tracker.CompletionMap{10: true}))
	c := NewChecklist(records, nil)

	var buf bytes.Buffer
	steps, err := c.LoadSteps(ctx)
	require.NoError(t, err)
	WriteChecklist(&buf, tracker.KindStep, steps)

	tests, err := c.LoadTests(ctx)
	require.NoError(t, err)
	WriteChecklist(&buf, tracker.KindTest, tests)

	newGolden(t).Assert(t, "checklist", buf.Bytes())
}

func TestWritePage_Golden(t *testing.T) {
	t.Run("in_progress", func(t *testing.T) {
		ctx := context.Background()
		records, _ := testutil.NewRecords(t)
		testutil.CheckRange(t, records, tracker.KindStep, 1, 3)
		testutil.CheckRange(t, records, tracker.KindTest, 1, 9)
		require.NoError(t, records.SetArtifacts(ctx, tracker.ArtifactRecord{GitHub: "https://github.com/me/jnt"}))

		page, err := NewProof(records).Load(ctx)
		require.NoError(t, err)

		var buf bytes.Buffer
		WritePage(&buf, page)
		newGolden(t).Assert(t, "page_in_progress", buf.Bytes())
	})

	t.Run("shipped", func(t *testing.T) {
		ctx := context.Background()
		records, _ := testutil.NewRecords(t)
		testutil.CheckRange(t, records, tracker.KindStep, 1, 8)
		testutil.Ship(t, records)

		page, err := NewProof(records).Load(ctx)
		require.NoError(t, err)

		var buf bytes.Buffer
		WritePage(&buf, page)
		newGolden(t).Assert(t, "page_shipped", buf.Bytes())
	})
}

func TestWriteValidationErrors_Golden(t *testing.T) {
	_, err := tracker.ValidateArtifacts("bad", "https://github.com/me/jnt", "ftp://x.com")
	var verrs tracker.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	var buf bytes.Buffer
	WriteValidationErrors(&buf, verrs)
	WriteNotifications(&buf, []Notification{{Level: LevelAlert, Text: MsgCopyFailed}})
	newGolden(t).Assert(t, "validation_errors", buf.Bytes())
}
