package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/shipcheck/internal/store"
	"github.com/roach88/shipcheck/internal/tracker"
)

// NewRecords returns records over a fresh in-memory store, plus the store
// for raw inspection.
func NewRecords(t *testing.T) (*store.Records, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return store.NewRecords(kv, store.DefaultPrefix), kv
}

// FullLinks is a valid, complete artifact record.
var FullLinks = tracker.ArtifactRecord{
	Lovable:  "https://lovable.dev/projects/jnt",
	GitHub:   "https://github.com/me/jnt",
	Deployed: "https://jnt.example.com",
}

// CheckRange marks ids from..to of kind as checked.
func CheckRange(t *testing.T, r tracker.RecordStore, kind tracker.Kind, from, to int) {
	t.Helper()
	ctx := context.Background()
	m, err := r.Completion(ctx, kind)
	require.NoError(t, err)
	for id := from; id <= to; id++ {
		m[id] = true
	}
	require.NoError(t, r.SetCompletion(ctx, kind, m))
}

// Ship puts r into the shipped state.
func Ship(t *testing.T, r tracker.RecordStore) {
	t.Helper()
	CheckRange(t, r, tracker.KindTest, 1, tracker.TestCount)
	require.NoError(t, r.SetArtifacts(context.Background(), FullLinks))
}
