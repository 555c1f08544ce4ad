package tracker

import (
	"context"
	"fmt"
	"log/slog"
)

// RecordStore is the persistence port over the four named records.
// Reads of an absent record return the empty default, not an error.
// Writes replace the whole record.
type RecordStore interface {
	Completion(ctx context.Context, kind Kind) (CompletionMap, error)
	SetCompletion(ctx context.Context, kind Kind, m CompletionMap) error
	Artifacts(ctx context.Context) (ArtifactRecord, error)
	SetArtifacts(ctx context.Context, a ArtifactRecord) error
	Status(ctx context.Context) (Status, bool, error)
	SetStatus(ctx context.Context, s Status) error
}

// Deriver recomputes the status from stored records and persists it.
type Deriver struct {
	records RecordStore
	logger  *slog.Logger
}

// NewDeriver creates a Deriver. A nil logger uses slog.Default().
func NewDeriver(records RecordStore, logger *slog.Logger) *Deriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deriver{records: records, logger: logger}
}

// DeriveAndPersist reads the artifact record and the test map, derives the
// status, and writes it unconditionally. It is the only place status is
// written.
func (d *Deriver) DeriveAndPersist(ctx context.Context) (Evaluation, error) {
	artifacts, err := d.records.Artifacts(ctx)
	if err != nil {
		return Evaluation{}, fmt.Errorf("derive status: %w", err)
	}
	tests, err := d.records.Completion(ctx, KindTest)
	if err != nil {
		return Evaluation{}, fmt.Errorf("derive status: %w", err)
	}

	eval := Evaluate(artifacts, tests)
	if err := d.records.SetStatus(ctx, eval.Status); err != nil {
		return Evaluation{}, fmt.Errorf("derive status: %w", err)
	}

	d.logger.Debug("status derived",
		"status", eval.Status,
		"passed", eval.Passed,
		"has_all_links", eval.HasAllLinks,
	)
	return eval, nil
}
