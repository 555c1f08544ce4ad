package view

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/shipcheck/internal/tracker"
)

// Row is one catalog item with its stored checked state.
type Row struct {
	Kind    tracker.Kind `json:"kind"`
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Checked bool         `json:"checked"`
}

// Checklist is the step/test toggle surface.
type Checklist struct {
	records tracker.RecordStore
	logger  *slog.Logger
}

// NewChecklist creates a Checklist. A nil logger uses slog.Default().
func NewChecklist(records tracker.RecordStore, logger *slog.Logger) *Checklist {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checklist{records: records, logger: logger}
}

// LoadSteps returns all 8 steps with their checked state.
func (c *Checklist) LoadSteps(ctx context.Context) ([]Row, error) {
	return c.Load(ctx, tracker.KindStep)
}

// LoadTests returns all 10 tests with their checked state.
func (c *Checklist) LoadTests(ctx context.Context) ([]Row, error) {
	return c.Load(ctx, tracker.KindTest)
}

// Load returns the catalog for kind. Unset entries are unchecked.
func (c *Checklist) Load(ctx context.Context, kind tracker.Kind) ([]Row, error) {
	m, err := c.records.Completion(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %ss: %w", kind, err)
	}
	items := tracker.Items(kind)
	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{Kind: kind, ID: it.ID, Name: it.Name, Checked: m.Checked(it.ID)}
	}
	return rows, nil
}

// Toggle sets one entry and writes the whole map back. Only the map for
// kind is written.
func (c *Checklist) Toggle(ctx context.Context, kind tracker.Kind, id int, checked bool) error {
	if !tracker.ValidID(kind, id) {
		return fmt.Errorf("%w: %s %d (valid ids are 1-%d)", ErrUnknownItem, kind, id, tracker.Count(kind))
	}

	m, err := c.records.Completion(ctx, kind)
	if err != nil {
		return fmt.Errorf("toggle %s %d: %w", kind, id, err)
	}
	m[id] = checked
	if err := c.records.SetCompletion(ctx, kind, m); err != nil {
		return fmt.Errorf("toggle %s %d: %w", kind, id, err)
	}

	c.logger.Info("item toggled", "kind", kind, "id", id, "checked", checked)
	return nil
}
