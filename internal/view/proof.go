package view

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/shipcheck/internal/tracker"
)

// Summary states.
const (
	StateCompleted = "Completed"
	StatePending   = "Pending"
)

// SummaryRow is one step on the completion summary.
type SummaryRow struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	State     string `json:"state"`
}

// TestStatus is the passed/remaining count over the fixed test set.
type TestStatus struct {
	Passed    int `json:"passed"`
	Total     int `json:"total"`
	Remaining int `json:"remaining"`
}

// Page is everything the proof view shows on load.
type Page struct {
	Summary       []SummaryRow           `json:"summary"`
	Tests         TestStatus             `json:"tests"`
	Artifacts     tracker.ArtifactRecord `json:"artifacts"`
	Evaluation    tracker.Evaluation     `json:"evaluation"`
	Notifications []Notification         `json:"notifications,omitempty"`
}

// SubmitResult is the outcome of a successful artifact save.
type SubmitResult struct {
	Artifacts     tracker.ArtifactRecord `json:"artifacts"`
	Evaluation    tracker.Evaluation     `json:"evaluation"`
	Notifications []Notification         `json:"notifications"`
}

// Proof is the submission surface.
type Proof struct {
	records   tracker.RecordStore
	deriver   *tracker.Deriver
	project   tracker.Project
	clipboard Clipboard
	logger    *slog.Logger
}

// ProofOption configures a Proof.
type ProofOption func(*Proof)

// WithProject overrides the project shown in messages and the submission block.
func WithProject(p tracker.Project) ProofOption {
	return func(pr *Proof) { pr.project = p }
}

// WithClipboard overrides the clipboard used by Copy.
func WithClipboard(c Clipboard) ProofOption {
	return func(pr *Proof) { pr.clipboard = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ProofOption {
	return func(pr *Proof) { pr.logger = l }
}

// NewProof creates a Proof over records. Defaults to DefaultProject, the
// system clipboard and slog.Default().
func NewProof(records tracker.RecordStore, opts ...ProofOption) *Proof {
	p := &Proof{
		records:   records,
		project:   tracker.DefaultProject,
		clipboard: SystemClipboard{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.deriver = tracker.NewDeriver(records, p.logger)
	return p
}

// Load performs a page load: summary, test status, saved artifacts, then a
// status derivation that is persisted.
func (p *Proof) Load(ctx context.Context) (Page, error) {
	summary, err := p.RenderSummary(ctx)
	if err != nil {
		return Page{}, err
	}
	tests, err := p.RenderTestStatus(ctx)
	if err != nil {
		return Page{}, err
	}
	artifacts, err := p.LoadArtifacts(ctx)
	if err != nil {
		return Page{}, err
	}
	eval, err := p.deriver.DeriveAndPersist(ctx)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Summary:    summary,
		Tests:      tests,
		Artifacts:  artifacts,
		Evaluation: eval,
	}
	if n, ok := p.shippedNotice(eval); ok {
		page.Notifications = append(page.Notifications, n)
	}
	return page, nil
}

// RenderSummary lists steps 1..8 as completed or pending.
func (p *Proof) RenderSummary(ctx context.Context) ([]SummaryRow, error) {
	steps, err := p.records.Completion(ctx, tracker.KindStep)
	if err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	items := tracker.Items(tracker.KindStep)
	rows := make([]SummaryRow, len(items))
	for i, it := range items {
		done := steps.Checked(it.ID)
		state := StatePending
		if done {
			state = StateCompleted
		}
		rows[i] = SummaryRow{ID: it.ID, Name: it.Name, Completed: done, State: state}
	}
	return rows, nil
}

// RenderTestStatus counts passed tests over 1..10.
func (p *Proof) RenderTestStatus(ctx context.Context) (TestStatus, error) {
	tests, err := p.records.Completion(ctx, tracker.KindTest)
	if err != nil {
		return TestStatus{}, fmt.Errorf("render test status: %w", err)
	}
	passed := tests.CountChecked(tracker.KindTest)
	return TestStatus{Passed: passed, Total: tracker.TestCount, Remaining: tracker.TestCount - passed}, nil
}

// LoadArtifacts returns the saved links. Absent fields are empty.
func (p *Proof) LoadArtifacts(ctx context.Context) (tracker.ArtifactRecord, error) {
	a, err := p.records.Artifacts(ctx)
	if err != nil {
		return tracker.ArtifactRecord{}, fmt.Errorf("load artifacts: %w", err)
	}
	return a, nil
}

// SubmitArtifacts validates the three links and saves them as one record.
// If any link is invalid nothing is written and the error is
// tracker.ValidationErrors with one entry per invalid field.
func (p *Proof) SubmitArtifacts(ctx context.Context, lovable, github, deployed string) (SubmitResult, error) {
	rec, err := tracker.ValidateArtifacts(lovable, github, deployed)
	if err != nil {
		p.logger.Warn("artifact submission rejected", "error", err)
		return SubmitResult{}, err
	}

	if err := p.records.SetArtifacts(ctx, rec); err != nil {
		return SubmitResult{}, fmt.Errorf("save artifacts: %w", err)
	}
	p.logger.Info("artifacts saved")

	eval, err := p.deriver.DeriveAndPersist(ctx)
	if err != nil {
		return SubmitResult{}, err
	}

	res := SubmitResult{
		Artifacts:     rec,
		Evaluation:    eval,
		Notifications: []Notification{{Level: LevelSuccess, Text: MsgArtifactsSaved}},
	}
	if n, ok := p.shippedNotice(eval); ok {
		res.Notifications = append(res.Notifications, n)
	}
	return res, nil
}

// SubmissionText formats the saved links into the submission block.
func (p *Proof) SubmissionText(ctx context.Context) (string, error) {
	a, err := p.LoadArtifacts(ctx)
	if err != nil {
		return "", err
	}
	return tracker.SubmissionText(p.project, a), nil
}

// Copy writes the submission block to the clipboard. It is only enabled
// once the project is shipped. A rejected write returns a ClipboardError
// together with the alert notification.
func (p *Proof) Copy(ctx context.Context) (Notification, error) {
	artifacts, err := p.LoadArtifacts(ctx)
	if err != nil {
		return Notification{}, err
	}
	tests, err := p.records.Completion(ctx, tracker.KindTest)
	if err != nil {
		return Notification{}, fmt.Errorf("copy: %w", err)
	}
	if !tracker.Evaluate(artifacts, tests).CopyEnabled {
		return Notification{}, ErrCopyDisabled
	}

	text := tracker.SubmissionText(p.project, artifacts)
	if err := p.writeClipboard(ctx, text); err != nil {
		p.logger.Error("failed to copy", "error", err)
		return Notification{Level: LevelAlert, Text: MsgCopyFailed}, &ClipboardError{Err: err}
	}
	return Notification{Level: LevelCopied, Text: MsgCopied}, nil
}

// writeClipboard runs the platform write off the caller's goroutine so a
// hung clipboard utility cannot outlive ctx.
func (p *Proof) writeClipboard(ctx context.Context, text string) error {
	done := make(chan error, 1)
	go func() { done <- p.clipboard.WriteAll(text) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Proof) shippedNotice(eval tracker.Evaluation) (Notification, bool) {
	if eval.Status != tracker.StatusShipped {
		return Notification{}, false
	}
	return Notification{Level: LevelSuccess, Text: p.project.ShippedMessage()}, true
}
