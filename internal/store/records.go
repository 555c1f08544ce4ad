package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/shipcheck/internal/tracker"
)

// Record names, before the namespace prefix is applied.
const (
	RecordSteps     = "steps"
	RecordTests     = "tests"
	RecordArtifacts = "artifacts"
	RecordStatus    = "status"
)

// DefaultPrefix namespaces record keys inside a profile.
const DefaultPrefix = "jnt_"

// ErrCorruptRecord is matched by errors.Is for any record that exists but
// cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt record")

// CorruptRecordError names the record that failed to decode.
type CorruptRecordError struct {
	Key string
	Err error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record %q: %v", e.Key, e.Err)
}

func (e *CorruptRecordError) Unwrap() []error {
	return []error{ErrCorruptRecord, e.Err}
}

// Records provides typed access to the four profile records over a KV.
type Records struct {
	kv     KV
	prefix string
}

var _ tracker.RecordStore = (*Records)(nil)

// NewRecords wraps kv. An empty prefix is allowed.
func NewRecords(kv KV, prefix string) *Records {
	return &Records{kv: kv, prefix: prefix}
}

// Key returns the full storage key for a record name.
func (r *Records) Key(name string) string {
	return r.prefix + name
}

func completionRecord(kind tracker.Kind) (string, error) {
	switch kind {
	case tracker.KindStep:
		return RecordSteps, nil
	case tracker.KindTest:
		return RecordTests, nil
	default:
		return "", fmt.Errorf("unknown item kind %q", kind)
	}
}

// Completion reads the step or test map. Absent yields an empty map.
func (r *Records) Completion(ctx context.Context, kind tracker.Kind) (tracker.CompletionMap, error) {
	name, err := completionRecord(kind)
	if err != nil {
		return nil, err
	}
	m := tracker.CompletionMap{}
	if err := r.readJSON(ctx, name, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = tracker.CompletionMap{}
	}
	return m, nil
}

// SetCompletion replaces the step or test map.
func (r *Records) SetCompletion(ctx context.Context, kind tracker.Kind, m tracker.CompletionMap) error {
	name, err := completionRecord(kind)
	if err != nil {
		return err
	}
	if m == nil {
		m = tracker.CompletionMap{}
	}
	return r.writeJSON(ctx, name, m)
}

// Artifacts reads the artifact record. Absent yields the zero record.
func (r *Records) Artifacts(ctx context.Context) (tracker.ArtifactRecord, error) {
	var a tracker.ArtifactRecord
	if err := r.readJSON(ctx, RecordArtifacts, &a); err != nil {
		return tracker.ArtifactRecord{}, err
	}
	return a, nil
}

// SetArtifacts replaces the artifact record as one write.
func (r *Records) SetArtifacts(ctx context.Context, a tracker.ArtifactRecord) error {
	return r.writeJSON(ctx, RecordArtifacts, a)
}

// Status reads the persisted status. found is false when never written.
// The value is stored as a bare string, not JSON.
func (r *Records) Status(ctx context.Context) (tracker.Status, bool, error) {
	key := r.Key(RecordStatus)
	raw, found, err := r.kv.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return "", false, nil
	}
	st, err := tracker.ParseStatus(string(raw))
	if err != nil {
		return "", false, &CorruptRecordError{Key: key, Err: err}
	}
	return st, true, nil
}

// SetStatus overwrites the persisted status.
func (r *Records) SetStatus(ctx context.Context, s tracker.Status) error {
	key := r.Key(RecordStatus)
	if err := r.kv.Set(ctx, key, []byte(s)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// readJSON decodes the named record into v. Absent or empty values leave v
// untouched.
func (r *Records) readJSON(ctx context.Context, name string, v any) error {
	key := r.Key(name)
	raw, found, err := r.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &CorruptRecordError{Key: key, Err: err}
	}
	return nil
}

func (r *Records) writeJSON(ctx context.Context, name string, v any) error {
	key := r.Key(name)
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
