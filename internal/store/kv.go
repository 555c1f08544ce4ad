package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// KV is the key-value contract both store implementations satisfy.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Log exposes write history. Implemented by Store and Memory.
type Log interface {
	Entries(ctx context.Context) ([]Entry, error)
	LastSeq(ctx context.Context) (int64, error)
}

var (
	_ KV  = (*Store)(nil)
	_ Log = (*Store)(nil)
	_ KV  = (*Memory)(nil)
	_ Log = (*Memory)(nil)
)

// Memory is an in-process KV with the same semantics as Store.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
	seq     int64
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry), now: time.Now}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(e.Value), true, nil
}

// Set replaces the value stored under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.entries[key] = Entry{Key: key, Value: string(value), Seq: m.seq, UpdatedAt: m.now().UTC()}
	return nil
}

// Entries returns all records ordered by seq.
func (m *Memory) Entries(_ context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// LastSeq returns the seq of the most recent write.
func (m *Memory) LastSeq(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq, nil
}
