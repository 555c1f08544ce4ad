package testutil

import "sync"

// FakeClipboard records copied text instead of touching the host clipboard.
// Set Err to make every write fail.
type FakeClipboard struct {
	mu     sync.Mutex
	Err    error
	copies []string
}

// WriteAll records text, or returns Err when set.
func (c *FakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.copies = append(c.copies, text)
	return nil
}

// Copies returns every successfully copied text in order.
func (c *FakeClipboard) Copies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.copies...)
}

// BlockingClipboard never returns until Release is closed.
type BlockingClipboard struct {
	Release chan struct{}
}

// WriteAll blocks until Release is closed.
func (c *BlockingClipboard) WriteAll(string) error {
	<-c.Release
	return nil
}
