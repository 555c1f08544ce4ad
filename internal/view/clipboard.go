package view

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard writes text to the host clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API).
type SystemClipboard struct{}

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("no clipboard utility available")

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// ClipboardError reports a rejected copy. It is not retried.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("copy to clipboard: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}
