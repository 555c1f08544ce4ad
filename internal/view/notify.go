package view

import "errors"

// Level classifies a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelCopied  Level = "copied"
	LevelAlert   Level = "alert"
)

// Notification is a message surfaced to the user after an operation.
type Notification struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Fixed notification texts.
const (
	MsgArtifactsSaved = "Artifacts saved successfully!"
	MsgCopied         = "Submission copied to clipboard!"
	MsgCopyFailed     = "Failed to copy to clipboard. Please try again."
)

var (
	// ErrUnknownItem is returned when toggling an id outside the catalog.
	ErrUnknownItem = errors.New("unknown checklist item")

	// ErrCopyDisabled is returned by Copy before the project is shipped.
	ErrCopyDisabled = errors.New("copy is available once all links are saved and all tests pass")
)
