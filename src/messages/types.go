// Package messages defines the typed events the event loop consumes.
// UI widgets, the tray, and the hotkey listener post these; the loop is
// the only consumer.
package messages

import "snip-ocr/src/ocr"

// Message is the base interface for all event-loop messages.
type Message interface {
	Type() string
}

// Message type constants for logging and routing.
const (
	TypeSnipRequested       = "SnipRequested"
	TypePasteRequested      = "PasteRequested"
	TypeExtractRequested    = "ExtractRequested"
	TypeCopyRequested       = "CopyRequested"
	TypeRecognitionComplete = "RecognitionComplete"
	TypeQuitRequested       = "QuitRequested"
)

// SnipRequested - start the overlay drag-selection flow.
type SnipRequested struct{}

func (m SnipRequested) Type() string { return TypeSnipRequested }

// PasteRequested - replace the current capture with the clipboard image.
type PasteRequested struct{}

func (m PasteRequested) Type() string { return TypePasteRequested }

// ExtractRequested - run OCR on the current capture with the given backend.
type ExtractRequested struct {
	Backend ocr.Backend
}

func (m ExtractRequested) Type() string { return TypeExtractRequested }

// CopyRequested - copy the current recognition result to the clipboard.
type CopyRequested struct{}

func (m CopyRequested) Type() string { return TypeCopyRequested }

// RecognitionComplete - posted back by the worker pool when OCR finishes.
type RecognitionComplete struct {
	Text string
	Err  error
}

func (m RecognitionComplete) Type() string { return TypeRecognitionComplete }

// QuitRequested - shut the application down.
type QuitRequested struct{}

func (m QuitRequested) Type() string { return TypeQuitRequested }
