// Package appstate holds the one-snip-at-a-time application state as an
// explicit struct with named transitions, so every mutation is a testable
// operation rather than a field poke on a window object.
package appstate

import "image"

// State is the in-memory state of one snip/preview/OCR cycle. It is owned
// by the event-loop goroutine and must not be shared across goroutines.
// Nothing here survives a restart.
type State struct {
	img  image.Image
	text string
}

// SetImage installs a newly captured (or pasted) image, discarding the
// previous image and any text recognized from it.
func (s *State) SetImage(img image.Image) {
	s.img = img
	s.text = ""
}

// ClearImage drops the current image and its recognized text.
func (s *State) ClearImage() {
	s.img = nil
	s.text = ""
}

// SetText installs the latest recognition result, replacing the previous one.
func (s *State) SetText(text string) {
	s.text = text
}

// ClearText drops the recognition result but keeps the image.
func (s *State) ClearText() {
	s.text = ""
}

// Image returns the current captured image, nil when none is held.
func (s *State) Image() image.Image { return s.img }

// HasImage reports whether a capture is currently held.
func (s *State) HasImage() bool { return s.img != nil }

// Text returns the current recognition result, "" when none is held.
func (s *State) Text() string { return s.text }

// HasText reports whether a recognition result is currently held.
func (s *State) HasText() bool { return s.text != "" }
