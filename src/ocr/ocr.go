// Package ocr abstracts over the interchangeable text-recognition backends.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
)

// Recognition failure taxonomy. Callers match with errors.Is and report
// through the UI; a failed recognition never clears prior state.
var (
	ErrInvalidInput   = errors.New("invalid input image")
	ErrUnavailable    = errors.New("ocr backend unavailable")
	ErrNotImplemented = errors.New("ocr backend not implemented")
)

// Backend selects a recognition implementation. The set is closed:
// selection happens through this enum, so an invalid backend is
// unrepresentable past the parse boundary.
type Backend int

const (
	// BackendFast is the default local engine, tuned for speed.
	BackendFast Backend = iota
	// BackendAccurate is the slower local engine using best-quality
	// language data, which may not be installed.
	BackendAccurate
	// BackendCloud is named in the UI but intentionally unimplemented.
	BackendCloud
)

func (b Backend) String() string {
	switch b {
	case BackendFast:
		return "fast"
	case BackendAccurate:
		return "accurate"
	case BackendCloud:
		return "cloud"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// Label returns the human-readable name shown in the backend dropdown.
func (b Backend) Label() string {
	switch b {
	case BackendFast:
		return "Tesseract (Fast)"
	case BackendAccurate:
		return "Tesseract Best (Accurate)"
	case BackendCloud:
		return "Cloud API (Not Implemented)"
	default:
		return b.String()
	}
}

// Backends returns all selectable backends in dropdown order.
func Backends() []Backend {
	return []Backend{BackendFast, BackendAccurate, BackendCloud}
}

// ParseBackend maps a configuration string to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fast", "tesseract":
		return BackendFast, nil
	case "accurate", "best":
		return BackendAccurate, nil
	case "cloud":
		return BackendCloud, nil
	default:
		return BackendFast, fmt.Errorf("unknown ocr backend %q", s)
	}
}

// ParseBackendLabel maps a dropdown label back to its Backend.
func ParseBackendLabel(label string) (Backend, error) {
	for _, b := range Backends() {
		if b.Label() == label {
			return b, nil
		}
	}
	return BackendFast, fmt.Errorf("unknown ocr backend label %q", label)
}

// Engine recognizes text in a preprocessed image. Implementations honor
// ctx cancellation and return "" with a taxonomy error on failure.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Options tunes engine construction.
type Options struct {
	// Language is the tesseract language code, "eng" when empty.
	Language string
}

func (o Options) language() string {
	if o.Language == "" {
		return "eng"
	}
	return o.Language
}

// NewEngine returns the Engine for the selected backend. Construction
// always succeeds; availability problems surface as ErrUnavailable from
// Recognize so the caller can report without losing state.
func NewEngine(b Backend, opts Options) Engine {
	switch b {
	case BackendAccurate:
		return newAccurateEngine(opts)
	case BackendCloud:
		return cloudEngine{}
	default:
		return newFastEngine(opts)
	}
}

// validateInput applies the shared invalid-image checks.
func validateInput(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: empty image %dx%d", ErrInvalidInput, b.Dx(), b.Dy())
	}
	return nil
}

// cloudEngine refuses every request before touching the image, the
// capture source, or the network.
type cloudEngine struct{}

func (cloudEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	return "", fmt.Errorf("%w: cloud recognition is not available in this build", ErrNotImplemented)
}
