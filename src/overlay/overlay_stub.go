//go:build !windows

package overlay

import (
	"context"
	"fmt"

	"snip-ocr/src/screenshot"
)

type stubSelector struct{}

func newPlatformSelector() Selector { return &stubSelector{} }

func (s *stubSelector) Select(ctx context.Context) (screenshot.Region, bool, error) {
	return screenshot.Region{}, false, fmt.Errorf("interactive region selection not implemented for this platform")
}
