package overlay

import (
	"snip-ocr/src/screenshot"
)

// Phase identifies where a drag gesture is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseFinalized
)

// Tracker is the drag-selection state machine shared by every overlay
// implementation. It is pure bookkeeping: the platform layer feeds it
// pointer events and reads back the rectangle to draw or report.
//
// Idle -> Dragging on Press (anchor fixed at the press point),
// Dragging -> Finalized on Release or Cancel. The current rectangle is
// always the normalized bounding box between the anchor and the pointer,
// so reverse drags behave the same as forward ones.
type Tracker struct {
	phase     Phase
	anchorX   int
	anchorY   int
	pointerX  int
	pointerY  int
	cancelled bool
}

// Phase returns the current gesture phase.
func (t *Tracker) Phase() Phase { return t.phase }

// Dragging reports whether a drag is in progress.
func (t *Tracker) Dragging() bool { return t.phase == PhaseDragging }

// Press starts a drag with the anchor fixed at (x, y). Ignored unless idle.
func (t *Tracker) Press(x, y int) {
	if t.phase != PhaseIdle {
		return
	}
	t.phase = PhaseDragging
	t.anchorX, t.anchorY = x, y
	t.pointerX, t.pointerY = x, y
}

// Move updates the pointer position. Ignored unless dragging.
func (t *Tracker) Move(x, y int) {
	if t.phase != PhaseDragging {
		return
	}
	t.pointerX, t.pointerY = x, y
}

// Release finalizes the gesture at (x, y) and returns the selected region.
// A zero-area box (release at the anchor, or no movement along one axis)
// finalizes as cancelled rather than producing a degenerate capture.
func (t *Tracker) Release(x, y int) (screenshot.Region, bool) {
	if t.phase != PhaseDragging {
		return screenshot.Region{}, true
	}
	t.pointerX, t.pointerY = x, y
	t.phase = PhaseFinalized

	region := t.Current()
	if region.Empty() {
		t.cancelled = true
		return screenshot.Region{}, true
	}
	return region, false
}

// Cancel aborts the gesture (Esc during a drag, or dismissing the overlay).
func (t *Tracker) Cancel() {
	t.phase = PhaseFinalized
	t.cancelled = true
}

// Cancelled reports whether the finalized gesture was a cancellation.
func (t *Tracker) Cancelled() bool { return t.cancelled }

// Current returns the normalized bounding box between the anchor and the
// last pointer position. Zero until the first Press.
func (t *Tracker) Current() screenshot.Region {
	if t.phase == PhaseIdle {
		return screenshot.Region{}
	}
	x0, x1 := t.anchorX, t.pointerX
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := t.anchorY, t.pointerY
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return screenshot.Region{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Reset returns the tracker to idle for the next gesture.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
