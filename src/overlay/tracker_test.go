package overlay

import (
	"testing"

	"snip-ocr/src/screenshot"
)

func TestTrackerDragProducesBoundingBox(t *testing.T) {
	var tr Tracker

	tr.Press(100, 100)
	if !tr.Dragging() {
		t.Fatal("Expected dragging after press")
	}
	tr.Move(200, 150)
	region, cancelled := tr.Release(300, 200)
	if cancelled {
		t.Fatal("Expected a finalized selection, got cancellation")
	}
	want := screenshot.Region{X: 100, Y: 100, Width: 200, Height: 100}
	if region != want {
		t.Errorf("Release() = %+v, want %+v", region, want)
	}
}

func TestTrackerReverseDragNormalizes(t *testing.T) {
	var tr Tracker

	tr.Press(300, 200)
	region, cancelled := tr.Release(100, 100)
	if cancelled {
		t.Fatal("Expected a finalized selection, got cancellation")
	}
	want := screenshot.Region{X: 100, Y: 100, Width: 200, Height: 100}
	if region != want {
		t.Errorf("Release() = %+v, want %+v", region, want)
	}
}

func TestTrackerZeroAreaCancels(t *testing.T) {
	tests := []struct {
		name             string
		pressX, pressY   int
		releaseX, releaseY int
	}{
		{"Press and release at same point", 50, 50, 50, 50},
		{"Horizontal line only", 50, 50, 200, 50},
		{"Vertical line only", 50, 50, 50, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Tracker
			tr.Press(tt.pressX, tt.pressY)
			region, cancelled := tr.Release(tt.releaseX, tt.releaseY)
			if !cancelled {
				t.Errorf("Expected cancellation, got region %+v", region)
			}
			if !tr.Cancelled() {
				t.Error("Expected tracker to report cancelled")
			}
		})
	}
}

func TestTrackerCurrentFollowsPointer(t *testing.T) {
	var tr Tracker

	if got := tr.Current(); !got.Empty() {
		t.Errorf("Idle tracker should report empty region, got %+v", got)
	}

	tr.Press(10, 20)
	tr.Move(110, 70)
	want := screenshot.Region{X: 10, Y: 20, Width: 100, Height: 50}
	if got := tr.Current(); got != want {
		t.Errorf("Current() = %+v, want %+v", got, want)
	}

	// Drag back past the anchor.
	tr.Move(0, 0)
	want = screenshot.Region{X: 0, Y: 0, Width: 10, Height: 20}
	if got := tr.Current(); got != want {
		t.Errorf("Current() after reverse move = %+v, want %+v", got, want)
	}
}

func TestTrackerCancelDuringDrag(t *testing.T) {
	var tr Tracker

	tr.Press(10, 10)
	tr.Move(500, 500)
	tr.Cancel()
	if tr.Phase() != PhaseFinalized {
		t.Error("Expected finalized phase after cancel")
	}
	if !tr.Cancelled() {
		t.Error("Expected cancelled after Cancel")
	}
}

func TestTrackerIgnoresEventsOutOfPhase(t *testing.T) {
	var tr Tracker

	// Move and release before any press must not start a drag.
	tr.Move(10, 10)
	if tr.Dragging() {
		t.Error("Move before press must not start dragging")
	}
	if _, cancelled := tr.Release(10, 10); !cancelled {
		t.Error("Release before press must report cancelled")
	}

	// A second press after finalization is ignored until Reset.
	tr.Reset()
	tr.Press(0, 0)
	tr.Press(500, 500) // anchor must stay at the first press
	region, cancelled := tr.Release(100, 100)
	if cancelled {
		t.Fatal("Expected selection")
	}
	want := screenshot.Region{X: 0, Y: 0, Width: 100, Height: 100}
	if region != want {
		t.Errorf("Release() = %+v, want %+v", region, want)
	}
}

func TestTrackerReset(t *testing.T) {
	var tr Tracker
	tr.Press(1, 1)
	tr.Cancel()
	tr.Reset()
	if tr.Phase() != PhaseIdle || tr.Cancelled() {
		t.Error("Reset should return tracker to a clean idle state")
	}
}
