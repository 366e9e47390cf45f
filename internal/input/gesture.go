// Package input turns raw pointer events into drag gestures.
package input

import "github.com/go-gl/mathgl/mgl64"

// Button identifies a pointer button. Only ButtonPrimary drives gestures.
type Button int

const (
	ButtonNone Button = iota - 1
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent carries client coordinates in pixels, origin top-left.
type PointerEvent struct {
	Button Button
	X, Y   float64
}

// ThrowRequest is emitted when a drag ends after the pointer moved.
type ThrowRequest struct {
	Start mgl64.Vec2
	End   mgl64.Vec2
}

// DragGesture is the tracker's transient state; reset on each press.
type DragGesture struct {
	Start  mgl64.Vec2
	End    mgl64.Vec2
	Active bool
	Moved  bool
}

// ReleaseResult tells the caller what a release produced.
type ReleaseResult int

const (
	ReleaseNone    ReleaseResult = iota // event ignored
	ReleaseClick                        // pressed and released without moving
	ReleaseThrow                        // drag completed, ThrowRequest is valid
)

// Tracker converts press/move/release into a drag vector and moved flag.
type Tracker struct {
	width, height float64
	gesture       DragGesture
}

// NewTracker creates a tracker for a viewport of the given pixel size.
func NewTracker(width, height float64) *Tracker {
	return &Tracker{width: width, height: height}
}

// SetViewport updates the pixel size used for normalization (window resize).
func (t *Tracker) SetViewport(width, height float64) {
	t.width, t.height = width, height
}

// Gesture returns a copy of the current gesture state.
func (t *Tracker) Gesture() DragGesture {
	return t.gesture
}

// Normalize maps client pixels to device coordinates in [-1, 1], y up.
func (t *Tracker) Normalize(x, y float64) (mgl64.Vec2, bool) {
	if t.width <= 0 || t.height <= 0 {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{
		(x/t.width)*2 - 1,
		-(y/t.height)*2 + 1,
	}, true
}

// Press starts a new gesture.
func (t *Tracker) Press(ev PointerEvent) bool {
	if ev.Button != ButtonPrimary {
		return false
	}
	p, ok := t.Normalize(ev.X, ev.Y)
	if !ok {
		return false
	}
	t.gesture = DragGesture{Start: p, End: p, Active: true}
	return true
}

// Move follows the pointer while a gesture is active. It returns true when the
// pointer is away from the start point, which is the caller's cue to spin the
// ball for visual feedback.
func (t *Tracker) Move(ev PointerEvent) bool {
	if !t.gesture.Active {
		return false
	}
	p, ok := t.Normalize(ev.X, ev.Y)
	if !ok {
		return false
	}
	t.gesture.End = p
	if p != t.gesture.Start {
		t.gesture.Moved = true
		return true
	}
	return false
}

// Release ends the gesture.
func (t *Tracker) Release(ev PointerEvent) (ThrowRequest, ReleaseResult) {
	if ev.Button != ButtonPrimary || !t.gesture.Active {
		return ThrowRequest{}, ReleaseNone
	}
	t.gesture.Active = false
	moved := t.gesture.Moved
	t.gesture.Moved = false

	if !moved {
		return ThrowRequest{}, ReleaseClick
	}
	return ThrowRequest{Start: t.gesture.Start, End: t.gesture.End}, ReleaseThrow
}
