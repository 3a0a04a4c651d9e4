package grove

import (
	"math"
	"time"
)

// Default recognition thresholds.
const (
	DefaultHalfTapSquareSize = 20.0
	DefaultTapCountInterval  = 400 * time.Millisecond
	DefaultLongPressDuration = 1100 * time.Millisecond
)

// GestureListener receives gestures recognized by a GestureDetector. All
// positions are in the coordinate space the detector was fed (stage space for
// the stage-driven listeners). A true return marks the gesture as consumed.
type GestureListener interface {
	TouchDown(x, y float64, pointer int, button MouseButton) bool
	// Tap is called on release inside the tap rectangle. count is 1 for a
	// single tap, 2 for a double tap, and so on.
	Tap(x, y float64, count, pointer int, button MouseButton) bool
	// LongPress is called once the pointer has been held in place for the
	// long-press duration. Returning true suppresses every further gesture
	// of the current press.
	LongPress(x, y float64) bool
	// Fling is called on release with the velocity in units per second.
	Fling(velocityX, velocityY float64, pointer int, button MouseButton) bool
	// Pan is called while dragging outside the tap rectangle. deltaX and
	// deltaY are the displacement since the previous Pan.
	Pan(x, y, deltaX, deltaY float64) bool
	PanStop(x, y float64, pointer int, button MouseButton) bool
	// Zoom reports the distance between the two pointers at the start of the
	// pinch and now.
	Zoom(initialDistance, distance float64) bool
	Pinch(initialPointer1, initialPointer2, pointer1, pointer2 Vec2) bool
	PinchStop()
}

// GestureAdapter implements GestureListener with no-ops. Embed it to
// implement only the callbacks you need.
type GestureAdapter struct{}

func (GestureAdapter) TouchDown(x, y float64, pointer int, button MouseButton) bool { return false }
func (GestureAdapter) Tap(x, y float64, count, pointer int, button MouseButton) bool {
	return false
}
func (GestureAdapter) LongPress(x, y float64) bool { return false }
func (GestureAdapter) Fling(velocityX, velocityY float64, pointer int, button MouseButton) bool {
	return false
}
func (GestureAdapter) Pan(x, y, deltaX, deltaY float64) bool                      { return false }
func (GestureAdapter) PanStop(x, y float64, pointer int, button MouseButton) bool { return false }
func (GestureAdapter) Zoom(initialDistance, distance float64) bool                { return false }
func (GestureAdapter) Pinch(initialPointer1, initialPointer2, pointer1, pointer2 Vec2) bool {
	return false
}
func (GestureAdapter) PinchStop() {}

// DetectorConfig holds the recognition thresholds. Zero fields take the
// defaults.
type DetectorConfig struct {
	// HalfTapRectangleWidth and HalfTapRectangleHeight bound how far a
	// pointer may travel from its press position and still count as a tap.
	HalfTapRectangleWidth  float64
	HalfTapRectangleHeight float64
	// TapCountInterval is the longest gap between taps that still counts as
	// a multi-tap.
	TapCountInterval time.Duration
	// LongPressDuration is how long a pointer must be held for a long press.
	LongPressDuration time.Duration
	// MaxFlingDelay is the longest press that still produces a fling on
	// release. Zero means unbounded.
	MaxFlingDelay time.Duration
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// GestureDetector turns a stream of touch down/dragged/up input into taps,
// long presses, flings, pans and two-pointer pinch/zoom gestures. Only
// pointers 0 and 1 take part in recognition.
//
// Long presses are time-driven: call Update once per frame so the detector
// can notice a press that has been held long enough.
type GestureDetector struct {
	listener GestureListener

	tapRectangleWidth  float64
	tapRectangleHeight float64
	tapCountInterval   time.Duration
	longPressDuration  time.Duration
	maxFlingDelay      time.Duration
	now                func() time.Time

	inTapRectangle bool
	tapCount       int
	lastTapTime    time.Time
	lastTapX       float64
	lastTapY       float64
	lastTapButton  MouseButton
	lastTapPointer int
	longPressFired bool
	longPressArmed bool
	pinching       bool
	panning        bool
	pointerDown    [2]bool

	tracker         VelocityTracker
	tapCenterX      float64
	tapCenterY      float64
	touchDownTime   time.Time
	pointer1        Vec2
	pointer2        Vec2
	initialPointer1 Vec2
	initialPointer2 Vec2
}

// NewGestureDetector creates a detector reporting to listener.
func NewGestureDetector(listener GestureListener, cfg DetectorConfig) *GestureDetector {
	if listener == nil {
		panic("grove: gesture detector needs a listener")
	}
	d := &GestureDetector{listener: listener}
	d.SetTapRectangleSize(cfg.HalfTapRectangleWidth, cfg.HalfTapRectangleHeight)
	d.SetTapCountInterval(cfg.TapCountInterval)
	d.SetLongPressDuration(cfg.LongPressDuration)
	d.SetMaxFlingDelay(cfg.MaxFlingDelay)
	d.SetClock(cfg.Clock)
	return d
}

// --- Input ---

// TouchDown feeds a pointer press.
func (d *GestureDetector) TouchDown(x, y float64, pointer int, button MouseButton) bool {
	if pointer < 0 || pointer > 1 {
		return false
	}
	d.pointerDown[pointer] = true

	if pointer == 0 {
		d.pointer1 = Vec2{X: x, Y: y}
		d.touchDownTime = d.now()
		d.tracker.Start(x, y, d.touchDownTime)
		if d.pointerDown[1] {
			d.startPinch()
		} else {
			d.inTapRectangle = true
			d.pinching = false
			d.longPressFired = false
			d.tapCenterX = x
			d.tapCenterY = y
			d.longPressArmed = true
		}
	} else {
		d.pointer2 = Vec2{X: x, Y: y}
		d.startPinch()
	}
	return d.listener.TouchDown(x, y, pointer, button)
}

func (d *GestureDetector) startPinch() {
	d.inTapRectangle = false
	d.pinching = true
	d.initialPointer1 = d.pointer1
	d.initialPointer2 = d.pointer2
	d.longPressArmed = false
}

// TouchDragged feeds pointer movement while pressed.
func (d *GestureDetector) TouchDragged(x, y float64, pointer int) bool {
	if pointer < 0 || pointer > 1 {
		return false
	}
	if d.longPressFired {
		return false
	}

	if pointer == 0 {
		d.pointer1 = Vec2{X: x, Y: y}
	} else {
		d.pointer2 = Vec2{X: x, Y: y}
	}

	if d.pinching {
		result := d.listener.Pinch(d.initialPointer1, d.initialPointer2, d.pointer1, d.pointer2)
		return d.listener.Zoom(d.initialPointer1.Dst(d.initialPointer2), d.pointer1.Dst(d.pointer2)) || result
	}

	d.tracker.Update(x, y, d.now())

	if d.inTapRectangle && !d.isWithinTapRectangle(x, y, d.tapCenterX, d.tapCenterY) {
		d.longPressArmed = false
		d.inTapRectangle = false
	}

	if !d.inTapRectangle {
		d.panning = true
		return d.listener.Pan(x, y, d.tracker.DeltaX, d.tracker.DeltaY)
	}
	return false
}

// TouchUp feeds a pointer release.
func (d *GestureDetector) TouchUp(x, y float64, pointer int, button MouseButton) bool {
	if pointer < 0 || pointer > 1 {
		return false
	}
	d.pointerDown[pointer] = false

	if d.inTapRectangle && !d.isWithinTapRectangle(x, y, d.tapCenterX, d.tapCenterY) {
		d.inTapRectangle = false
	}

	wasPanning := d.panning
	d.panning = false

	d.longPressArmed = false
	if d.longPressFired {
		return false
	}

	now := d.now()

	if d.inTapRectangle {
		if d.lastTapButton != button || d.lastTapPointer != pointer ||
			now.Sub(d.lastTapTime) > d.tapCountInterval ||
			!d.isWithinTapRectangle(x, y, d.lastTapX, d.lastTapY) {
			d.tapCount = 0
		}
		d.tapCount++
		d.lastTapTime = now
		d.lastTapX = x
		d.lastTapY = y
		d.lastTapButton = button
		d.lastTapPointer = pointer
		d.touchDownTime = time.Time{}
		return d.listener.Tap(x, y, d.tapCount, pointer, button)
	}

	if d.pinching {
		d.pinching = false
		d.listener.PinchStop()
		d.panning = true
		// Continue panning with whichever pointer is still down.
		if pointer == 0 {
			d.tracker.Start(d.pointer2.X, d.pointer2.Y, now)
		} else {
			d.tracker.Start(d.pointer1.X, d.pointer1.Y, now)
		}
		return false
	}

	handled := false
	if wasPanning && !d.panning {
		handled = d.listener.PanStop(x, y, pointer, button)
	}

	if !d.touchDownTime.IsZero() && (d.maxFlingDelay <= 0 || now.Sub(d.touchDownTime) <= d.maxFlingDelay) {
		d.tracker.Update(x, y, now)
		handled = d.listener.Fling(d.tracker.VelocityX(), d.tracker.VelocityY(), pointer, button) || handled
	}
	d.touchDownTime = time.Time{}
	return handled
}

// Update fires a pending long press once the press has been held for the
// long-press duration. Call it once per frame.
func (d *GestureDetector) Update() {
	if !d.longPressArmed || d.longPressFired || d.touchDownTime.IsZero() {
		return
	}
	if d.now().Sub(d.touchDownTime) < d.longPressDuration {
		return
	}
	d.longPressArmed = false
	d.longPressFired = d.listener.LongPress(d.pointer1.X, d.pointer1.Y)
}

// --- State ---

// Cancel drops the pending long press and suppresses the remaining gestures
// of the current press, as if a long press had been consumed.
func (d *GestureDetector) Cancel() {
	d.longPressArmed = false
	d.longPressFired = true
}

// Reset clears press, pan and tap-rectangle state.
func (d *GestureDetector) Reset() {
	d.touchDownTime = time.Time{}
	d.panning = false
	d.inTapRectangle = false
	d.longPressArmed = false
	d.pointerDown = [2]bool{}
	d.tracker.reset()
}

// InvalidateTapSquare stops the current press from being reported as a tap.
func (d *GestureDetector) InvalidateTapSquare() {
	d.inTapRectangle = false
}

// IsPanning reports whether a pan is in progress.
func (d *GestureDetector) IsPanning() bool {
	return d.panning
}

// IsLongPressed reports whether the current press has been held for at least
// the long-press duration.
func (d *GestureDetector) IsLongPressed() bool {
	return d.IsLongPressedFor(d.longPressDuration)
}

// IsLongPressedFor reports whether the current press has been held longer
// than duration.
func (d *GestureDetector) IsLongPressedFor(duration time.Duration) bool {
	if d.touchDownTime.IsZero() {
		return false
	}
	return d.now().Sub(d.touchDownTime) > duration
}

func (d *GestureDetector) isWithinTapRectangle(x, y, centerX, centerY float64) bool {
	return math.Abs(x-centerX) < d.tapRectangleWidth && math.Abs(y-centerY) < d.tapRectangleHeight
}

// --- Configuration ---

// SetTapSquareSize sets both tap rectangle half extents.
func (d *GestureDetector) SetTapSquareSize(halfTapSquareSize float64) {
	d.SetTapRectangleSize(halfTapSquareSize, halfTapSquareSize)
}

// SetTapRectangleSize sets the tap rectangle half extents. Non-positive
// values restore the default.
func (d *GestureDetector) SetTapRectangleSize(halfWidth, halfHeight float64) {
	if halfWidth <= 0 {
		halfWidth = DefaultHalfTapSquareSize
	}
	if halfHeight <= 0 {
		halfHeight = DefaultHalfTapSquareSize
	}
	d.tapRectangleWidth = halfWidth
	d.tapRectangleHeight = halfHeight
}

// SetTapCountInterval sets the multi-tap interval. Non-positive values
// restore the default.
func (d *GestureDetector) SetTapCountInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTapCountInterval
	}
	d.tapCountInterval = interval
}

// SetLongPressDuration sets the long-press hold time. Non-positive values
// restore the default.
func (d *GestureDetector) SetLongPressDuration(duration time.Duration) {
	if duration <= 0 {
		duration = DefaultLongPressDuration
	}
	d.longPressDuration = duration
}

// SetMaxFlingDelay sets the longest press that still flings. Zero means
// unbounded.
func (d *GestureDetector) SetMaxFlingDelay(delay time.Duration) {
	d.maxFlingDelay = delay
}

// SetClock overrides the time source. nil restores time.Now.
func (d *GestureDetector) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	d.now = now
}
