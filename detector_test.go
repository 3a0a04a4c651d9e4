package grove

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *fakeClock) config() DetectorConfig  { return DetectorConfig{Clock: c.now} }

type tapCall struct {
	x, y           float64
	count, pointer int
	button         MouseButton
}

type panCall struct {
	x, y, dx, dy float64
}

type pinchCall struct {
	i1, i2, p1, p2 Vec2
}

// gestureRecorder records every callback it receives.
type gestureRecorder struct {
	GestureAdapter

	longPressResult bool

	downs      int
	taps       []tapCall
	longPress  []Vec2
	flings     []Vec2
	pans       []panCall
	panStops   int
	zooms      [][2]float64
	pinches    []pinchCall
	pinchStops int
}

func (r *gestureRecorder) TouchDown(x, y float64, pointer int, button MouseButton) bool {
	r.downs++
	return false
}

func (r *gestureRecorder) Tap(x, y float64, count, pointer int, button MouseButton) bool {
	r.taps = append(r.taps, tapCall{x, y, count, pointer, button})
	return true
}

func (r *gestureRecorder) LongPress(x, y float64) bool {
	r.longPress = append(r.longPress, Vec2{x, y})
	return r.longPressResult
}

func (r *gestureRecorder) Fling(vx, vy float64, pointer int, button MouseButton) bool {
	r.flings = append(r.flings, Vec2{vx, vy})
	return true
}

func (r *gestureRecorder) Pan(x, y, dx, dy float64) bool {
	r.pans = append(r.pans, panCall{x, y, dx, dy})
	return true
}

func (r *gestureRecorder) PanStop(x, y float64, pointer int, button MouseButton) bool {
	r.panStops++
	return true
}

func (r *gestureRecorder) Zoom(initialDistance, distance float64) bool {
	r.zooms = append(r.zooms, [2]float64{initialDistance, distance})
	return true
}

func (r *gestureRecorder) Pinch(i1, i2, p1, p2 Vec2) bool {
	r.pinches = append(r.pinches, pinchCall{i1, i2, p1, p2})
	return true
}

func (r *gestureRecorder) PinchStop() { r.pinchStops++ }

func newRecordedDetector() (*GestureDetector, *gestureRecorder, *fakeClock) {
	clock := newFakeClock()
	rec := &gestureRecorder{}
	return NewGestureDetector(rec, clock.config()), rec, clock
}

func TestNewGestureDetectorDefaults(t *testing.T) {
	d := NewGestureDetector(GestureAdapter{}, DetectorConfig{})
	if d.tapRectangleWidth != DefaultHalfTapSquareSize || d.tapRectangleHeight != DefaultHalfTapSquareSize {
		t.Errorf("tap rectangle = (%v, %v), want default", d.tapRectangleWidth, d.tapRectangleHeight)
	}
	if d.tapCountInterval != DefaultTapCountInterval {
		t.Errorf("tapCountInterval = %v", d.tapCountInterval)
	}
	if d.longPressDuration != DefaultLongPressDuration {
		t.Errorf("longPressDuration = %v", d.longPressDuration)
	}
	if d.now == nil {
		t.Error("clock should default to time.Now")
	}
}

func TestNewGestureDetectorNilListenerPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil listener")
		}
	}()
	NewGestureDetector(nil, DetectorConfig{})
}

func TestDetectorTap(t *testing.T) {
	d, rec, clock := newRecordedDetector()

	d.TouchDown(10, 10, 0, MouseButtonLeft)
	clock.advance(50 * time.Millisecond)
	if !d.TouchUp(12, 11, 0, MouseButtonLeft) {
		t.Error("TouchUp should report the tap as handled")
	}

	if rec.downs != 1 {
		t.Errorf("downs = %d, want 1", rec.downs)
	}
	if len(rec.taps) != 1 {
		t.Fatalf("taps = %d, want 1", len(rec.taps))
	}
	want := tapCall{12, 11, 1, 0, MouseButtonLeft}
	if rec.taps[0] != want {
		t.Errorf("tap = %+v, want %+v", rec.taps[0], want)
	}
	if len(rec.flings) != 0 {
		t.Error("a tap should not fling")
	}
}

func TestDetectorDoubleTap(t *testing.T) {
	d, rec, clock := newRecordedDetector()

	for i := 0; i < 2; i++ {
		d.TouchDown(10, 10, 0, MouseButtonLeft)
		clock.advance(50 * time.Millisecond)
		d.TouchUp(10, 10, 0, MouseButtonLeft)
		clock.advance(100 * time.Millisecond)
	}
	if len(rec.taps) != 2 || rec.taps[1].count != 2 {
		t.Fatalf("taps = %+v, want second count 2", rec.taps)
	}
}

func TestDetectorTapCountResets(t *testing.T) {
	tests := []struct {
		name   string
		second func(d *GestureDetector, clock *fakeClock)
	}{
		{"interval elapsed", func(d *GestureDetector, clock *fakeClock) {
			clock.advance(DefaultTapCountInterval + time.Millisecond)
			d.TouchDown(10, 10, 0, MouseButtonLeft)
			d.TouchUp(10, 10, 0, MouseButtonLeft)
		}},
		{"different button", func(d *GestureDetector, clock *fakeClock) {
			d.TouchDown(10, 10, 0, MouseButtonRight)
			d.TouchUp(10, 10, 0, MouseButtonRight)
		}},
		{"far from last tap", func(d *GestureDetector, clock *fakeClock) {
			d.TouchDown(200, 200, 0, MouseButtonLeft)
			d.TouchUp(200, 200, 0, MouseButtonLeft)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec, clock := newRecordedDetector()
			d.TouchDown(10, 10, 0, MouseButtonLeft)
			d.TouchUp(10, 10, 0, MouseButtonLeft)
			tt.second(d, clock)
			if len(rec.taps) != 2 {
				t.Fatalf("taps = %d, want 2", len(rec.taps))
			}
			if rec.taps[1].count != 1 {
				t.Errorf("count = %d, want 1", rec.taps[1].count)
			}
		})
	}
}

func TestDetectorPanIncrementalDeltas(t *testing.T) {
	d, rec, clock := newRecordedDetector()

	d.TouchDown(0, 0, 0, MouseButtonLeft)
	clock.advance(10 * time.Millisecond)
	if d.TouchDragged(5, 0, 0) {
		t.Error("movement inside the tap rectangle should not pan")
	}
	clock.advance(10 * time.Millisecond)
	d.TouchDragged(30, 0, 0)
	clock.advance(10 * time.Millisecond)
	d.TouchDragged(50, 5, 0)

	if !d.IsPanning() {
		t.Error("IsPanning should be true")
	}
	want := []panCall{{30, 0, 25, 0}, {50, 5, 20, 5}}
	if len(rec.pans) != len(want) {
		t.Fatalf("pans = %+v, want %+v", rec.pans, want)
	}
	for i := range want {
		if rec.pans[i] != want[i] {
			t.Errorf("pan[%d] = %+v, want %+v", i, rec.pans[i], want[i])
		}
	}

	clock.advance(10 * time.Millisecond)
	d.TouchUp(50, 5, 0, MouseButtonLeft)
	if rec.panStops != 1 {
		t.Errorf("panStops = %d, want 1", rec.panStops)
	}
	if len(rec.taps) != 0 {
		t.Error("a pan should not tap")
	}
	if d.IsPanning() {
		t.Error("IsPanning should be false after release")
	}
}

func TestDetectorFlingVelocity(t *testing.T) {
	d, rec, clock := newRecordedDetector()

	d.TouchDown(0, 0, 0, MouseButtonLeft)
	for i := 1; i <= 3; i++ {
		clock.advance(10 * time.Millisecond)
		d.TouchDragged(float64(i*30), 0, 0)
	}
	clock.advance(10 * time.Millisecond)
	d.TouchUp(120, 0, 0, MouseButtonLeft)

	if len(rec.flings) != 1 {
		t.Fatalf("flings = %d, want 1", len(rec.flings))
	}
	// 30 units per 10ms.
	assertNear(t, "vx", rec.flings[0].X, 3000)
	assertNear(t, "vy", rec.flings[0].Y, 0)
}

func TestDetectorMaxFlingDelay(t *testing.T) {
	clock := newFakeClock()
	rec := &gestureRecorder{}
	cfg := clock.config()
	cfg.MaxFlingDelay = 100 * time.Millisecond
	d := NewGestureDetector(rec, cfg)

	d.TouchDown(0, 0, 0, MouseButtonLeft)
	clock.advance(50 * time.Millisecond)
	d.TouchDragged(100, 0, 0)
	clock.advance(100 * time.Millisecond)
	d.TouchUp(100, 0, 0, MouseButtonLeft)

	if len(rec.flings) != 0 {
		t.Error("a press longer than MaxFlingDelay should not fling")
	}
	if rec.panStops != 1 {
		t.Error("pan should still stop")
	}
}

func TestDetectorLongPress(t *testing.T) {
	d, rec, clock := newRecordedDetector()

	d.TouchDown(15, 25, 0, MouseButtonLeft)
	clock.advance(DefaultLongPressDuration - time.Millisecond)
	d.Update()
	if len(rec.longPress) != 0 {
		t.Fatal("long press fired early")
	}
	clock.advance(time.Millisecond)
	d.Update()
	if len(rec.longPress) != 1 || rec.longPress[0] != (Vec2{15, 25}) {
		t.Fatalf("longPress = %v, want [(15, 25)]", rec.longPress)
	}
	clock.advance(time.Millisecond)
	if !d.IsLongPressed() {
		t.Error("IsLongPressed should be true")
	}

	d.Update()
	if len(rec.longPress) != 1 {
		t.Error("long press should fire once per press")
	}

	// Not consumed: the release still taps.
	d.TouchUp(15, 25, 0, MouseButtonLeft)
	if len(rec.taps) != 1 {
		t.Errorf("taps = %d, want 1 after an unconsumed long press", len(rec.taps))
	}
}

func TestDetectorConsumedLongPressSuppressesGestures(t *testing.T) {
	d, rec, clock := newRecordedDetector()
	rec.longPressResult = true

	d.TouchDown(0, 0, 0, MouseButtonLeft)
	clock.advance(DefaultLongPressDuration)
	d.Update()

	if d.TouchDragged(100, 0, 0) {
		t.Error("drag after a consumed long press should be unhandled")
	}
	clock.advance(10 * time.Millisecond)
	if d.TouchUp(100, 0, 0, MouseButtonLeft) {
		t.Error("release after a consumed long press should be unhandled")
	}
	if len(rec.pans) != 0 || len(rec.flings) != 0 || len(rec.taps) != 0 {
		t.Errorf("pans=%d flings=%d taps=%d, want none", len(rec.pans), len(rec.flings), len(rec.taps))
	}
}

func TestDetectorDragCancelsLongPress(t *testing.T) {
	d, rec, clock := newRecordedDetector()

	d.TouchDown(0, 0, 0, MouseButtonLeft)
	d.TouchDragged(50, 0, 0)
	clock.advance(2 * DefaultLongPressDuration)
	d.Update()
	if len(rec.longPress) != 0 {
		t.Error("leaving the tap rectangle should cancel the long press")
	}
}

func TestDetectorPinch(t *testing.T) {
	d, rec, clock := newRecordedDetector()

	d.TouchDown(0, 0, 0, MouseButtonLeft)
	d.TouchDown(100, 0, 1, MouseButtonLeft)
	d.TouchDragged(200, 0, 1)
	d.TouchDragged(-10, 0, 0)

	if len(rec.pinches) != 2 {
		t.Fatalf("pinches = %d, want 2", len(rec.pinches))
	}
	want := pinchCall{Vec2{0, 0}, Vec2{100, 0}, Vec2{0, 0}, Vec2{200, 0}}
	if rec.pinches[0] != want {
		t.Errorf("pinch[0] = %+v, want %+v", rec.pinches[0], want)
	}
	if rec.pinches[1].p1 != (Vec2{-10, 0}) {
		t.Errorf("pinch[1].p1 = %v, want (-10, 0)", rec.pinches[1].p1)
	}
	if rec.zooms[0] != [2]float64{100, 200} || rec.zooms[1] != [2]float64{100, 210} {
		t.Errorf("zooms = %v", rec.zooms)
	}

	clock.advance(DefaultLongPressDuration)
	d.Update()
	if len(rec.longPress) != 0 {
		t.Error("pinching should cancel the long press")
	}

	d.TouchUp(200, 0, 1, MouseButtonLeft)
	if rec.pinchStops != 1 {
		t.Errorf("pinchStops = %d, want 1", rec.pinchStops)
	}
	if len(rec.taps) != 0 {
		t.Error("a pinch should not tap")
	}

	// The remaining pointer keeps panning.
	if !d.IsPanning() {
		t.Error("the remaining pointer should pan")
	}
	d.TouchDragged(-40, 0, 0)
	if len(rec.pans) != 1 || rec.pans[0].dx != -30 {
		t.Errorf("pans = %+v, want one pan with dx -30", rec.pans)
	}
}

func TestDetectorIgnoresExtraPointers(t *testing.T) {
	d, rec, _ := newRecordedDetector()
	if d.TouchDown(0, 0, 2, MouseButtonLeft) || d.TouchDragged(0, 0, 5) || d.TouchUp(0, 0, -1, MouseButtonLeft) {
		t.Error("pointers other than 0 and 1 should be unhandled")
	}
	if rec.downs != 0 {
		t.Error("listener should not see pointer 2")
	}
}

func TestDetectorCancel(t *testing.T) {
	d, rec, clock := newRecordedDetector()
	d.TouchDown(0, 0, 0, MouseButtonLeft)
	d.Cancel()
	clock.advance(2 * DefaultLongPressDuration)
	d.Update()
	d.TouchUp(0, 0, 0, MouseButtonLeft)
	if len(rec.taps) != 0 || len(rec.longPress) != 0 {
		t.Error("Cancel should suppress tap and long press")
	}
}

func TestDetectorReset(t *testing.T) {
	d, rec, clock := newRecordedDetector()
	d.TouchDown(0, 0, 0, MouseButtonLeft)
	d.TouchDragged(50, 0, 0)
	d.Reset()

	if d.IsPanning() || d.IsLongPressed() {
		t.Error("Reset should clear pan and press state")
	}
	clock.advance(2 * DefaultLongPressDuration)
	d.Update()
	if len(rec.longPress) != 0 {
		t.Error("no long press after Reset")
	}
}

func TestDetectorInvalidateTapSquare(t *testing.T) {
	d, rec, _ := newRecordedDetector()
	d.TouchDown(0, 0, 0, MouseButtonLeft)
	d.InvalidateTapSquare()
	d.TouchUp(0, 0, 0, MouseButtonLeft)
	if len(rec.taps) != 0 {
		t.Error("InvalidateTapSquare should prevent the tap")
	}
}

func TestDetectorSetters(t *testing.T) {
	d, rec, clock := newRecordedDetector()
	d.SetTapSquareSize(5)
	d.SetLongPressDuration(200 * time.Millisecond)

	d.TouchDown(0, 0, 0, MouseButtonLeft)
	d.TouchDragged(6, 0, 0)
	if len(rec.pans) != 1 {
		t.Error("a smaller tap square should start panning sooner")
	}

	d.TouchUp(6, 0, 0, MouseButtonLeft)
	d.TouchDown(0, 0, 0, MouseButtonLeft)
	clock.advance(200 * time.Millisecond)
	d.Update()
	if len(rec.longPress) != 1 {
		t.Error("long press should use the configured duration")
	}

	d.SetTapRectangleSize(-1, 0)
	d.SetTapCountInterval(0)
	d.SetLongPressDuration(-time.Second)
	if d.tapRectangleWidth != DefaultHalfTapSquareSize || d.tapCountInterval != DefaultTapCountInterval ||
		d.longPressDuration != DefaultLongPressDuration {
		t.Error("non-positive values should restore defaults")
	}
}
