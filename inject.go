package grove

// syntheticPointerEvent represents a single injected pointer sample.
// Screen coordinates are used and converted to stage coordinates via the
// camera, identical to real mouse and touch input.
type syntheticPointerEvent struct {
	pointer          int
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

// InjectPress queues a pointer press event at the given screen coordinates
// (left button, pointer 0). The event is consumed on the next frame's Update.
func (s *Stage) InjectPress(x, y float64) {
	s.InjectTouch(0, x, y, true)
}

// InjectMove queues a pointer move event at the given screen coordinates
// with the button held down. Use this between InjectPress and InjectRelease
// to simulate a drag.
func (s *Stage) InjectMove(x, y float64) {
	s.InjectTouch(0, x, y, true)
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Stage) InjectRelease(x, y float64) {
	s.InjectTouch(0, x, y, false)
}

// InjectTouch queues a sample for any pointer slot. A pressed sample on a
// released pointer presses it; a pressed sample on a pressed pointer drags it;
// an unpressed sample releases it. Out-of-range pointers are ignored.
func (s *Stage) InjectTouch(pointer int, x, y float64, pressed bool) {
	if !validPointer(pointer) {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		pointer: pointer,
		screenX: x, screenY: y,
		pressed: pressed,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Stage) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real input
// is skipped for that frame).
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(evt.pointer, evt.screenX, evt.screenY, evt.pressed, evt.button)
	return true
}
