package grove

import "github.com/hajimehoshi/ebiten/v2"

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// pollInput reads Ebitengine mouse, wheel and touch state for this frame and
// feeds the changes through processPointer. Touches take precedence over the
// mouse for pointer 0.
func (s *Stage) pollInput() {
	s.mods = readModifiers()
	if !s.processTouchPointers() {
		s.processMousePointer()
	}
}

// processMousePointer handles mouse input (pointer 0).
func (s *Stage) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(0, x, y, pressed, button)

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		s.Scrolled(x, y, wx, wy)
	}
}

// processTouchPointers handles touch input. Returns true if any touch slot
// was active this frame.
func (s *Stage) processTouchPointers() bool {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [MaxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release any touch slots that are no longer active.
	active := len(touchIDs) > 0
	for i := 0; i < MaxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
			active = true
		}
	}
	return active
}

// touchSlot maps an ebiten.TouchID to a pointer slot.
// Returns the existing slot or allocates the lowest free one. Returns -1 if full.
func (s *Stage) touchSlot(tid ebiten.TouchID) int {
	for i := 0; i < MaxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 0; i < MaxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer slot,
// turning pressed/position samples into TouchDown, TouchDragged, TouchUp and
// MouseMoved calls.
func (s *Stage) processPointer(pointer int, x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointer]
	moved := x != ps.lastX || y != ps.lastY

	switch {
	case pressed && !ps.down:
		s.TouchDown(x, y, pointer, button)
	case !pressed && ps.down:
		// Release uses the button captured at press time.
		s.TouchUp(x, y, pointer, ps.button)
	case pressed && ps.down:
		if moved {
			s.TouchDragged(x, y, pointer)
		}
	default:
		if pointer == 0 && moved {
			s.MouseMoved(x, y)
		}
	}
}
