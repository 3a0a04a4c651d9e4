package grove

// ActorGestureListener detects tap, long press, fling, pan, zoom and pinch
// gestures on the node it is added to. It forwards the touch events it
// receives to a GestureDetector and reports recognized gestures through the
// On* hooks with positions converted into the node's local space. Nil hooks
// are skipped.
//
//	l := grove.NewActorGestureListener(grove.DetectorConfig{})
//	l.OnTap = func(e *grove.InputEvent, x, y float64, count, pointer int, button grove.MouseButton) {
//		// ...
//	}
//	node.AddListener(l)
type ActorGestureListener struct {
	OnTouchDown func(e *InputEvent, x, y float64, pointer int, button MouseButton)
	OnTouchUp   func(e *InputEvent, x, y float64, pointer int, button MouseButton)
	OnTap       func(e *InputEvent, x, y float64, count, pointer int, button MouseButton)
	// OnLongPress receives the node instead of an event: a long press is
	// triggered by time passing, not by input. Returning true stops any
	// further gesture of the current press from being reported.
	OnLongPress func(actor *Node, x, y float64) bool
	OnFling     func(e *InputEvent, velocityX, velocityY float64, pointer int, button MouseButton)
	// OnPan deltas are the stage-space displacement since the previous pan.
	OnPan   func(e *InputEvent, x, y, deltaX, deltaY float64)
	OnZoom  func(e *InputEvent, initialDistance, distance float64)
	OnPinch func(e *InputEvent, initialPointer1, initialPointer2, pointer1, pointer2 Vec2)

	// Store, when set, additionally receives a GestureEvent for every
	// gesture recognized on a node with a non-zero EntityID.
	Store EntityStore

	detector        *GestureDetector
	event           *InputEvent
	actor           *Node
	touchDownTarget *Node
}

// NewActorGestureListener creates a listener whose detector uses cfg.
func NewActorGestureListener(cfg DetectorConfig) *ActorGestureListener {
	l := &ActorGestureListener{}
	l.detector = NewGestureDetector(actorGestures{l}, cfg)
	return l
}

// Handle routes touch down, up and dragged events to the gesture detector.
// Every other event is ignored and reported as unhandled.
func (l *ActorGestureListener) Handle(e Event) bool {
	event, ok := e.(*InputEvent)
	if !ok {
		return false
	}

	switch event.Type {
	case TouchDown:
		l.actor = event.ListenerNode()
		l.touchDownTarget = event.Target()
		l.detector.TouchDown(event.StageX, event.StageY, event.Pointer, event.Button)
		p := l.toLocal(event.StageX, event.StageY)
		if l.OnTouchDown != nil {
			l.OnTouchDown(event, p.X, p.Y, event.Pointer, event.Button)
		}
		return true
	case TouchUp:
		if event.IsTouchFocusCancel() {
			l.detector.Reset()
			return false
		}
		l.event = event
		l.actor = event.ListenerNode()
		l.detector.TouchUp(event.StageX, event.StageY, event.Pointer, event.Button)
		p := l.toLocal(event.StageX, event.StageY)
		if l.OnTouchUp != nil {
			l.OnTouchUp(event, p.X, p.Y, event.Pointer, event.Button)
		}
		return true
	case TouchDragged:
		l.event = event
		l.actor = event.ListenerNode()
		l.detector.TouchDragged(event.StageX, event.StageY, event.Pointer)
		return true
	}
	return false
}

// Update ticks the detector so held presses turn into long presses. A Stage
// calls it every frame for listeners in its tree.
func (l *ActorGestureListener) Update() {
	l.detector.Update()
}

// GestureDetector returns the underlying detector, for tuning thresholds.
func (l *ActorGestureListener) GestureDetector() *GestureDetector {
	return l.detector
}

// TouchDownTarget returns the node that was the target of the last touch down.
func (l *ActorGestureListener) TouchDownTarget() *Node {
	return l.touchDownTarget
}

// toLocal converts a stage point into the active node's space. Without an
// active node the point is returned unchanged.
func (l *ActorGestureListener) toLocal(x, y float64) Vec2 {
	p := Vec2{X: x, Y: y}
	if l.actor == nil {
		return p
	}
	return l.actor.StageToLocalCoordinates(p)
}

func (l *ActorGestureListener) emit(g GestureEvent) {
	if l.Store == nil || l.actor == nil || l.actor.EntityID == 0 {
		return
	}
	g.EntityID = l.actor.EntityID
	l.Store.EmitGesture(g)
}

// actorGestures receives the detector's stage-space callbacks on behalf of an
// ActorGestureListener.
type actorGestures struct {
	l *ActorGestureListener
}

func (a actorGestures) TouchDown(x, y float64, pointer int, button MouseButton) bool {
	return false
}

func (a actorGestures) Tap(x, y float64, count, pointer int, button MouseButton) bool {
	l := a.l
	p := l.toLocal(x, y)
	if globalDebug {
		debugLogGesture("tap", l.actor, p.X, p.Y)
	}
	if l.OnTap != nil {
		l.OnTap(l.event, p.X, p.Y, count, pointer, button)
	}
	l.emit(GestureEvent{Type: GestureTap, X: p.X, Y: p.Y, Count: count, Pointer: pointer, Button: button})
	return true
}

func (a actorGestures) LongPress(x, y float64) bool {
	l := a.l
	p := l.toLocal(x, y)
	if globalDebug {
		debugLogGesture("longPress", l.actor, p.X, p.Y)
	}
	l.emit(GestureEvent{Type: GestureLongPress, X: p.X, Y: p.Y})
	if l.OnLongPress == nil {
		return false
	}
	return l.OnLongPress(l.actor, p.X, p.Y)
}

func (a actorGestures) Fling(velocityX, velocityY float64, pointer int, button MouseButton) bool {
	l := a.l
	if globalDebug {
		debugLogGesture("fling", l.actor, velocityX, velocityY)
	}
	if l.OnFling != nil {
		l.OnFling(l.event, velocityX, velocityY, pointer, button)
	}
	l.emit(GestureEvent{Type: GestureFling, VelocityX: velocityX, VelocityY: velocityY, Pointer: pointer, Button: button})
	return true
}

func (a actorGestures) Pan(x, y, deltaX, deltaY float64) bool {
	l := a.l
	p := l.toLocal(x, y)
	if l.OnPan != nil {
		l.OnPan(l.event, p.X, p.Y, deltaX, deltaY)
	}
	l.emit(GestureEvent{Type: GesturePan, X: p.X, Y: p.Y, DeltaX: deltaX, DeltaY: deltaY})
	return true
}

func (a actorGestures) PanStop(x, y float64, pointer int, button MouseButton) bool {
	return false
}

func (a actorGestures) Zoom(initialDistance, distance float64) bool {
	l := a.l
	if l.OnZoom != nil {
		l.OnZoom(l.event, initialDistance, distance)
	}
	l.emit(GestureEvent{Type: GestureZoom, InitialDistance: initialDistance, Distance: distance})
	return true
}

func (a actorGestures) Pinch(initialPointer1, initialPointer2, pointer1, pointer2 Vec2) bool {
	l := a.l
	i1 := l.toLocal(initialPointer1.X, initialPointer1.Y)
	i2 := l.toLocal(initialPointer2.X, initialPointer2.Y)
	p1 := l.toLocal(pointer1.X, pointer1.Y)
	p2 := l.toLocal(pointer2.X, pointer2.Y)
	if l.OnPinch != nil {
		l.OnPinch(l.event, i1, i2, p1, p2)
	}
	l.emit(GestureEvent{Type: GesturePinch, InitialPointer1: i1, InitialPointer2: i2, Pointer1: p1, Pointer2: p2})
	return true
}

func (a actorGestures) PinchStop() {}
