package grove

// Event is anything that can be fired through the scene graph. Every event
// type embeds BaseEvent, which carries the routing state.
type Event interface {
	base() *BaseEvent
}

// EventListener receives events fired on, or bubbling through, the node it is
// registered on. Handle returns true if the event was handled.
type EventListener interface {
	Handle(e Event) bool
}

// NewListener adapts a plain function to EventListener. The returned value
// can be passed to Node.RemoveListener.
func NewListener(fn func(e Event) bool) EventListener {
	return &funcListener{fn: fn}
}

type funcListener struct {
	fn func(e Event) bool
}

func (l *funcListener) Handle(e Event) bool {
	return l.fn(e)
}

// Ticker is implemented by listeners that need a per-frame tick, such as
// gesture listeners waiting on a long press. Stage.Update ticks every
// listener in the tree that implements it.
type Ticker interface {
	Update()
}

// BaseEvent holds the routing state shared by all events.
type BaseEvent struct {
	stage        *Stage
	target       *Node
	listenerNode *Node
	handled      bool
	stopped      bool
	noBubble     bool
}

func (e *BaseEvent) base() *BaseEvent { return e }

// Stage returns the stage the event was fired on, or nil.
func (e *BaseEvent) Stage() *Stage { return e.stage }

// Target returns the node the event originated from.
func (e *BaseEvent) Target() *Node { return e.target }

// ListenerNode returns the node whose listener is currently handling the
// event. It changes as the event bubbles toward the root.
func (e *BaseEvent) ListenerNode() *Node { return e.listenerNode }

// Handle marks the event as handled. Dispatch continues.
func (e *BaseEvent) Handle() { e.handled = true }

// IsHandled reports whether any listener handled the event.
func (e *BaseEvent) IsHandled() bool { return e.handled }

// Stop ends propagation after the current node's listeners run.
func (e *BaseEvent) Stop() { e.stopped = true }

// IsStopped reports whether propagation was stopped.
func (e *BaseEvent) IsStopped() bool { return e.stopped }

// SetBubbles controls whether the event travels from the target up to the
// root (the default) or is delivered to the target's listeners only.
func (e *BaseEvent) SetBubbles(bubbles bool) { e.noBubble = !bubbles }

// InputEvent is a pointer event routed by a Stage: touch down/up/dragged,
// mouse moved, scrolled and enter/exit.
type InputEvent struct {
	BaseEvent

	Type      InputEventType
	StageX    float64
	StageY    float64
	Pointer   int
	Button    MouseButton
	Modifiers KeyModifiers

	// ScrollAmountX and ScrollAmountY are set for Scrolled events.
	ScrollAmountX float64
	ScrollAmountY float64

	// RelatedNode is the node being left (Enter) or entered (Exit).
	RelatedNode *Node

	touchFocusCancel bool
}

// IsTouchFocusCancel reports whether a TouchUp was sent because the
// listener's touch focus was cancelled rather than the pointer released.
func (e *InputEvent) IsTouchFocusCancel() bool {
	return e.touchFocusCancel
}

// IsTouch reports whether the event is part of a press/drag/release sequence.
func (e *InputEvent) IsTouch() bool {
	return e.Type == TouchDown || e.Type == TouchUp || e.Type == TouchDragged
}

// ToCoordinates returns the event's stage position in node's local space.
func (e *InputEvent) ToCoordinates(node *Node) Vec2 {
	return node.StageToLocalCoordinates(Vec2{X: e.StageX, Y: e.StageY})
}

// ChangeEvent signals that a node's state changed. It carries no pointer data
// and is ignored by pointer-only listeners.
type ChangeEvent struct {
	BaseEvent
	Name string
}

// Fire delivers e to this node's listeners and, unless bubbling was disabled,
// to every ancestor's listeners in order toward the root. The event's target
// is set to n if it has none. Returns whether any listener handled it.
func (n *Node) Fire(e Event) bool {
	b := e.base()
	if b.target == nil {
		b.target = n
	}
	for p := n; p != nil; p = p.Parent {
		notifyListeners(p, e)
		if b.stopped || b.noBubble {
			break
		}
	}
	return b.handled
}

// notifyListeners runs every listener registered on node for e. The slice is
// copied so listeners may add or remove listeners while handling.
func notifyListeners(node *Node, e Event) {
	if len(node.listeners) == 0 {
		return
	}
	b := e.base()
	var buf [4]EventListener
	ls := append(buf[:0], node.listeners...)
	for _, l := range ls {
		b.listenerNode = node
		if l.Handle(e) {
			b.handled = true
		}
	}
}
