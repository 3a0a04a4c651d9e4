package grove

import "github.com/hajimehoshi/ebiten/v2"

// MaxPointers is the number of pointer slots a Stage tracks. Pointer 0 is the
// mouse or the first touch; further touches take the next free slot.
const MaxPointers = 10

// StageConfig configures a Stage. The zero value is usable.
type StageConfig struct {
	// Viewport, when non-empty, creates a camera mapping screen coordinates
	// in this rectangle to stage coordinates. An empty viewport maps screen
	// coordinates to the stage unchanged.
	Viewport Rect
	// Debug enables stderr logging of dispatched input and gestures, and
	// panics on tree operations involving disposed nodes.
	Debug bool
}

// touchFocus routes the remaining events of a pointer sequence to a listener
// that handled the touch down.
type touchFocus struct {
	listener     EventListener
	listenerNode *Node
	target       *Node
	pointer      int
	button       MouseButton
}

// pointerState tracks one pointer slot in screen coordinates.
type pointerState struct {
	down   bool
	lastX  float64
	lastY  float64
	button MouseButton // button captured at press time
}

// Stage owns the node tree and turns raw pointer input into InputEvents
// routed to node listeners.
type Stage struct {
	root   *Node
	camera *Camera
	debug  bool

	pointers     [MaxPointers]pointerState
	touchFocuses []touchFocus
	focusBuf     []touchFocus
	hitBuf       []*Node
	hoverNode    *Node
	mods         KeyModifiers

	// Ebitengine touch slot mapping
	touchMap     [MaxPointers]ebiten.TouchID
	touchUsed    [MaxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
	script      *ScriptRunner
}

// NewStage creates a stage with a pre-created root container.
func NewStage(cfg StageConfig) *Stage {
	s := &Stage{root: NewContainer("root")}
	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		s.camera = newCamera(cfg.Viewport)
	}
	s.SetDebugMode(cfg.Debug)
	return s
}

// Root returns the stage's root container node.
func (s *Stage) Root() *Node {
	return s.root
}

// Camera returns the stage camera, or nil when screen and stage coordinates
// are the same.
func (s *Stage) Camera() *Camera {
	return s.camera
}

// SetCamera replaces the stage camera. nil removes it.
func (s *Stage) SetCamera(cam *Camera) {
	s.camera = cam
}

// SetDebugMode enables or disables debug mode.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Update refreshes world transforms, processes one frame of input, advances
// the camera and ticks listeners. Call it once per frame from the game's
// Update.
func (s *Stage) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))

	updateWorldTransform(s.root, identityTransform, false)

	if s.camera != nil {
		s.camera.update(dt)
	}
	if s.script != nil {
		s.script.step(s)
	}
	if !s.processInjectedInput() {
		s.pollInput()
	}
	tickListeners(s.root)
}

// tickListeners calls Update on every Ticker listener in the subtree.
func tickListeners(n *Node) {
	for _, l := range n.listeners {
		if t, ok := l.(Ticker); ok {
			t.Update()
		}
	}
	for _, child := range n.children {
		tickListeners(child)
	}
}

// screenToStage converts screen coordinates to stage coordinates using the camera.
func (s *Stage) screenToStage(x, y float64) (float64, float64) {
	if s.camera != nil {
		return s.camera.ScreenToStage(x, y)
	}
	return x, y
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending hit-testable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	buf = append(buf, n)
	for _, child := range sortedChildrenOf(n) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// Hit returns the topmost interactable node at the stage point (x, y), or
// nil if nothing is hit.
func (s *Stage) Hit(x, y float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.StageToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Raw input ---

func validPointer(pointer int) bool {
	return pointer >= 0 && pointer < MaxPointers
}

// TouchDown feeds a press of pointer at screen coordinates (x, y). The event
// bubbles from the hit node (or the root when nothing is hit) to the root;
// each listener that handles it receives the rest of the pointer's sequence.
// Returns whether any listener handled it.
func (s *Stage) TouchDown(x, y float64, pointer int, button MouseButton) bool {
	if !validPointer(pointer) {
		return false
	}
	ps := &s.pointers[pointer]
	ps.down = true
	ps.button = button
	ps.lastX = x
	ps.lastY = y

	sx, sy := s.screenToStage(x, y)
	target := s.Hit(sx, sy)
	if target == nil {
		target = s.root
	}

	e := s.newInputEvent(TouchDown, sx, sy, pointer, button)
	e.target = target

	count := 0
	for p := target; p != nil; p = p.Parent {
		if len(p.listeners) > 0 {
			var buf [4]EventListener
			for _, l := range append(buf[:0], p.listeners...) {
				count++
				e.listenerNode = p
				if l.Handle(e) {
					e.handled = true
					s.addTouchFocus(l, p, target, pointer, button)
				}
			}
		}
		if e.stopped || e.noBubble {
			break
		}
	}
	if s.debug {
		debugLogInput(e, target, count)
	}
	return e.handled
}

// TouchDragged feeds movement of a pressed pointer to the listeners holding
// its touch focus.
func (s *Stage) TouchDragged(x, y float64, pointer int) bool {
	if !validPointer(pointer) {
		return false
	}
	ps := &s.pointers[pointer]
	ps.lastX = x
	ps.lastY = y

	sx, sy := s.screenToStage(x, y)
	e := s.newInputEvent(TouchDragged, sx, sy, pointer, ps.button)
	return s.dispatchToFocus(e, false)
}

// TouchUp feeds a release of pointer to the listeners holding its touch
// focus, then releases the focus.
func (s *Stage) TouchUp(x, y float64, pointer int, button MouseButton) bool {
	if !validPointer(pointer) {
		return false
	}
	ps := &s.pointers[pointer]
	ps.down = false
	ps.lastX = x
	ps.lastY = y

	sx, sy := s.screenToStage(x, y)
	e := s.newInputEvent(TouchUp, sx, sy, pointer, button)
	return s.dispatchToFocus(e, true)
}

// MouseMoved feeds hover movement of the mouse. Enter and Exit events fire
// when the hovered node changes, then a MouseMoved event bubbles from the
// hovered node.
func (s *Stage) MouseMoved(x, y float64) bool {
	ps := &s.pointers[0]
	ps.lastX = x
	ps.lastY = y

	sx, sy := s.screenToStage(x, y)
	target := s.Hit(sx, sy)

	if target != s.hoverNode {
		if s.hoverNode != nil && !s.hoverNode.IsDisposed() {
			exit := s.newInputEvent(Exit, sx, sy, 0, MouseButtonLeft)
			exit.RelatedNode = target
			s.hoverNode.Fire(exit)
		}
		if target != nil {
			enter := s.newInputEvent(Enter, sx, sy, 0, MouseButtonLeft)
			enter.RelatedNode = s.hoverNode
			target.Fire(enter)
		}
		s.hoverNode = target
	}

	if target == nil {
		target = s.root
	}
	e := s.newInputEvent(MouseMoved, sx, sy, 0, MouseButtonLeft)
	handled := target.Fire(e)
	if s.debug {
		debugLogInput(e, target, len(target.listeners))
	}
	return handled
}

// Scrolled feeds a mouse wheel movement at screen coordinates (x, y).
func (s *Stage) Scrolled(x, y, amountX, amountY float64) bool {
	sx, sy := s.screenToStage(x, y)
	target := s.Hit(sx, sy)
	if target == nil {
		target = s.root
	}
	e := s.newInputEvent(Scrolled, sx, sy, 0, MouseButtonLeft)
	e.ScrollAmountX = amountX
	e.ScrollAmountY = amountY
	return target.Fire(e)
}

func (s *Stage) newInputEvent(typ InputEventType, sx, sy float64, pointer int, button MouseButton) *InputEvent {
	e := &InputEvent{
		Type:      typ,
		StageX:    sx,
		StageY:    sy,
		Pointer:   pointer,
		Button:    button,
		Modifiers: s.mods,
	}
	e.stage = s
	return e
}

// --- Touch focus ---

func (s *Stage) addTouchFocus(l EventListener, listenerNode, target *Node, pointer int, button MouseButton) {
	f := touchFocus{
		listener:     l,
		listenerNode: listenerNode,
		target:       target,
		pointer:      pointer,
		button:       button,
	}
	if !s.hasFocus(f) {
		s.touchFocuses = append(s.touchFocuses, f)
	}
}

// dispatchToFocus delivers e to every focus of its pointer, each with the
// listener node and target recorded at touch down. When release is true the
// pointer's focuses are removed afterwards.
func (s *Stage) dispatchToFocus(e *InputEvent, release bool) bool {
	s.focusBuf = s.focusBuf[:0]
	for _, f := range s.touchFocuses {
		if f.pointer == e.Pointer {
			s.focusBuf = append(s.focusBuf, f)
		}
	}
	if release {
		s.removeFocuses(func(f touchFocus) bool { return f.pointer == e.Pointer })
	}

	var target *Node
	for _, f := range s.focusBuf {
		// A listener may cancel other focuses while handling.
		if !release && !s.hasFocus(f) {
			continue
		}
		if f.listenerNode.IsDisposed() {
			if !release {
				s.removeFocuses(func(g touchFocus) bool { return sameFocus(f, g) })
			}
			s.sendCancel(f)
			continue
		}
		target = f.target
		e.target = f.target
		e.listenerNode = f.listenerNode
		e.stopped = false
		if f.listener.Handle(e) {
			e.handled = true
		}
	}
	if s.debug {
		debugLogInput(e, target, len(s.focusBuf))
	}
	return e.handled
}

func sameFocus(f, g touchFocus) bool {
	return g.listener == f.listener && g.listenerNode == f.listenerNode && g.pointer == f.pointer
}

func (s *Stage) hasFocus(f touchFocus) bool {
	for _, g := range s.touchFocuses {
		if sameFocus(f, g) {
			return true
		}
	}
	return false
}

// sendCancel delivers a cancelled TouchUp to a focus that was dropped before
// its pointer was released, so the listener can abandon the sequence.
func (s *Stage) sendCancel(f touchFocus) {
	ps := &s.pointers[f.pointer]
	sx, sy := s.screenToStage(ps.lastX, ps.lastY)
	e := s.newInputEvent(TouchUp, sx, sy, f.pointer, f.button)
	e.target = f.target
	e.listenerNode = f.listenerNode
	e.touchFocusCancel = true
	f.listener.Handle(e)
	if s.debug {
		debugLogInput(e, f.target, 1)
	}
}

func (s *Stage) removeFocuses(match func(touchFocus) bool) {
	kept := s.touchFocuses[:0]
	for _, f := range s.touchFocuses {
		if !match(f) {
			kept = append(kept, f)
		}
	}
	for i := len(kept); i < len(s.touchFocuses); i++ {
		s.touchFocuses[i] = touchFocus{}
	}
	s.touchFocuses = kept
}

// CancelTouchFocus stops routing pointer sequences to l. A nil l cancels
// every touch focus. Each dropped focus receives a TouchUp for which
// IsTouchFocusCancel reports true.
func (s *Stage) CancelTouchFocus(l EventListener) {
	var cancelled []touchFocus
	for _, f := range s.touchFocuses {
		if l == nil || f.listener == l {
			cancelled = append(cancelled, f)
		}
	}
	if len(cancelled) == 0 {
		return
	}
	s.removeFocuses(func(f touchFocus) bool { return l == nil || f.listener == l })
	for _, f := range cancelled {
		s.sendCancel(f)
	}
}

// HasTouchFocus reports whether l currently receives events for pointer.
func (s *Stage) HasTouchFocus(l EventListener, pointer int) bool {
	for _, f := range s.touchFocuses {
		if f.listener == l && f.pointer == pointer {
			return true
		}
	}
	return false
}

// IsTouched reports whether pointer is currently pressed.
func (s *Stage) IsTouched(pointer int) bool {
	return validPointer(pointer) && s.pointers[pointer].down
}
