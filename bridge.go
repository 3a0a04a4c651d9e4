package grove

// EntityStore is the interface for optional ECS integration.
// When set on an ActorGestureListener, recognized gestures are forwarded to
// the ECS.
type EntityStore interface {
	EmitGesture(event GestureEvent)
}

// GestureEvent carries a recognized gesture for the ECS bridge. Positions
// are in the local space of the node that owns the listener.
type GestureEvent struct {
	Type     GestureType
	EntityID uint32
	X, Y     float64
	Pointer  int
	Button   MouseButton
	// Tap fields (valid for GestureTap)
	Count int
	// Fling fields (valid for GestureFling)
	VelocityX, VelocityY float64
	// Pan fields (valid for GesturePan)
	DeltaX, DeltaY float64
	// Zoom fields (valid for GestureZoom)
	InitialDistance, Distance float64
	// Pinch fields (valid for GesturePinch)
	InitialPointer1, InitialPointer2 Vec2
	Pointer1, Pointer2               Vec2
}
