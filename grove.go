package grove

import "math"

// Vec2 is a 2D vector used for positions, offsets and pointer locations
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Dst returns the euclidean distance between v and o.
func (v Vec2) Dst(o Vec2) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// InputEventType identifies the kind of an InputEvent.
type InputEventType uint8

const (
	TouchDown    InputEventType = iota // a pointer was pressed
	TouchUp                            // a pointer was released
	TouchDragged                       // a pressed pointer moved
	MouseMoved                         // the mouse moved with no button held
	Scrolled                           // the mouse wheel turned
	Enter                              // the pointer entered a node
	Exit                               // the pointer left a node
)

var inputEventTypeNames = [...]string{
	TouchDown:    "touchDown",
	TouchUp:      "touchUp",
	TouchDragged: "touchDragged",
	MouseMoved:   "mouseMoved",
	Scrolled:     "scrolled",
	Enter:        "enter",
	Exit:         "exit",
}

func (t InputEventType) String() string {
	if int(t) < len(inputEventTypeNames) {
		return inputEventTypeNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button. Touches report MouseButtonLeft.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// GestureType identifies a recognized gesture.
type GestureType uint8

const (
	GestureTap GestureType = iota
	GestureLongPress
	GestureFling
	GesturePan
	GestureZoom
	GesturePinch
)
