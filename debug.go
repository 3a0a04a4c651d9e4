package grove

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set Stage debug flag so that code
// without a Stage pointer (nodes, listeners) can check it cheaply. Only valid
// with a single Stage; multiple Stages with differing debug modes reflect
// whichever called SetDebugMode last.
var globalDebug bool

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("grove debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugLogInput prints a dispatched input event to stderr.
func debugLogInput(e *InputEvent, target *Node, listeners int) {
	_, _ = fmt.Fprintf(os.Stderr, "[grove] %s pointer=%d button=%d stage=(%.1f, %.1f) target=%s listeners=%d\n",
		e.Type, e.Pointer, e.Button, e.StageX, e.StageY, nodeName(target), listeners)
}

// debugLogGesture prints a recognized gesture to stderr.
func debugLogGesture(gesture string, actor *Node, a, b float64) {
	_, _ = fmt.Fprintf(os.Stderr, "[grove] gesture %s on %s (%.1f, %.1f)\n", gesture, nodeName(actor), a, b)
}

func nodeName(n *Node) string {
	if n == nil {
		return "<none>"
	}
	return fmt.Sprintf("%q#%d", n.Name, n.ID)
}
