package grove

// nodeIDCounter is a plain counter (no atomic; grove is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element that receives input. Nodes form a tree
// rooted at Stage.Root; children inherit their parent's transform.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Size in local units. Used for hit testing when HitShape is nil.
	Width, Height float64

	// Computed
	worldTransform [6]float64
	transformDirty bool

	// Visibility & interaction. Invisible or non-interactable subtrees are
	// skipped by hit testing.
	Visible      bool
	Interactable bool

	// Ordering among siblings for hit testing (higher is on top).
	ZIndex int

	// Metadata
	UserData any
	EntityID uint32

	// Hit testing
	HitShape HitShape

	listeners []EventListener

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
	n.worldTransform = identityTransform
}

// NewContainer creates a group node with no size. It only receives input
// through its children unless a HitShape is assigned.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Interactable: true}
	nodeDefaults(n)
	return n
}

// NewNode creates an interactable node of the given size.
func NewNode(name string, width, height float64) *Node {
	n := &Node{Name: name, Width: width, Height: height, Interactable: true}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if child.IsAscendantOf(n) {
		panic("grove: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if child.IsAscendantOf(n) {
		panic("grove: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("grove: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("grove: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// IsAscendantOf reports whether n is node itself or one of its ancestors.
func (n *Node) IsAscendantOf(node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// --- Listeners ---

// AddListener registers l to receive events fired on or bubbling through
// this node. Adding the same listener twice is a no-op.
func (n *Node) AddListener(l EventListener) {
	if l == nil {
		panic("grove: cannot add nil listener")
	}
	for _, existing := range n.listeners {
		if existing == l {
			return
		}
	}
	n.listeners = append(n.listeners, l)
}

// RemoveListener unregisters l. Returns false if it was not registered.
func (n *Node) RemoveListener(l EventListener) bool {
	for i, existing := range n.listeners {
		if existing == l {
			copy(n.listeners[i:], n.listeners[i+1:])
			n.listeners[len(n.listeners)-1] = nil
			n.listeners = n.listeners[:len(n.listeners)-1]
			return true
		}
	}
	return false
}

// Listeners returns the registered listeners. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) Listeners() []EventListener {
	return n.listeners
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.listeners = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// sortedChildrenOf returns the children in ascending ZIndex order, stable
// with respect to insertion order.
func sortedChildrenOf(n *Node) []*Node {
	if n.childrenSorted {
		if n.sortedChildren != nil {
			return n.sortedChildren
		}
		return n.children
	}
	n.childrenSorted = true

	needSort := false
	for _, c := range n.children {
		if c.ZIndex != 0 {
			needSort = true
			break
		}
	}
	if !needSort {
		n.sortedChildren = nil
		return n.children
	}

	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	// Insertion sort: child lists are short and usually nearly sorted.
	s := n.sortedChildren
	for i := 1; i < len(s); i++ {
		c := s[i]
		j := i - 1
		for j >= 0 && s[j].ZIndex > c.ZIndex {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = c
	}
	return s
}
