package grove

import "testing"

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test")
	if n.Width != 0 || n.Height != 0 {
		t.Errorf("size = (%v, %v), want (0, 0)", n.Width, n.Height)
	}
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("card", 120, 80)
	assertNodeDefaults(t, n, "card")
	if n.Width != 120 || n.Height != 80 {
		t.Errorf("size = (%v, %v), want (120, 80)", n.Width, n.Height)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.Interactable {
		t.Error("Interactable should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewNode("c", 1, 1)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 {
		t.Error("p2 should have 1 child")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"cycle", func() {
			parent := NewContainer("parent")
			child := NewContainer("child")
			grandchild := NewContainer("grandchild")
			parent.AddChild(child)
			child.AddChild(grandchild)
			grandchild.AddChild(parent)
		}},
		{"self", func() {
			n := NewContainer("self")
			n.AddChild(n)
		}},
		{"nil", func() {
			NewContainer("n").AddChild(nil)
		}},
		{"index out of range", func() {
			NewContainer("n").AddChildAt(NewContainer("c"), 2)
		}},
		{"wrong parent", func() {
			NewContainer("a").RemoveChild(NewContainer("c"))
		}},
		{"nil listener", func() {
			NewContainer("n").AddListener(nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic, got none")
				}
			}()
			tt.fn()
		})
	}
}

func TestAddChildAt(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(c)

	parent.AddChildAt(b, 1)

	if parent.NumChildren() != 3 {
		t.Fatalf("NumChildren = %d, want 3", parent.NumChildren())
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Error("children order should be [a, b, c]")
	}
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	child.RemoveFromParent()
	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	child.RemoveFromParent() // no-op
}

func TestIsAscendantOf(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	if !root.IsAscendantOf(leaf) {
		t.Error("root should be an ascendant of leaf")
	}
	if !leaf.IsAscendantOf(leaf) {
		t.Error("a node is its own ascendant")
	}
	if leaf.IsAscendantOf(root) {
		t.Error("leaf is not an ascendant of root")
	}
}

// --- Listeners ---

func TestAddRemoveListener(t *testing.T) {
	n := NewContainer("n")
	l := NewListener(func(Event) bool { return false })

	n.AddListener(l)
	n.AddListener(l)
	if len(n.Listeners()) != 1 {
		t.Fatalf("listeners = %d, want 1 (duplicate ignored)", len(n.Listeners()))
	}
	if !n.RemoveListener(l) {
		t.Error("RemoveListener should report success")
	}
	if n.RemoveListener(l) {
		t.Error("second RemoveListener should report false")
	}
	if len(n.Listeners()) != 0 {
		t.Error("listeners should be empty")
	}
}

// --- ZIndex ordering ---

func TestSortedChildrenByZIndex(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	a.SetZIndex(5)
	got := sortedChildrenOf(parent)
	if got[0] != b || got[1] != c || got[2] != a {
		t.Errorf("order = [%s %s %s], want [b c a]", got[0].Name, got[1].Name, got[2].Name)
	}
	if parent.ChildAt(0) != a {
		t.Error("sorting must not reorder the child list")
	}

	a.SetZIndex(0)
	got = sortedChildrenOf(parent)
	if got[0] != a {
		t.Errorf("first = %s, want a after resetting ZIndex", got[0].Name)
	}
}

// --- Dispose ---

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	root := NewContainer("root")
	root.AddChild(parent)
	parent.AddChild(child)
	parent.AddListener(NewListener(func(Event) bool { return true }))

	parent.Dispose()

	if !parent.IsDisposed() || !child.IsDisposed() {
		t.Error("parent and child should be disposed")
	}
	if parent.ID != 0 || child.ID != 0 {
		t.Error("disposed nodes should have ID = 0")
	}
	if root.NumChildren() != 0 {
		t.Error("root should have 0 children after dispose")
	}
	if len(parent.Listeners()) != 0 {
		t.Error("disposed node should drop its listeners")
	}
	parent.Dispose() // idempotent
}

func TestDisposedNodePanicsInDebug(t *testing.T) {
	s := NewStage(StageConfig{Debug: true})
	defer s.SetDebugMode(false)

	n := NewContainer("n")
	n.Dispose()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic adding a disposed node in debug mode")
		}
	}()
	s.Root().AddChild(n)
}

// --- Dirty propagation ---

func TestDirtyPropagationOnAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	child.AddChild(grandchild)

	child.transformDirty = false
	grandchild.transformDirty = false

	parent.AddChild(child)

	if !child.transformDirty {
		t.Error("child should be dirty after AddChild")
	}
	if !grandchild.transformDirty {
		t.Error("grandchild should be dirty after AddChild")
	}
}

func TestDisposedNodeNoPanicInReleaseMode(t *testing.T) {
	s := NewStage(StageConfig{})
	n := NewContainer("n")
	n.Dispose()
	s.Root().AddChild(n) // no debug check outside debug mode
	if n.Parent != s.Root() {
		t.Error("release mode does not validate disposed nodes")
	}
}
