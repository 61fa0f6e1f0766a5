package tactile

import "slices"

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic; dispatch is single-threaded).
var nodeIDCounter uint32

func nextNodeID() SurfaceID {
	nodeIDCounter++
	return SurfaceID(nodeIDCounter)
}

// --- Node ---

// Node is a rectangular surface in a retained tree. It is the [Surface]
// implementation for hosts that do not already have a view hierarchy of
// their own: build a tree of nodes mirroring what is drawn and hand its root
// to [NewManager].
type Node struct {
	// Identity
	ID   SurfaceID
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Frame in the parent's local coordinates.
	X, Y          float64
	Width, Height float64

	// Flipped makes the node's local y axis point down. Children of a node
	// whose orientation differs are mirrored into it.
	Flipped bool
	// Visible nodes take part in hit testing. A hidden node hides its whole
	// subtree.
	Visible bool

	// Metadata
	UserData any

	disposed bool
}

// NewNode creates a visible node of the given size at the parent's origin.
func NewNode(name string, width, height float64) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Width:   width,
		Height:  height,
		Visible: true,
	}
}

// --- Surface ---

// SurfaceID implements Surface.
func (n *Node) SurfaceID() SurfaceID { return n.ID }

// Frame implements Surface.
func (n *Node) Frame() Rect { return Rect{n.X, n.Y, n.Width, n.Height} }

// IsFlipped implements Surface.
func (n *Node) IsFlipped() bool { return n.Flipped }

// IsHidden implements Surface.
func (n *Node) IsHidden() bool { return !n.Visible || n.disposed }

// NumSubsurfaces implements Surface.
func (n *Node) NumSubsurfaces() int { return len(n.children) }

// SubsurfaceAt implements Surface.
func (n *Node) SubsurfaceAt(i int) Surface { return n.children[i] }

// SetPosition moves the node within its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
}

// SetSize resizes the node.
func (n *Node) SetSize(w, h float64) {
	n.Width, n.Height = w, h
}

// --- Coordinate conversion ---

// windowTransform returns the transform from the root's window space into
// this node's local space, composed the same way the hit-tester does.
func (n *Node) windowTransform() Transform {
	var path []*Node
	for p := n; p != nil; p = p.Parent {
		path = append(path, p)
	}
	t := IdentityTransform
	parentFlipped := path[len(path)-1].Flipped
	for i := len(path) - 1; i >= 0; i-- {
		s := path[i]
		t = childTransform(t, s.Frame(), parentFlipped, s.Flipped)
		parentFlipped = s.Flipped
	}
	return t
}

// WindowToLocal converts a window-space point into this node's local space.
func (n *Node) WindowToLocal(p Vec2) Vec2 {
	return n.windowTransform().Apply(p)
}

// LocalToWindow converts a point in this node's local space to window space.
func (n *Node) LocalToWindow(p Vec2) Vec2 {
	return n.windowTransform().Invert().Apply(p)
}

// --- Tree manipulation ---
//
// Children are kept back to front: the last child is drawn over its
// siblings and is the first one a hit test tries.

// AddChild puts child in front of its current siblings, taking it from any
// previous parent. It panics on a nil child or when child is n or one of
// n's ancestors.
func (n *Node) AddChild(child *Node) {
	n.adopt(child, -1, "AddChild")
}

// AddChildAt inserts child so that it is hit after every sibling at a
// higher index. index may equal NumChildren, which is the same as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if index < 0 {
		panic("tactile: child index out of range")
	}
	n.adopt(child, index, "AddChildAt")
}

// adopt attaches child at index, or in front when index is negative.
func (n *Node) adopt(child *Node, index int, op string) {
	if child == nil {
		panic("tactile: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, op+" (parent)")
		debugCheckDisposed(child, op+" (child)")
	}
	if isAncestor(child, n) {
		panic("tactile: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.unlink(child)
	}
	if index < 0 {
		index = len(n.children)
	}
	if index > len(n.children) {
		panic("tactile: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild takes child out of the hit-test tree. It panics if n is not
// child's parent.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("tactile: child's parent is not this node")
	}
	n.unlink(child)
	child.Parent = nil
}

// RemoveChildAt detaches and returns the child at index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("tactile: child index out of range")
	}
	child := n.children[index]
	n.children = slices.Delete(n.children, index, index+1)
	child.Parent = nil
	return child
}

// RemoveFromParent is a no-op for a root.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveChildren empties n. The former children keep their own subtrees.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the children back to front. Callers must not modify the
// slice.
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

// SetChildIndex restacks child among its siblings. Moving it to the last
// index brings it to the front for hit testing; index 0 sends it to the back.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("tactile: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("tactile: child index out of range")
	}
	from := slices.Index(n.children, child)
	if from == index {
		return
	}
	n.children = slices.Insert(slices.Delete(n.children, from, from+1), index, child)
}

// --- Disposal ---

// Dispose detaches n and tears down its whole subtree. A disposed node never
// receives touches again. Calling Dispose twice is harmless.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// unlink drops child from n.children. child.Parent is left for the caller.
func (n *Node) unlink(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}
