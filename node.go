package infigrid

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter; the engine runs on one goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a minimal retained scene graph element. Cells live under one of
// two layer containers (static and pannable); each cell node carries a
// visual child that collapse animations scale and shift without disturbing
// the slot position the layout assigns.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Only translation propagates to children; scale is a
	// visual property applied when the node itself is drawn.
	X, Y   float64
	ScaleX float64
	ScaleY float64

	// Size of the node's rectangle before scaling.
	Width, Height float64

	Visible bool

	// Sprite fields
	Image *ebiten.Image
	Color Color

	// Metadata
	UserData any
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewSprite creates a node that draws img stretched over its rectangle.
// A nil image draws a solid rectangle in Color.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Image: img}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("infigrid: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("infigrid: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("infigrid: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Reparent moves n under parent while preserving its world position.
func (n *Node) Reparent(parent *Node) {
	if n.Parent == parent {
		return
	}
	world := n.WorldPosition()
	parent.AddChild(n)
	n.SetWorldPosition(world)
}

// RaiseToTop moves n to the end of its parent's child list so it is drawn
// and hit-tested above its siblings.
func (n *Node) RaiseToTop() {
	p := n.Parent
	if p == nil || len(p.children) == 0 || p.children[len(p.children)-1] == n {
		return
	}
	p.removeChildByPtr(n)
	p.children = append(p.children, n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

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
