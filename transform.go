package infigrid

// WorldPosition returns the node's top-left corner in render space by
// accumulating the local translations of its ancestors.
func (n *Node) WorldPosition() Vec2 {
	var p Vec2
	for c := n; c != nil; c = c.Parent {
		p.X += c.X
		p.Y += c.Y
	}
	return p
}

// SetWorldPosition moves the node so that its top-left corner lands on p in
// render space.
func (n *Node) SetWorldPosition(p Vec2) {
	local := p
	if n.Parent != nil {
		local = n.Parent.WorldToLocal(p)
	}
	n.X = local.X
	n.Y = local.Y
}

// WorldToLocal converts a render-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec2) Vec2 {
	return p.Sub(n.WorldPosition())
}

// LocalToWorld converts a point in this node's local space to render space.
func (n *Node) LocalToWorld(p Vec2) Vec2 {
	return p.Add(n.WorldPosition())
}

// WorldRect returns the node's unscaled rectangle in render space.
func (n *Node) WorldRect() Rect {
	p := n.WorldPosition()
	return Rect{X: p.X, Y: p.Y, Width: n.Width, Height: n.Height}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetSize sets the node's unscaled width and height.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}
