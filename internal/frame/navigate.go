package frame

// GetLeafAt returns the leaf of the subtree rooted at f containing the
// point (x,y), or nil if the point falls outside f's rectangle.
func GetLeafAt(f *Frame, x, y int32) *Frame {
	if f == nil || !contains(f.rect, x, y) {
		return nil
	}
	for !f.IsLeaf() {
		if contains(f.left.rect, x, y) {
			f = f.left
		} else {
			f = f.right
		}
	}
	return f
}

func contains(r Rect, x, y int32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// GetParentInDirection returns the nearest ancestor of f whose children are
// split along dir's axis and where the sibling of f's climbed child lies in
// the direction dir, or nil if f has no such ancestor (f already sits at the
// tree's outer edge in that direction).
func GetParentInDirection(f *Frame, dir Direction) *Frame {
	node := f
	for node.parent != nil {
		p := node.parent
		if p.dir == dir.Axis() {
			switch dir {
			case Right, Down:
				if p.left == node {
					return p
				}
			case Left, Up:
				if p.right == node {
					return p
				}
			}
		}
		node = p
	}
	return nil
}

// descendNearest walks from the side of ancestor facing dir down to the
// leaf whose midpoint is closest to origin's midpoint along the orthogonal
// axis — used by Move's case (4) to pick an insertion point inside a
// subtree rather than always the first leaf.
func descendNearest(ancestor *Frame, dir Direction, origin *Frame) *Frame {
	var side *Frame
	switch dir {
	case Right, Down:
		side = ancestor.right
	case Left, Up:
		side = ancestor.left
	}
	target := midpoint(origin.rect, dir.Axis().Other())
	for !side.IsLeaf() {
		lm := midpoint(side.left.rect, dir.Axis().Other())
		rm := midpoint(side.right.rect, dir.Axis().Other())
		if abs(lm-target) <= abs(rm-target) {
			side = side.left
		} else {
			side = side.right
		}
	}
	return side
}

// Other returns the axis orthogonal to a.
func (a SplitDirection) Other() SplitDirection {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func midpoint(r Rect, axis SplitDirection) int32 {
	if axis == Horizontal {
		return r.X + r.Width/2
	}
	return r.Y + r.Height/2
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
