package frame

// BumpEdge grows or shrinks the edge of f named by edge by up to amount
// (positive grows f, negative shrinks it), clamped by the neighbor's
// minimum size. When the immediate neighbor is already at the minimum, the
// bump recurses outward onto the neighbor's own far edge, redistributing
// space across as many ancestors as needed. It returns the delta actually
// applied; |actual| <= |amount| always, and a second call in the same
// direction returns 0 once every neighbor along the chain has bottomed out.
func (f *Frame) BumpEdge(edge Direction, amount int32) (int32, error) {
	if amount == 0 {
		return 0, nil
	}
	node := f
	for node.parent != nil {
		p := node.parent
		var near, far *Frame
		matches := false
		switch {
		case p.dir == Horizontal && edge == Right && p.left == node:
			near, far, matches = p.left, p.right, true
		case p.dir == Horizontal && edge == Left && p.right == node:
			near, far, matches = p.right, p.left, true
		case p.dir == Vertical && edge == Down && p.left == node:
			near, far, matches = p.left, p.right, true
		case p.dir == Vertical && edge == Up && p.right == node:
			near, far, matches = p.right, p.left, true
		}
		if matches {
			return bumpAt(p, near, far, edge, amount)
		}
		node = p
	}
	// f's edge borders nothing (outer edge of the monitor): nothing to bump.
	return 0, nil
}

func axisSize(r Rect, axis SplitDirection) int32 {
	if axis == Horizontal {
		return r.Width
	}
	return r.Height
}

// bumpAt resolves one level of a bump: near's edge toward far moves by up
// to amount, taking space from far (or, if far is already at minimum,
// recursing into far.BumpEdge to free more room further out).
func bumpAt(parent, near, far *Frame, edge Direction, amount int32) (int32, error) {
	axis := edge.Axis()
	total := axisSize(parent.rect, axis) - parent.gaps.Inner
	nearSize := axisSize(near.rect, axis)

	applied := amount
	newNear := nearSize + applied
	if newNear < MinFrameSize {
		applied = MinFrameSize - nearSize
		newNear = MinFrameSize
	}
	maxNear := total - MinFrameSize
	if newNear > maxNear {
		overflow := newNear - maxNear
		gained, err := far.BumpEdge(edge, overflow)
		if err != nil {
			return 0, err
		}
		applied -= overflow - gained
		newNear = nearSize + applied
	}
	newFar := total - newNear

	// left/top child is always spatially first regardless of which side is
	// "near" vs "far"; lay out both children with that invariant.
	var leftSize, rightSize int32
	if near == parent.left {
		leftSize, rightSize = newNear, newFar
	} else {
		leftSize, rightSize = newFar, newNear
	}
	switch axis {
	case Horizontal:
		parent.left.ResizeKeepProportions(Rect{X: parent.rect.X, Y: parent.rect.Y, Width: leftSize, Height: parent.rect.Height})
		parent.right.ResizeKeepProportions(Rect{X: parent.rect.X + leftSize + parent.gaps.Inner, Y: parent.rect.Y, Width: rightSize, Height: parent.rect.Height})
	case Vertical:
		parent.left.ResizeKeepProportions(Rect{X: parent.rect.X, Y: parent.rect.Y, Width: parent.rect.Width, Height: leftSize})
		parent.right.ResizeKeepProportions(Rect{X: parent.rect.X, Y: parent.rect.Y + leftSize + parent.gaps.Inner, Width: parent.rect.Width, Height: rightSize})
	}
	parent.ratioFromSizes()

	return applied, nil
}
