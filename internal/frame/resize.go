package frame

// Resize writes f's geometry and recursively resizes children according to
// the stored ratio along the split axis, and to the parent's full extent
// along the orthogonal axis.
func (f *Frame) Resize(rect Rect) {
	f.resize(rect, false)
}

// ResizeKeepProportions behaves like Resize but ignores the stored ratio,
// instead keeping each child's current relative share of the axis. It is
// used when a parent frame is resized for reasons unrelated to a ratio
// change (e.g. monitor reconfiguration) and children must keep their
// relative share rather than snap back to their nominal ratio.
func (f *Frame) ResizeKeepProportions(rect Rect) {
	f.resize(rect, true)
}

func (f *Frame) resize(rect Rect, keepProportions bool) {
	f.rect = rect
	if f.IsLeaf() {
		return
	}
	switch f.dir {
	case Horizontal:
		avail := rect.Width - f.gaps.Inner
		rightW := f.splitAmount(avail, f.left.rect.Width, f.right.rect.Width, keepProportions)
		leftW := avail - rightW
		leftW, rightW = clampPair(leftW, rightW)
		f.left.resize(Rect{X: rect.X, Y: rect.Y, Width: leftW, Height: rect.Height}, keepProportions)
		f.right.resize(Rect{X: rect.X + leftW + f.gaps.Inner, Y: rect.Y, Width: rightW, Height: rect.Height}, keepProportions)
	case Vertical:
		avail := rect.Height - f.gaps.Inner
		bottomH := f.splitAmount(avail, f.left.rect.Height, f.right.rect.Height, keepProportions)
		topH := avail - bottomH
		topH, bottomH = clampPair(topH, bottomH)
		f.left.resize(Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: topH}, keepProportions)
		f.right.resize(Rect{X: rect.X, Y: rect.Y + topH + f.gaps.Inner, Width: rect.Width, Height: bottomH}, keepProportions)
	}
}

// splitAmount returns the right/bottom child's share of avail, either from
// the stored ratio or from the children's current proportions.
func (f *Frame) splitAmount(avail, curLeft, curRight int32, keepProportions bool) int32 {
	if !keepProportions {
		return f.ratio.Apply(avail)
	}
	total := curLeft + curRight
	if total <= 0 {
		return avail / 2
	}
	return int32(int64(avail) * int64(curRight) / int64(total))
}

// clampPair ensures neither side of a 1-D split falls below MinFrameSize,
// stealing space from the larger side when the available total allows it.
func clampPair(a, b int32) (int32, int32) {
	total := a + b
	if a < MinFrameSize {
		a = MinFrameSize
	}
	if b < MinFrameSize {
		b = MinFrameSize
	}
	if a+b != total && total >= 2*MinFrameSize {
		// one side was clamped up; shrink the other back down to preserve total
		if a > MinFrameSize {
			a = total - b
		} else {
			b = total - a
		}
	}
	return a, b
}

// ratioFromSizes recomputes f's ratio (right child's share) from its
// children's current sizes along f's split axis.
func (f *Frame) ratioFromSizes() {
	var left, right int32
	switch f.dir {
	case Horizontal:
		left, right = f.left.rect.Width, f.right.rect.Width
	case Vertical:
		left, right = f.left.rect.Height, f.right.rect.Height
	}
	total := left + right
	if total <= 0 {
		f.ratio = Ratio{}
		return
	}
	f.ratio = Ratio{Numerator: uint32(right), Denominator: uint32(total)}
}
