// Package core provides fundamental types and utilities shared by the game
// and the platform layer. It has no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// Rect represents an axis-aligned bounding box in playfield pixels.
// Invariant: Left <= Right and Top <= Bottom.
type Rect struct {
	Left, Top     float64
	Right, Bottom float64
}

// NewRect creates a rectangle from its top-left corner and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// CenterX returns the x-coordinate of the center.
func (r Rect) CenterX() float64 {
	return (r.Left + r.Right) / 2
}

// CenterY returns the y-coordinate of the center.
func (r Rect) CenterY() float64 {
	return (r.Top + r.Bottom) / 2
}

// Offset moves the rectangle by (dx, dy).
func (r *Rect) Offset(dx, dy float64) {
	r.Left += dx
	r.Right += dx
	r.Top += dy
	r.Bottom += dy
}

// Offsetted returns a copy of the rectangle moved by (dx, dy).
func (r Rect) Offsetted(dx, dy float64) Rect {
	r.Offset(dx, dy)
	return r
}

// OffsetTo moves the rectangle so its top-left corner is at (x, y),
// keeping its size.
func (r *Rect) OffsetTo(x, y float64) {
	r.OffsetToX(x)
	r.OffsetToY(y)
}

// OffsetToX moves the left edge to x, keeping the width.
func (r *Rect) OffsetToX(x float64) {
	r.Right += x - r.Left
	r.Left = x
}

// OffsetToY moves the top edge to y, keeping the height.
func (r *Rect) OffsetToY(y float64) {
	r.Bottom += y - r.Top
	r.Top = y
}

// Intersects returns true if this rectangle overlaps with another.
// Overlap is tested on open intervals, so rectangles that only share an
// edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.Left >= other.Right || other.Left >= r.Right {
		return false
	}
	if r.Top >= other.Bottom || other.Top >= r.Bottom {
		return false
	}
	return true
}

// Within reports whether the rectangle lies entirely inside [0,w]x[0,h].
func (r Rect) Within(w, h float64) bool {
	return r.Left >= 0 && r.Top >= 0 && r.Right <= w && r.Bottom <= h
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
