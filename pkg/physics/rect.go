// pkg/physics/rect.go
package physics

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// Coordinates grow right and down, matching screen space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// NewRect creates a rectangle from its top-left corner and extents
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rectangle has zero or negative area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether a point lies inside the rectangle.
// Intervals are half-open: the left and top edges are inside,
// the right and bottom edges are not.
func (r Rect) Contains(p Vector2D) bool {
	return p.X >= r.X && p.X < r.X+r.W &&
		p.Y >= r.Y && p.Y < r.Y+r.H
}

// Overlaps reports whether two rectangles share a non-empty interior.
// Rectangles that merely touch along an edge do not overlap, and an
// empty rectangle overlaps nothing.
func (r Rect) Overlaps(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() Vector2D {
	return Vector2D{
		X: r.X + r.W/2,
		Y: r.Y + r.H/2,
	}
}
