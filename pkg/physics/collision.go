// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are colliding
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Bounds returns the axis-aligned bounding rectangle of the circle.
// This is the query area handed to the spatial index for broad-phase
// candidate collection.
func (c Circle) Bounds() Rect {
	return Rect{
		X: c.Center.X - c.Radius,
		Y: c.Center.Y - c.Radius,
		W: c.Radius * 2,
		H: c.Radius * 2,
	}
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided    bool
	Normal      Vector2D
	Penetration float64
}

// CheckCollision performs detailed collision detection between two circles.
// The normal points from a toward b.
func CheckCollision(a, b Circle) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance >= a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	return CollisionResult{
		Collided:    true,
		Normal:      normal.Normalize(),
		Penetration: a.Radius + b.Radius - distance,
	}
}

// Reflect mirrors a velocity across a collision normal:
// v' = v - 2(v·n)n. The normal must be unit length.
func Reflect(velocity, normal Vector2D) Vector2D {
	return velocity.Sub(normal.Scale(2 * velocity.Dot(normal)))
}
