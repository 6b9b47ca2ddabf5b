// pkg/physics/collision_test.go
package physics

import (
	"testing"
)

func TestRect_Contains(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: 20, H: 20}

	tests := []struct {
		name     string
		point    Vector2D
		expected bool
	}{
		{name: "center", point: Vector2D{X: 10, Y: 10}, expected: true},
		{name: "top_left_corner_inclusive", point: Vector2D{X: 0, Y: 0}, expected: true},
		{name: "right_edge_exclusive", point: Vector2D{X: 20, Y: 10}, expected: false},
		{name: "bottom_edge_exclusive", point: Vector2D{X: 10, Y: 20}, expected: false},
		{name: "outside_left", point: Vector2D{X: -1, Y: 10}, expected: false},
		{name: "outside_below", point: Vector2D{X: 10, Y: 25}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.expected {
				t.Errorf("Rect.Contains(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestRect_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "partial_overlap",
			a:        Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        Rect{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "contained",
			a:        Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        Rect{X: 2, Y: 2, W: 4, H: 4},
			expected: true,
		},
		{
			name:     "disjoint",
			a:        Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        Rect{X: 20, Y: 20, W: 5, H: 5},
			expected: false,
		},
		{
			name:     "touching_edges_do_not_overlap",
			a:        Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        Rect{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching_corners_do_not_overlap",
			a:        Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        Rect{X: 10, Y: 10, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "zero_area_overlaps_nothing",
			a:        Rect{X: 5, Y: 5, W: 0, H: 0},
			b:        Rect{X: 0, Y: 0, W: 10, H: 10},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.expected {
				t.Errorf("Rect.Overlaps() = %v, expected %v", got, tt.expected)
			}
			// Overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.expected {
				t.Errorf("Rect.Overlaps() reversed = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCircle_Collides(t *testing.T) {
	tests := []struct {
		name     string
		circle1  Circle
		circle2  Circle
		expected bool
	}{
		{
			name:     "circles_touching",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 10, Y: 0}, Radius: 5},
			expected: false, // Distance equals sum of radii, collision logic uses <
		},
		{
			name:     "circles_overlapping",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 5, Y: 0}, Radius: 5},
			expected: true,
		},
		{
			name:     "circles_not_touching",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 15, Y: 0}, Radius: 5},
			expected: false,
		},
		{
			name:     "circles_same_position",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 3},
			circle2:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 2},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.circle1.Collides(tt.circle2)
			if result != tt.expected {
				t.Errorf("Circle.Collides() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestCircle_Bounds(t *testing.T) {
	c := Circle{Center: Vector2D{X: 10, Y: 20}, Radius: 5}
	b := c.Bounds()
	expected := Rect{X: 5, Y: 15, W: 10, H: 10}
	if b != expected {
		t.Errorf("Circle.Bounds() = %v, expected %v", b, expected)
	}
}

func TestCheckCollision(t *testing.T) {
	t.Run("no_collision", func(t *testing.T) {
		circle1 := Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5}
		circle2 := Circle{Center: Vector2D{X: 15, Y: 0}, Radius: 5}

		result := CheckCollision(circle1, circle2)

		if result.Collided {
			t.Error("Expected no collision, but got collision")
		}
	})

	t.Run("collision_with_penetration", func(t *testing.T) {
		circle1 := Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5}
		circle2 := Circle{Center: Vector2D{X: 8, Y: 0}, Radius: 5}

		result := CheckCollision(circle1, circle2)

		if !result.Collided {
			t.Error("Expected collision, but got no collision")
		}

		expectedPenetration := 2.0 // 5 + 5 - 8 = 2
		if result.Penetration != expectedPenetration {
			t.Errorf("Expected penetration %v, got %v", expectedPenetration, result.Penetration)
		}

		// Normal points from circle1 toward circle2
		if result.Normal.X != 1 || result.Normal.Y != 0 {
			t.Errorf("Expected normal {1 0}, got %v", result.Normal)
		}
	})
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		velocity Vector2D
		normal   Vector2D
		expected Vector2D
	}{
		{
			name:     "head_on",
			velocity: Vector2D{X: 0, Y: 10},
			normal:   Vector2D{X: 0, Y: -1},
			expected: Vector2D{X: 0, Y: -10},
		},
		{
			name:     "glancing",
			velocity: Vector2D{X: 5, Y: 5},
			normal:   Vector2D{X: 0, Y: -1},
			expected: Vector2D{X: 5, Y: -5},
		},
		{
			name:     "parallel_to_surface",
			velocity: Vector2D{X: 5, Y: 0},
			normal:   Vector2D{X: 0, Y: -1},
			expected: Vector2D{X: 5, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflect(tt.velocity, tt.normal)
			if !almostEqual(got.X, tt.expected.X) || !almostEqual(got.Y, tt.expected.Y) {
				t.Errorf("Reflect() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
