// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestVector2D_AddSub(t *testing.T) {
	v := Vector2D{X: 3, Y: -1}
	w := Vector2D{X: 1, Y: 2}

	sum := v.Add(w)
	if sum.X != 4 || sum.Y != 1 {
		t.Errorf("Add() = %v, expected {4 1}", sum)
	}

	diff := v.Sub(w)
	if diff.X != 2 || diff.Y != -3 {
		t.Errorf("Sub() = %v, expected {2 -3}", diff)
	}
}

func TestVector2D_Scale(t *testing.T) {
	v := Vector2D{X: 2, Y: -3}
	scaled := v.Scale(2.5)
	if scaled.X != 5 || scaled.Y != -7.5 {
		t.Errorf("Scale() = %v, expected {5 -7.5}", scaled)
	}
}

func TestVector2D_Length(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		expected float64
	}{
		{name: "zero_vector", v: Vector2D{}, expected: 0},
		{name: "unit_x", v: Vector2D{X: 1}, expected: 1},
		{name: "pythagorean", v: Vector2D{X: 3, Y: 4}, expected: 5},
		{name: "negative_components", v: Vector2D{X: -3, Y: -4}, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Length(); !almostEqual(got, tt.expected) {
				t.Errorf("Length() = %v, expected %v", got, tt.expected)
			}
			if got := tt.v.LengthSquared(); !almostEqual(got, tt.expected*tt.expected) {
				t.Errorf("LengthSquared() = %v, expected %v", got, tt.expected*tt.expected)
			}
		})
	}
}

func TestVector2D_Normalize(t *testing.T) {
	t.Run("unit_result", func(t *testing.T) {
		n := Vector2D{X: 3, Y: 4}.Normalize()
		if !almostEqual(n.Length(), 1) {
			t.Errorf("Normalize() length = %v, expected 1", n.Length())
		}
		if !almostEqual(n.X, 0.6) || !almostEqual(n.Y, 0.8) {
			t.Errorf("Normalize() = %v, expected {0.6 0.8}", n)
		}
	})

	t.Run("zero_vector_stays_zero", func(t *testing.T) {
		n := Vector2D{}.Normalize()
		if n.X != 0 || n.Y != 0 {
			t.Errorf("Normalize() of zero vector = %v, expected zero", n)
		}
	})
}

func TestVector2D_Distance(t *testing.T) {
	a := Vector2D{X: 1, Y: 1}
	b := Vector2D{X: 4, Y: 5}
	if d := a.Distance(b); !almostEqual(d, 5) {
		t.Errorf("Distance() = %v, expected 5", d)
	}
}

func TestVector2D_Dot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vector2D
		expected float64
	}{
		{name: "perpendicular", a: Vector2D{X: 1}, b: Vector2D{Y: 1}, expected: 0},
		{name: "parallel", a: Vector2D{X: 2}, b: Vector2D{X: 3}, expected: 6},
		{name: "opposed", a: Vector2D{X: 1}, b: Vector2D{X: -1}, expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Dot(tt.b); !almostEqual(got, tt.expected) {
				t.Errorf("Dot() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_Rotate(t *testing.T) {
	t.Run("quarter_turn", func(t *testing.T) {
		r := Vector2D{X: 1, Y: 0}.Rotate(math.Pi / 2)
		if !almostEqual(r.X, 0) || !almostEqual(r.Y, 1) {
			t.Errorf("Rotate(pi/2) = %v, expected {0 1}", r)
		}
	})

	t.Run("length_preserved", func(t *testing.T) {
		v := Vector2D{X: 3, Y: -7}
		r := v.Rotate(0.3)
		if !almostEqual(v.Length(), r.Length()) {
			t.Errorf("Rotate() changed length: %v vs %v", v.Length(), r.Length())
		}
	})
}
