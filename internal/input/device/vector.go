package device

import (
	"fmt"
	"math"
)

// Vector2 is a 2D vector of analog input.
type Vector2 struct {
	X float64
	Y float64
}

// Zero is the zero vector.
var Zero = Vector2{}

// Vec returns a vector with the given components.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Len returns the length of v.
func (v Vector2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero returns true if both components are zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalized returns v scaled to unit length.
// A zero-length vector stays zero.
func (v Vector2) Normalized() Vector2 {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vector2{X: v.X / l, Y: v.Y / l}
}

// String returns "(x, y)".
func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
