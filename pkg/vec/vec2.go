// Package vec provides the 2D and 3D vector algebra used by the
// force-based simulation: arithmetic, metric, and orientation
// operations over single-precision coordinates.
//
// Both types are plain values; copies are independent. Operations do
// not validate their inputs, so NaN and Inf propagate as IEEE
// arithmetic dictates. The only guarded operations are the two
// Normalized methods, which leave near-zero vectors unchanged.
package vec

import (
	"fmt"
	"math"
)

// Epsilon is the float32 machine epsilon. It is the threshold for the
// approximate equality of Eq and for the near-zero guard in Normalized.
const Epsilon = 1.1920929e-07

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float32
}

// V2 creates a new Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Neg returns the component-wise negation.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the dot product v · o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Scale returns the scalar product v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div returns the scalar quotient v / s, computed by multiplying with
// the reciprocal. s == 0 yields Inf/NaN components; callers guard.
func (v Vec2) Div(s float32) Vec2 {
	inv := 1 / s
	return Vec2{v.X * inv, v.Y * inv}
}

// Add returns the vector sum v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the vector difference v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// ScaleAssign multiplies v by s in place and returns v for chaining.
func (v *Vec2) ScaleAssign(s float32) *Vec2 {
	v.X *= s
	v.Y *= s
	return v
}

// DivAssign divides v by s in place (via the reciprocal) and returns v.
func (v *Vec2) DivAssign(s float32) *Vec2 {
	inv := 1 / s
	v.X *= inv
	v.Y *= inv
	return v
}

// AddAssign adds o to v in place and returns v.
func (v *Vec2) AddAssign(o Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// SubAssign subtracts o from v in place and returns v.
func (v *Vec2) SubAssign(o Vec2) *Vec2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// Eq reports whether v and o are approximately equal: every
// component-wise absolute difference is strictly below Epsilon.
func (v Vec2) Eq(o Vec2) bool {
	return abs32(v.X-o.X) < Epsilon && abs32(v.Y-o.Y) < Epsilon
}

// Ne reports whether v and o are not approximately equal.
func (v Vec2) Ne(o Vec2) bool {
	return !v.Eq(o)
}

// LenSq returns the squared length (no sqrt).
func (v Vec2) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the Euclidean length.
func (v Vec2) Len() float32 {
	return sqrt32(v.LenSq())
}

// Normalized returns the unit-length copy of v. A vector shorter than
// Epsilon is returned unchanged so near-zero inputs do not produce
// NaN components; the result is then not unit length.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return v.Div(l)
}

// PolarAngle returns the angle of v from the positive x-axis in
// radians, in (-π, π]. Zero vectors yield 0.
func (v Vec2) PolarAngle() float64 {
	return math.Atan2(float64(v.Y), float64(v.X))
}

// AngleTo returns the signed angular difference from v's polar angle
// to o's, wrapped to (-π, π]. Positive means o is counter-clockwise
// from v.
func (v Vec2) AngleTo(o Vec2) float64 {
	d := o.PolarAngle() - v.PolarAngle()
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// LeftNormal returns v rotated 90° counter-clockwise: (-y, x).
func (v Vec2) LeftNormal() Vec2 {
	return Vec2{-v.Y, v.X}
}

// String formats v as "(x,y)".
func (v Vec2) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// Det returns the determinant of the 2x2 matrix with rows a and b,
// equal to the z-component of the 3D cross product. Its sign gives
// the turn direction from a to b.
func Det(a, b Vec2) float32 {
	return a.X*b.Y - a.Y*b.X
}

// Cos returns the cosine of the angle between a and b. NaN when
// either vector has zero length.
func Cos(a, b Vec2) float32 {
	return a.Dot(b) / (a.Len() * b.Len())
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
