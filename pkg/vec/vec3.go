package vec

import "fmt"

// Vec3 represents a 3D vector, stored as a fixed 3-element array so
// components can be read and written by position: v[0], v[1], v[2].
// Out-of-range indices panic.
type Vec3 [3]float32

// V3 creates a new Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// X returns the x-coordinate.
func (v Vec3) X() float32 { return v[0] }

// Y returns the y-coordinate.
func (v Vec3) Y() float32 { return v[1] }

// Z returns the z-coordinate.
func (v Vec3) Z() float32 { return v[2] }

// Neg returns the component-wise negation.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Scale returns the scalar product v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Div returns the scalar quotient v / s, computed by multiplying with
// the reciprocal. s == 0 yields Inf/NaN components; callers guard.
func (v Vec3) Div(s float32) Vec3 {
	inv := 1 / s
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Add returns the vector sum v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns the vector difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// ScaleAssign multiplies v by s in place and returns v for chaining.
func (v *Vec3) ScaleAssign(s float32) *Vec3 {
	v[0] *= s
	v[1] *= s
	v[2] *= s
	return v
}

// DivAssign divides v by s in place (via the reciprocal) and returns v.
func (v *Vec3) DivAssign(s float32) *Vec3 {
	inv := 1 / s
	v[0] *= inv
	v[1] *= inv
	v[2] *= inv
	return v
}

// AddAssign adds o to v in place and returns v.
func (v *Vec3) AddAssign(o Vec3) *Vec3 {
	v[0] += o[0]
	v[1] += o[1]
	v[2] += o[2]
	return v
}

// SubAssign subtracts o from v in place and returns v.
func (v *Vec3) SubAssign(o Vec3) *Vec3 {
	v[0] -= o[0]
	v[1] -= o[1]
	v[2] -= o[2]
	return v
}

// Eq reports whether v and o are approximately equal: every
// component-wise absolute difference is strictly below Epsilon.
func (v Vec3) Eq(o Vec3) bool {
	return abs32(v[0]-o[0]) < Epsilon &&
		abs32(v[1]-o[1]) < Epsilon &&
		abs32(v[2]-o[2]) < Epsilon
}

// Ne reports whether v and o are not approximately equal.
func (v Vec3) Ne(o Vec3) bool {
	return !v.Eq(o)
}

// LenSq returns the squared length (no sqrt).
func (v Vec3) LenSq() float32 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Len returns the Euclidean length.
func (v Vec3) Len() float32 {
	return sqrt32(v.LenSq())
}

// Normalized returns the unit-length copy of v. A vector shorter than
// Epsilon is returned unchanged, same policy as Vec2.Normalized.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return v.Div(l)
}

// String formats v as "(x,y,z)".
func (v Vec3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v[0], v[1], v[2])
}

// Cross returns the cross product a × b, right-handed.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
