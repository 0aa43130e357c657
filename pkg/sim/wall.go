package sim

import "github.com/taigrr/swarm/pkg/vec"

// Wall is an impassable line-segment obstacle from A to B.
type Wall struct {
	A, B vec.Vec2
}

// Tangent returns the unit direction from A to B. Degenerate walls
// (A == B) yield the zero vector.
func (w Wall) Tangent() vec.Vec2 {
	return w.B.Sub(w.A).Normalized()
}

// Normal returns the unit left normal of the tangent, pointing 90°
// counter-clockwise from the A-to-B direction.
func (w Wall) Normal() vec.Vec2 {
	return w.Tangent().LeftNormal()
}

// Length returns the wall's length.
func (w Wall) Length() float32 {
	return w.B.Sub(w.A).Len()
}

// ClosestPoint returns the point on the segment nearest to p.
func (w Wall) ClosestPoint(p vec.Vec2) vec.Vec2 {
	ab := w.B.Sub(w.A)
	lsq := ab.LenSq()
	if lsq < vec.Epsilon {
		return w.A
	}
	t := p.Sub(w.A).Dot(ab) / lsq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return w.A.Add(ab.Scale(t))
}

// Side reports which side of the wall's infinite line p lies on:
// positive on the normal side, negative opposite, near zero on the
// line.
func (w Wall) Side(p vec.Vec2) float32 {
	return vec.Det(w.B.Sub(w.A), p.Sub(w.A))
}

// Distance returns the distance from p to the segment.
func (w Wall) Distance(p vec.Vec2) float32 {
	return p.Sub(w.ClosestPoint(p)).Len()
}
