package sim

import (
	"math"

	"github.com/taigrr/swarm/pkg/vec"
)

// Params tunes the force model and integration.
type Params struct {
	// Agent-agent repulsion: magnitude A·exp((rᵢ+rⱼ-d)/B).
	RepulsionStrength float32 // A, in acceleration units
	RepulsionRange    float32 // B, in meters

	// Anisotropy λ in [0,1]: weight of repulsion from agents behind
	// the walking direction. 1 means fully isotropic.
	Anisotropy float32

	// Wall repulsion: magnitude A·exp((r-d)/B) from the closest point.
	WallStrength float32
	WallRange    float32

	// Speed cap as a multiple of each agent's desired speed.
	MaxSpeedFactor float32

	// Distance at which an agent counts as arrived at its goal.
	GoalTolerance float32
}

// DefaultParams returns the standard social-force tuning.
func DefaultParams() Params {
	return Params{
		RepulsionStrength: 2.1,
		RepulsionRange:    0.3,
		Anisotropy:        0.25,
		WallStrength:      10,
		WallRange:         0.2,
		MaxSpeedFactor:    1.3,
		GoalTolerance:     0.2,
	}
}

// drivingForce steers the agent's velocity toward its desired
// velocity over the relaxation time.
func drivingForce(a *Agent) vec.Vec2 {
	desired := a.GoalDirection().Scale(a.DesiredSpeed)
	return desired.Sub(a.Vel).Div(a.RelaxTime)
}

// agentRepulsion returns the force exerted on a by b: exponential in
// the gap between their surfaces, directed from b to a, weighted down
// when b is behind a's walking direction.
func agentRepulsion(a, b *Agent, p Params) vec.Vec2 {
	diff := a.Pos.Sub(b.Pos)
	d := diff.Len()
	if d < vec.Epsilon {
		// Coincident agents have no separation direction; skip
		// rather than emit a NaN force.
		return vec.Vec2{}
	}
	dir := diff.Div(d)
	mag := p.RepulsionStrength * exp32((a.Radius+b.Radius-d)/p.RepulsionRange)
	return dir.Scale(mag * anisotropy(a, b, p))
}

// anisotropy returns the view-field weight for the repulsion a feels
// from b: 1 when b is dead ahead, λ when directly behind.
func anisotropy(a, b *Agent, p Params) float32 {
	if a.Vel.LenSq() < vec.Epsilon {
		return 1
	}
	c := vec.Cos(a.Vel, b.Pos.Sub(a.Pos))
	return p.Anisotropy + (1-p.Anisotropy)*(1+c)/2
}

// wallRepulsion returns the force pushing a away from the closest
// point on w.
func wallRepulsion(a *Agent, w Wall, p Params) vec.Vec2 {
	cp := w.ClosestPoint(a.Pos)
	diff := a.Pos.Sub(cp)
	d := diff.Len()

	var dir vec.Vec2
	if d < vec.Epsilon {
		// Touching the wall: push along the wall normal, toward
		// whichever side the agent was approaching from.
		dir = w.Normal()
		if w.Side(a.Pos.Sub(a.Vel)) < 0 {
			dir = dir.Neg()
		}
	} else {
		dir = diff.Div(d)
	}

	mag := p.WallStrength * exp32((a.Radius-d)/p.WallRange)
	return dir.Scale(mag)
}

func exp32(x float32) float32 {
	return float32(math.Exp(float64(x)))
}
