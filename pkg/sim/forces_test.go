package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/swarm/pkg/vec"
)

func TestDrivingForce(t *testing.T) {
	a := NewAgent(vec.V2(0, 0), vec.V2(10, 0))

	f := drivingForce(a)
	require.Greater(t, f.X, float32(0), "stationary agent should accelerate toward goal")
	assert.InDelta(t, 0, f.Y, 1e-6, "no lateral component on a straight path")
	assert.InDelta(t, a.DesiredSpeed/a.RelaxTime, f.X, 1e-4)
}

func TestDrivingForceDecaysAtDesiredSpeed(t *testing.T) {
	a := NewAgent(vec.V2(0, 0), vec.V2(10, 0))
	a.Vel = vec.V2(a.DesiredSpeed, 0)

	f := drivingForce(a)
	assert.InDelta(t, 0, f.Len(), 1e-4, "agent at desired velocity needs no push")
}

func TestAgentRepulsionDirection(t *testing.T) {
	a := NewAgent(vec.V2(0, 0), vec.V2(10, 0))
	b := NewAgent(vec.V2(1, 0), vec.V2(-10, 0))
	p := DefaultParams()

	f := agentRepulsion(a, b, p)
	sep := a.Pos.Sub(b.Pos)
	assert.Greater(t, f.Dot(sep), float32(0), "repulsion must push a away from b")
}

func TestAgentRepulsionDecaysWithDistance(t *testing.T) {
	a := NewAgent(vec.V2(0, 0), vec.V2(10, 0))
	p := DefaultParams()

	near := agentRepulsion(a, NewAgent(vec.V2(0.6, 0), vec.Vec2{}), p)
	far := agentRepulsion(a, NewAgent(vec.V2(3, 0), vec.Vec2{}), p)
	assert.Greater(t, near.Len(), far.Len())
}

func TestAgentRepulsionCoincident(t *testing.T) {
	a := NewAgent(vec.V2(1, 1), vec.V2(10, 0))
	b := NewAgent(vec.V2(1, 1), vec.V2(-10, 0))

	f := agentRepulsion(a, b, DefaultParams())
	assert.Equal(t, vec.Vec2{}, f, "coincident agents produce no force, not NaN")
}

func TestAnisotropyFrontVsBack(t *testing.T) {
	p := DefaultParams()
	a := NewAgent(vec.V2(0, 0), vec.V2(10, 0))
	a.Vel = vec.V2(1, 0)

	front := NewAgent(vec.V2(1, 0), vec.Vec2{})
	back := NewAgent(vec.V2(-1, 0), vec.Vec2{})

	assert.InDelta(t, 1, anisotropy(a, front, p), 1e-5, "full weight dead ahead")
	assert.InDelta(t, p.Anisotropy, anisotropy(a, back, p), 1e-5, "λ weight directly behind")

	// Stationary agents have no view direction and weight everything
	// fully.
	a.Vel = vec.Vec2{}
	assert.Equal(t, float32(1), anisotropy(a, back, p))
}

func TestWallRepulsionPushesAway(t *testing.T) {
	// Horizontal wall along y=0, agent above it.
	w := Wall{A: vec.V2(-5, 0), B: vec.V2(5, 0)}
	a := NewAgent(vec.V2(0, 0.3), vec.V2(10, 0.3))

	f := wallRepulsion(a, w, DefaultParams())
	assert.Greater(t, f.Y, float32(0), "agent above the wall is pushed up")
	assert.InDelta(t, 0, f.X, 1e-5)
}

func TestWallRepulsionDecaysWithDistance(t *testing.T) {
	w := Wall{A: vec.V2(-5, 0), B: vec.V2(5, 0)}
	p := DefaultParams()

	near := wallRepulsion(NewAgent(vec.V2(0, 0.3), vec.Vec2{}), w, p)
	far := wallRepulsion(NewAgent(vec.V2(0, 2), vec.Vec2{}), w, p)
	assert.Greater(t, near.Len(), far.Len())
}
