// Package sim implements a social-force pedestrian model: agents
// accelerate toward their goals and are repelled by each other and by
// wall segments. All geometry runs on pkg/vec.
package sim

import (
	"github.com/google/uuid"

	"github.com/taigrr/swarm/pkg/vec"
)

// Default agent parameters, roughly human-scale in meters and m/s.
const (
	DefaultRadius    = 0.25
	DefaultSpeed     = 1.3
	DefaultRelaxTime = 0.5
)

// Agent is one simulated pedestrian.
type Agent struct {
	ID           string
	Pos          vec.Vec2
	Vel          vec.Vec2
	Goal         vec.Vec2
	Radius       float32
	DesiredSpeed float32
	RelaxTime    float32
	Arrived      bool
}

// NewAgent creates an agent at pos walking toward goal with default
// parameters.
func NewAgent(pos, goal vec.Vec2) *Agent {
	return &Agent{
		ID:           uuid.NewString(),
		Pos:          pos,
		Goal:         goal,
		Radius:       DefaultRadius,
		DesiredSpeed: DefaultSpeed,
		RelaxTime:    DefaultRelaxTime,
	}
}

// GoalDirection returns the unit vector from the agent toward its
// goal, or the zero vector when the agent is effectively there.
func (a *Agent) GoalDirection() vec.Vec2 {
	return a.Goal.Sub(a.Pos).Normalized()
}

// GoalDistance returns the distance from the agent to its goal.
func (a *Agent) GoalDistance() float32 {
	return a.Goal.Sub(a.Pos).Len()
}

// Speed returns the magnitude of the agent's velocity.
func (a *Agent) Speed() float32 {
	return a.Vel.Len()
}

// Heading returns the agent's walking direction as a polar angle.
func (a *Agent) Heading() float64 {
	return a.Vel.PolarAngle()
}
