package sim

import (
	"go.uber.org/zap"

	"github.com/taigrr/swarm/pkg/vec"
)

// World holds all agents and walls and advances them in lockstep.
// Stepping is deterministic: the same initial state always produces
// the same trajectories.
type World struct {
	Agents []*Agent
	Walls  []Wall
	Params Params

	tick int
	log  *zap.Logger
}

// NewWorld creates an empty world. A nil logger disables logging.
func NewWorld(params Params, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &World{
		Params: params,
		log:    logger,
	}
}

// AddAgent adds an agent to the world.
func (w *World) AddAgent(a *Agent) {
	w.Agents = append(w.Agents, a)
}

// AddWall adds a wall segment to the world.
func (w *World) AddWall(wall Wall) {
	w.Walls = append(w.Walls, wall)
}

// Tick returns how many steps have been taken.
func (w *World) Tick() int {
	return w.tick
}

// Step advances the simulation by dt seconds. Forces for all agents
// are computed against the pre-step state, then applied, so agent
// order does not affect the outcome.
func (w *World) Step(dt float32) {
	forces := make([]vec.Vec2, len(w.Agents))

	for i, a := range w.Agents {
		if a.Arrived {
			continue
		}
		f := drivingForce(a)
		for j, b := range w.Agents {
			if i == j || b.Arrived {
				continue
			}
			f.AddAssign(agentRepulsion(a, b, w.Params))
		}
		for _, wall := range w.Walls {
			f.AddAssign(wallRepulsion(a, wall, w.Params))
		}
		forces[i] = f
	}

	for i, a := range w.Agents {
		if a.Arrived {
			continue
		}
		a.Vel.AddAssign(forces[i].Scale(dt))

		if maxSpeed := a.DesiredSpeed * w.Params.MaxSpeedFactor; a.Vel.Len() > maxSpeed {
			a.Vel = a.Vel.Normalized().Scale(maxSpeed)
		}

		a.Pos.AddAssign(a.Vel.Scale(dt))

		if a.GoalDistance() <= w.Params.GoalTolerance {
			a.Arrived = true
			a.Vel = vec.Vec2{}
			w.log.Info("agent arrived",
				zap.String("id", a.ID),
				zap.Int("tick", w.tick),
				zap.Stringer("pos", a.Pos))
		}
	}

	w.tick++
}

// Done reports whether every agent has arrived.
func (w *World) Done() bool {
	for _, a := range w.Agents {
		if !a.Arrived {
			return false
		}
	}
	return len(w.Agents) > 0
}

// ArrivedCount returns how many agents have reached their goals.
func (w *World) ArrivedCount() int {
	n := 0
	for _, a := range w.Agents {
		if a.Arrived {
			n++
		}
	}
	return n
}

// Centroid returns the mean position of agents still walking, or of
// all agents once everyone has arrived.
func (w *World) Centroid() vec.Vec2 {
	var sum vec.Vec2
	n := 0
	for _, a := range w.Agents {
		if !a.Arrived {
			sum.AddAssign(a.Pos)
			n++
		}
	}
	if n == 0 {
		for _, a := range w.Agents {
			sum.AddAssign(a.Pos)
			n++
		}
	}
	if n == 0 {
		return vec.Vec2{}
	}
	return sum.Div(float32(n))
}

// Bounds returns the axis-aligned box enclosing all agents, goals,
// and walls.
func (w *World) Bounds() (min, max vec.Vec2) {
	first := true
	grow := func(p vec.Vec2) {
		if first {
			min, max = p, p
			first = false
			return
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	for _, a := range w.Agents {
		grow(a.Pos)
		grow(a.Goal)
	}
	for _, wall := range w.Walls {
		grow(wall.A)
		grow(wall.B)
	}
	return min, max
}
