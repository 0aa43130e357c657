// Package scenario loads simulation setups from YAML: world tuning,
// agents, spawn groups, walls, and an optional glTF scene reference.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/swarm/pkg/sim"
	"github.com/taigrr/swarm/pkg/vec"
)

// Validation errors.
var (
	ErrNoAgents    = errors.New("scenario defines no agents or groups")
	ErrBadTimeStep = errors.New("time step must not be negative")
	ErrBadCount    = errors.New("group count must be positive")
	ErrBadArea     = errors.New("group area must have positive extent")
)

// Scenario is the top-level YAML document.
type Scenario struct {
	Name   string        `yaml:"name"`
	World  WorldConfig   `yaml:"world"`
	Agents []AgentConfig `yaml:"agents,omitempty"`
	Groups []GroupConfig `yaml:"groups,omitempty"`
	Walls  []WallConfig  `yaml:"walls,omitempty"`
	// Scene optionally names a glTF/GLB file whose wall-like faces
	// are imported as obstacles, relative to the scenario file.
	Scene string `yaml:"scene,omitempty"`
}

// WorldConfig tunes integration and the force model. Zero and omitted
// values are indistinguishable and both fall back to the defaults in
// sim.DefaultParams, so an explicit zero cannot be expressed for any
// of the force fields.
type WorldConfig struct {
	TimeStep          float32 `yaml:"time_step,omitempty"`
	Seed              int64   `yaml:"seed,omitempty"`
	RepulsionStrength float32 `yaml:"repulsion_strength,omitempty"`
	RepulsionRange    float32 `yaml:"repulsion_range,omitempty"`
	Anisotropy        float32 `yaml:"anisotropy,omitempty"`
	WallStrength      float32 `yaml:"wall_strength,omitempty"`
	WallRange         float32 `yaml:"wall_range,omitempty"`
	MaxSpeedFactor    float32 `yaml:"max_speed_factor,omitempty"`
	GoalTolerance     float32 `yaml:"goal_tolerance,omitempty"`
}

// AgentConfig places a single agent.
type AgentConfig struct {
	Pos    [2]float32 `yaml:"pos"`
	Goal   [2]float32 `yaml:"goal"`
	Radius float32    `yaml:"radius,omitempty"`
	Speed  float32    `yaml:"speed,omitempty"`
}

// GroupConfig spawns Count agents at seeded-random positions inside
// a rectangle, all walking to the same goal.
type GroupConfig struct {
	Count  int        `yaml:"count"`
	Min    [2]float32 `yaml:"min"`
	Max    [2]float32 `yaml:"max"`
	Goal   [2]float32 `yaml:"goal"`
	Radius float32    `yaml:"radius,omitempty"`
	Speed  float32    `yaml:"speed,omitempty"`
}

// WallConfig is a segment obstacle.
type WallConfig struct {
	A [2]float32 `yaml:"a"`
	B [2]float32 `yaml:"b"`
}

// DefaultTimeStep is used when the scenario does not set one.
const DefaultTimeStep = 1.0 / 30

// Load decodes a scenario from r.
func Load(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}

// LoadFile reads and decodes a scenario file.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks the scenario for structural problems.
func (s *Scenario) Validate() error {
	if len(s.Agents) == 0 && len(s.Groups) == 0 {
		return ErrNoAgents
	}
	if s.World.TimeStep < 0 {
		return ErrBadTimeStep
	}
	for i, g := range s.Groups {
		if g.Count <= 0 {
			return fmt.Errorf("group %d: %w", i, ErrBadCount)
		}
		if g.Max[0] <= g.Min[0] || g.Max[1] <= g.Min[1] {
			return fmt.Errorf("group %d: %w", i, ErrBadArea)
		}
	}
	return nil
}

// TimeStep returns the configured time step or the default.
func (s *Scenario) TimeStep() float32 {
	if s.World.TimeStep > 0 {
		return s.World.TimeStep
	}
	return DefaultTimeStep
}

// Params converts the world config into sim parameters, filling in
// defaults for unset fields.
func (s *Scenario) Params() sim.Params {
	p := sim.DefaultParams()
	w := s.World
	if w.RepulsionStrength > 0 {
		p.RepulsionStrength = w.RepulsionStrength
	}
	if w.RepulsionRange > 0 {
		p.RepulsionRange = w.RepulsionRange
	}
	if w.Anisotropy > 0 {
		p.Anisotropy = w.Anisotropy
	}
	if w.WallStrength > 0 {
		p.WallStrength = w.WallStrength
	}
	if w.WallRange > 0 {
		p.WallRange = w.WallRange
	}
	if w.MaxSpeedFactor > 0 {
		p.MaxSpeedFactor = w.MaxSpeedFactor
	}
	if w.GoalTolerance > 0 {
		p.GoalTolerance = w.GoalTolerance
	}
	return p
}

// Build constructs the world: explicit agents first, then groups in
// order, with group positions drawn from the scenario seed so the
// same file always produces the same world.
func (s *Scenario) Build(logger *zap.Logger) (*sim.World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	w := sim.NewWorld(s.Params(), logger)

	for _, wc := range s.Walls {
		w.AddWall(sim.Wall{
			A: vec.V2(wc.A[0], wc.A[1]),
			B: vec.V2(wc.B[0], wc.B[1]),
		})
	}

	for _, ac := range s.Agents {
		a := sim.NewAgent(vec.V2(ac.Pos[0], ac.Pos[1]), vec.V2(ac.Goal[0], ac.Goal[1]))
		applyOverrides(a, ac.Radius, ac.Speed)
		w.AddAgent(a)
	}

	rng := rand.New(rand.NewSource(s.World.Seed))
	for _, g := range s.Groups {
		for i := 0; i < g.Count; i++ {
			pos := vec.V2(
				g.Min[0]+rng.Float32()*(g.Max[0]-g.Min[0]),
				g.Min[1]+rng.Float32()*(g.Max[1]-g.Min[1]),
			)
			a := sim.NewAgent(pos, vec.V2(g.Goal[0], g.Goal[1]))
			applyOverrides(a, g.Radius, g.Speed)
			w.AddAgent(a)
		}
	}

	return w, nil
}

func applyOverrides(a *sim.Agent, radius, speed float32) {
	if radius > 0 {
		a.Radius = radius
	}
	if speed > 0 {
		a.DesiredSpeed = speed
	}
}
