// swarm - Terminal Crowd Simulator
// Run social-force pedestrian scenarios in your terminal.
//
// Controls:
//
//	Space  - Pause/resume
//	+/-    - Zoom in/out
//	Q/Esc  - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/taigrr/swarm/pkg/scenario"
	"github.com/taigrr/swarm/pkg/scene"
	"github.com/taigrr/swarm/pkg/sim"
	"github.com/taigrr/swarm/pkg/view"
)

var (
	headless  bool
	targetFPS int
	maxTicks  int
	logLevel  string
	logFile   string
)

func main() {
	root := &cobra.Command{
		Use:   "swarm",
		Short: "Terminal crowd simulator",
		Long: `swarm - Terminal Crowd Simulator

Run social-force pedestrian scenarios in your terminal: agents
accelerate toward their goals while repelling each other and sliding
along walls.

Controls:
  Space  - Pause/resume
  +/-    - Zoom in/out
  Q/Esc  - Quit`,
	}

	runCmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	runCmd.Flags().BoolVar(&headless, "headless", false, "Run without UI and print a summary")
	runCmd.Flags().IntVar(&targetFPS, "fps", 30, "Target FPS for the live view")
	runCmd.Flags().IntVar(&maxTicks, "max-ticks", 100000, "Stop after this many steps")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (default stderr; logging is off in UI mode without it)")

	infoCmd := &cobra.Command{
		Use:   "info <scenario.yaml>",
		Short: "Display scenario information",
		Long:  "Display scenario details (agents, walls, force parameters, imported scene geometry) without running it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	root.AddCommand(runCmd, infoCmd)

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the zap logger for this invocation. In UI mode
// stderr belongs to the terminal screen, so logging is silenced
// unless a log file is given.
func newLogger(ui bool) (*zap.Logger, error) {
	if ui && logFile == "" {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	out := "stderr"
	if logFile != "" {
		out = logFile
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{out}
	cfg.DisableCaller = true
	return cfg.Build()
}

// loadWorld builds the world from a scenario file, importing glTF
// walls when the scenario references a scene.
func loadWorld(path string, logger *zap.Logger) (*sim.World, *scenario.Scenario, error) {
	s, err := scenario.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	w, err := s.Build(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	if s.Scene != "" {
		scenePath := s.Scene
		if !filepath.IsAbs(scenePath) {
			scenePath = filepath.Join(filepath.Dir(path), scenePath)
		}
		walls, err := scene.LoadWalls(scenePath)
		if err != nil {
			return nil, nil, fmt.Errorf("import scene: %w", err)
		}
		for _, wall := range walls {
			w.AddWall(wall)
		}
		logger.Info("scene imported",
			zap.String("path", scenePath),
			zap.Int("walls", len(walls)))
	}

	return w, s, nil
}

func run(path string) error {
	logger, err := newLogger(!headless)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	w, s, err := loadWorld(path, logger)
	if err != nil {
		return err
	}
	logger.Info("scenario loaded",
		zap.String("name", s.Name),
		zap.Int("agents", len(w.Agents)),
		zap.Int("walls", len(w.Walls)))

	dt := s.TimeStep()

	if headless {
		ticks := 0
		for ; ticks < maxTicks && !w.Done(); ticks++ {
			w.Step(dt)
		}
		fmt.Printf("Scenario:  %s\n", s.Name)
		fmt.Printf("Ticks:     %d (%.1fs simulated)\n", ticks, float64(ticks)*float64(dt))
		fmt.Printf("Arrived:   %d/%d agents\n", w.ArrivedCount(), len(w.Agents))
		if !w.Done() {
			fmt.Println("Stopped before all agents arrived (hit --max-ticks)")
		}
		return nil
	}

	v, err := view.New(w, dt, targetFPS)
	if err != nil {
		return err
	}
	return v.Run()
}

func runInfo(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	s, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	groupTotal := 0
	for _, g := range s.Groups {
		groupTotal += g.Count
	}
	p := s.Params()

	fmt.Printf("Scenario:   %s\n", s.Name)
	fmt.Printf("File:       %s (%d bytes)\n", path, info.Size())
	fmt.Printf("Agents:     %d explicit + %d in %d groups\n", len(s.Agents), groupTotal, len(s.Groups))
	fmt.Printf("Walls:      %d\n", len(s.Walls))
	fmt.Printf("Time step:  %gs\n", s.TimeStep())
	fmt.Printf("Forces:     agent A=%g B=%g λ=%g, wall A=%g B=%g\n",
		p.RepulsionStrength, p.RepulsionRange, p.Anisotropy, p.WallStrength, p.WallRange)

	if s.Scene != "" {
		scenePath := s.Scene
		if !filepath.IsAbs(scenePath) {
			scenePath = filepath.Join(filepath.Dir(path), scenePath)
		}
		walls, err := scene.LoadWalls(scenePath)
		if err != nil {
			return fmt.Errorf("import scene: %w", err)
		}
		fmt.Printf("Scene:      %s (%d wall segments)\n", s.Scene, len(walls))
	}
	return nil
}
