// Package view renders a running simulation into the terminal:
// agents as glyphs colored by speed, walls as line cells, a HUD line
// on top, and a spring-damped camera following the crowd.
package view

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/taigrr/swarm/pkg/sim"
	"github.com/taigrr/swarm/pkg/vec"
)

var (
	styleWall = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 150, 150))
	styleGoal = tcell.StyleDefault.Foreground(tcell.NewRGBColor(80, 200, 120))
	styleHUD  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(220, 220, 100))
)

// Viewer owns the screen and drives stepping and drawing.
type Viewer struct {
	screen tcell.Screen
	world  *sim.World
	cam    *Camera
	fps    int
	dt     float32
	paused bool
}

// New creates a viewer on a real terminal screen.
func New(world *sim.World, dt float32, fps int) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, world, dt, fps), nil
}

// NewWithScreen creates a viewer on an already-initialized screen.
func NewWithScreen(screen tcell.Screen, world *sim.World, dt float32, fps int) *Viewer {
	v := &Viewer{
		screen: screen,
		world:  world,
		cam:    NewCamera(fps),
		fps:    fps,
		dt:     dt,
	}
	v.fit()
	return v
}

// fit sets the zoom so the whole scenario is visible and centers the
// camera on it.
func (v *Viewer) fit() {
	lo, hi := v.world.Bounds()
	w, h := v.screen.Size()

	spanX := float64(hi.X-lo.X) + 2
	spanY := float64(hi.Y-lo.Y) + 2
	// Terminal cells are roughly twice as tall as wide, so the
	// horizontal axis gets two cells per unit.
	scale := math.Min(float64(w)/(2*spanX), float64(h)/spanY)
	if scale > 0 {
		v.cam.Scale = scale
	}
	v.cam.Jump(float64(lo.X+hi.X)/2, float64(lo.Y+hi.Y)/2)
}

// Run steps and draws until the world finishes or the user quits.
func (v *Viewer) Run() error {
	defer v.screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				switch {
				case e.Key() == tcell.KeyEscape || e.Rune() == 'q':
					return nil
				case e.Rune() == ' ':
					v.paused = !v.paused
				case e.Rune() == '+' || e.Rune() == '=':
					v.cam.Scale *= 1.25
				case e.Rune() == '-':
					v.cam.Scale /= 1.25
				}
			case *tcell.EventResize:
				v.screen.Sync()
				v.fit()
			}

		case <-ticker.C:
			if !v.paused && !v.world.Done() {
				v.world.Step(v.dt)
			}
			c := v.world.Centroid()
			v.cam.Track(float64(c.X), float64(c.Y))
			v.Draw()
			if v.world.Done() {
				// Leave the final frame up briefly.
				time.Sleep(time.Second)
				return nil
			}
		}
	}
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	v.screen.Clear()
	for _, w := range v.world.Walls {
		v.drawWall(w)
	}
	for _, a := range v.world.Agents {
		gx, gy := v.project(a.Goal)
		v.screen.SetContent(gx, gy, '+', nil, styleGoal)
	}
	for _, a := range v.world.Agents {
		x, y := v.project(a.Pos)
		ch := '@'
		if a.Arrived {
			ch = 'o'
		}
		v.screen.SetContent(x, y, ch, nil, speedStyle(a))
	}
	v.drawHUD()
	v.screen.Show()
}

// project maps a world point to screen cell coordinates.
func (v *Viewer) project(p vec.Vec2) (int, int) {
	w, h := v.screen.Size()
	x := w/2 + int(math.Round((float64(p.X)-v.cam.X)*v.cam.Scale*2))
	y := h/2 - int(math.Round((float64(p.Y)-v.cam.Y)*v.cam.Scale))
	return x, y
}

func (v *Viewer) drawWall(w sim.Wall) {
	steps := int(float64(w.Length())*v.cam.Scale*2) + 1
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		p := w.A.Add(w.B.Sub(w.A).Scale(t))
		x, y := v.project(p)
		v.screen.SetContent(x, y, '#', nil, styleWall)
	}
}

func (v *Viewer) drawHUD() {
	status := fmt.Sprintf("tick %d  arrived %d/%d  [space] pause  [+/-] zoom  [q] quit",
		v.world.Tick(), v.world.ArrivedCount(), len(v.world.Agents))
	if v.paused {
		status += "  PAUSED"
	}
	v.drawText(1, 0, status, styleHUD)
}

func (v *Viewer) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// speedStyle shades an agent from blue (standing) to red (at full
// speed).
func speedStyle(a *sim.Agent) tcell.Style {
	t := float64(a.Speed() / (a.DesiredSpeed * 1.3))
	if t > 1 {
		t = 1
	} else if t < 0 || math.IsNaN(t) {
		t = 0
	}
	r := int32(80 + 175*t)
	b := int32(255 - 175*t)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, 100, b))
}
