package view

import "github.com/charmbracelet/harmonica"

// Camera tracks a world-space focus point through critically damped
// springs so the view glides after the agents instead of jumping.
type Camera struct {
	X, Y  float64
	Scale float64 // screen rows per world meter

	velX, velY float64
	spring     harmonica.Spring
}

// NewCamera creates a camera updated at the given frame rate.
func NewCamera(fps int) *Camera {
	return &Camera{
		// Frequency 3.0 follows briskly, damping 1.0 = no overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 3.0, 1.0),
		Scale:  2,
	}
}

// Track advances the camera one frame toward the target focus point.
func (c *Camera) Track(tx, ty float64) {
	c.X, c.velX = c.spring.Update(c.X, c.velX, tx)
	c.Y, c.velY = c.spring.Update(c.Y, c.velY, ty)
}

// Jump recenters immediately, killing any spring motion.
func (c *Camera) Jump(tx, ty float64) {
	c.X, c.Y = tx, ty
	c.velX, c.velY = 0, 0
}
