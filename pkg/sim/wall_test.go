package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/swarm/pkg/vec"
)

func TestWallClosestPoint(t *testing.T) {
	w := Wall{A: vec.V2(0, 0), B: vec.V2(10, 0)}

	assert.True(t, w.ClosestPoint(vec.V2(5, 3)).Eq(vec.V2(5, 0)), "interior projection")
	assert.True(t, w.ClosestPoint(vec.V2(-4, 2)).Eq(vec.V2(0, 0)), "clamped to A")
	assert.True(t, w.ClosestPoint(vec.V2(14, -2)).Eq(vec.V2(10, 0)), "clamped to B")
}

func TestWallDegenerate(t *testing.T) {
	w := Wall{A: vec.V2(1, 1), B: vec.V2(1, 1)}

	assert.True(t, w.ClosestPoint(vec.V2(4, 5)).Eq(vec.V2(1, 1)))
	assert.Equal(t, vec.Vec2{}, w.Tangent(), "zero-length wall has no direction")
}

func TestWallNormalAndSide(t *testing.T) {
	w := Wall{A: vec.V2(0, 0), B: vec.V2(10, 0)}

	assert.True(t, w.Normal().Eq(vec.V2(0, 1)), "left normal of +x tangent is +y")
	assert.Greater(t, w.Side(vec.V2(5, 1)), float32(0), "above is the normal side")
	assert.Less(t, w.Side(vec.V2(5, -1)), float32(0))
}

func TestWallDistance(t *testing.T) {
	w := Wall{A: vec.V2(0, 0), B: vec.V2(10, 0)}

	assert.InDelta(t, 3, w.Distance(vec.V2(5, 3)), 1e-5)
	assert.InDelta(t, 5, w.Distance(vec.V2(13, 4)), 1e-5)
}
