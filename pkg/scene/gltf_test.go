package scene

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/swarm/pkg/vec"
)

// quad builds the two triangles of an axis-aligned rectangle from
// four corners given in order.
func quad(verts *[]vec.Vec3, indices *[]int, a, b, c, d vec.Vec3) {
	base := len(*verts)
	*verts = append(*verts, a, b, c, d)
	*indices = append(*indices, base, base+1, base+2, base, base+2, base+3)
}

func TestExtractWallsVerticalQuad(t *testing.T) {
	var verts []vec.Vec3
	var indices []int

	// A 2m-high wall standing on the ground from x=0 to x=4 at z=-1.
	quad(&verts, &indices,
		vec.V3(0, 0, -1), vec.V3(4, 0, -1),
		vec.V3(4, 2, -1), vec.V3(0, 2, -1))

	walls := ExtractWalls(verts, indices)
	require.Len(t, walls, 1, "both triangles share one bottom edge")

	w := walls[0]
	// Plan view maps (x, z) to (x, -z).
	assert.True(t, w.A.Eq(vec.V2(0, 1)) || w.B.Eq(vec.V2(0, 1)))
	assert.True(t, w.A.Eq(vec.V2(4, 1)) || w.B.Eq(vec.V2(4, 1)))
	assert.InDelta(t, 4, w.Length(), 1e-5)
}

func TestExtractWallsSkipsFloor(t *testing.T) {
	var verts []vec.Vec3
	var indices []int

	// Horizontal floor quad: normal points straight up.
	quad(&verts, &indices,
		vec.V3(0, 0, 0), vec.V3(4, 0, 0),
		vec.V3(4, 0, 4), vec.V3(0, 0, 4))

	walls := ExtractWalls(verts, indices)
	assert.Empty(t, walls, "floors must not become obstacles")
}

func TestExtractWallsSkipsDegenerate(t *testing.T) {
	verts := []vec.Vec3{
		vec.V3(0, 0, 0), vec.V3(1, 1, 1), vec.V3(2, 2, 2),
	}
	indices := []int{0, 1, 2}

	assert.Empty(t, ExtractWalls(verts, indices), "collinear faces have no area")
}

func TestExtractWallsDeduplicates(t *testing.T) {
	var verts []vec.Vec3
	var indices []int

	// The same wall twice, second time with reversed winding.
	quad(&verts, &indices,
		vec.V3(0, 0, 0), vec.V3(3, 0, 0),
		vec.V3(3, 2, 0), vec.V3(0, 2, 0))
	quad(&verts, &indices,
		vec.V3(0, 2, 0), vec.V3(3, 2, 0),
		vec.V3(3, 0, 0), vec.V3(0, 0, 0))

	walls := ExtractWalls(verts, indices)
	assert.Len(t, walls, 1)
}

func TestGroundProjection(t *testing.T) {
	p := ground(vec.V3(2, 5, -3))
	assert.True(t, p.Eq(vec.V2(2, 3)), "ground(2,5,-3) = %v, want (2,3)", p)
}

func TestCollectDocumentNoScenes(t *testing.T) {
	// Document without a scene list: a root node carrying only a
	// translation, whose child holds a vertical quad at x in [0,4].
	// The child must be collected exactly once, with the parent's
	// translation applied, not a second time from a zero offset.
	var buf bytes.Buffer
	positions := [][3]float32{{0, 0, 0}, {4, 0, 0}, {4, 2, 0}, {0, 2, 0}}
	for _, p := range positions {
		for _, c := range p {
			binary.Write(&buf, binary.LittleEndian, c)
		}
	}
	idxOffset := buf.Len()
	for _, i := range []uint16{0, 1, 2, 0, 2, 3} {
		binary.Write(&buf, binary.LittleEndian, i)
	}

	doc := &gltf.Document{
		Buffers: []*gltf.Buffer{{Data: buf.Bytes()}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0},
			{Buffer: 0, ByteOffset: idxOffset},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: 4, Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: 6, Type: gltf.AccessorScalar},
		},
		Meshes: []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 0},
			Indices:    gltf.Index(1),
		}}}},
		Nodes: []*gltf.Node{
			{Translation: [3]float64{10, 0, 0}},
			{Mesh: gltf.Index(0)},
		},
	}
	doc.Nodes[0].Children = append(doc.Nodes[0].Children, 1)

	verts, indices, err := collectDocument(doc)
	require.NoError(t, err)
	require.Len(t, verts, 4, "child geometry must be collected exactly once")

	walls := ExtractWalls(verts, indices)
	require.Len(t, walls, 1)

	w := walls[0]
	loX, hiX := w.A.X, w.B.X
	if loX > hiX {
		loX, hiX = hiX, loX
	}
	assert.InDelta(t, 10, loX, 1e-5, "parent translation must reach the child's vertices")
	assert.InDelta(t, 14, hiX, 1e-5)
}

func TestLoadWallsMissingFile(t *testing.T) {
	_, err := LoadWalls("does/not/exist.glb")
	require.Error(t, err)
}
