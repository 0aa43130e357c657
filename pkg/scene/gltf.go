// Package scene imports wall obstacles from glTF/GLB files. Vertical
// faces of the scene geometry are projected onto the ground plane and
// become sim.Wall segments.
package scene

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/swarm/pkg/sim"
	"github.com/taigrr/swarm/pkg/vec"
)

// A face counts as a wall when its unit normal deviates enough from
// the glTF up axis (+Y): |n_y| below this bound.
const wallNormalMax = 0.5

// LoadWalls opens a glTF or GLB file and returns the wall segments
// found in its geometry. Node translations are applied; rotation and
// scale are not (obstacle scenes are expected to be authored in
// place).
func LoadWalls(path string) ([]sim.Wall, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	verts, indices, err := collectDocument(doc)
	if err != nil {
		return nil, err
	}
	return ExtractWalls(verts, indices), nil
}

// collectDocument gathers all triangles reachable from the document's
// root nodes.
func collectDocument(doc *gltf.Document) ([]vec.Vec3, []int, error) {
	var verts []vec.Vec3
	var indices []int

	visit := func(nodeIdx int) error {
		return collectNode(doc, nodeIdx, vec.Vec3{}, &verts, &indices)
	}

	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = int(*doc.Scene)
		}
		for _, nodeIdx := range doc.Scenes[sceneIdx].Nodes {
			if err := visit(int(nodeIdx)); err != nil {
				return nil, nil, err
			}
		}
	} else {
		// No scenes defined: only parentless nodes are roots.
		// Visiting every node here would walk translated children a
		// second time with a zero offset.
		for i := range doc.Nodes {
			if isRootNode(doc, i) {
				if err := visit(i); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return verts, indices, nil
}

// isRootNode reports whether no other node lists nodeIdx as a child.
func isRootNode(doc *gltf.Document, nodeIdx int) bool {
	for _, n := range doc.Nodes {
		for _, child := range n.Children {
			if int(child) == nodeIdx {
				return false
			}
		}
	}
	return true
}

// collectNode gathers triangles from a node and its children,
// accumulating translations.
func collectNode(doc *gltf.Document, nodeIdx int, offset vec.Vec3, verts *[]vec.Vec3, indices *[]int) error {
	node := doc.Nodes[nodeIdx]

	offset = offset.Add(vec.V3(
		float32(node.Translation[0]),
		float32(node.Translation[1]),
		float32(node.Translation[2]),
	))

	if node.Mesh != nil {
		if err := collectMesh(doc, doc.Meshes[int(*node.Mesh)], offset, verts, indices); err != nil {
			return err
		}
	}

	for _, childIdx := range node.Children {
		if err := collectNode(doc, int(childIdx), offset, verts, indices); err != nil {
			return err
		}
	}
	return nil
}

func collectMesh(doc *gltf.Document, m *gltf.Mesh, offset vec.Vec3, verts *[]vec.Vec3, indices *[]int) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, int(posIdx))
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(*verts)
		for _, p := range positions {
			*verts = append(*verts, p.Add(offset))
		}

		if prim.Indices != nil {
			idx, err := readIndices(doc, int(*prim.Indices))
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for _, i := range idx {
				*indices = append(*indices, base+i)
			}
		} else {
			for i := range positions {
				*indices = append(*indices, base+i)
			}
		}
	}
	return nil
}

// ExtractWalls turns an indexed triangle soup into deduplicated 2D
// wall segments: for every wall-like face (near-vertical normal) the
// bottom edge is projected onto the ground plane.
func ExtractWalls(verts []vec.Vec3, indices []int) []sim.Wall {
	seen := make(map[segKey]bool)
	var walls []sim.Wall

	for i := 0; i+2 < len(indices); i += 3 {
		p0 := verts[indices[i]]
		p1 := verts[indices[i+1]]
		p2 := verts[indices[i+2]]

		n := vec.Cross(p1.Sub(p0), p2.Sub(p0))
		l := n.Len()
		if l < vec.Epsilon {
			continue // degenerate face
		}
		if abs32(n.Y()/l) > wallNormalMax {
			continue // floor or ceiling, not a wall
		}

		a, b := bottomEdge(p0, p1, p2)
		wall := sim.Wall{A: ground(a), B: ground(b)}
		if wall.Length() < vec.Epsilon {
			continue
		}

		key := makeSegKey(wall)
		if seen[key] {
			continue
		}
		seen[key] = true
		walls = append(walls, wall)
	}
	return walls
}

// bottomEdge returns the two vertices of the triangle lowest along
// the up axis, i.e. the edge opposite the highest vertex.
func bottomEdge(p0, p1, p2 vec.Vec3) (vec.Vec3, vec.Vec3) {
	vs := [3]vec.Vec3{p0, p1, p2}
	hi := 0
	for i := 1; i < 3; i++ {
		if vs[i].Y() > vs[hi].Y() {
			hi = i
		}
	}
	return vs[(hi+1)%3], vs[(hi+2)%3]
}

// ground projects a 3D point onto the 2D plan view: glTF is Y-up and
// right-handed, so the ground plane maps to (x, -z).
func ground(p vec.Vec3) vec.Vec2 {
	return vec.V2(p.X(), -p.Z())
}

// segKey identifies a segment up to direction, on a millimeter grid.
type segKey struct {
	ax, ay, bx, by int32
}

func makeSegKey(w sim.Wall) segKey {
	q := func(f float32) int32 { return int32(math.Round(float64(f) * 1000)) }
	k := segKey{q(w.A.X), q(w.A.Y), q(w.B.X), q(w.B.Y)}
	if k.bx < k.ax || (k.bx == k.ax && k.by < k.ay) {
		k.ax, k.ay, k.bx, k.by = k.bx, k.by, k.ax, k.ay
	}
	return k
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
