package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/swarm/pkg/vec"
)

// readPositions reads a VEC3 float accessor.
func readPositions(doc *gltf.Document, accessorIdx int) ([]vec.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	bufData, start, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := doc.BufferViews[*accessor.BufferView].ByteStride
	if stride == 0 {
		stride = 12 // 3 floats * 4 bytes
	}

	result := make([]vec.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		result[i] = vec.V3(
			readFloat32(bufData[offset:]),
			readFloat32(bufData[offset+4:]),
			readFloat32(bufData[offset+8:]),
		)
	}
	return result, nil
}

// readIndices reads a scalar index accessor of any component width.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	bufData, start, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := doc.BufferViews[*accessor.BufferView].ByteStride
	result := make([]int, accessor.Count)

	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		if stride == 0 {
			stride = 1
		}
		for i := range accessor.Count {
			result[i] = int(bufData[start+i*stride])
		}
	case gltf.ComponentUshort:
		if stride == 0 {
			stride = 2
		}
		for i := range accessor.Count {
			result[i] = int(binary.LittleEndian.Uint16(bufData[start+i*stride:]))
		}
	case gltf.ComponentUint:
		if stride == 0 {
			stride = 4
		}
		for i := range accessor.Count {
			result[i] = int(binary.LittleEndian.Uint32(bufData[start+i*stride:]))
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	return result, nil
}

// accessorBytes resolves an accessor to its backing byte slice and
// the offset of its first element.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
