// Package mesh provides the vertex layout, normal recalculation and primitive
// shapes used when tube geometry is handed to the GPU.
package mesh

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// FloatsPerVertex is the number of float32 values one Vertex occupies when interleaved.
const FloatsPerVertex = 8

// Mesh holds triangle data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Empty reports whether the box contains no points.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0]
}

// emptyBounds returns an inverted box that any point will grow.
func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}
