package mesh

import (
	gomath "math"

	"github.com/Faultbox/tubular/pkg/math"
)

// Build creates a mesh from parallel position and UV slices. Normals are left
// zero until RecalculateNormals is called. The inputs are copied.
func Build(positions []math.Vec3, uvs []math.Vec2, indices []uint32) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, len(positions)),
		Indices:  append([]uint32(nil), indices...),
		Bounds:   emptyBounds(),
	}
	for i, p := range positions {
		m.Vertices[i].Position = p.Array()
		if i < len(uvs) {
			m.Vertices[i].TexCoord = [2]float32{uvs[i].X, uvs[i].Y}
		}
		updateBounds(&m.Bounds, m.Vertices[i].Position)
	}
	return m
}

// RecalculateNormals computes area-weighted vertex normals from the
// triangles, then smooths them across vertices that share a position.
func RecalculateNormals(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Normal = [3]float32{}
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		if int(i0) >= len(m.Vertices) || int(i1) >= len(m.Vertices) || int(i2) >= len(m.Vertices) {
			continue
		}
		n := faceNormal(m.Vertices[i0].Position, m.Vertices[i1].Position, m.Vertices[i2].Position)
		for _, idx := range [3]uint32{i0, i1, i2} {
			v := &m.Vertices[idx]
			v.Normal[0] += n[0]
			v.Normal[1] += n[1]
			v.Normal[2] += n[2]
		}
	}

	SmoothNormals(m.Vertices)

	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(m.Vertices[i].Normal)
	}
}

// SmoothNormals sums normals at shared vertex positions.
// Ring seams have a duplicated first and last vertex; without this the seam
// shows as a hard edge.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(gomath.Round(float64(vertices[i].Position[0] / epsilon))),
			int32(gomath.Round(float64(vertices[i].Position[1] / epsilon))),
			int32(gomath.Round(float64(vertices[i].Position[2] / epsilon))),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum [3]float32
		for _, idx := range idxs {
			sum[0] += vertices[idx].Normal[0]
			sum[1] += vertices[idx].Normal[1]
			sum[2] += vertices[idx].Normal[2]
		}

		for _, idx := range idxs {
			vertices[idx].Normal = sum
		}
	}
}

// Optimize drops degenerate triangles and vertices no triangle references,
// remapping indices. It returns the number of triangles removed.
func Optimize(m *Mesh) int {
	kept := m.Indices[:0]
	removed := 0
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		if i0 == i1 || i1 == i2 || i0 == i2 {
			removed++
			continue
		}
		n := cross(sub(m.Vertices[i1].Position, m.Vertices[i0].Position), sub(m.Vertices[i2].Position, m.Vertices[i0].Position))
		if length(n) < 1e-8 {
			removed++
			continue
		}
		kept = append(kept, i0, i1, i2)
	}
	m.Indices = kept

	remap := make([]int32, len(m.Vertices))
	for i := range remap {
		remap[i] = -1
	}
	vertices := make([]Vertex, 0, len(m.Vertices))
	for i, idx := range m.Indices {
		if remap[idx] < 0 {
			remap[idx] = int32(len(vertices))
			vertices = append(vertices, m.Vertices[idx])
		}
		m.Indices[i] = uint32(remap[idx])
	}
	m.Vertices = vertices

	m.Bounds = emptyBounds()
	for i := range m.Vertices {
		updateBounds(&m.Bounds, m.Vertices[i].Position)
	}
	return removed
}

// Interleave flattens vertices into position, normal, texcoord order for a
// single GL array buffer.
func Interleave(vertices []Vertex, dst []float32) []float32 {
	for _, v := range vertices {
		dst = append(dst,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return dst
}

// faceNormal returns the unnormalized triangle normal, whose length is twice
// the triangle area.
func faceNormal(a, b, c [3]float32) [3]float32 {
	return cross(sub(b, a), sub(c, a))
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length(v [3]float32) float32 {
	return float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// normalize returns a unit vector, or +Y for vectors too short to normalize.
func normalize(v [3]float32) [3]float32 {
	l := length(v)
	if l < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
