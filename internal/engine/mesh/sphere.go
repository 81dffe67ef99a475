package mesh

import gomath "math"

// Sphere builds a UV sphere of the given radius centered at the origin.
// stacks and sectors are clamped to at least 2 and 3.
func Sphere(radius float32, stacks, sectors int) *Mesh {
	stacks = max(stacks, 2)
	sectors = max(sectors, 3)

	m := &Mesh{
		Vertices: make([]Vertex, 0, (stacks+1)*(sectors+1)),
		Indices:  make([]uint32, 0, stacks*sectors*6),
		Bounds:   emptyBounds(),
	}

	for i := 0; i <= stacks; i++ {
		phi := gomath.Pi * float64(i) / float64(stacks)
		y := gomath.Cos(phi)
		ring := gomath.Sin(phi)
		for j := 0; j <= sectors; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(sectors)
			n := [3]float32{
				float32(ring * gomath.Sin(theta)),
				float32(y),
				float32(ring * gomath.Cos(theta)),
			}
			v := Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				TexCoord: [2]float32{float32(j) / float32(sectors), float32(i) / float32(stacks)},
			}
			m.Vertices = append(m.Vertices, v)
			updateBounds(&m.Bounds, v.Position)
		}
	}

	row := uint32(sectors + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < sectors; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			// Pole rows collapse to a point; skip their zero-area half
			if i != 0 {
				m.Indices = append(m.Indices, a, b, a+1)
			}
			if i != stacks-1 {
				m.Indices = append(m.Indices, a+1, b, b+1)
			}
		}
	}
	return m
}
