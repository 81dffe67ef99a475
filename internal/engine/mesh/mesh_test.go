package mesh

import (
	"testing"

	"github.com/Faultbox/tubular/pkg/math"
)

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func approx3(a, b [3]float32, eps float32) bool {
	return absf(a[0]-b[0]) < eps && absf(a[1]-b[1]) < eps && absf(a[2]-b[2]) < eps
}

func TestBuild(t *testing.T) {
	positions := []math.Vec3{{X: -1, Y: 2, Z: 0}, {X: 3, Y: -4, Z: 5}, {X: 0, Y: 0, Z: -2}}
	uvs := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0.5}, {X: 0.5, Y: 1}}
	indices := []uint32{0, 1, 2}

	m := Build(positions, uvs, indices)

	if len(m.Vertices) != 3 || len(m.Indices) != 3 {
		t.Fatalf("Build() = %d vertices, %d indices, want 3 and 3", len(m.Vertices), len(m.Indices))
	}
	if m.Vertices[1].TexCoord != [2]float32{1, 0.5} {
		t.Errorf("TexCoord = %v, want [1 0.5]", m.Vertices[1].TexCoord)
	}
	if m.Bounds.Min != [3]float32{-1, -4, -2} || m.Bounds.Max != [3]float32{3, 2, 5} {
		t.Errorf("Bounds = %+v", m.Bounds)
	}

	indices[0] = 9
	if m.Indices[0] != 0 {
		t.Error("Build() did not copy the index slice")
	}
}

func TestBuildEmpty(t *testing.T) {
	m := Build(nil, nil, nil)
	if !m.Bounds.Empty() {
		t.Errorf("Bounds of an empty mesh = %+v, want empty", m.Bounds)
	}
}

func TestRecalculateNormalsFlat(t *testing.T) {
	m := Build(
		[]math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		nil,
		[]uint32{0, 1, 2, 0, 2, 3},
	)
	RecalculateNormals(m)

	for i, v := range m.Vertices {
		if !approx3(v.Normal, [3]float32{0, 0, 1}, 1e-6) {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
}

func TestRecalculateNormalsSmoothsSharedPositions(t *testing.T) {
	// Two triangles meeting at an edge, each with its own copy of the edge
	m := Build(
		[]math.Vec3{
			{}, {X: 1}, {Y: 1},
			{}, {Y: 1}, {Z: 1},
		},
		nil,
		[]uint32{0, 1, 2, 3, 4, 5},
	)
	RecalculateNormals(m)

	const h = 0.70710677
	shared := [3]float32{h, 0, h}
	for _, i := range []int{0, 2, 3, 4} {
		if !approx3(m.Vertices[i].Normal, shared, 1e-5) {
			t.Errorf("vertex %d normal = %v, want %v", i, m.Vertices[i].Normal, shared)
		}
	}
	if !approx3(m.Vertices[1].Normal, [3]float32{0, 0, 1}, 1e-6) {
		t.Errorf("vertex 1 normal = %v, want +Z", m.Vertices[1].Normal)
	}
	if !approx3(m.Vertices[5].Normal, [3]float32{1, 0, 0}, 1e-6) {
		t.Errorf("vertex 5 normal = %v, want +X", m.Vertices[5].Normal)
	}
}

func TestRecalculateNormalsUnreferencedVertex(t *testing.T) {
	m := Build([]math.Vec3{{}, {X: 1}, {Y: 1}, {X: 5, Y: 5, Z: 5}}, nil, []uint32{0, 1, 2})
	RecalculateNormals(m)

	if m.Vertices[3].Normal != [3]float32{0, 1, 0} {
		t.Errorf("unreferenced vertex normal = %v, want +Y fallback", m.Vertices[3].Normal)
	}
}

func TestOptimize(t *testing.T) {
	m := Build(
		[]math.Vec3{
			{}, {X: 1}, {Y: 1}, // real triangle
			{X: 2}, {X: 3}, // collinear with vertex 0
			{Z: 7}, // unused
			{X: 1, Y: 1},
		},
		nil,
		[]uint32{
			0, 1, 2,
			0, 0, 1, // repeated index
			0, 3, 4, // zero area
			1, 6, 2,
		},
	)

	removed := Optimize(m)

	if removed != 2 {
		t.Errorf("Optimize() removed %d triangles, want 2", removed)
	}
	if len(m.Indices) != 6 {
		t.Fatalf("indices = %v, want 6", m.Indices)
	}
	if len(m.Vertices) != 4 {
		t.Errorf("vertices = %d, want 4", len(m.Vertices))
	}
	want := []uint32{0, 1, 2, 1, 3, 2}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Errorf("Indices = %v, want %v", m.Indices, want)
			break
		}
	}
	if m.Vertices[3].Position != [3]float32{1, 1, 0} {
		t.Errorf("remapped vertex 3 = %v, want [1 1 0]", m.Vertices[3].Position)
	}
	if m.Bounds.Max != [3]float32{1, 1, 0} {
		t.Errorf("Bounds.Max = %v, want [1 1 0]", m.Bounds.Max)
	}
}

func TestInterleave(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{1, 2, 3}, Normal: [3]float32{4, 5, 6}, TexCoord: [2]float32{7, 8}},
		{Position: [3]float32{9, 10, 11}},
	}
	got := Interleave(vertices, nil)

	if len(got) != 2*FloatsPerVertex {
		t.Fatalf("len = %d, want %d", len(got), 2*FloatsPerVertex)
	}
	for i := 0; i < 8; i++ {
		if got[i] != float32(i+1) {
			t.Errorf("got[%d] = %v, want %v", i, got[i], i+1)
		}
	}
	if got[8] != 9 {
		t.Errorf("second vertex starts with %v, want 9", got[8])
	}
}
