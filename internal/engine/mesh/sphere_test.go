package mesh

import "testing"

func TestSphere(t *testing.T) {
	tests := []struct {
		name    string
		radius  float32
		stacks  int
		sectors int
	}{
		{"small", 0.5, 4, 6},
		{"default caps", 0.25, 8, 16},
		{"large", 3, 12, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Sphere(tt.radius, tt.stacks, tt.sectors)

			if want := (tt.stacks + 1) * (tt.sectors + 1); len(m.Vertices) != want {
				t.Errorf("vertices = %d, want %d", len(m.Vertices), want)
			}
			if want := tt.sectors * (tt.stacks - 1) * 2 * 3; len(m.Indices) != want {
				t.Errorf("indices = %d, want %d", len(m.Indices), want)
			}

			for i, v := range m.Vertices {
				p := v.Position
				r := length(p)
				if absf(r-tt.radius) > 1e-4*tt.radius+1e-6 {
					t.Errorf("vertex %d at distance %v, want %v", i, r, tt.radius)
					break
				}
				if absf(length(v.Normal)-1) > 1e-5 {
					t.Errorf("vertex %d normal length = %v", i, length(v.Normal))
					break
				}
			}

			for _, idx := range m.Indices {
				if int(idx) >= len(m.Vertices) {
					t.Fatalf("index %d out of range", idx)
				}
			}

			if absf(m.Bounds.Max[1]-tt.radius) > 1e-5 || absf(m.Bounds.Min[1]+tt.radius) > 1e-5 {
				t.Errorf("Y bounds = [%v, %v], want ±%v", m.Bounds.Min[1], m.Bounds.Max[1], tt.radius)
			}
		})
	}
}

func TestSphereClampsResolution(t *testing.T) {
	m := Sphere(1, 0, 1)
	if len(m.Vertices) != 3*4 {
		t.Errorf("vertices = %d, want 12", len(m.Vertices))
	}
	if removed := Optimize(m); removed != 0 {
		t.Errorf("sphere has %d degenerate triangles", removed)
	}
}
