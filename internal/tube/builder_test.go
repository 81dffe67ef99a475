package tube

import (
	"slices"
	"testing"

	"github.com/Faultbox/tubular/pkg/math"
)

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestBuildLoopTemplate(t *testing.T) {
	const radius = 0.75

	for n := 3; n <= 64; n++ {
		loop := BuildLoopTemplate(n, radius)
		if len(loop) != n {
			t.Fatalf("BuildLoopTemplate(%d) returned %d points", n, len(loop))
		}
		if loop[0] != loop[n-1] {
			t.Errorf("BuildLoopTemplate(%d): first %v != last %v", n, loop[0], loop[n-1])
		}
		for i, p := range loop {
			if p[2] != 0 || p[3] != 1 {
				t.Errorf("BuildLoopTemplate(%d)[%d] = %v, want z=0 w=1", n, i, p)
			}
			if d := p.XYZ().Length(); absf(d-radius) > 1e-5 {
				t.Errorf("BuildLoopTemplate(%d)[%d] at distance %v, want %v", n, i, d, radius)
			}
		}
	}
}

func TestBuildLoopTemplateStartsAtTop(t *testing.T) {
	loop := BuildLoopTemplate(5, 2)
	// 90° steps: top, right, bottom, left, top
	want := []math.Vec3{{X: 0, Y: 2, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: -2, Z: 0}, {X: -2, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}}
	for i, p := range loop {
		d := p.XYZ().Sub(want[i])
		if d.Length() > 1e-5 {
			t.Errorf("point %d = %v, want %v", i, p.XYZ(), want[i])
		}
	}
}

func TestBuildLoopTemplateRejectsTooFew(t *testing.T) {
	if got := BuildLoopTemplate(1, 1); got != nil {
		t.Errorf("BuildLoopTemplate(1) = %v, want nil", got)
	}
}

func TestAppendTrianglesFourVerts(t *testing.T) {
	got := AppendTriangles(nil, 0, 4)
	want := []uint32{
		0, 4, 5, 0, 5, 1,
		1, 5, 6, 1, 6, 2,
		2, 6, 3, 2, 3, 5,
	}
	if !slices.Equal(got, want) {
		t.Errorf("AppendTriangles(base 0, n 4) = %v, want %v", got, want)
	}
}

func TestAppendTrianglesOffsetBase(t *testing.T) {
	got := AppendTriangles([]uint32{99}, 8, 4)
	want := []uint32{
		99,
		8, 12, 13, 8, 13, 9,
		9, 13, 14, 9, 14, 10,
		10, 14, 11, 10, 11, 13,
	}
	if !slices.Equal(got, want) {
		t.Errorf("AppendTriangles(base 8, n 4) = %v, want %v", got, want)
	}
}

func TestAppendTrianglesStaysWithinRingPair(t *testing.T) {
	for _, n := range []int{3, 4, 7, 25} {
		base := uint32(3 * n)
		idx := AppendTriangles(nil, base, n)
		if len(idx) != IndicesPerStitch(n) {
			t.Errorf("n=%d: %d indices, want %d", n, len(idx), IndicesPerStitch(n))
		}
		for _, i := range idx {
			if i < base || i >= base+uint32(2*n) {
				t.Errorf("n=%d: index %d outside rings [%d, %d)", n, i, base, base+uint32(2*n))
			}
		}
	}
}

func TestRingUVs(t *testing.T) {
	uvs := RingUVs(nil, 5, 0.3)
	want := []math.Vec2{{X: 0, Y: 0.3}, {X: 0.25, Y: 0.3}, {X: 0.5, Y: 0.3}, {X: 0.75, Y: 0.3}, {X: 1, Y: 0.3}}
	if !slices.Equal(uvs, want) {
		t.Errorf("RingUVs = %v, want %v", uvs, want)
	}
}

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name              string
		previous, current math.Vec3
		forward, right    math.Vec3
		wantVelocity      math.Vec3
	}{
		{
			name:         "moving along z",
			previous:     math.Vec3{},
			current:      math.Vec3{Z: 2},
			forward:      math.Right,
			right:        math.Right,
			wantVelocity: math.Forward,
		},
		{
			name:         "standing still uses forward",
			previous:     math.Vec3{X: 1, Y: 1, Z: 1},
			current:      math.Vec3{X: 1, Y: 1, Z: 1},
			forward:      math.Vec3{X: -3},
			right:        math.Forward,
			wantVelocity: math.Vec3{X: -1},
		},
		{
			name:         "climbing",
			previous:     math.Vec3{},
			current:      math.Vec3{Y: 1, Z: 1},
			forward:      math.Forward,
			right:        math.Right,
			wantVelocity: math.Vec3{Y: 1, Z: 1}.Normalize(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(tt.previous, tt.current, tt.forward, tt.right)

			if f.Position != tt.previous {
				t.Errorf("Position = %v, want %v", f.Position, tt.previous)
			}
			if f.Velocity.Sub(tt.wantVelocity).Length() > 1e-5 {
				t.Errorf("Velocity = %v, want %v", f.Velocity, tt.wantVelocity)
			}
			wantUp := tt.wantVelocity.Cross(tt.right)
			if f.Up.Sub(wantUp).Length() > 1e-5 {
				t.Errorf("Up = %v, want %v", f.Up, wantUp)
			}
			// The ring faces along the direction of travel
			if got := f.Rotation.Rotate(math.Forward); got.Sub(f.Velocity).Length() > 1e-4 {
				t.Errorf("rotated +Z = %v, want %v", got, f.Velocity)
			}
		})
	}
}

func TestOrientRing(t *testing.T) {
	const radius = 0.5
	template := BuildLoopTemplate(9, radius)
	frame := NewFrame(math.Vec3{X: 4, Y: 1, Z: -2}, math.Vec3{X: 5, Y: 1, Z: -2}, math.Forward, math.Forward)

	ring := OrientRing(template, frame, nil)
	if len(ring) != len(template) {
		t.Fatalf("OrientRing returned %d vertices, want %d", len(ring), len(template))
	}

	for i, p := range ring {
		offset := p.Sub(frame.Position)
		if d := offset.Length(); absf(d-radius) > 1e-5 {
			t.Errorf("vertex %d at distance %v from center, want %v", i, d, radius)
		}
		if dot := offset.Dot(frame.Velocity); absf(dot) > 1e-5 {
			t.Errorf("vertex %d not in the plane perpendicular to travel, dot = %v", i, dot)
		}
	}
	if ring[0] != ring[len(ring)-1] {
		t.Errorf("seam vertices differ: %v vs %v", ring[0], ring[len(ring)-1])
	}
}
