package camera

import (
	"testing"

	"github.com/Faultbox/tubular/pkg/math"
)

func near(a, b math.Vec3, eps float32) bool {
	return a.Sub(b).Length() < eps
}

func TestDesiredIsBehindTarget(t *testing.T) {
	c := NewFollowCamera()
	c.Pitch = 0

	tests := []struct {
		name    string
		forward math.Vec3
		want    math.Vec3
	}{
		{"facing +Z", math.Forward, math.Vec3{Z: -12}},
		{"facing +X", math.Right, math.Vec3{X: -12}},
		{"vertical component ignored", math.Vec3{Y: 5, Z: 1}, math.Vec3{Z: -12}},
		{"degenerate forward", math.Vec3{Y: 1}, math.Vec3{Z: -12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Desired(math.Vec3{}, tt.forward)
			if !near(got, tt.want, 1e-4) {
				t.Errorf("Desired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDesiredPitch(t *testing.T) {
	c := NewFollowCamera()
	target := math.Vec3{X: 1, Y: 2, Z: 3}
	got := c.Desired(target, math.Forward)

	if got.Y <= target.Y {
		t.Errorf("camera Y = %v, want above target %v", got.Y, target.Y)
	}
	if d := got.Distance(target); d < c.Distance-1e-3 || d > c.Distance+1e-3 {
		t.Errorf("distance = %v, want %v", d, c.Distance)
	}
}

func TestUpdateSnapsThenEases(t *testing.T) {
	c := NewFollowCamera()
	c.Update(0.016, math.Vec3{}, math.Forward)
	first := c.Position()
	if !near(first, c.Desired(math.Vec3{}, math.Forward), 1e-5) {
		t.Fatalf("first update should snap, got %v", first)
	}

	target := math.Vec3{Z: 10}
	c.Update(0.016, target, math.Forward)
	if near(c.Position(), c.Desired(target, math.Forward), 1e-3) {
		t.Error("second update should ease, not snap")
	}

	for i := 0; i < 600; i++ {
		c.Update(0.016, target, math.Forward)
	}
	if !near(c.Position(), c.Desired(target, math.Forward), 1e-3) {
		t.Errorf("camera did not converge: %v", c.Position())
	}
}

func TestHandleZoom(t *testing.T) {
	c := NewFollowCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want clamped to %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want clamped to %v", c.Distance, c.MaxDistance)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewFollowCamera()
	target := math.Vec3{X: 4, Z: 7}
	c.Update(0.016, target, math.Forward)

	view := c.ViewMatrix()
	p := view.TransformVec3(target.Add(math.Vec3{Y: c.LookHeight}))
	if absf(p.X) > 1e-3 || absf(p.Y) > 1e-3 || p.Z >= 0 {
		t.Errorf("aim point in view space = %v, want on the -Z axis", p)
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
