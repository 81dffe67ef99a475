// Package tube generates tube meshes that trail behind a moving anchor.
//
// The package splits into stateless geometry (loop templates, ring frames and
// triangle stitching) and Session, which turns a stream of anchor positions
// into rings, rolls segments over when they grow too long and keeps the list
// of completed tube runs. Rendering is delegated to a Renderer.
package tube

import (
	gomath "math"

	"github.com/Faultbox/tubular/pkg/math"
)

// BuildLoopTemplate returns vertsPerLoop points on a circle of the given
// radius in the local XY plane, with w = 1.
//
// The angle step is 360°/(vertsPerLoop-1), so the last point lands on the
// first one. Triangle stitching relies on that coincidence to close the ring.
func BuildLoopTemplate(vertsPerLoop int, radius float32) []math.Vec4 {
	if vertsPerLoop < 2 {
		return nil
	}

	loop := make([]math.Vec4, vertsPerLoop)
	step := 2 * gomath.Pi / float64(vertsPerLoop-1)
	for i := range loop {
		angle := float64(i) * step
		loop[i] = math.Vec4{
			radius * float32(gomath.Sin(angle)),
			radius * float32(gomath.Cos(angle)),
			0,
			1,
		}
	}
	// Remove rounding noise from sin(2π) so the seam vertices are identical.
	loop[len(loop)-1] = loop[0]
	return loop
}

// Frame places one ring in world space.
type Frame struct {
	Position math.Vec3 // ring center
	Velocity math.Vec3 // unit direction of travel
	Up       math.Vec3 // cross(Velocity, lateral axis)
	Rotation math.Quat
}

// NewFrame derives the ring frame for movement from previous to current.
//
// The direction of travel falls back to forward when the two positions are
// equal. The ring is centered on previous, matching the position history the
// session keeps.
func NewFrame(previous, current, forward, right math.Vec3) Frame {
	velocity := forward.Normalize()
	if !previous.ApproxEqual(current) {
		velocity = current.Sub(previous).Normalize()
	}
	up := velocity.Cross(right)

	return Frame{
		Position: previous,
		Velocity: velocity,
		Up:       up,
		Rotation: math.QuatLookRotation(velocity, up.Neg()),
	}
}

// Matrix returns the frame transform with unit scale.
func (f Frame) Matrix() math.Mat4 {
	return math.TRS(f.Position, f.Rotation, math.Vec3{X: 1, Y: 1, Z: 1})
}

// OrientRing transforms every template point by frame and appends the
// resulting world-space ring to dst.
func OrientRing(template []math.Vec4, frame Frame, dst []math.Vec3) []math.Vec3 {
	m := frame.Matrix()
	for _, p := range template {
		dst = append(dst, m.MulVec4(p).XYZ())
	}
	return dst
}

// RingUVs appends texture coordinates for one ring: u runs around the ring
// from 0 to 1, v is the same for the whole ring.
func RingUVs(dst []math.Vec2, vertsPerLoop int, v float32) []math.Vec2 {
	last := float32(vertsPerLoop - 1)
	for i := 0; i < vertsPerLoop; i++ {
		dst = append(dst, math.Vec2{X: float32(i) / last, Y: v})
	}
	return dst
}

// AppendTriangles stitches the ring starting at vertex base to the ring that
// follows it at base+vertsPerLoop and appends the indices to dst.
//
// Quads 0..vertsPerLoop-3 get two triangles each, then a seam pair closes the
// cross-section. Indices never wrap past the second ring. The caller keeps
// base+2*vertsPerLoop within uint32; Settings.Validate enforces that for
// sessions through MaxSegmentVertices.
func AppendTriangles(dst []uint32, base uint32, vertsPerLoop int) []uint32 {
	n := uint32(vertsPerLoop)
	v := base
	for i := 0; i < vertsPerLoop-2; i++ {
		dst = append(dst,
			v, v+n, v+n+1,
			v, v+n+1, v+1,
		)
		v++
	}

	// seam
	dst = append(dst,
		v, v+n, v+1,
		v, v+1, base+n+1,
	)
	return dst
}

// IndicesPerStitch is the number of indices AppendTriangles adds per ring pair.
func IndicesPerStitch(vertsPerLoop int) int {
	return (vertsPerLoop - 1) * 6
}
