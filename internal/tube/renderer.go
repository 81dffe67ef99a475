package tube

import "github.com/Faultbox/tubular/pkg/math"

// Handle identifies a node owned by a Renderer. The zero Handle names nothing.
type Handle uint32

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// Material is the appearance applied to tube segments and end caps.
type Material struct {
	Name  string
	Color [4]float32
}

// DefaultMaterial is a neutral opaque material.
var DefaultMaterial = Material{Name: "default", Color: [4]float32{0.85, 0.85, 0.9, 1}}

// Anchor is the moving object a tube trails behind.
type Anchor interface {
	// Position returns the current world position.
	Position() math.Vec3
	// Forward returns the facing direction, used when the anchor has not moved.
	Forward() math.Vec3
	// Right returns the lateral axis used to orient rings.
	Right() math.Vec3
}

// FixedAnchor is an Anchor with explicitly set pose, for tools and tests.
type FixedAnchor struct {
	Pos math.Vec3
	Fwd math.Vec3
	Rt  math.Vec3
}

// Position implements Anchor.
func (a *FixedAnchor) Position() math.Vec3 { return a.Pos }

// Forward implements Anchor.
func (a *FixedAnchor) Forward() math.Vec3 { return a.Fwd }

// Right implements Anchor.
func (a *FixedAnchor) Right() math.Vec3 { return a.Rt }

// Renderer creates and destroys the renderable nodes a Session needs.
//
// Vertex, UV and index slices passed to UpdateSegment are reused by the
// session after the call returns; implementations must copy what they keep.
type Renderer interface {
	// NewGroup creates an empty parent node for one tube run.
	NewGroup(name string) Handle
	// NewSegment creates an empty dynamic mesh node.
	NewSegment(material Material) Handle
	// UpdateSegment replaces the mesh data of a segment.
	UpdateSegment(h Handle, vertices []math.Vec3, uvs []math.Vec2, indices []uint32)
	// FinalizeSegment marks a segment complete: normals are recalculated and
	// buffers optimized for static drawing.
	FinalizeSegment(h Handle)
	// NewSphere creates an end-cap sphere.
	NewSphere(center math.Vec3, radius float32, material Material) Handle
	// SetPosition moves a node.
	SetPosition(h Handle, position math.Vec3)
	// Attach parents child under parent.
	Attach(child, parent Handle)
	// Destroy releases a node and all of its children.
	Destroy(h Handle)
}
