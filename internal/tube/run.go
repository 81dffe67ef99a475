package tube

import "slices"

// Run is a closed tube: one or more segments plus two end caps, all parented
// under a single group node. Runs are immutable once closed.
type Run struct {
	id       int
	root     Handle
	segments []Handle
	backCap  Handle
	frontCap Handle
	material Material
	radius   float32
	rings    int
	length   float32
}

// ID is the run's sequence number within its session, starting at 1.
func (r *Run) ID() int { return r.id }

// Root is the group node owning every other handle of the run.
func (r *Run) Root() Handle { return r.root }

// Segments returns the segment handles in creation order.
func (r *Run) Segments() []Handle { return slices.Clone(r.segments) }

// BackCap is the sphere placed where the run started.
func (r *Run) BackCap() Handle { return r.backCap }

// FrontCap is the sphere that followed the anchor until the run closed.
func (r *Run) FrontCap() Handle { return r.frontCap }

// Material is the appearance the run was started with.
func (r *Run) Material() Material { return r.material }

// Radius is the tube radius.
func (r *Run) Radius() float32 { return r.radius }

// Rings is the number of rings emitted, excluding the copies that seed
// rolled-over segments.
func (r *Run) Rings() int { return r.rings }

// Length is the arc length covered by the run's rings.
func (r *Run) Length() float32 { return r.length }
