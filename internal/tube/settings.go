package tube

import (
	"fmt"
	stdmath "math"
)

// Defaults used when no configuration is supplied.
const (
	DefaultVertsPerLoop         = 25
	DefaultSegmentLength        = 10
	DefaultDistanceBetweenLoops = 0.1
	DefaultRadius               = 0.5
)

// Settings are fixed for the lifetime of a Session.
type Settings struct {
	// VertsPerLoop is the number of template points per ring. The first and
	// last point coincide, so a ring has VertsPerLoop-1 distinct vertices.
	VertsPerLoop int
	// SegmentLength is the arc length after which a segment is finalized and
	// a new one opened.
	SegmentLength float32
	// DistanceBetweenLoops is the minimum movement since the last ring before
	// another ring is emitted.
	DistanceBetweenLoops float32
}

// DefaultSettings returns the stock tube configuration.
func DefaultSettings() Settings {
	return Settings{
		VertsPerLoop:         DefaultVertsPerLoop,
		SegmentLength:        DefaultSegmentLength,
		DistanceBetweenLoops: DefaultDistanceBetweenLoops,
	}
}

// Validate reports settings that cannot produce a closed tube.
func (s Settings) Validate() error {
	if s.VertsPerLoop < 3 {
		return fmt.Errorf("%w: verts per loop is %d, need at least 3", ErrInvalidConfiguration, s.VertsPerLoop)
	}
	if !(s.SegmentLength > 0) {
		return fmt.Errorf("%w: segment length %v must be positive", ErrInvalidConfiguration, s.SegmentLength)
	}
	if !(s.DistanceBetweenLoops > 0) {
		return fmt.Errorf("%w: distance between loops %v must be positive", ErrInvalidConfiguration, s.DistanceBetweenLoops)
	}
	if v := s.maxRings() * float64(s.VertsPerLoop); !(v <= float64(MaxSegmentVertices)) {
		return fmt.Errorf("%w: a segment could hold %.0f vertices, limit is %d",
			ErrInvalidConfiguration, v, MaxSegmentVertices)
	}
	return nil
}

// MaxSegmentVertices bounds the vertices of one segment so uint32 indices
// never wrap.
const MaxSegmentVertices uint32 = stdmath.MaxUint32

// preallocRings caps the rings reserved up front. Longer segments grow their
// buffers on demand.
const preallocRings = 256

// maxRings bounds the rings of one segment. A segment normally holds a seed
// ring, one ring per DistanceBetweenLoops of length, the ring that crosses
// SegmentLength and the forced ring added on Close. The bound doubles the
// per-length term so float32 rounding never reaches it.
func (s Settings) maxRings() float64 {
	return 2*float64(s.SegmentLength)/float64(s.DistanceBetweenLoops) + 3
}

// loopLimit is the ring count at which an open segment rolls over even if
// its accumulated length has not reached SegmentLength. That only happens
// when float32 accumulation stalls on very long segments. One ring is left
// for Close. Call it on validated settings.
func (s Settings) loopLimit() int {
	return int(s.maxRings()) - 1
}

// ringCapacity is the number of rings preallocated per segment.
func (s Settings) ringCapacity() int {
	return min(int(s.maxRings()), preallocRings)
}
