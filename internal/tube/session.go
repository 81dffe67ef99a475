package tube

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/pkg/math"
)

// State is the session lifecycle state.
type State int

const (
	// Idle means no tube run is open.
	Idle State = iota
	// Active means a run and one of its segments are open.
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Option configures a Session.
type Option func(*Session)

// WithListener registers a callback for lifecycle events.
func WithListener(fn func(Event)) Option {
	return func(s *Session) { s.listener = fn }
}

// WithLogger replaces the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Progress describes the open segment of the active run.
type Progress struct {
	Segment       int     // 1-based index of the open segment
	SegmentLength float32 // arc length accumulated in the open segment
	Loops         int     // rings in the open segment, seed ring included
	Rings         int     // rings emitted by the run so far
}

// segment holds the mesh buffers of the open segment. The buffers are reused
// across rollovers.
type segment struct {
	handle   Handle
	vertices []math.Vec3
	uvs      []math.Vec2
	indices  []uint32
	length   float32
	loops    int
}

func (s *segment) reset() {
	s.handle = NoHandle
	s.vertices = s.vertices[:0]
	s.uvs = s.uvs[:0]
	s.indices = s.indices[:0]
	s.length = 0
	s.loops = 0
}

// Session extrudes tube runs behind an Anchor. It is driven by one Advance
// call per tick and is not safe for concurrent use.
type Session struct {
	settings Settings
	renderer Renderer
	anchor   Anchor
	listener func(Event)
	log      *zap.Logger

	template  []math.Vec4
	active    *Run // nil while idle
	seg       segment
	loopLimit int
	runs      []*Run
	started   int

	lastLoopPos math.Vec3
	prevPos     math.Vec3
}

// NewSession validates settings and returns an idle session.
func NewSession(settings Settings, renderer Renderer, anchor Anchor, opts ...Option) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if renderer == nil || anchor == nil {
		return nil, fmt.Errorf("%w: renderer and anchor are required", ErrInvalidConfiguration)
	}

	s := &Session{
		settings: settings,
		renderer: renderer,
		anchor:   anchor,
		log:      logger.Named("tube"),

		loopLimit: settings.loopLimit(),
	}
	for _, opt := range opts {
		opt(s)
	}

	rings := settings.ringCapacity()
	s.seg.vertices = make([]math.Vec3, 0, rings*settings.VertsPerLoop)
	s.seg.uvs = make([]math.Vec2, 0, rings*settings.VertsPerLoop)
	s.seg.indices = make([]uint32, 0, rings*IndicesPerStitch(settings.VertsPerLoop))

	return s, nil
}

// Settings returns the session configuration.
func (s *Session) Settings() Settings { return s.settings }

// State reports whether a run is open.
func (s *Session) State() State {
	if s.active != nil {
		return Active
	}
	return Idle
}

// Progress returns the open segment's counters. ok is false when idle.
func (s *Session) Progress() (p Progress, ok bool) {
	if s.active == nil {
		return Progress{}, false
	}
	return Progress{
		Segment:       len(s.active.segments),
		SegmentLength: s.seg.length,
		Loops:         s.seg.loops,
		Rings:         s.active.rings,
	}, true
}

// CompletedRuns returns the closed runs in completion order. The slice is a
// copy; the runs themselves are read-only.
func (s *Session) CompletedRuns() []*Run {
	return slices.Clone(s.runs)
}

// Start opens a new tube run at the anchor's position. It does nothing if a
// run is already open.
func (s *Session) Start(radius float32, material Material) error {
	if s.active != nil {
		return nil
	}
	if !(radius > 0) {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidConfiguration, radius)
	}

	pos := s.anchor.Position()
	s.prevPos = pos
	s.lastLoopPos = pos
	s.template = BuildLoopTemplate(s.settings.VertsPerLoop, radius)

	s.started++
	run := &Run{
		id:       s.started,
		material: material,
		radius:   radius,
	}
	run.root = s.renderer.NewGroup(fmt.Sprintf("tube-%d", run.id))
	run.frontCap = s.renderer.NewSphere(pos, radius, material)
	run.backCap = s.renderer.NewSphere(pos, radius, material)
	s.renderer.Attach(run.backCap, run.root)
	s.active = run

	s.openSegment()

	s.log.Debug("tube started",
		zap.Int("run", run.id),
		zap.Float32("radius", radius),
		zap.String("material", material.Name),
	)
	s.emit(Event{Kind: EventStarted, Run: run.id, Segment: 1})
	return nil
}

// Advance feeds the anchor's current position. A ring is emitted once the
// anchor has moved DistanceBetweenLoops away from the previous ring.
func (s *Session) Advance(position math.Vec3) {
	if s.active == nil {
		return
	}

	if position.Distance(s.lastLoopPos) >= s.settings.DistanceBetweenLoops {
		s.addLoop(position, true)
	}
	s.prevPos = position
	s.renderer.SetPosition(s.active.frontCap, position)
}

// Close emits a final ring at the current position, finalizes the open
// segment and moves the run to the completed list. It does nothing when idle.
func (s *Session) Close() {
	if s.active == nil {
		return
	}
	run := s.active

	s.addLoop(s.prevPos, false)
	s.finalizeSegment()
	s.renderer.SetPosition(run.frontCap, s.prevPos)
	s.renderer.Attach(run.frontCap, run.root)

	s.runs = append(s.runs, run)
	s.active = nil

	s.log.Debug("tube closed",
		zap.Int("run", run.id),
		zap.Int("segments", len(run.segments)),
		zap.Int("rings", run.rings),
		zap.Float32("length", run.length),
	)
	s.emit(Event{Kind: EventClosed, Run: run.id, Segment: len(run.segments), Rings: run.rings})
}

// ClearAll closes the open run, if any, then destroys every completed run.
func (s *Session) ClearAll() {
	s.Close()

	if len(s.runs) == 0 {
		return
	}
	count := len(s.runs)
	for _, run := range s.runs {
		s.renderer.Destroy(run.root)
	}
	s.runs = nil

	s.log.Info("tubes cleared", zap.Int("runs", count))
	s.emit(Event{Kind: EventCleared, Rings: count})
}

// ClearAt destroys the completed run at index.
//
// An index equal to the number of completed runs first closes the open run,
// which then occupies that index. Any other index outside the completed list
// returns ErrIndexOutOfRange.
func (s *Session) ClearAt(index int) error {
	if index == len(s.runs) {
		s.Close()
	}
	if index < 0 || index >= len(s.runs) {
		return fmt.Errorf("%w: index %d with %d completed runs", ErrIndexOutOfRange, index, len(s.runs))
	}

	run := s.runs[index]
	s.renderer.Destroy(run.root)
	s.runs = slices.Delete(s.runs, index, index+1)

	s.log.Debug("tube cleared", zap.Int("run", run.id), zap.Int("index", index))
	s.emit(Event{Kind: EventCleared, Run: run.id, Segment: len(run.segments), Rings: 1})
	return nil
}

// addLoop emits one ring at position. When rollover is allowed and the
// segment has used up its length budget, the segment is finalized and a new
// one is opened, seeded with a copy of the same ring.
func (s *Session) addLoop(position math.Vec3, rollover bool) {
	moved := position.Distance(s.lastLoopPos)
	s.seg.length += moved
	s.active.length += moved
	s.lastLoopPos = position

	frame := NewFrame(s.prevPos, position, s.anchor.Forward(), s.anchor.Right())
	s.appendRing(frame)
	s.active.rings++
	s.upload()

	if !rollover || (s.seg.length < s.settings.SegmentLength && s.seg.loops < s.loopLimit) {
		return
	}

	s.finalizeSegment()
	s.openSegment()
	s.appendRing(frame)
	s.upload()

	s.log.Debug("tube segment rolled over",
		zap.Int("run", s.active.id),
		zap.Int("segment", len(s.active.segments)),
	)
	s.emit(Event{
		Kind:    EventSegmentRolled,
		Run:     s.active.id,
		Segment: len(s.active.segments),
		Rings:   s.active.rings,
	})
}

// appendRing adds one ring's vertices and UVs to the open segment and stitches
// it to the previous ring of the same segment.
func (s *Session) appendRing(frame Frame) {
	n := s.settings.VertsPerLoop
	base := uint32(len(s.seg.vertices))

	s.seg.vertices = OrientRing(s.template, frame, s.seg.vertices)
	v := math.Clamp01(s.seg.length / s.settings.SegmentLength)
	s.seg.uvs = RingUVs(s.seg.uvs, n, v)

	if s.seg.loops > 0 {
		s.seg.indices = AppendTriangles(s.seg.indices, base-uint32(n), n)
	}
	s.seg.loops++
}

func (s *Session) openSegment() {
	s.seg.reset()
	s.seg.handle = s.renderer.NewSegment(s.active.material)
	s.active.segments = append(s.active.segments, s.seg.handle)
}

func (s *Session) finalizeSegment() {
	if s.seg.handle == NoHandle {
		return
	}
	s.renderer.FinalizeSegment(s.seg.handle)
	s.renderer.Attach(s.seg.handle, s.active.root)
	s.seg.handle = NoHandle
}

func (s *Session) upload() {
	s.renderer.UpdateSegment(s.seg.handle, s.seg.vertices, s.seg.uvs, s.seg.indices)
}

func (s *Session) emit(e Event) {
	if s.listener != nil {
		s.listener(e)
	}
}
