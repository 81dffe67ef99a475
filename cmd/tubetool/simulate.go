package main

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/tubular/internal/tube"
	"github.com/Faultbox/tubular/pkg/math"
)

// Path is a parametric curve the simulated anchor follows.
type Path int

const (
	PathLine Path = iota
	PathCircle
	PathHelix
	PathZigzag
)

var pathNames = []string{"line", "circle", "helix", "zigzag"}

func (p Path) String() string {
	if p < 0 || int(p) >= len(pathNames) {
		return "unknown"
	}
	return pathNames[p]
}

// ParsePath returns the path with the given name.
func ParsePath(name string) (Path, error) {
	for i, n := range pathNames {
		if n == name {
			return Path(i), nil
		}
	}
	return 0, fmt.Errorf("unknown path %q", name)
}

const (
	circleRadius  = 5
	helixRise     = 0.1 // height gained per unit of parameter
	zigzagWidth   = 2
	runSpacing    = 3 * circleRadius
	forwardSample = 0.01
)

// Point returns the position at parameter s. Every path starts at the origin
// heading along +Z and moves at least one unit per unit of s.
func (p Path) Point(s float32) math.Vec3 {
	switch p {
	case PathCircle, PathHelix:
		a := float64(s / circleRadius)
		pt := math.Vec3{
			X: circleRadius * float32(1-gomath.Cos(a)),
			Z: circleRadius * float32(gomath.Sin(a)),
		}
		if p == PathHelix {
			pt.Y = s * helixRise
		}
		return pt
	case PathZigzag:
		// Triangle wave: out to +width, back through zero to -width
		period := float32(4 * zigzagWidth)
		t := float32(gomath.Mod(float64(s), float64(period)))
		var x float32
		switch {
		case t < zigzagWidth:
			x = t
		case t < 3*zigzagWidth:
			x = 2*zigzagWidth - t
		default:
			x = t - period
		}
		return math.Vec3{X: x, Z: s}
	default:
		return math.Vec3{Z: s}
	}
}

// Heading returns the unit direction of travel at s.
func (p Path) Heading(s float32) math.Vec3 {
	d := p.Point(s + forwardSample).Sub(p.Point(s)).Normalize()
	if d.SqrLength() == 0 {
		return math.Forward
	}
	return d
}

// SimulateOptions describe a headless run.
type SimulateOptions struct {
	Settings tube.Settings
	Radius   float32
	Material tube.Material
	Path     Path
	Length   float32 // parameter distance per run
	Step     float32 // parameter distance per tick
	Runs     int
}

// SimulateResult summarizes a headless run.
type SimulateResult struct {
	Path      Path
	Ticks     int
	Rollovers int
	Runs      []*tube.Run
}

var errBadSimulation = errors.New("invalid simulation")

// Simulate draws opts.Runs tubes into r along the path, side by side on X.
func Simulate(r tube.Renderer, opts SimulateOptions) (*SimulateResult, error) {
	if !(opts.Step > 0) || !(opts.Length > 0) {
		return nil, fmt.Errorf("%w: step %v and length %v must be positive", errBadSimulation, opts.Step, opts.Length)
	}
	if opts.Runs < 1 {
		return nil, fmt.Errorf("%w: %d runs", errBadSimulation, opts.Runs)
	}

	result := &SimulateResult{Path: opts.Path}
	anchor := &tube.FixedAnchor{}
	session, err := tube.NewSession(opts.Settings, r, anchor, tube.WithListener(func(e tube.Event) {
		if e.Kind == tube.EventSegmentRolled {
			result.Rollovers++
		}
	}))
	if err != nil {
		return nil, err
	}

	// Tolerate float32 noise in Length/Step so 25/0.05 is 500 ticks, not 501
	ticks := int(gomath.Ceil(float64(opts.Length/opts.Step) - 1e-4))
	for run := 0; run < opts.Runs; run++ {
		offset := math.Vec3{X: float32(run) * runSpacing}
		place := func(s float32) {
			anchor.Pos = opts.Path.Point(s).Add(offset)
			anchor.Fwd = opts.Path.Heading(s)
			anchor.Rt = math.Up.Cross(anchor.Fwd).Normalize()
			if anchor.Rt.SqrLength() == 0 {
				anchor.Rt = math.Right
			}
		}

		place(0)
		if err := session.Start(opts.Radius, opts.Material); err != nil {
			return nil, err
		}
		for i := 1; i <= ticks; i++ {
			place(float32(i) * opts.Step)
			session.Advance(anchor.Pos)
			result.Ticks++
		}
		session.Close()
	}

	result.Runs = session.CompletedRuns()
	return result, nil
}
