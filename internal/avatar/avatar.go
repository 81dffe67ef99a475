// Package avatar moves the object a tube trails behind: forward motion, yaw
// turning and a two-phase jump.
package avatar

import (
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/internal/tube"
	"github.com/Faultbox/tubular/pkg/math"
)

// Phase is the vertical movement state.
type Phase int

const (
	PhaseGrounded Phase = iota
	PhaseAscending
	PhaseDescending
)

func (p Phase) String() string {
	switch p {
	case PhaseGrounded:
		return "grounded"
	case PhaseAscending:
		return "ascending"
	case PhaseDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// Config holds movement tuning.
type Config struct {
	MoveSpeed         float32       // units per second
	TurnSpeed         float32       // degrees per second
	JumpHeight        float32
	JumpDuration      time.Duration // each of the up and down phases
	JumpSpeedModifier float32       // forward speed multiplier at the top of a jump
	JumpCurve         Curve
}

// DefaultConfig returns the stock movement settings.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:         3,
		TurnSpeed:         60,
		JumpHeight:        3,
		JumpDuration:      time.Second,
		JumpSpeedModifier: 2,
		JumpCurve:         CurveSmooth,
	}
}

// Input is the set of movement keys held during a tick.
type Input struct {
	Forward bool
	Left    bool
	Right   bool
	Jump    bool
}

// Avatar is a tube.Anchor driven by per-tick input.
type Avatar struct {
	cfg Config

	position math.Vec3
	yaw      float32 // degrees, clockwise seen from above
	groundY  float32

	phase   Phase
	elapsed float32 // seconds spent in the current jump phase
	offset  float32 // vertical offset applied so far in the current phase

	log *zap.Logger
}

var _ tube.Anchor = (*Avatar)(nil)

// New places an avatar at position, facing +Z. The starting height is the
// ground level jumps return to.
func New(cfg Config, position math.Vec3) *Avatar {
	return &Avatar{
		cfg:      cfg,
		position: position,
		groundY:  position.Y,
		log:      logger.Named("avatar"),
	}
}

// Position implements tube.Anchor.
func (a *Avatar) Position() math.Vec3 { return a.position }

// Forward implements tube.Anchor.
func (a *Avatar) Forward() math.Vec3 {
	s, c := sincos(a.yaw)
	return math.Vec3{X: s, Z: c}
}

// Right implements tube.Anchor.
func (a *Avatar) Right() math.Vec3 {
	s, c := sincos(a.yaw)
	return math.Vec3{X: c, Z: -s}
}

// Yaw returns the heading in degrees.
func (a *Avatar) Yaw() float32 { return a.yaw }

// Phase returns the current jump phase.
func (a *Avatar) Phase() Phase { return a.phase }

// Grounded reports whether the avatar is not jumping.
func (a *Avatar) Grounded() bool { return a.phase == PhaseGrounded }

// Jump starts a jump. It returns false if one is already in progress.
func (a *Avatar) Jump() bool {
	if a.phase != PhaseGrounded {
		return false
	}
	a.enterPhase(PhaseAscending)
	return true
}

// Update advances the avatar by dt seconds.
func (a *Avatar) Update(dt float32, in Input) {
	if dt <= 0 {
		return
	}

	if in.Forward {
		a.move(a.cfg.MoveSpeed * dt)
	}
	if in.Left {
		a.yaw -= a.cfg.TurnSpeed * dt
	}
	if in.Right {
		a.yaw += a.cfg.TurnSpeed * dt
	}
	a.yaw = wrapDegrees(a.yaw)

	// Turning in place on the ground still moves, so the tube follows the turn
	if a.phase == PhaseGrounded && (in.Left || in.Right) && !in.Forward {
		a.move(a.cfg.MoveSpeed * dt)
	}

	if in.Jump {
		a.Jump()
	}

	a.stepJump(dt)
}

// stepJump advances the jump state machine by one tick.
func (a *Avatar) stepJump(dt float32) {
	if a.phase == PhaseGrounded {
		return
	}

	duration := float32(a.cfg.JumpDuration.Seconds())
	height := a.cfg.JumpHeight
	if a.phase == PhaseDescending {
		height = -height
	}

	target := height * a.cfg.JumpCurve.Eval(a.elapsed/duration)
	a.position.Y += target - a.offset
	a.offset = target

	a.elapsed += dt
	t := math.Clamp01(a.elapsed / duration)
	fast := a.cfg.MoveSpeed * a.cfg.JumpSpeedModifier
	speed := lerp(a.cfg.MoveSpeed, fast, t)
	if a.phase == PhaseDescending {
		speed = lerp(fast, a.cfg.MoveSpeed, t)
	}
	a.move(speed * dt)

	if a.elapsed <= duration {
		return
	}

	switch a.phase {
	case PhaseAscending:
		a.position.Y = a.groundY + a.cfg.JumpHeight
		a.enterPhase(PhaseDescending)
	case PhaseDescending:
		a.position.Y = a.groundY
		a.enterPhase(PhaseGrounded)
	}
}

func (a *Avatar) enterPhase(p Phase) {
	a.log.Debug("jump phase", zap.Stringer("from", a.phase), zap.Stringer("to", p))
	a.phase = p
	a.elapsed = 0
	a.offset = 0
}

func (a *Avatar) move(distance float32) {
	a.position = a.position.Add(a.Forward().Scale(distance))
}

func sincos(deg float32) (float32, float32) {
	s, c := gomath.Sincos(float64(deg) * gomath.Pi / 180)
	return float32(s), float32(c)
}

func wrapDegrees(deg float32) float32 {
	d := float32(gomath.Mod(float64(deg), 360))
	if d < 0 {
		d += 360
	}
	return d
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
