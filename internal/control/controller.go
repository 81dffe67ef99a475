// Package control maps user commands onto a tube session and the avatar it
// follows.
package control

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tubular/internal/avatar"
	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/internal/tube"
	"github.com/Faultbox/tubular/pkg/math"
)

// ErrUnknownCommand is returned by Dispatch for commands it cannot handle.
var ErrUnknownCommand = errors.New("unknown command")

// Session is the part of *tube.Session the controller drives.
type Session interface {
	Start(radius float32, material tube.Material) error
	Advance(position math.Vec3)
	Close()
	ClearAll()
	ClearAt(index int) error
	State() tube.State
	CompletedRuns() []*tube.Run
}

// Mover is the avatar being steered.
type Mover interface {
	Update(dt float32, in avatar.Input)
	Jump() bool
	Position() math.Vec3
}

// CuePlayer gives feedback for session events.
type CuePlayer interface {
	Play(e tube.Event)
}

// Option configures a Controller.
type Option func(*Controller)

// WithTube sets the radius and material new tubes are started with.
func WithTube(radius float32, material tube.Material) Option {
	return func(c *Controller) {
		c.radius = radius
		c.material = material
	}
}

// WithCues forwards session events to p.
func WithCues(p CuePlayer) Option {
	return func(c *Controller) { c.cues = p }
}

// Controller turns commands into session and avatar calls.
type Controller struct {
	session  Session
	mover    Mover
	cues     CuePlayer
	radius   float32
	material tube.Material
	log      *zap.Logger
}

// New creates a controller with the default tube radius and material.
func New(session Session, mover Mover, opts ...Option) *Controller {
	c := &Controller{
		session:  session,
		mover:    mover,
		radius:   tube.DefaultRadius,
		material: tube.DefaultMaterial,
		log:      logger.Named("control"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dispatch executes a one-shot command. Movement commands are ignored here;
// they take effect through Tick while held. Capture commands are ignored too.
func (c *Controller) Dispatch(cmd Command) error {
	c.log.Debug("dispatch", zap.Stringer("command", cmd))

	switch cmd {
	case StartTube:
		if err := c.session.Start(c.radius, c.material); err != nil {
			return fmt.Errorf("start tube: %w", err)
		}
	case CloseTube:
		c.session.Close()
	case ClearAll:
		c.session.ClearAll()
	case ClearLast:
		return c.clearLast()
	case Jump:
		c.mover.Jump()
	case MoveForward, TurnLeft, TurnRight, Screenshot, ExportMesh:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCommand, int(cmd))
	}
	return nil
}

// clearLast removes the newest tube. An open tube is the newest, so it is
// closed and removed; otherwise the last completed run goes.
func (c *Controller) clearLast() error {
	n := len(c.session.CompletedRuns())
	if c.session.State() == tube.Active {
		return c.session.ClearAt(n)
	}
	if n == 0 {
		return nil
	}
	return c.session.ClearAt(n - 1)
}

// Tick moves the avatar by dt seconds using the held commands, then feeds its
// new position to the session.
func (c *Controller) Tick(dt float32, held Held) {
	c.mover.Update(dt, avatar.Input{
		Forward: held.Has(MoveForward),
		Left:    held.Has(TurnLeft),
		Right:   held.Has(TurnRight),
		Jump:    held.Has(Jump),
	})
	c.session.Advance(c.mover.Position())
}

// HandleEvent is a tube session listener. It logs the event and forwards it
// to the cue player.
func (c *Controller) HandleEvent(e tube.Event) {
	c.log.Info("tube event",
		zap.Stringer("kind", e.Kind),
		zap.Int("run", e.Run),
		zap.Int("segment", e.Segment),
		zap.Int("rings", e.Rings),
	)
	if c.cues != nil {
		c.cues.Play(e)
	}
}
