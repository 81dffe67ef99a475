package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tubular/internal/avatar"
	"github.com/Faultbox/tubular/internal/tube"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Validate checks every section and reports all problems found.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Tube.Settings().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tube: %w", err))
	}
	if !(c.Tube.Radius > 0) {
		errs = append(errs, fmt.Errorf("%w: tube.radius %v must be positive", ErrInvalid, c.Tube.Radius))
	}
	for i, v := range c.Tube.Color {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: tube.color[%d] %v outside [0,1]", ErrInvalid, i, v))
		}
	}

	if !(c.Avatar.MoveSpeed > 0) {
		errs = append(errs, fmt.Errorf("%w: avatar.move_speed %v must be positive", ErrInvalid, c.Avatar.MoveSpeed))
	}
	if c.Avatar.TurnSpeed < 0 {
		errs = append(errs, fmt.Errorf("%w: avatar.turn_speed %v is negative", ErrInvalid, c.Avatar.TurnSpeed))
	}
	if c.Avatar.JumpHeight < 0 {
		errs = append(errs, fmt.Errorf("%w: avatar.jump_height %v is negative", ErrInvalid, c.Avatar.JumpHeight))
	}
	if c.Avatar.JumpDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: avatar.jump_duration %v must be positive", ErrInvalid, c.Avatar.JumpDuration))
	}
	if _, err := avatar.ParseCurve(c.Avatar.JumpCurve); err != nil {
		errs = append(errs, fmt.Errorf("%w: avatar.jump_curve: %v", ErrInvalid, err))
	}

	seen := make(map[string]string)
	for action, key := range c.Controls.Bindings() {
		if key == "" {
			errs = append(errs, fmt.Errorf("%w: controls.%s has no key", ErrInvalid, action))
			continue
		}
		if other, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalid, key, other, action))
			continue
		}
		seen[key] = action
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height))
	}
	if f := c.Graphics.CaptureFormat; f != "png" && f != "bmp" {
		errs = append(errs, fmt.Errorf("%w: graphics.capture_format %q, want png or bmp", ErrInvalid, f))
	}
	if f := c.Logging.FileFormat; f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("%w: logging.file_format %q, want text or json", ErrInvalid, f))
	}
	switch c.Graphics.MSAA {
	case 0, 2, 4, 8, 16:
	default:
		errs = append(errs, fmt.Errorf("%w: graphics.msaa %d, want 0, 2, 4, 8 or 16", ErrInvalid, c.Graphics.MSAA))
	}
	if c.Graphics.SunLatitude < -90 || c.Graphics.SunLatitude > 90 {
		errs = append(errs, fmt.Errorf("%w: graphics.sun_latitude %v outside [-90,90]", ErrInvalid, c.Graphics.SunLatitude))
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 || c.Audio.CueVolume < 0 || c.Audio.CueVolume > 1 {
		errs = append(errs, fmt.Errorf("%w: audio volumes must be within [0,1]", ErrInvalid))
	}
	for name := range c.Audio.CueFiles {
		if _, ok := tube.ParseEventKind(name); !ok {
			errs = append(errs, fmt.Errorf("%w: audio.cue_files: unknown event %q", ErrInvalid, name))
		}
	}

	return errors.Join(errs...)
}

// Bindings returns the configured key name keyed by action.
func (c ControlsConfig) Bindings() map[string]string {
	return map[string]string{
		"forward":    c.Forward,
		"left":       c.Left,
		"right":      c.Right,
		"jump":       c.Jump,
		"start_tube": c.StartTube,
		"close_tube": c.CloseTube,
		"clear_all":  c.ClearAll,
		"clear_last": c.ClearLast,
		"screenshot": c.Screenshot,
		"export":     c.Export,
	}
}
