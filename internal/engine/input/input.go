// Package input turns SDL2 events into control commands.
package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/tubular/internal/control"
)

// Bindings maps SDL scancodes to commands.
type Bindings map[sdl.Scancode]control.Command

// NewBindings resolves key names from a keymap to scancodes.
func NewBindings(km control.Keymap) (Bindings, error) {
	b := make(Bindings, len(km))
	for name, cmd := range km {
		sc := sdl.GetScancodeFromName(name)
		if sc == sdl.SCANCODE_UNKNOWN {
			return nil, fmt.Errorf("unknown key %q for %s", name, cmd)
		}
		b[sc] = cmd
	}
	return b, nil
}

// Frame is the input collected during one poll.
type Frame struct {
	Quit    bool
	Resized bool
	Width   int
	Height  int
	Zoom    float32 // mouse wheel steps, positive away from the user

	// Pressed lists commands whose key went down this frame, in order.
	// Key repeat is ignored.
	Pressed []control.Command
}

// Input tracks key state across frames.
type Input struct {
	bindings Bindings
	held     control.Held
	frame    Frame
}

// New creates a new input handler.
func New(b Bindings) *Input {
	return &Input{
		bindings: b,
		frame:    Frame{Pressed: make([]control.Command, 0, 8)},
	}
}

// Held returns the commands whose keys are currently down.
func (i *Input) Held() control.Held {
	return i.held
}

// Poll drains SDL events. The returned frame is reused by the next call.
func (i *Input) Poll() *Frame {
	i.frame = Frame{Pressed: i.frame.Pressed[:0]}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.frame.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.frame.Resized = true
				i.frame.Width = int(e.Data1)
				i.frame.Height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE && e.Type == sdl.KEYDOWN {
				i.frame.Quit = true
				continue
			}
			cmd, ok := i.bindings[e.Keysym.Scancode]
			if !ok {
				continue
			}
			down := e.Type == sdl.KEYDOWN
			i.held = i.held.Set(cmd, down)
			if down && e.Repeat == 0 {
				i.frame.Pressed = append(i.frame.Pressed, cmd)
			}

		case *sdl.MouseWheelEvent:
			i.frame.Zoom += float32(e.Y)
		}
	}

	return &i.frame
}
