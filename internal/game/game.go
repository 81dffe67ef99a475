// Package game implements the interactive main loop: an avatar drawing tubes
// in an SDL window.
package game

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tubular/internal/avatar"
	"github.com/Faultbox/tubular/internal/config"
	"github.com/Faultbox/tubular/internal/control"
	"github.com/Faultbox/tubular/internal/engine/audio"
	"github.com/Faultbox/tubular/internal/engine/camera"
	"github.com/Faultbox/tubular/internal/engine/debug"
	"github.com/Faultbox/tubular/internal/engine/input"
	"github.com/Faultbox/tubular/internal/engine/lighting"
	"github.com/Faultbox/tubular/internal/engine/renderer"
	"github.com/Faultbox/tubular/internal/engine/scene"
	"github.com/Faultbox/tubular/internal/engine/window"
	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/internal/tube"
	"github.com/Faultbox/tubular/pkg/math"
)

const title = "Tubular"

// maxFrameTime caps dt so a stall does not fling the avatar across the map.
const maxFrameTime = 0.1

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	audio    *audio.Manager
	input    *input.Input
	camera   *camera.FollowCamera
	capture  *debug.Capture

	graph   *scene.Graph
	avatar  *avatar.Avatar
	session *tube.Session
	ctrl    *control.Controller

	screenshotPending bool
}

// New creates a new game instance.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{cfg: cfg}

	// Resolve everything that can fail without a window first
	movement, err := cfg.Avatar.Movement()
	if err != nil {
		return nil, fmt.Errorf("avatar: %w", err)
	}
	keymap, err := control.NewKeymap(cfg.Controls)
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	g.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Background: cfg.Graphics.Background,
		ShowGrid:   cfg.Graphics.ShowGrid,
		LightDir:   lighting.SunDirection(cfg.Graphics.SunLongitude, cfg.Graphics.SunLatitude),
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.renderer.Resize(g.window.DrawableSize())

	// Scancodes are only valid once SDL is up
	bindings, err := input.NewBindings(keymap)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("controls: %w", err)
	}
	g.input = input.New(bindings)

	g.audio = g.initAudio()
	g.camera = camera.NewFollowCamera()
	g.capture = debug.NewCapture(cfg.Graphics.CaptureDir, "tubular")
	if err := g.capture.SetFormat(cfg.Graphics.CaptureFormat); err != nil {
		logger.Warn("screenshots fall back to png", zap.Error(err))
	}
	g.graph = scene.New()
	g.avatar = avatar.New(movement, math.Vec3{Y: cfg.Tube.Radius})

	g.session, err = tube.NewSession(cfg.Tube.Settings(), g.graph, g.avatar,
		tube.WithListener(func(e tube.Event) { g.ctrl.HandleEvent(e) }),
	)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("tube session: %w", err)
	}
	g.ctrl = control.New(g.session, g.avatar,
		control.WithTube(cfg.Tube.Radius, cfg.Tube.Material()),
		control.WithCues(g.audio),
	)

	logger.Info("game initialized successfully")
	return g, nil
}

// initAudio starts the cue player. Audio is optional: failures are logged
// and the game runs silent.
func (g *Game) initAudio() *audio.Manager {
	a := audio.New()
	a.SetMasterVolume(float64(g.cfg.Audio.MasterVolume))
	a.SetCueVolume(float64(g.cfg.Audio.CueVolume))
	a.SetMuted(g.cfg.Audio.Muted)

	for name, path := range g.cfg.Audio.CueFiles {
		kind, ok := tube.ParseEventKind(name)
		if !ok {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("cue file unreadable", zap.String("event", name), zap.Error(err))
			continue
		}
		if err := a.LoadCue(kind, data); err != nil {
			logger.Warn("cue file rejected", zap.String("path", path), zap.Error(err))
		}
	}

	if err := a.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}
	return a
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	if g.cfg.Tube.AutoStart {
		if err := g.ctrl.Dispatch(control.StartTube); err != nil {
			return fmt.Errorf("auto start: %w", err)
		}
	}

	var minFrame time.Duration
	if g.cfg.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	}

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for g.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart
		if dt > maxFrameTime {
			dt = maxFrameTime
		}

		// 1. Process input
		frame := g.input.Poll()
		if frame.Quit {
			g.running = false
			break
		}
		if frame.Resized {
			g.renderer.Resize(g.window.DrawableSize())
		}
		if frame.Zoom != 0 {
			g.camera.HandleZoom(frame.Zoom)
		}
		for _, cmd := range frame.Pressed {
			switch cmd {
			case control.Screenshot:
				g.screenshotPending = true
				continue
			case control.ExportMesh:
				g.exportMesh()
				continue
			}
			if err := g.ctrl.Dispatch(cmd); err != nil {
				logger.Warn("command failed", zap.Stringer("command", cmd), zap.Error(err))
			}
		}

		// 2. Update game state
		g.update(float32(dt))

		// 3. Render
		g.render()
		if g.screenshotPending {
			g.screenshotPending = false
			g.screenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(g.status(frameCount))
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if rest := minFrame - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// status is the window title: frame rate, finished tubes and the one being drawn.
func (g *Game) status(fps int) string {
	text := fmt.Sprintf("%s - %d fps - %d tubes", title, fps, len(g.session.CompletedRuns()))
	if p, ok := g.session.Progress(); ok {
		text += fmt.Sprintf(" - drawing segment %d (%.1f / %.0f)", p.Segment, p.SegmentLength, g.session.Settings().SegmentLength)
	}
	return text
}

func (g *Game) update(dt float32) {
	g.ctrl.Tick(dt, g.input.Held())
	g.camera.Update(dt, g.avatar.Position(), g.avatar.Forward())
}

func (g *Game) render() {
	g.renderer.Render(g.graph, renderer.View{
		View:       g.camera.ViewMatrix(),
		Projection: g.camera.ProjectionMatrix(g.renderer.Aspect()),
		Eye:        g.camera.Position(),
	})
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.capture.SavePixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) exportMesh() {
	f, err := g.capture.Create("obj")
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		return
	}
	n, err := g.graph.ExportOBJ(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Error("export failed", zap.String("path", f.Name()), zap.Error(err))
		return
	}
	logger.Info("mesh exported", zap.String("path", f.Name()), zap.Int("objects", n))
}
