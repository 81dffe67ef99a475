package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and the ground grid")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMute       = flag.Bool("mute", false, "Disable audio cues")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file")

	// Tube shape
	flagRadius      = flag.Float64("radius", 0, "Tube radius")
	flagVerts       = flag.Int("verts", 0, "Points per tube ring")
	flagSegment     = flag.Float64("segment", 0, "Tube length per mesh segment")
	flagSpacing     = flag.Float64("spacing", 0, "Distance between tube rings")
	flagNoAutoStart = flag.Bool("no-autostart", false, "Wait for the start key before drawing")
	flagCaptureDir  = flag.String("capture-dir", "", "Directory for screenshots and mesh exports")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. Zero values leave the
// config untouched.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowGrid = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}

	tc := &cfg.Tube
	if *flagRadius > 0 {
		tc.Radius = float32(*flagRadius)
	}
	if *flagVerts > 0 {
		tc.VertsPerLoop = *flagVerts
	}
	if *flagSegment > 0 {
		tc.SegmentLength = float32(*flagSegment)
	}
	if *flagSpacing > 0 {
		tc.DistanceBetweenLoops = float32(*flagSpacing)
	}
	if *flagNoAutoStart {
		tc.AutoStart = false
	}
	if *flagCaptureDir != "" {
		cfg.Graphics.CaptureDir = *flagCaptureDir
	}
}
