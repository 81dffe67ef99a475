// Package config handles application configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/tubular/internal/avatar"
	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/internal/tube"
)

// Config holds all application settings.
type Config struct {
	Tube     TubeConfig     `yaml:"tube"`
	Avatar   AvatarConfig   `yaml:"avatar"`
	Controls ControlsConfig `yaml:"controls"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// TubeConfig holds tube generation settings.
type TubeConfig struct {
	VertsPerLoop         int        `yaml:"verts_per_loop"`
	SegmentLength        float32    `yaml:"segment_length"`
	DistanceBetweenLoops float32    `yaml:"distance_between_loops"`
	Radius               float32    `yaml:"radius"`
	Color                [4]float32 `yaml:"color,flow"`
	AutoStart            bool       `yaml:"auto_start"` // Open a tube as soon as the client starts
}

// Settings converts the geometry fields for a tube.Session.
func (t TubeConfig) Settings() tube.Settings {
	return tube.Settings{
		VertsPerLoop:         t.VertsPerLoop,
		SegmentLength:        t.SegmentLength,
		DistanceBetweenLoops: t.DistanceBetweenLoops,
	}
}

// Material returns the material new tubes are started with.
func (t TubeConfig) Material() tube.Material {
	return tube.Material{Name: "tube", Color: t.Color}
}

// AvatarConfig holds movement settings for the avatar the tube follows.
type AvatarConfig struct {
	MoveSpeed         float32       `yaml:"move_speed"` // units per second
	TurnSpeed         float32       `yaml:"turn_speed"` // degrees per second
	JumpHeight        float32       `yaml:"jump_height"`
	JumpDuration      time.Duration `yaml:"jump_duration"` // per phase, up and down
	JumpSpeedModifier float32       `yaml:"jump_speed_modifier"`
	JumpCurve         string        `yaml:"jump_curve"`
}

// Movement converts the section to avatar settings.
func (a AvatarConfig) Movement() (avatar.Config, error) {
	curve, err := avatar.ParseCurve(a.JumpCurve)
	if err != nil {
		return avatar.Config{}, err
	}
	return avatar.Config{
		MoveSpeed:         a.MoveSpeed,
		TurnSpeed:         a.TurnSpeed,
		JumpHeight:        a.JumpHeight,
		JumpDuration:      a.JumpDuration,
		JumpSpeedModifier: a.JumpSpeedModifier,
		JumpCurve:         curve,
	}, nil
}

// ControlsConfig maps actions to SDL key names.
type ControlsConfig struct {
	Forward    string `yaml:"forward"`
	Left       string `yaml:"left"`
	Right      string `yaml:"right"`
	Jump       string `yaml:"jump"`
	StartTube  string `yaml:"start_tube"`
	CloseTube  string `yaml:"close_tube"`
	ClearAll   string `yaml:"clear_all"`
	ClearLast  string `yaml:"clear_last"`
	Screenshot string `yaml:"screenshot"`
	Export     string `yaml:"export"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	MSAA       int        `yaml:"msaa"`
	FPSLimit   int        `yaml:"fps_limit"`
	Background [3]float32 `yaml:"background,flow"`
	ShowGrid   bool       `yaml:"show_grid"`
	CaptureDir string     `yaml:"capture_dir"` // screenshots and mesh exports

	// Screenshot format: png or bmp
	CaptureFormat string `yaml:"capture_format"`

	// Sun position in degrees
	SunLongitude float32 `yaml:"sun_longitude"`
	SunLatitude  float32 `yaml:"sun_latitude"`
}

// AudioConfig holds audio cue settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	CueVolume    float32 `yaml:"cue_volume"`
	Muted        bool    `yaml:"muted"`

	// CueFiles replaces built-in cues with WAV files, keyed by event
	// name (started, segment-rolled, closed, cleared).
	CueFiles map[string]string `yaml:"cue_files,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	FileFormat string `yaml:"file_format"` // text or json
}

// File returns rotation settings for the log file, or a zero FileConfig
// when file logging is off.
func (l LoggingConfig) File() logger.FileConfig {
	if l.LogFile == "" {
		return logger.FileConfig{}
	}
	fc := logger.DefaultFileConfig(l.LogFile)
	fc.JSON = l.FileFormat == "json"
	return fc
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tube: TubeConfig{
			VertsPerLoop:         tube.DefaultVertsPerLoop,
			SegmentLength:        tube.DefaultSegmentLength,
			DistanceBetweenLoops: tube.DefaultDistanceBetweenLoops,
			Radius:               tube.DefaultRadius,
			Color:                tube.DefaultMaterial.Color,
			AutoStart:            true,
		},
		Avatar: AvatarConfig{
			MoveSpeed:         3,
			TurnSpeed:         60,
			JumpHeight:        3,
			JumpDuration:      time.Second,
			JumpSpeedModifier: 2,
			JumpCurve:         "smooth",
		},
		Controls: ControlsConfig{
			Forward:    "Up",
			Left:       "Left",
			Right:      "Right",
			Jump:       "Space",
			StartTube:  "Right Alt",
			CloseTube:  "Right Ctrl",
			ClearAll:   "Delete",
			ClearLast:  "Backspace",
			Screenshot: "F12",
			Export:     "F5",
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
			FPSLimit:   0,
			Background: [3]float32{0.15, 0.15, 0.2},
			ShowGrid:   true,
			CaptureDir: "captures",

			CaptureFormat: "png",

			SunLongitude: 200,
			SunLatitude:  60,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			CueVolume:    0.5,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			FileFormat: "text",
		},
	}
}
