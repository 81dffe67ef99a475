// Package audio plays short synthesized cues for tube lifecycle events.
package audio

import (
	"bytes"
	"fmt"
	"io"
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/internal/tube"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// tone is one step of a synthesized cue.
type tone struct {
	freq     float64
	duration time.Duration
}

// cueTones are the built-in sounds per event kind.
var cueTones = map[tube.EventKind][]tone{
	tube.EventStarted:       {{440, 70 * time.Millisecond}, {660, 90 * time.Millisecond}},
	tube.EventSegmentRolled: {{880, 40 * time.Millisecond}},
	tube.EventClosed:        {{660, 70 * time.Millisecond}, {440, 90 * time.Millisecond}},
	tube.EventCleared:       {{330, 60 * time.Millisecond}, {220, 140 * time.Millisecond}},
}

// Manager handles cue playback.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	cueVolume    float64
	muted        bool

	// Mixer for concurrent cues
	mixer *beep.Mixer

	// WAV overrides per event kind
	custom map[tube.EventKind]*beep.Buffer

	log *zap.Logger
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		cueVolume:    0.5,
		mixer:        &beep.Mixer{},
		custom:       make(map[tube.EventKind]*beep.Buffer),
		log:          logger.Named("audio"),
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	// Start cue mixer
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetCueVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetCueVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cueVolume = clamp(vol, 0, 1)
}

// SetMuted silences or restores cues.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetCueVolume returns the cue volume.
func (m *Manager) GetCueVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cueVolume
}

// IsMuted reports whether cues are silenced.
func (m *Manager) IsMuted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// volumeToDb converts a 0-1 volume to decibel scale.
// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * gomath.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LoadCue replaces the built-in sound for kind with WAV data.
func (m *Manager) LoadCue(kind tube.EventKind, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Resample if needed
	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(resampled)
	m.custom[kind] = buf
	return nil
}

// Play implements control.CuePlayer. It does nothing until Init succeeds.
func (m *Manager) Play(e tube.Event) {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.cueVolume
	muted := m.muted
	m.mu.RUnlock()

	if !initialized || muted || vol <= 0 {
		return
	}

	s, err := m.cue(e.Kind)
	if err != nil {
		m.log.Warn("cue unavailable", zap.Stringer("kind", e.Kind), zap.Error(err))
		return
	}

	// Apply volume
	volStreamer := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToDb(vol),
	}

	// Add to mixer (concurrent playback)
	speaker.Lock()
	m.mixer.Add(volStreamer)
	speaker.Unlock()
}

// cue returns a fresh streamer for kind, preferring a loaded WAV.
func (m *Manager) cue(kind tube.EventKind) (beep.Streamer, error) {
	m.mu.RLock()
	buf, ok := m.custom[kind]
	sr := m.sampleRate
	m.mu.RUnlock()

	if ok {
		return buf.Streamer(0, buf.Len()), nil
	}
	tones, ok := cueTones[kind]
	if !ok {
		return nil, fmt.Errorf("no cue for %v", kind)
	}
	return synthesize(sr, tones)
}

// synthesize chains sine tones into one streamer.
func synthesize(sr beep.SampleRate, tones []tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sr, t.freq)
		if err != nil {
			return nil, fmt.Errorf("sine %v Hz: %w", t.freq, err)
		}
		parts = append(parts, beep.Take(sr.N(t.duration), sine))
	}
	return beep.Seq(parts...), nil
}
