package control

import (
	"testing"

	"github.com/Faultbox/tubular/internal/config"
)

func TestNewKeymap(t *testing.T) {
	km, err := NewKeymap(config.Default().Controls)
	if err != nil {
		t.Fatalf("NewKeymap() error = %v", err)
	}

	tests := []struct {
		key  string
		want Command
	}{
		{"Up", MoveForward},
		{"Left", TurnLeft},
		{"Right", TurnRight},
		{"Space", Jump},
		{"Right Alt", StartTube},
		{"Right Ctrl", CloseTube},
		{"Delete", ClearAll},
		{"Backspace", ClearLast},
		{"F12", Screenshot},
		{"F5", ExportMesh},
	}
	for _, tt := range tests {
		if got, ok := km[tt.key]; !ok || got != tt.want {
			t.Errorf("km[%q] = %v, %v, want %v", tt.key, got, ok, tt.want)
		}
	}
	if len(km) != int(commandCount) {
		t.Errorf("keymap has %d entries, want %d", len(km), commandCount)
	}
}

func TestNewKeymapErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.ControlsConfig)
	}{
		{"empty key", func(c *config.ControlsConfig) { c.Jump = "" }},
		{"duplicate key", func(c *config.ControlsConfig) { c.Left = c.Right }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default().Controls
			tt.modify(&c)
			if _, err := NewKeymap(c); err == nil {
				t.Error("NewKeymap() error = nil")
			}
		})
	}
}
