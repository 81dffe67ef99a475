package control

import (
	"fmt"

	"github.com/Faultbox/tubular/internal/config"
)

// Keymap maps key names to the command they trigger.
type Keymap map[string]Command

// NewKeymap builds a keymap from the configured bindings. Every action must
// have its own key.
func NewKeymap(c config.ControlsConfig) (Keymap, error) {
	km := make(Keymap)
	for action, key := range c.Bindings() {
		cmd, ok := ParseCommand(action)
		if !ok {
			return nil, fmt.Errorf("%w: action %q", ErrUnknownCommand, action)
		}
		if key == "" {
			return nil, fmt.Errorf("no key bound to %s", action)
		}
		if other, dup := km[key]; dup {
			return nil, fmt.Errorf("key %q bound to both %s and %s", key, other, cmd)
		}
		km[key] = cmd
	}
	return km, nil
}
