package control

// Command is a user action. Tube and jump commands are dispatched once per
// key press; movement commands are sampled every tick while held. Capture
// commands act on the window and are left to the client.
type Command int

const (
	StartTube Command = iota
	CloseTube
	ClearAll
	ClearLast
	MoveForward
	TurnLeft
	TurnRight
	Jump
	Screenshot
	ExportMesh

	commandCount
)

var commandNames = [...]string{
	StartTube:   "start_tube",
	CloseTube:   "close_tube",
	ClearAll:    "clear_all",
	ClearLast:   "clear_last",
	MoveForward: "forward",
	TurnLeft:    "left",
	TurnRight:   "right",
	Jump:        "jump",
	Screenshot:  "screenshot",
	ExportMesh:  "export",
}

func (c Command) String() string {
	if c < 0 || c >= commandCount {
		return "unknown"
	}
	return commandNames[c]
}

// ParseCommand returns the command with the given config name.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return Command(c), true
		}
	}
	return 0, false
}

// Held is the set of commands whose keys are down.
type Held uint16

// Set returns h with c added or removed.
func (h Held) Set(c Command, down bool) Held {
	if down {
		return h | 1<<c
	}
	return h &^ (1 << c)
}

// Has reports whether c is held.
func (h Held) Has(c Command) bool {
	return h&(1<<c) != 0
}
