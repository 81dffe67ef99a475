package tube

// EventKind identifies a session lifecycle event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventSegmentRolled
	EventClosed
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventSegmentRolled:
		return "segment-rolled"
	case EventClosed:
		return "closed"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// ParseEventKind returns the kind named by s, as printed by String.
func ParseEventKind(s string) (EventKind, bool) {
	for k := EventStarted; k <= EventCleared; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Event reports a lifecycle transition to a listener.
type Event struct {
	Kind    EventKind
	Run     int // run ID; 0 for EventCleared covering several runs
	Segment int // segments in the run so far
	Rings   int // rings in the run so far, or runs removed for EventCleared
}
