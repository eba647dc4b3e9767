package txstream

// State is the lifecycle stage of a streaming session.
//
// A session moves Idle → Streaming → (Draining | Failed) → Closed. Closed is
// terminal: a session is never restarted, a new one must be built instead.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateDraining
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
