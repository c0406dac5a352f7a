package enumerate

import "fmt"

// State is the position of an enumerator in its Ready -> Querying -> {Extracting, Done} cycle
type State int

const (
	Ready State = iota
	Querying
	Extracting
	Done
)

func (state State) String() string {
	switch state {
	case Ready:
		return "ready"
	case Querying:
		return "querying"
	case Extracting:
		return "extracting"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(state))
	}
}

// Status tells why an enumeration session ended
type Status int

const (
	// Exhausted means the oracle answered UNSAT: every solution was found
	Exhausted Status = iota
	// LimitReached means the caller's solution limit stopped the session
	LimitReached
	// Cancelled means the context was done between two iterations
	Cancelled
	// Failed means the oracle or the decoding failed
	Failed
)

func (status Status) String() string {
	switch status {
	case Exhausted:
		return "exhausted"
	case LimitReached:
		return "limit-reached"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(status))
	}
}

func (status Status) MarshalText() ([]byte, error) {
	return []byte(status.String()), nil
}
