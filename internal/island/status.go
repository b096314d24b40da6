package island

import "fmt"

// Status is the evolution state of an island or of a whole archipelago.
type Status int

const (
	// StatusIdle means no evolution is running and no fault is pending.
	StatusIdle Status = iota
	// StatusBusy means an evolution is running and no fault is pending.
	StatusBusy
	// StatusIdleError means nothing is running and a fault is pending.
	StatusIdleError
	// StatusBusyError means an evolution is running and a fault is pending.
	StatusBusyError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusBusy:
		return "busy"
	case StatusIdleError:
		return "idle - **error occurred**"
	case StatusBusyError:
		return "busy - **error occurred**"
	default:
		return "unknown"
	}
}

// Busy reports whether an evolution is still running.
func (s Status) Busy() bool {
	return s == StatusBusy || s == StatusBusyError
}

// Faulted reports whether a fault is pending.
func (s Status) Faulted() bool {
	return s == StatusIdleError || s == StatusBusyError
}

// MarshalText renders the status as a short token for JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusIdle:
		return []byte("idle"), nil
	case StatusBusy:
		return []byte("busy"), nil
	case StatusIdleError:
		return []byte("idle_error"), nil
	case StatusBusyError:
		return []byte("busy_error"), nil
	default:
		return []byte("unknown"), nil
	}
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = StatusIdle
	case "busy":
		*s = StatusBusy
	case "idle_error":
		*s = StatusIdleError
	case "busy_error":
		*s = StatusBusyError
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

func statusOf(busy, faulted bool) Status {
	switch {
	case busy && faulted:
		return StatusBusyError
	case busy:
		return StatusBusy
	case faulted:
		return StatusIdleError
	default:
		return StatusIdle
	}
}
