// Package callstatus maps the heterogeneous status strings reported by the
// INTALKS backend and its telephony provider onto a small canonical enum.
package callstatus

import "strings"

// Status is the canonical call status.
type Status string

const (
	Ready         Status = "ready"
	Calling       Status = "calling"
	InProgress    Status = "in-progress"
	Completed     Status = "completed"
	Failed        Status = "failed"
	AgentTransfer Status = "agent-transfer"
)

// rawStatuses maps every raw status the backend is known to emit. Anything
// not listed here normalizes to Ready.
var rawStatuses = map[string]Status{
	"ready":            Ready,
	"not_initiated":    Ready,
	"calling":          Calling,
	"initiated":        Calling,
	"ringing":          Calling,
	"call_in_progress": InProgress,
	"in_progress":      InProgress,
	"call_completed":   Completed,
	"completed":        Completed,
	"call_failed":      Failed,
	"failed":           Failed,
	"disconnected":     Failed,
	"agent_transfer":   AgentTransfer,
}

// Normalize returns the canonical status for a raw backend string. It is
// total: empty, unknown, and oddly cased inputs all resolve to Ready.
func Normalize(raw string) Status {
	if s, ok := rawStatuses[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return Ready
}

// All returns the canonical statuses in display order.
func All() []Status {
	return []Status{Ready, Calling, InProgress, Completed, Failed, AgentTransfer}
}

// Label returns the human-readable form used in table cells and headers.
func (s Status) Label() string {
	switch s {
	case Ready:
		return "Ready"
	case Calling:
		return "Calling"
	case InProgress:
		return "In Progress"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	case AgentTransfer:
		return "Agent Transfer"
	default:
		return "Ready"
	}
}
