package filter

import (
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/callstatus"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
)

// Stats aggregates the header numbers recomputed after every store
// mutation.
type Stats struct {
	Total    int
	ByStatus map[callstatus.Status]int
	Outcomes map[callstatus.Status]int
}

// ComputeStats counts customers in the filtered view per canonical status,
// and call outcomes over the event list. Several events share a call_sid;
// only the most recent by timestamp counts toward an outcome.
func ComputeStats(filtered []intalks.Customer, events []intalks.CallEvent, loc *time.Location) Stats {
	stats := Stats{
		Total:    len(filtered),
		ByStatus: make(map[callstatus.Status]int),
		Outcomes: make(map[callstatus.Status]int),
	}

	for _, cust := range filtered {
		stats.ByStatus[callstatus.Normalize(cust.CallStatus)]++
	}

	for _, ev := range latestPerSession(events, loc) {
		stats.Outcomes[callstatus.Normalize(ev.Status)]++
	}

	return stats
}

// latestPerSession keeps the most-recent-by-timestamp event for each call
// session. Ties keep the later list entry, matching backend append order.
func latestPerSession(events []intalks.CallEvent, loc *time.Location) map[string]intalks.CallEvent {
	latest := make(map[string]intalks.CallEvent, len(events))
	for _, ev := range events {
		prev, ok := latest[ev.CallSID]
		if !ok || !ev.ParsedTimestamp(loc).Before(prev.ParsedTimestamp(loc)) {
			latest[ev.CallSID] = ev
		}
	}
	return latest
}
