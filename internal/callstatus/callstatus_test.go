package callstatus

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"ready", Ready},
		{"not_initiated", Ready},
		{"calling", Calling},
		{"initiated", Calling},
		{"ringing", Calling},
		{"call_in_progress", InProgress},
		{"in_progress", InProgress},
		{"call_completed", Completed},
		{"completed", Completed},
		{"call_failed", Failed},
		{"failed", Failed},
		{"disconnected", Failed},
		{"agent_transfer", AgentTransfer},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_TotalOverUnrecognizedInput(t *testing.T) {
	known := make(map[Status]struct{})
	for _, s := range All() {
		known[s] = struct{}{}
	}

	inputs := []string{"", "   ", "voicemail", "CALL_COMPLETED", "Ringing", "123", "ready "}
	for _, raw := range inputs {
		got := Normalize(raw)
		if _, ok := known[got]; !ok {
			t.Errorf("Normalize(%q) = %q, not a canonical status", raw, got)
		}
	}

	if got := Normalize(""); got != Ready {
		t.Errorf("Normalize(\"\") = %q, want ready", got)
	}
	if got := Normalize("no_such_status"); got != Ready {
		t.Errorf("Normalize(unknown) = %q, want ready", got)
	}
}

func TestNormalize_CaseAndWhitespaceInsensitive(t *testing.T) {
	if got := Normalize("  Call_In_Progress "); got != InProgress {
		t.Errorf("Normalize mixed case = %q, want in-progress", got)
	}
}

func TestLabel_CoversAllStatuses(t *testing.T) {
	for _, s := range All() {
		if s.Label() == "" {
			t.Errorf("Label for %q is empty", s)
		}
	}
}
