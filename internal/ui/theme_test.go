package ui

import (
	"testing"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/callstatus"
)

func TestGetTheme_KnownNames(t *testing.T) {
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		if theme.Name != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, theme.Name)
		}
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	theme := GetTheme("NoSuchTheme")
	if theme.Name != "Nightfox" {
		t.Fatalf("fallback theme = %q, want Nightfox", theme.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	seen := map[string]bool{}
	current := names[0]
	for range names {
		seen[current] = true
		current = NextTheme(current)
	}
	if current != names[0] {
		t.Fatalf("cycle did not return to start: %q", current)
	}
	for _, name := range names {
		if !seen[name] {
			t.Fatalf("theme %q never visited", name)
		}
	}
}

func TestNextTheme_UnknownStartsAtFirst(t *testing.T) {
	if got := NextTheme("Bogus"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(Bogus) = %q, want %q", got, ThemeNames()[0])
	}
}

func TestThemes_CoverAllCallStatuses(t *testing.T) {
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		for _, s := range callstatus.All() {
			if theme.StatusColors[s] == "" {
				t.Fatalf("theme %q missing color for status %q", name, s)
			}
		}
	}
}
