package view

import (
	"reflect"
	"testing"
)

func TestSelection_AddRemoveToggle(t *testing.T) {
	s := NewSelection()

	s.Add("c-1")
	s.Add("c-1")
	s.Add("c-2")
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	if !s.Has("c-1") || !s.Has("c-2") {
		t.Fatal("added ids not present")
	}

	s.Remove("c-1")
	if s.Has("c-1") {
		t.Fatal("removed id still present")
	}

	s.Toggle("c-3")
	if !s.Has("c-3") {
		t.Fatal("toggle did not add absent id")
	}
	s.Toggle("c-3")
	if s.Has("c-3") {
		t.Fatal("toggle did not remove present id")
	}
}

func TestSelection_AddAllFromFilteredView(t *testing.T) {
	// Select-all receives only the ids of the filtered view: with a search
	// matching 2 of 10 customers, exactly those 2 are added regardless of
	// the current page.
	s := NewSelection()
	filtered := []string{"c-4", "c-7"}

	s.AddAll(filtered)
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	for _, id := range filtered {
		if !s.Has(id) {
			t.Errorf("filtered id %q missing from selection", id)
		}
	}
	if s.Has("c-1") {
		t.Error("unfiltered id selected by AddAll")
	}
}

func TestSelection_ClearAndIDs(t *testing.T) {
	s := NewSelection()
	s.AddAll([]string{"b", "a", "c"})

	if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("IDs() = %v, want sorted [a b c]", got)
	}

	s.Clear()
	if s.Count() != 0 {
		t.Fatalf("Count() = %d after Clear, want 0", s.Count())
	}
	if got := s.IDs(); len(got) != 0 {
		t.Fatalf("IDs() = %v after Clear, want empty", got)
	}
}

func TestSelection_StaleIDsTolerated(t *testing.T) {
	s := NewSelection()
	s.Add("dropped-by-refresh")

	// Stale membership is allowed; it simply never matches a live record.
	if !s.Has("dropped-by-refresh") {
		t.Fatal("stale id evicted implicitly")
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
}
