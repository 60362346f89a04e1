package view

import "sort"

// Selection is a set of record identifiers marked for a bulk action,
// independent of the currently rendered page. Membership of identifiers
// with no live record is tolerated; bulk adds only ever come from a
// filtered view, so stale ids never re-enter through select-all.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection set.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Add marks one identifier.
func (s *Selection) Add(id string) {
	s.ids[id] = struct{}{}
}

// Remove unmarks one identifier.
func (s *Selection) Remove(id string) {
	delete(s.ids, id)
}

// Toggle flips one identifier's membership.
func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Has reports membership.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// AddAll marks every identifier in the given view. Callers pass the
// currently filtered view, never the full unfiltered collection, so
// select-all respects active filters.
func (s *Selection) AddAll(ids []string) {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear drops every marked identifier.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Count returns the number of marked identifiers in O(1).
func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the marked identifiers in sorted order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
