// Package state holds the authoritative in-memory record collections. The
// store is the single source of truth; every derived view is recomputed
// from it after a mutation.
package state

import (
	"sync"
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
)

// Store coordinates access to the three record families. Mutations come in
// two shapes only: wholesale snapshot replacement and targeted call-status
// overwrite. Neither can fail; malformed payloads are rejected upstream.
type Store struct {
	mu             sync.RWMutex
	customers      []intalks.Customer
	statusMessages map[string]string
	uploads        []intalks.BatchUpload
	uploadMeta     intalks.PageMeta
	callEvents     []intalks.CallEvent
	version        uint64
	lastUpdated    time.Time
	loaded         bool
}

// ReplaceCustomers atomically swaps the customer collection. A replace is a
// total replacement, never a merge; cached derived views and selections are
// invalidated by the version bump.
func (s *Store) ReplaceCustomers(list []intalks.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers = cloneCustomers(list)
	s.statusMessages = nil
	s.version++
	s.lastUpdated = time.Now()
	s.loaded = true
}

// ApplyStatusUpdate overwrites one customer's call-status field in place,
// leaving every other field untouched. Returns false when the identifier is
// absent, which callers treat as a benign race with a concurrent refresh.
func (s *Store) ApplyStatusUpdate(customerID, status, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID == customerID {
			s.customers[i].CallStatus = status
			if message != "" {
				if s.statusMessages == nil {
					s.statusMessages = make(map[string]string)
				}
				s.statusMessages[customerID] = message
			}
			s.version++
			s.lastUpdated = time.Now()
			return true
		}
	}
	return false
}

// ReplaceUploads swaps the current server-side page of batch uploads.
// Upload selections persist across page refreshes by identifier, so no
// selection invalidation happens here.
func (s *Store) ReplaceUploads(list []intalks.BatchUpload, meta intalks.PageMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads = cloneUploads(list)
	s.uploadMeta = meta
	s.version++
	s.lastUpdated = time.Now()
}

// ReplaceCallEvents swaps the call-status event collection wholesale.
func (s *Store) ReplaceCallEvents(list []intalks.CallEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.callEvents = cloneEvents(list)
	s.version++
	s.lastUpdated = time.Now()
}

// Customers returns a copy of the customer collection.
func (s *Store) Customers() []intalks.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCustomers(s.customers)
}

// StatusMessage returns the transient message carried by the last status
// update for a customer, if any.
func (s *Store) StatusMessage(customerID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusMessages[customerID]
}

// Uploads returns a copy of the current batch-upload page and its metadata.
func (s *Store) Uploads() ([]intalks.BatchUpload, intalks.PageMeta) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUploads(s.uploads), s.uploadMeta
}

// CallEvents returns a copy of the call-status events.
func (s *Store) CallEvents() []intalks.CallEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEvents(s.callEvents)
}

// Version increments on every mutation; derived views compare versions to
// decide whether a recompute is due.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Loaded reports whether a customer snapshot has ever been applied. An
// empty, never-loaded store renders an error placeholder on refresh
// failure instead of stale data.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LastUpdated returns the wall-clock time of the most recent mutation.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

func cloneCustomers(list []intalks.Customer) []intalks.Customer {
	if len(list) == 0 {
		return nil
	}
	dup := make([]intalks.Customer, len(list))
	copy(dup, list)
	for i := range dup {
		if len(dup[i].Loans) > 0 {
			loans := make([]intalks.Loan, len(dup[i].Loans))
			copy(loans, dup[i].Loans)
			dup[i].Loans = loans
		}
	}
	return dup
}

func cloneUploads(list []intalks.BatchUpload) []intalks.BatchUpload {
	if len(list) == 0 {
		return nil
	}
	dup := make([]intalks.BatchUpload, len(list))
	copy(dup, list)
	return dup
}

func cloneEvents(list []intalks.CallEvent) []intalks.CallEvent {
	if len(list) == 0 {
		return nil
	}
	dup := make([]intalks.CallEvent, len(list))
	copy(dup, list)
	return dup
}
