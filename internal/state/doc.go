// Package state provides thread-safe storage for the dashboard's record
// collections.
//
// # Overview
//
// This package implements the record store: the single authoritative copy
// of customers (with nested loans), batch uploads, and call-status events.
// It sits between the sync orchestrator, which applies snapshot replaces
// and push-event mutations, and the view-derivation pipeline, which
// recomputes filters, pagination, and statistics from it after every
// change.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (Orchestrator):        Consumer (Filter/UI):
//	┌──────────────────────┐       ┌──────────────────────┐
//	│ ReplaceCustomers()   │       │ Customers()          │
//	│ ApplyStatusUpdate()  │──────→│ Uploads()            │
//	│ ReplaceUploads()     │(mutex)│ CallEvents()         │
//	│ ReplaceCallEvents()  │       │      ↓               │
//	└──────────────────────┘       │ derive + render      │
//	                               └──────────────────────┘
//
// The Store mediates between goroutines, ensuring:
//   - Atomic replaces (no partial/torn reads)
//   - No data races (mutex-protected access)
//   - Immutable reads (defensive copying, loans included)
//
// # Mutation semantics
//
// A customer snapshot replace is total, never a merge; it also drops any
// transient per-customer status messages. A status update overwrites only
// the call-status field and reports false for identifiers the last refresh
// dropped, which callers ignore as a benign race. Batch-upload and
// call-event replaces do not invalidate selections; upload selections key
// off server-side identifiers that survive paging.
//
// Derived views never diff incrementally: consumers watch Version() and
// recompute from scratch whenever it moves.
package state
