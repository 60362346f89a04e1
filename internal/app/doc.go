// Package app provides the orchestration layer for the dashboard.
//
// # Overview
//
// This package wires together configuration, the REST client, the push
// stream, state management and the UI, and owns the engine that keeps them
// consistent. It is the composition root: all dependencies are initialized
// and connected here.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/intalksdash/config.toml
//  2. Load user preferences (theme, page size)
//  3. Open the JSON log file (the TUI owns the terminal)
//  4. Initialize the HTTP client for the INTALKS API
//  5. Create the shared state.Store and the Engine around it
//  6. Connect the websocket stream client, routing frames to the engine
//  7. Start the TUI and block until the user exits or the context cancels
//
// # The Engine
//
// Every mutation of dashboard state is serialized through a single
// event-loop goroutine:
//
//	         commands (UI) ─────────┐
//	    push frames (stream) ───────┤
//	  fetch results (backend) ──────┼──> Engine.Run select loop
//	       debounce timer ──────────┤        │
//	       periodic tick ───────────┘        v
//	                                  store + derived view
//	                                         │
//	                                         v
//	                                  ViewModel channel ──> UI render
//
// The UI never touches the store; it sends Commands and renders the
// ViewModels the engine publishes. Fetches run in short-lived goroutines
// and report back into the loop carrying a sequence number, so a stale
// response can never overwrite a newer snapshot.
//
// # Push frame handling
//
//   - call_status_update: applied to the store in place, no refetch
//   - upload_progress: transient progress indicator, outside the store
//   - upload_complete / data_update: debounced full snapshot refetch
//   - bulk_operation_update: call-statistics refresh
//
// # Refresh failures
//
// A failed refresh keeps the previous snapshot and surfaces a notice;
// when nothing was ever loaded the view renders an inline error
// placeholder instead.
package app
