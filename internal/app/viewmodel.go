package app

import (
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/filter"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/stream"
)

// UploadProgress is the transient in-flight upload indicator fed by
// upload_progress frames. It lives outside the store and is dropped once
// the completed batch has been refetched.
type UploadProgress struct {
	UploadID  string
	Filename  string
	Percent   float64
	Processed int
	Total     int
}

// ViewModel is one immutable render snapshot published by the engine.
// Everything the UI draws comes from here.
type ViewModel struct {
	Conn    stream.State
	Loaded  bool
	Err     string // load failure with nothing cached; renders a placeholder
	Notice  string // transient status line (refresh failures, export results)

	Criteria filter.Criteria
	Stats    filter.Stats

	// Rows is the current page of the filtered customer view.
	Rows          []intalks.Customer
	Selected      map[string]bool
	StatusNotes   map[string]string // transient per-customer push messages
	FilteredTotal int
	Page          int
	TotalPages    int
	PageSize      int
	HasPrev       bool
	HasNext       bool
	SelectedCount int

	Uploads             []intalks.BatchUpload
	UploadsMeta         intalks.PageMeta
	SelectedUploads     map[string]bool
	SelectedUploadCount int
	Events              []intalks.CallEvent
	Progress            *UploadProgress

	// Loc is the business timezone all civil dates render in.
	Loc         *time.Location
	LastUpdated time.Time
}

// buildView assembles a ViewModel from the loop-owned state. Only the
// event loop calls this.
func (e *Engine) buildView() ViewModel {
	lo, hi := e.pager.Window()
	// The window is copied out of the loop-owned slice: a later recompute
	// must not mutate rows a published snapshot still references.
	rows := make([]intalks.Customer, hi-lo)
	copy(rows, e.filtered[lo:hi])

	selected := make(map[string]bool, e.sel.Count())
	for _, id := range e.sel.IDs() {
		selected[id] = true
	}

	selectedUploads := make(map[string]bool, e.uploadSel.Count())
	for _, id := range e.uploadSel.IDs() {
		selectedUploads[id] = true
	}

	notes := make(map[string]string)
	for _, cust := range rows {
		if msg := e.store.StatusMessage(cust.ID); msg != "" {
			notes[cust.ID] = msg
		}
	}

	uploads, meta := e.store.Uploads()

	return ViewModel{
		Conn:                e.conn,
		Loaded:              e.store.Loaded(),
		Err:                 e.errText,
		Notice:              e.notice,
		Criteria:            e.criteria,
		Stats:               e.stats,
		Rows:                rows,
		Selected:            selected,
		StatusNotes:         notes,
		FilteredTotal:       len(e.filtered),
		Page:                e.pager.Page(),
		TotalPages:          e.pager.TotalPages(),
		PageSize:            e.pager.Size(),
		HasPrev:             e.pager.HasPrev(),
		HasNext:             e.pager.HasNext(),
		SelectedCount:       e.sel.Count(),
		Uploads:             uploads,
		UploadsMeta:         meta,
		SelectedUploads:     selectedUploads,
		SelectedUploadCount: e.uploadSel.Count(),
		Events:              e.store.CallEvents(),
		Progress:            e.progress,
		Loc:                 e.loc,
		LastUpdated:         e.store.LastUpdated(),
	}
}
