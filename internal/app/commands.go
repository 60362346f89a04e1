package app

import (
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/filter"
)

// Command is a mutation request sent to the engine's event loop. The UI
// never touches the store or the derived view directly; it sends commands
// and renders the ViewModels that come back.
type Command interface {
	isCommand()
}

// Refresh forces a full resync from the backend. Selections are cleared
// because the snapshot may no longer contain the marked customers.
type Refresh struct{}

// SetCriteria replaces the active filter criteria. The view is recomputed
// and pagination returns to page 1 in the same transaction.
type SetCriteria struct {
	Criteria filter.Criteria
}

// SetSearch replaces only the search term, keeping the other dimensions.
type SetSearch struct {
	Query string
}

// SetPage moves the customer table to an absolute 1-indexed page. Out of
// range requests surface a notice and leave the view unchanged.
type SetPage struct {
	Page int
}

// SetPageSize changes the page size and returns to page 1.
type SetPageSize struct {
	Size int
}

// ToggleSelect flips one customer's selection mark.
type ToggleSelect struct {
	ID string
}

// SelectAllFiltered marks every customer in the current filtered view,
// across all pages.
type SelectAllFiltered struct{}

// ClearSelection unmarks everything.
type ClearSelection struct{}

// ToggleUploadSelect flips one batch upload's selection mark. Upload
// selections are keyed by upload id and survive page refreshes.
type ToggleUploadSelect struct {
	ID string
}

// ClearUploadSelection unmarks every batch upload.
type ClearUploadSelection struct{}

// SetUploadsPage requests a server-side page of the batch-upload history.
type SetUploadsPage struct {
	Page int
}

// TriggerCalls asks the backend to dial the given customers. With no IDs
// it dials the current selection.
type TriggerCalls struct {
	IDs []string
}

// ExportSelected writes the selected customers to a CSV file in the export
// directory.
type ExportSelected struct{}

func (Refresh) isCommand()              {}
func (SetCriteria) isCommand()          {}
func (SetSearch) isCommand()            {}
func (SetPage) isCommand()              {}
func (SetPageSize) isCommand()          {}
func (ToggleSelect) isCommand()         {}
func (SelectAllFiltered) isCommand()    {}
func (ClearSelection) isCommand()       {}
func (ToggleUploadSelect) isCommand()   {}
func (ClearUploadSelection) isCommand() {}
func (SetUploadsPage) isCommand()       {}
func (TriggerCalls) isCommand()         {}
func (ExportSelected) isCommand()       {}
