package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/app"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/callstatus"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/prefs"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

// bucketCycle is the order the f key steps through the upload-date filter.
// The custom range is driven by explicit dates, not the cycle.
var bucketCycle = []timeutil.Bucket{
	timeutil.BucketNone,
	timeutil.BucketToday,
	timeutil.BucketYesterday,
	timeutil.BucketThisWeek,
	timeutil.BucketLastWeek,
	timeutil.BucketThisMonth,
}

// pageSizeCycle is the order the + key steps through page sizes; 0 is the
// unbounded "all" size.
var pageSizeCycle = []int{10, 20, 50, 100, 0}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, PageSize: m.pageSize})
		return m, nil

	case "tab":
		m.currentView = (m.currentView + 1) % 3
		return m, nil

	case "1":
		m.currentView = ViewCustomers
		return m, nil
	case "2":
		m.currentView = ViewUploads
		return m, nil
	case "3":
		m.currentView = ViewEvents
		return m, nil

	case "r":
		m.engine.Send(app.Refresh{})
		return m, nil
	}

	switch m.currentView {
	case ViewCustomers:
		return m.handleCustomersKey(msg)
	case ViewUploads:
		return m.handleUploadsKey(msg)
	}
	return m, nil
}

// handleCustomersKey processes keyboard input for the customers tab.
func (m Model) handleCustomersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.vm.Rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.vm.Rows) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}

	case " ", "space":
		if row, ok := m.cursorRow(); ok {
			m.engine.Send(app.ToggleSelect{ID: row.ID})
		}
	case "a":
		m.engine.Send(app.SelectAllFiltered{})
	case "x":
		m.engine.Send(app.ClearSelection{})

	case "f":
		crit := m.vm.Criteria
		crit.UploadDate = nextBucket(crit.UploadDate)
		crit.StartDate, crit.EndDate = "", ""
		m.engine.Send(app.SetCriteria{Criteria: crit})
	case "s":
		crit := m.vm.Criteria
		crit.CallStatus = nextStatusFilter(crit.CallStatus)
		m.engine.Send(app.SetCriteria{Criteria: crit})

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.vm.Criteria.Search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "[":
		m.engine.Send(app.SetPage{Page: m.vm.Page - 1})
	case "]":
		m.engine.Send(app.SetPage{Page: m.vm.Page + 1})
	case "+":
		m.pageSize = nextPageSize(m.pageSize)
		m.engine.Send(app.SetPageSize{Size: m.pageSize})
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, PageSize: m.pageSize})

	case "c":
		if m.vm.SelectedCount > 0 {
			m.engine.Send(app.TriggerCalls{})
		} else if row, ok := m.cursorRow(); ok {
			m.engine.Send(app.TriggerCalls{IDs: []string{row.ID}})
		}
	case "E":
		m.engine.Send(app.ExportSelected{})
	}

	return m, nil
}

// handleUploadsKey navigates and pages through the server-side upload
// history. Selection marks are keyed by upload id and survive paging.
func (m Model) handleUploadsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.uploadsCursor < len(m.vm.Uploads)-1 {
			m.uploadsCursor++
		}
	case "k", "up":
		if m.uploadsCursor > 0 {
			m.uploadsCursor--
		}
	case "g", "home":
		m.uploadsCursor = 0
	case "G", "end":
		m.uploadsCursor = len(m.vm.Uploads) - 1
		if m.uploadsCursor < 0 {
			m.uploadsCursor = 0
		}

	case " ", "space":
		if m.uploadsCursor >= 0 && m.uploadsCursor < len(m.vm.Uploads) {
			m.engine.Send(app.ToggleUploadSelect{ID: m.vm.Uploads[m.uploadsCursor].ID})
		}
	case "x":
		m.engine.Send(app.ClearUploadSelection{})

	case "[":
		if m.vm.UploadsMeta.HasPrev {
			m.engine.Send(app.SetUploadsPage{Page: m.vm.UploadsMeta.CurrentPage - 1})
		}
	case "]":
		if m.vm.UploadsMeta.HasNext {
			m.engine.Send(app.SetUploadsPage{Page: m.vm.UploadsMeta.CurrentPage + 1})
		}
	}
	return m, nil
}

// handleSearchKey routes keys to the search input until committed or
// cancelled.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.engine.Send(app.SetSearch{Query: m.searchInput.Value()})
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) cursorRow() (intalks.Customer, bool) {
	if m.cursor >= 0 && m.cursor < len(m.vm.Rows) {
		return m.vm.Rows[m.cursor], true
	}
	return intalks.Customer{}, false
}

func nextBucket(current timeutil.Bucket) timeutil.Bucket {
	for i, b := range bucketCycle {
		if b == current {
			return bucketCycle[(i+1)%len(bucketCycle)]
		}
	}
	return timeutil.BucketNone
}

func nextStatusFilter(current string) string {
	all := callstatus.All()
	if current == "" {
		return string(all[0])
	}
	for i, s := range all {
		if string(s) == current {
			if i == len(all)-1 {
				return ""
			}
			return string(all[i+1])
		}
	}
	return ""
}

func nextPageSize(current int) int {
	for i, s := range pageSizeCycle {
		if s == current {
			return pageSizeCycle[(i+1)%len(pageSizeCycle)]
		}
	}
	return pageSizeCycle[0]
}
