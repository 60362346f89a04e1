package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/callstatus"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/stream"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.vm.Err != "" && !m.vm.Loaded {
		b.WriteString(m.renderLoadError())
		return b.String()
	}

	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCustomers:
		return m.renderCustomers()
	case ViewUploads:
		return m.renderUploads()
	case ViewEvents:
		return m.renderEvents()
	default:
		return ""
	}
}

// renderHeader draws the logo, connection state, statistics and freshness.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render(" INTALKS ")}

	parts = append(parts, m.connBadge())

	if m.haveData {
		parts = append(parts, styles.Text.Render(fmt.Sprintf("%d customers", m.vm.Stats.Total)))
		for _, s := range callstatus.All() {
			if n := m.vm.Stats.ByStatus[s]; n > 0 {
				parts = append(parts, styles.StatusStyle(s).Render(fmt.Sprintf("%s %d", s.Label(), n)))
			}
		}
	}

	if !m.vm.LastUpdated.IsZero() {
		age := time.Since(m.vm.LastUpdated)
		label := "updated " + humanizeDuration(age) + " ago"
		if age < time.Second {
			label = "updated just now"
		}
		parts = append(parts, styles.FaintText.Render(label))
	}

	return styles.Header.Render(strings.Join(parts, "  "))
}

func (m Model) connBadge() string {
	styles := m.theme.Styles()
	switch m.vm.Conn {
	case stream.StateOpen:
		return styles.SuccessText.Render("● live")
	case stream.StateConnecting:
		return styles.WarningText.Render("◌ connecting")
	case stream.StateDown:
		return styles.DangerText.Render("✖ offline")
	default:
		return styles.MutedText.Render("○ closed")
	}
}

// renderCommandBar shows the active filters, the search input when open,
// transient upload progress and the notice line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	if m.searching {
		return styles.Header.Render("search: " + m.searchInput.View())
	}

	var parts []string

	parts = append(parts, styles.MutedText.Render(m.tabLabel()))

	if m.vm.Criteria.Search != "" {
		parts = append(parts, styles.AccentText.Render("search:"+m.vm.Criteria.Search))
	}
	if m.vm.Criteria.UploadDate != timeutil.BucketNone {
		parts = append(parts, styles.AccentText.Render("uploaded:"+bucketLabel(m.vm.Criteria.UploadDate)))
	}
	if m.vm.Criteria.CallStatus != "" {
		parts = append(parts, styles.AccentText.Render("status:"+m.vm.Criteria.CallStatus))
	}
	if m.vm.Criteria.State != "" {
		parts = append(parts, styles.AccentText.Render("state:"+m.vm.Criteria.State))
	}

	if p := m.vm.Progress; p != nil {
		parts = append(parts, styles.InfoText.Render(
			fmt.Sprintf("uploading %s %.0f%% (%d/%d)", p.Filename, p.Percent, p.Processed, p.Total)))
	}

	if m.vm.Notice != "" {
		parts = append(parts, styles.WarningText.Render(m.vm.Notice))
	}

	return styles.Footer.Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var parts []string
	switch m.currentView {
	case ViewCustomers:
		parts = append(parts, fmt.Sprintf("page %d/%d", m.vm.Page, m.vm.TotalPages))
		if m.vm.PageSize == 0 {
			parts = append(parts, "size all")
		} else {
			parts = append(parts, fmt.Sprintf("size %d", m.vm.PageSize))
		}
		parts = append(parts, fmt.Sprintf("%d filtered", m.vm.FilteredTotal))
		if m.vm.SelectedCount > 0 {
			parts = append(parts, fmt.Sprintf("%d selected", m.vm.SelectedCount))
		}
	case ViewUploads:
		meta := m.vm.UploadsMeta
		parts = append(parts, fmt.Sprintf("page %d/%d", meta.CurrentPage, meta.TotalPages))
		parts = append(parts, fmt.Sprintf("%d uploads", meta.TotalCount))
		if m.vm.SelectedUploadCount > 0 {
			parts = append(parts, fmt.Sprintf("%d selected", m.vm.SelectedUploadCount))
		}
	case ViewEvents:
		parts = append(parts, fmt.Sprintf("%d call events", len(m.vm.Events)))
	}
	parts = append(parts, "h help  q quit")

	return styles.Footer.Render(strings.Join(parts, "  │  "))
}

func (m Model) renderLoadError() string {
	styles := m.theme.Styles()
	return "\n" + styles.DangerText.Render("  "+m.vm.Err) + "\n" +
		styles.MutedText.Render("  press r to retry")
}

func (m Model) tabLabel() string {
	switch m.currentView {
	case ViewUploads:
		return "[uploads]"
	case ViewEvents:
		return "[calls]"
	default:
		return "[customers]"
	}
}

func bucketLabel(b timeutil.Bucket) string {
	switch b {
	case timeutil.BucketToday:
		return "today"
	case timeutil.BucketYesterday:
		return "yesterday"
	case timeutil.BucketThisWeek:
		return "this week"
	case timeutil.BucketLastWeek:
		return "last week"
	case timeutil.BucketThisMonth:
		return "this month"
	case timeutil.BucketCustom:
		return "custom"
	default:
		return ""
	}
}
