package ui

import (
	"fmt"
	"strings"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/callstatus"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

// renderUploads draws the batch-upload history tab with a selection
// gutter matching the customers table.
func (m Model) renderUploads() string {
	styles := m.theme.Styles()

	if len(m.vm.Uploads) == 0 {
		return styles.MutedText.Render("  no uploads recorded")
	}

	var b strings.Builder
	b.WriteString(styles.FaintText.Render(
		"    " +
			padRight("FILE", 32) +
			padRight("UPLOADED", 18) +
			padRight("BY", 14) +
			padRight("RECORDS", 10) +
			padRight("FAILED", 8) +
			"STATUS"))
	b.WriteString("\n")

	for i, up := range m.vm.Uploads {
		name := up.OriginalFilename
		if name == "" {
			name = up.Filename
		}
		gutter := "    "
		if m.vm.SelectedUploads[up.ID] {
			gutter = " ✓  "
		}
		line := gutter +
			padRight(truncate(name, 31), 32) +
			padRight(timeutil.FormatDateTime(up.ParsedUploadedAt(m.vm.Loc), m.vm.Loc), 18) +
			padRight(truncate(up.UploadedBy, 13), 14) +
			padRight(fmt.Sprintf("%d/%d", up.SuccessRecords, up.TotalRecords), 10) +
			padRight(fmt.Sprintf("%d", up.FailedRecords), 8)

		if i == m.uploadsCursor {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if up.FailedRecords > 0 {
			b.WriteString(styles.DangerText.Render(up.Status))
		} else {
			b.WriteString(styles.MutedText.Render(up.Status))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderEvents draws the recent call-events tab, most recent first.
func (m Model) renderEvents() string {
	styles := m.theme.Styles()

	if len(m.vm.Events) == 0 {
		return styles.MutedText.Render("  no call activity")
	}

	var b strings.Builder
	b.WriteString(styles.FaintText.Render(
		padRight("TIME", 18) +
			padRight("CUSTOMER", 24) +
			padRight("PHONE", 14) +
			"STATUS"))
	b.WriteString("\n")

	for _, ev := range m.vm.Events {
		status := callstatus.Normalize(ev.Status)
		line := padRight(timeutil.FormatDateTime(ev.ParsedTimestamp(m.vm.Loc), m.vm.Loc), 18) +
			padRight(truncate(ev.CustomerName, 23), 24) +
			padRight(ev.CustomerPhone, 14)

		b.WriteString(styles.Text.Render(line))
		b.WriteString(styles.StatusStyle(status).Render(status.Label()))
		if ev.Message != "" {
			b.WriteString(" " + styles.FaintText.Render(truncate(ev.Message, 32)))
		}
		b.WriteString("\n")
	}

	return b.String()
}
