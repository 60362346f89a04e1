package ui

import (
	"fmt"
	"strings"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/callstatus"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

// Column widths for the customers table. The name column absorbs the
// remaining width at render time.
const (
	colGutter   = 4
	colPhone    = 14
	colState    = 14
	colLoans    = 6
	colUploaded = 12
	colStatus   = 16
)

// renderCustomers draws the customers table with selection gutter and
// status badges.
func (m Model) renderCustomers() string {
	styles := m.theme.Styles()

	if len(m.vm.Rows) == 0 {
		if m.vm.Criteria.Active() {
			return styles.MutedText.Render("  no customers match the active filters")
		}
		return styles.MutedText.Render("  no customers loaded")
	}

	nameWidth := m.nameColumnWidth()

	var b strings.Builder
	b.WriteString(styles.FaintText.Render(
		padRight("", colGutter) +
			padRight("NAME", nameWidth) +
			padRight("PHONE", colPhone) +
			padRight("STATE", colState) +
			padRight("LOANS", colLoans) +
			padRight("UPLOADED", colUploaded) +
			"STATUS"))
	b.WriteString("\n")

	for i, cust := range m.vm.Rows {
		b.WriteString(m.renderCustomerRow(cust, i == m.cursor, nameWidth))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderCustomerRow(cust intalks.Customer, cursor bool, nameWidth int) string {
	styles := m.theme.Styles()

	gutter := "    "
	if m.vm.Selected[cust.ID] {
		gutter = " ✓  "
	}

	status := callstatus.Normalize(cust.CallStatus)
	uploaded := timeutil.FormatDate(cust.ParsedUploadedAt(m.vm.Loc), m.vm.Loc)

	line := gutter +
		padRight(truncate(cust.FullName, nameWidth-1), nameWidth) +
		padRight(cust.Phone, colPhone) +
		padRight(truncate(cust.State, colState-1), colState) +
		padRight(fmt.Sprintf("%d", len(cust.Loans)), colLoans) +
		padRight(uploaded, colUploaded)

	if cursor {
		return styles.Selected.Render(line) + " " + styles.StatusStyle(status).Render(status.Label())
	}

	row := styles.Text.Render(line) + " " + styles.StatusStyle(status).Render(status.Label())
	if note := m.vm.StatusNotes[cust.ID]; note != "" {
		row += " " + styles.FaintText.Render(truncate(note, 24))
	}
	return row
}

func (m Model) nameColumnWidth() int {
	fixed := colGutter + colPhone + colState + colLoans + colUploaded + colStatus
	w := m.width - fixed
	if w < 16 {
		w = 16
	}
	if w > 40 {
		w = 40
	}
	return w
}
