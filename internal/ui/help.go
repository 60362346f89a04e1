package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"tab", "Cycle tabs"},
				{"1/2/3", "Customers/Uploads/Calls"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"[/]", "Previous/next page"},
			},
		},
		{
			title: "Customers",
			items: []helpItem{
				{"space", "Toggle select"},
				{"a", "Select all filtered"},
				{"x", "Clear selection"},
				{"f", "Cycle upload-date filter"},
				{"s", "Cycle status filter"},
				{"/", "Search"},
				{"+", "Cycle page size"},
			},
		},
		{
			title: "Uploads",
			items: []helpItem{
				{"space", "Toggle select"},
				{"x", "Clear selection"},
			},
		},
		{
			title: "Actions",
			items: []helpItem{
				{"c", "Call selected"},
				{"E", "Export selection to CSV"},
				{"r", "Force refresh"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
