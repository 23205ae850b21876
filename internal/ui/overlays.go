package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateImportPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.importInput.Blur()
		return m, nil

	case "enter":
		path := strings.TrimSpace(m.importInput.Value())
		if path == "" {
			return m, nil
		}
		m.mode = modeBrowse
		m.importInput.Blur()
		return m, tea.Batch(m.notify(flashInfo, "Importing %s...", path), m.importCmd(path))
	}

	var cmd tea.Cmd
	m.importInput, cmd = m.importInput.Update(msg)
	return m, cmd
}

func (m Model) viewImportPrompt() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Import products"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("Spreadsheet with columns: ID, Title, Description, Price, Image"))
	b.WriteString("\n\n")
	b.WriteString(m.importInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("enter import  •  esc cancel"))
	return m.styles.Panel.Render(b.String())
}

func (m Model) viewHelp() string {
	rows := [][2]string{
		{"/", "Search titles and descriptions"},
		{"esc", "Clear the active search"},
		{"s", "Cycle sort column (title, description, price)"},
		{"o", "Flip sort order"},
		{"←/→  h/l", "Previous / next page"},
		{"+", "Cycle page size"},
		{"↑/↓  k/j", "Move selection"},
		{"a", "Add a product (sign-in required)"},
		{"e", "Edit the selected product (sign-in required)"},
		{"d", "Delete the selected product (sign-in required)"},
		{"x", "Export all products to a spreadsheet"},
		{"m", "Import products from a spreadsheet (sign-in required)"},
		{"L", "Sign in or out"},
		{"r", "Reload products from the server"},
		{"T", "Switch theme"},
		{"D", "Show the debug log"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(m.styles.Accent.Render(padRight(r[0], 10)))
		b.WriteString(m.styles.Text.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("any key to return"))
	return m.styles.Panel.Render(b.String())
}

func (m Model) viewDebug() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Debug log"))
	b.WriteString("  ")
	b.WriteString(m.styles.FaintText.Render(truncateMiddle(m.opts.DebugPath, 48)))
	b.WriteString("\n\n")

	if len(m.debugLines) == 0 {
		b.WriteString(m.styles.MutedText.Render("Log is empty."))
		b.WriteString("\n")
	}
	for _, line := range m.debugLines {
		b.WriteString(m.styles.Text.Render(truncate(line, max(m.width-4, 40))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("any key to return"))
	return b.String()
}
