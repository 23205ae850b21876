package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrel7/stockpile/internal/catalog"
)

type confirmState struct {
	product catalog.Product
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		p := m.confirm.product
		m.inflight[p.ID] = struct{}{}
		m.mode = modeBrowse
		return m, m.deleteCmd(p)

	case "n", "N", "esc":
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}

func (m Model) viewConfirmDelete() string {
	p := m.confirm.product

	var b strings.Builder
	b.WriteString(m.styles.Warning.Render("Delete product?"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render(fmt.Sprintf("#%d  %s  (%s)", p.ID, p.Title, p.PriceString())))
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("y delete  •  n cancel"))
	return m.styles.Panel.Render(b.String())
}
