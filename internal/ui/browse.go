package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kestrel7/stockpile/internal/catalog"
	"github.com/kestrel7/stockpile/internal/config"
	"github.com/kestrel7/stockpile/internal/session"
	"github.com/kestrel7/stockpile/internal/trace"
	"github.com/kestrel7/stockpile/internal/view"
)

func (m Model) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.tableColumns()),
		table.WithFocused(true),
		table.WithHeight(m.query.PageSize+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Accent))
	styles.Selected = styles.Selected.
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Bold(false)
	t.SetStyles(styles)
	return t
}

func (m Model) tableColumns() []table.Column {
	width := m.width
	if width <= 0 {
		width = 120
	}
	// Fixed columns first; title and description share what remains.
	idW, priceW, imageW := 6, 10, 18
	rest := width - idW - priceW - imageW - 10
	if rest < 20 {
		rest = 20
	}
	titleW := rest / 2
	descW := rest - titleW

	return []table.Column{
		{Title: "ID", Width: idW},
		{Title: "Title", Width: titleW},
		{Title: "Description", Width: descW},
		{Title: "Price", Width: priceW},
		{Title: "Image", Width: imageW},
	}
}

// refreshTable re-derives the visible page from the store and the current
// query, then rebuilds the table rows. The clamped page index is written back
// so paging keys operate on what is actually shown.
func (m *Model) refreshTable() {
	m.result = view.Apply(m.opts.Store.Products(), m.query)
	m.query.Page = m.result.Page
	m.rows = m.result.Rows

	rows := make([]table.Row, len(m.rows))
	for i, p := range m.rows {
		rows[i] = table.Row{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.Description,
			p.PriceString(),
			p.Image,
		}
	}
	m.table.SetColumns(m.tableColumns())
	m.table.SetRows(rows)
	m.table.SetHeight(m.query.PageSize + 1)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// selectedProduct returns the product under the cursor.
func (m Model) selectedProduct() (catalog.Product, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return catalog.Product{}, false
	}
	return m.rows[idx], true
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.query.Search)
		m.searchInput.Focus()
		return m, nil

	case "esc":
		if m.query.Search != "" {
			m.query.Search = ""
			m.query.Page = 0
			m.refreshTable()
		}
		return m, nil

	case "s":
		m.query.Sort = view.NextField(m.query.Sort)
		m.refreshTable()
		return m, nil

	case "o":
		if m.query.Dir == view.Ascending {
			m.query.Dir = view.Descending
		} else {
			m.query.Dir = view.Ascending
		}
		m.refreshTable()
		return m, nil

	case "left", "h":
		m.query.Page--
		m.refreshTable()
		return m, nil

	case "right", "l":
		m.query.Page++
		m.refreshTable()
		return m, nil

	case "+":
		m.query.PageSize = nextPageSize(m.query.PageSize)
		m.refreshTable()
		return m, nil

	case "r":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.fetchProducts())

	case "a":
		if cmd, ok := m.requireSession("add a product"); !ok {
			return m, cmd
		}
		m.openAddForm()
		return m, nil

	case "e":
		p, ok := m.selectedProduct()
		if !ok {
			return m, m.notify(flashInfo, "Nothing selected")
		}
		if cmd, ok := m.requireSession("edit a product"); !ok {
			return m, cmd
		}
		if _, busy := m.inflight[p.ID]; busy {
			return m, m.notify(flashInfo, "A change to %q is still in flight", p.Title)
		}
		m.openEditForm(p)
		return m, nil

	case "d":
		p, ok := m.selectedProduct()
		if !ok {
			return m, m.notify(flashInfo, "Nothing selected")
		}
		if cmd, ok := m.requireSession("delete a product"); !ok {
			return m, cmd
		}
		if _, busy := m.inflight[p.ID]; busy {
			return m, m.notify(flashInfo, "A change to %q is still in flight", p.Title)
		}
		m.mode = modeConfirmDelete
		m.confirm = confirmState{product: p}
		return m, nil

	case "L":
		if m.hasSession {
			return m.signOut()
		}
		m.openSignIn("")
		return m, nil

	case "x":
		return m, m.exportCmd()

	case "m":
		if cmd, ok := m.requireSession("import products"); !ok {
			return m, cmd
		}
		m.mode = modeImportPrompt
		m.importInput.SetValue("")
		m.importInput.Focus()
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.table = m.newTable()
		m.refreshTable()
		return m, nil

	case "D":
		if m.opts.DebugPath == "" {
			return m, nil
		}
		lines, err := trace.Tail(m.opts.DebugPath, debugTailLines)
		if err != nil {
			return m, m.notify(flashError, "Debug log: %v", err)
		}
		m.debugLines = lines
		m.mode = modeDebug
		return m, nil

	case "?":
		m.mode = modeHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.query.Search = ""
		m.query.Page = 0
		m.refreshTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if q := m.searchInput.Value(); q != m.query.Search {
		// Any change to the query snaps back to the first page.
		m.query.Search = q
		m.query.Page = 0
		m.refreshTable()
	}
	return m, cmd
}

// requireSession gates a mutation on a live session. An expired session is
// purged on the spot; either way the sign-in view opens instead of the
// gateway being called.
func (m *Model) requireSession(action string) (tea.Cmd, bool) {
	if m.hasSession && m.sess.Valid(time.Now()) {
		return nil, true
	}
	if m.hasSession {
		// Held session went stale since startup.
		m.hasSession = false
		m.sess = session.Session{}
		m.applySessionToGateway()
		_ = session.Clear(m.opts.SessionPath)
	}
	m.openSignIn("Sign in to " + action)
	return nil, false
}

func (m *Model) signOut() (tea.Model, tea.Cmd) {
	m.hasSession = false
	m.sess = session.Session{}
	m.applySessionToGateway()
	if err := session.Clear(m.opts.SessionPath); err != nil {
		m.logf("clear session: %v", err)
	}
	return *m, m.notify(flashInfo, "Signed out")
}

func nextPageSize(current int) int {
	for i, s := range config.PageSizes {
		if s == current {
			return config.PageSizes[(i+1)%len(config.PageSizes)]
		}
	}
	return config.PageSizes[0]
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if flash := m.renderFlash(); flash != "" {
		b.WriteString(flash)
		b.WriteString("\n")
	}

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	} else if m.query.Search != "" {
		b.WriteString(m.styles.Accent.Render("/" + m.query.Search))
		b.WriteString(m.styles.MutedText.Render("  (esc clears)"))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.MutedText.Render(" Loading products..."))
		b.WriteString("\n")
	} else if m.result.Total == 0 {
		b.WriteString(m.styles.MutedText.Render("No products to show."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(m.renderPagination())
		b.WriteString("\n")
	}

	b.WriteString(m.renderCommandBar())
	return b.String()
}

func (m Model) renderHeader() string {
	parts := []string{m.styles.Logo.Render("stockpile")}

	parts = append(parts, fmt.Sprintf("%s %s",
		m.styles.MutedText.Render("Products:"),
		m.styles.Text.Render(strconv.Itoa(m.opts.Store.Len()))))

	sortLabel := string(m.query.Sort)
	if m.query.Dir == view.Descending {
		sortLabel += " ↓"
	} else {
		sortLabel += " ↑"
	}
	parts = append(parts, fmt.Sprintf("%s %s",
		m.styles.MutedText.Render("Sort:"),
		m.styles.Text.Render(sortLabel)))

	if m.hasSession {
		parts = append(parts, m.styles.Success.Render("● "+m.sess.Email))
	} else {
		parts = append(parts, m.styles.MutedText.Render("○ signed out"))
	}

	return m.styles.Header.Width(max(m.width, 0)).Render(strings.Join(parts, "  "))
}

func (m Model) renderPagination() string {
	label := fmt.Sprintf("Page %d/%d  •  %d of %d shown  •  size %d",
		m.result.Page+1, max(m.result.PageCount, 1),
		len(m.rows), m.result.Total, m.query.PageSize)
	return m.styles.MutedText.Render(label)
}

func (m Model) renderCommandBar() string {
	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", "Search"},
		{"s", "Sort"},
		{"o", "Order"},
		{"←/→", "Page"},
		{"+", "Size"},
		{"a", "Add"},
		{"e", "Edit"},
		{"d", "Delete"},
		{"x", "Export"},
		{"m", "Import"},
	}
	if m.hasSession {
		commands = append(commands, cmd{"L", "Sign out"})
	} else {
		commands = append(commands, cmd{"L", "Sign in"})
	}
	commands = append(commands, cmd{"?", "Help"}, cmd{"q", "Quit"})

	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			m.styles.Accent.Render(c.key)+m.styles.FaintText.Render(":")+m.styles.MutedText.Render(c.desc))
	}
	return m.styles.Footer.Width(max(m.width, 0)).Render(strings.Join(segments, "  "))
}

const debugTailLines = 200
