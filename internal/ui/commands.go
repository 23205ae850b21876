package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrel7/stockpile/internal/catalog"
	"github.com/kestrel7/stockpile/internal/session"
	"github.com/kestrel7/stockpile/internal/sheet"
	"github.com/kestrel7/stockpile/internal/spiritx"
)

type productsLoadedMsg struct {
	products []catalog.Product
	err      error
}

type loginDoneMsg struct {
	creds spiritx.Credentials
	err   error
}

type createDoneMsg struct {
	product catalog.Product
	err     error
}

type updateDoneMsg struct {
	id      int64
	product catalog.Product
	err     error
}

type deleteDoneMsg struct {
	id    int64
	title string
	err   error
}

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

type importDoneMsg struct {
	summary sheet.Summary
	err     error
}

func (m Model) fetchProducts() tea.Cmd {
	ctx, gw := m.opts.Context, m.opts.Gateway
	return func() tea.Msg {
		products, err := gw.ListProducts(ctx)
		return productsLoadedMsg{products: products, err: err}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	ctx, gw := m.opts.Context, m.opts.Gateway
	return func() tea.Msg {
		creds, err := gw.Login(ctx, email, password)
		return loginDoneMsg{creds: creds, err: err}
	}
}

func (m Model) createCmd(draft catalog.Draft) tea.Cmd {
	ctx, gw := m.opts.Context, m.opts.Gateway
	categoryID := m.opts.Config.CategoryID
	return func() tea.Msg {
		created, err := gw.CreateProduct(ctx, draft, categoryID)
		return createDoneMsg{product: created, err: err}
	}
}

func (m Model) updateCmd(id int64, changes catalog.Changes) tea.Cmd {
	ctx, gw := m.opts.Context, m.opts.Gateway
	return func() tea.Msg {
		updated, err := gw.UpdateProduct(ctx, id, changes)
		return updateDoneMsg{id: id, product: updated, err: err}
	}
}

func (m Model) deleteCmd(p catalog.Product) tea.Cmd {
	ctx, gw := m.opts.Context, m.opts.Gateway
	return func() tea.Msg {
		err := gw.DeleteProduct(ctx, p.ID)
		return deleteDoneMsg{id: p.ID, title: p.Title, err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	products := m.opts.Store.Products()
	return func() tea.Msg {
		path := sheet.ExportFileName(time.Now())
		err := sheet.Export(products, path)
		return exportDoneMsg{path: path, count: len(products), err: err}
	}
}

func (m Model) importCmd(path string) tea.Cmd {
	ctx, gw, store := m.opts.Context, m.opts.Gateway, m.opts.Store
	categoryID := m.opts.Config.CategoryID
	return func() tea.Msg {
		summary, err := sheet.Import(ctx, gw, store, path, categoryID)
		return importDoneMsg{summary: summary, err: err}
	}
}

func (m Model) handleProductsLoaded(msg productsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.logf("product fetch failed: %v", msg.err)
		return m, m.notify(flashError, "Could not load products: %v", msg.err)
	}
	m.opts.Store.Load(msg.products)
	m.refreshTable()
	m.logf("loaded %d products", len(msg.products))
	return m, nil
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.signin.busy = false
	if msg.err != nil {
		m.logf("login failed: %v", msg.err)
		m.signin.errText = msg.err.Error()
		return m, nil
	}

	// Stamp the expiry here too, not just in Save: the in-memory session
	// must pass the same freshness check gated actions apply.
	m.sess = session.Session{
		Token:     msg.creds.Token,
		Email:     msg.creds.Email,
		ExpiresAt: time.Now().Add(session.TTL),
	}
	m.hasSession = true
	m.applySessionToGateway()
	if err := session.Save(m.opts.SessionPath, m.sess, time.Now()); err != nil {
		m.logf("persist session: %v", err)
	}

	m.mode = modeBrowse
	m.signin = signinForm{}
	return m, m.notify(flashSuccess, "You're logged in as %s", msg.creds.Email)
}

func (m Model) handleCreateDone(msg createDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logf("create failed: %v", msg.err)
		return m, m.notify(flashError, "Add failed: %v", msg.err)
	}
	m.opts.Store.Upsert(msg.product)
	m.refreshTable()
	return m, m.notify(flashSuccess, "Added %q (#%d)", msg.product.Title, msg.product.ID)
}

func (m Model) handleUpdateDone(msg updateDoneMsg) (tea.Model, tea.Cmd) {
	delete(m.inflight, msg.id)
	if msg.err != nil {
		m.logf("update %d failed: %v", msg.id, msg.err)
		return m, m.notify(flashError, "Edit failed: %v", msg.err)
	}
	m.opts.Store.Upsert(msg.product)
	m.refreshTable()
	return m, m.notify(flashSuccess, "Updated %q", msg.product.Title)
}

func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	delete(m.inflight, msg.id)
	if msg.err != nil {
		m.logf("delete %d failed: %v", msg.id, msg.err)
		return m, m.notify(flashError, "Delete failed: %v", msg.err)
	}
	m.opts.Store.Remove(msg.id)
	m.refreshTable()
	return m, m.notify(flashSuccess, "Deleted %q", msg.title)
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.notify(flashError, "Export failed: %v", msg.err)
	}
	return m, m.notify(flashSuccess, "Exported %d products to %s", msg.count, msg.path)
}

func (m Model) handleImportDone(msg importDoneMsg) (tea.Model, tea.Cmd) {
	m.refreshTable()
	if msg.err != nil {
		m.logf("import failed: %v", msg.err)
		return m, m.notify(flashError, "Import stopped: %v", msg.err)
	}
	if len(msg.summary.Skipped) > 0 {
		return m, m.notify(flashInfo, "Imported %d products, skipped %d invalid rows",
			msg.summary.Created, len(msg.summary.Skipped))
	}
	return m, m.notify(flashSuccess, "Imported %d products", msg.summary.Created)
}

// applySessionToGateway installs the current token on the HTTP client. Fake
// gateways in tests do not carry tokens.
func (m *Model) applySessionToGateway() {
	if c, ok := m.opts.Gateway.(*spiritx.Client); ok {
		if m.hasSession {
			c.SetToken(m.sess.Token)
		} else {
			c.SetToken("")
		}
	}
}
