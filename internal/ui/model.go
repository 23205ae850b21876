package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrel7/stockpile/internal/catalog"
	"github.com/kestrel7/stockpile/internal/config"
	"github.com/kestrel7/stockpile/internal/session"
	"github.com/kestrel7/stockpile/internal/spiritx"
	"github.com/kestrel7/stockpile/internal/view"
)

// Options configure the UI runtime.
type Options struct {
	Context     context.Context
	Gateway     spiritx.Gateway
	Store       *catalog.Store
	Config      config.Config
	Session     session.Session
	HasSession  bool
	SessionPath string
	Logger      *log.Logger
	DebugPath   string
}

type viewMode int

const (
	modeBrowse viewMode = iota
	modeForm
	modeSignIn
	modeConfirmDelete
	modeImportPrompt
	modeHelp
	modeDebug
)

// Model is the single Bubble Tea model for the whole application.
type Model struct {
	opts   Options
	theme  Theme
	styles Styles

	width  int
	height int

	mode    viewMode
	loading bool
	spin    spinner.Model

	// Browse state
	query       view.Query
	table       table.Model
	rows        []catalog.Product // parallel to the table's rows
	result      view.Result
	searching   bool
	searchInput textinput.Model

	// Session state
	sess       session.Session
	hasSession bool

	// Mutation flows
	form     productForm
	signin   signinForm
	confirm  confirmState
	inflight map[int64]struct{}

	// Import prompt
	importInput textinput.Model

	// Notifications
	flash flash

	// Debug view
	debugLines []string

	fatal error
}

// Run boots the TUI and blocks until the context is cancelled or the user
// quits.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a product store")
	}
	if opts.Gateway == nil {
		return fmt.Errorf("ui requires a gateway client")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	m := New(opts)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.Context))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}

// New builds the initial model.
func New(opts Options) Model {
	theme := GetTheme(opts.Config.Theme)

	search := textinput.New()
	search.Placeholder = "search title or description"
	search.Prompt = "/"
	search.CharLimit = 128

	importInput := textinput.New()
	importInput.Placeholder = "path/to/products.xlsx"
	importInput.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		opts:   opts,
		theme:  theme,
		styles: theme.Styles(),
		mode:   modeBrowse,
		spin:   sp,
		query: view.Query{
			Sort:     view.ByTitle,
			PageSize: opts.Config.PageSize,
		},
		searchInput: search,
		importInput: importInput,
		sess:        opts.Session,
		hasSession:  opts.HasSession,
		inflight:    make(map[int64]struct{}),
		loading:     true, // the initial fetch starts in Init
	}
	m.table = m.newTable()
	return m
}

// Init starts the spinner and the initial product fetch.
func (m Model) Init() tea.Cmd {
	m.logf("stockpile starting, session=%v", m.hasSession)
	return tea.Batch(m.spin.Tick, m.fetchProducts())
}

// Update routes messages to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshTable()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.signin.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case flashExpiredMsg:
		if msg.seq == m.flash.seq {
			m.flash = flash{seq: m.flash.seq}
		}
		return m, nil

	case productsLoadedMsg:
		return m.handleProductsLoaded(msg)
	case loginDoneMsg:
		return m.handleLoginDone(msg)
	case createDoneMsg:
		return m.handleCreateDone(msg)
	case updateDoneMsg:
		return m.handleUpdateDone(msg)
	case deleteDoneMsg:
		return m.handleDeleteDone(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)
	case importDoneMsg:
		return m.handleImportDone(msg)

	case tea.KeyMsg:
		// Ctrl+C always quits, whatever the view.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeSignIn:
			return m.updateSignIn(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeImportPrompt:
			return m.updateImportPrompt(msg)
		case modeHelp, modeDebug:
			// Any key leaves the overlay.
			m.mode = modeBrowse
			return m, nil
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

// View renders the active view.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm()
	case modeSignIn:
		return m.viewSignIn()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	case modeImportPrompt:
		return m.viewImportPrompt()
	case modeHelp:
		return m.viewHelp()
	case modeDebug:
		return m.viewDebug()
	default:
		return m.viewBrowse()
	}
}

func (m Model) logf(format string, args ...any) {
	if m.opts.Logger != nil {
		m.opts.Logger.Printf(format, args...)
	}
}

// notify replaces the current flash message and schedules its expiry.
func (m *Model) notify(level flashLevel, format string, args ...any) tea.Cmd {
	m.flash = flash{
		level: level,
		text:  fmt.Sprintf(format, args...),
		seq:   m.flash.seq + 1,
	}
	seq := m.flash.seq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}
