package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// signinForm holds the credential inputs. notice explains why the view
// opened when a gated action triggered it.
type signinForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errText  string
	notice   string
}

func (m *Model) openSignIn(notice string) {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Prompt = ""
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m.signin = signinForm{email: email, password: password, notice: notice}
	m.mode = modeSignIn
}

func (f *signinForm) toggleFocus() {
	f.focus = 1 - f.focus
	if f.focus == 0 {
		f.email.Focus()
		f.password.Blur()
	} else {
		f.email.Blur()
		f.password.Focus()
	}
}

func (m Model) updateSignIn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.signin.busy {
		// A login request is outstanding; only escape backs out.
		if msg.String() == "esc" {
			m.mode = modeBrowse
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.signin.toggleFocus()
		return m, nil

	case "enter":
		email := strings.TrimSpace(m.signin.email.Value())
		password := m.signin.password.Value()
		if email == "" || password == "" {
			m.signin.errText = "Email and password are required"
			return m, nil
		}
		m.signin.busy = true
		m.signin.errText = ""
		return m, tea.Batch(m.spin.Tick, m.loginCmd(email, password))
	}

	var cmd tea.Cmd
	if m.signin.focus == 0 {
		m.signin.email, cmd = m.signin.email.Update(msg)
	} else {
		m.signin.password, cmd = m.signin.password.Update(msg)
	}
	return m, cmd
}

func (m Model) viewSignIn() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Sign in"))
	b.WriteString("\n\n")

	if m.signin.notice != "" {
		b.WriteString(m.styles.Info.Render(m.signin.notice))
		b.WriteString("\n\n")
	}

	label := func(text string, focused bool) string {
		if focused {
			return m.styles.Accent.Render("▸ " + text)
		}
		return m.styles.MutedText.Render("  " + text)
	}

	b.WriteString(label("Email", m.signin.focus == 0))
	b.WriteString("\n  ")
	b.WriteString(m.signin.email.View())
	b.WriteString("\n")
	b.WriteString(label("Password", m.signin.focus == 1))
	b.WriteString("\n  ")
	b.WriteString(m.signin.password.View())
	b.WriteString("\n\n")

	if m.signin.busy {
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.MutedText.Render(" Signing in..."))
		b.WriteString("\n")
	} else if m.signin.errText != "" {
		b.WriteString(m.styles.Danger.Render(m.signin.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("enter sign in  •  tab switch field  •  esc cancel"))
	return m.styles.Panel.Render(b.String())
}
