package ui

import "time"

type flashLevel int

const (
	flashInfo flashLevel = iota
	flashSuccess
	flashError
)

const flashDuration = 5 * time.Second

// flash is a dismissible one-line notification. seq guards against an old
// expiry tick clearing a newer message.
type flash struct {
	level flashLevel
	text  string
	seq   int
}

type flashExpiredMsg struct {
	seq int
}

func (f flash) empty() bool {
	return f.text == ""
}

func (m Model) renderFlash() string {
	if m.flash.empty() {
		return ""
	}
	switch m.flash.level {
	case flashSuccess:
		return m.styles.Success.Render("✓ " + m.flash.text)
	case flashError:
		return m.styles.Danger.Render("✗ " + m.flash.text)
	default:
		return m.styles.Info.Render("• " + m.flash.text)
	}
}
