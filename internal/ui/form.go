package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrel7/stockpile/internal/catalog"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPrice
	fieldImage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Price", "Image file"}

// productForm holds the add/edit inputs. In edit mode the original record is
// kept so submission sends only the fields that changed.
type productForm struct {
	editing  bool
	original catalog.Product
	inputs   [fieldCount]textinput.Model
	focus    int
	errs     catalog.FieldErrors
}

func newProductForm() productForm {
	var f productForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].Placeholder = "required"
	f.inputs[fieldPrice].Placeholder = "0.00"
	f.inputs[fieldImage].Placeholder = "path/to/image.jpg (optional)"
	f.inputs[fieldTitle].Focus()
	return f
}

func (m *Model) openAddForm() {
	m.form = newProductForm()
	m.mode = modeForm
}

func (m *Model) openEditForm(p catalog.Product) {
	f := newProductForm()
	f.editing = true
	f.original = p
	f.inputs[fieldTitle].SetValue(p.Title)
	f.inputs[fieldDescription].SetValue(p.Description)
	f.inputs[fieldPrice].SetValue(p.PriceString())
	m.form = f
	m.mode = modeForm
}

func (f productForm) draft() catalog.Draft {
	return catalog.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Price:       f.inputs[fieldPrice].Value(),
		ImagePath:   f.inputs[fieldImage].Value(),
	}
}

func (f *productForm) setFocus(idx int) {
	f.focus = (idx + fieldCount) % fieldCount
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil

	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

// submitForm validates the draft and, in edit mode, reduces it to the changed
// fields. Invalid input keeps the form open with per-field messages.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	normalized, errs := m.form.draft().Validate()
	if len(errs) > 0 {
		m.form.errs = errs
		return m, nil
	}
	m.form.errs = nil

	if m.form.editing {
		changes := catalog.Diff(m.form.original, normalized)
		if changes.Empty() {
			m.mode = modeBrowse
			return m, m.notify(flashInfo, "No changes to %q", m.form.original.Title)
		}
		id := m.form.original.ID
		m.inflight[id] = struct{}{}
		m.mode = modeBrowse
		return m, m.updateCmd(id, changes)
	}

	m.mode = modeBrowse
	return m, m.createCmd(normalized)
}

func (m Model) viewForm() string {
	var b strings.Builder

	title := "Add product"
	if m.form.editing {
		title = "Edit " + m.form.original.Title
	}
	b.WriteString(m.styles.Header.Render(title))
	b.WriteString("\n\n")

	fieldKeys := [fieldCount]string{"title", "description", "price", "image"}
	for i, in := range m.form.inputs {
		label := fieldLabels[i]
		if i == m.form.focus {
			b.WriteString(m.styles.Accent.Render("▸ " + label))
		} else {
			b.WriteString(m.styles.MutedText.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(in.View())
		b.WriteString("\n")
		if msg, ok := m.form.errs[fieldKeys[i]]; ok {
			b.WriteString("  ")
			b.WriteString(m.styles.Danger.Render(msg))
			b.WriteString("\n")
		}
	}

	if m.form.editing && m.form.inputs[fieldImage].Value() == "" && m.form.original.Image != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.FaintText.Render("Current image kept: " + m.opts.Config.ImageURL(m.form.original.Image)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("enter save  •  tab next field  •  esc cancel"))
	return m.styles.Panel.Render(b.String())
}
