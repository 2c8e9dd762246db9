// Package searchbar wraps a text input with the query submission contract
// the rest of the UI depends on: typed text travels upward only on enter,
// while clearing to empty always propagates immediately.
package searchbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookscout/internal/model"
)

// SubmitMsg carries a query upward. Query is "" when the field was
// cleared or deleted to empty.
type SubmitMsg struct {
	Query string
}

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	clearHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Model owns the text and focus state of the search field.
type Model struct {
	input textinput.Model
}

// New returns a focused search field.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search books, authors, topics..."
	ti.Prompt = promptStyle.Render("? ")
	ti.CharLimit = model.MaxSearchTermLength
	ti.Width = 48
	ti.Focus()
	return Model{input: ti}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update applies a message. Enter submits the current text when non-empty;
// esc clears. Any edit that empties the field emits SubmitMsg("") without
// waiting for enter. The asymmetry is deliberate: non-empty text is only
// reported on explicit submission, empty state is reported live.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				return m, submit(q)
			}
			return m, nil

		case "esc":
			return m.Clear()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if before != "" && m.input.Value() == "" {
		return m, tea.Batch(cmd, submit(""))
	}
	return m, cmd
}

// Clear resets the field, reports the empty query, and returns focus to
// the input.
func (m Model) Clear() (Model, tea.Cmd) {
	m.input.Reset()
	m.input.Focus()
	return m, submit("")
}

// View renders the input. The clear affordance is only shown while there
// is something to clear.
func (m Model) View() string {
	view := m.input.View()
	if m.input.Value() != "" {
		view += clearHintStyle.Render("  ✕ esc clears")
	}
	return view
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Focused reports whether the field has input focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Focus gives the field input focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes input focus.
func (m *Model) Blur() {
	m.input.Blur()
}

func submit(q string) tea.Cmd {
	return func() tea.Msg {
		return SubmitMsg{Query: q}
	}
}
