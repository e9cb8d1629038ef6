package views

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// listFilter is the "/" prompt shared by the list views. While active it
// consumes key input; enter keeps the value, esc clears it.
type listFilter struct {
	input  textinput.Model
	active bool
}

func newListFilter() listFilter {
	input := textinput.New()
	input.Placeholder = "filter..."
	input.Prompt = ""
	input.CharLimit = 64
	return listFilter{input: input}
}

func (f *listFilter) Start() tea.Cmd {
	f.active = true
	return f.input.Focus()
}

func (f *listFilter) Value() string {
	return f.input.Value()
}

// Update feeds a key to the prompt and reports whether the value changed
func (f *listFilter) Update(msg tea.KeyMsg) (changed bool, cmd tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		f.active = false
		f.input.Blur()
		return false, nil
	case tea.KeyEsc:
		f.active = false
		f.input.Blur()
		changed = f.input.Value() != ""
		f.input.SetValue("")
		return changed, nil
	}

	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	return f.input.Value() != before, cmd
}

func (f *listFilter) View() string {
	if !f.active && f.input.Value() == "" {
		return ""
	}
	return RenderFilter(f.input.View(), true)
}
