package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dukerupert/shoplist/internal/model"
)

// form is the inline add/edit dialog: name, amount and measure inputs.
type form struct {
	title  string
	index  int // -1 adds a new article
	inputs [3]textinput.Model
	focus  int
	err    string
}

var formLabels = [3]string{"Name", "Amount", "Measure"}

func newForm(title string, index int, a model.Article) *form {
	f := &form{title: title, index: index}
	values := [3]string{a.Name, strconv.Itoa(a.Amount), a.MeasureText()}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = formLabels[i] + ": "
		ti.CharLimit = 100
		ti.SetValue(values[i])
		ti.CursorEnd()
		f.inputs[i] = ti
	}
	f.inputs[0].Placeholder = "Article name..."
	f.inputs[0].Focus()
	return f
}

func (f *form) focusNext(step int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + step + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *form) values() (name, amount, measure string) {
	return f.inputs[0].Value(), f.inputs[1].Value(), f.inputs[2].Value()
}

func (f *form) view(t Theme) string {
	title := t.Title.Render(f.title)
	if f.err != "" {
		title += " " + t.Error.Render(f.err)
	}
	lines := []string{title}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, t.Muted.Render("tab next field • enter save • esc cancel"))
	return strings.Join(lines, "\n")
}
