// Package tui is the interactive terminal front-end of an open shopping
// list. It turns key presses into list, selection and bulk operations on a
// shoplist.Session and draws the result.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dukerupert/shoplist/internal/model"
	"github.com/dukerupert/shoplist/internal/shoplist"
)

// articleItem adapts an article to bubbles/list.Item
type articleItem struct {
	model.Article
	selected bool
}

func (i articleItem) FilterValue() string { return i.Name }

type itemDelegate struct{ theme Theme }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(articleItem)
	if !ok {
		return
	}

	box := d.theme.Muted.Render(d.theme.BoxUnchecked)
	text := it.String()
	if it.Strikethrough {
		box = d.theme.Success.Render(d.theme.BoxChecked)
		text = d.theme.Done.Render(text)
	}
	mark := " "
	if it.selected {
		mark = d.theme.Selected.Render(d.theme.Mark)
		text = d.theme.Selected.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Cursor.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, mark, box, text)
}

var (
	keyQuit   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	keyBack   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	keySelect = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select"))
	keyAdd    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	keyEdit   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	keyStrike = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "done"))
	keyRemove = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	keySwipe  = key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "remove one"))
	keyUndo   = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	keySort   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort"))
	keyCopy   = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy"))
	keyUp     = key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up"))
	keyDown   = key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down"))
)

// toolbar lists the actions offered in each selection mode.
func toolbar(mode shoplist.Mode) []key.Binding {
	switch mode {
	case shoplist.ModeOne:
		return []key.Binding{keyEdit, keyStrike, keyRemove, keyCopy, keySelect, keyBack}
	case shoplist.ModeMany:
		return []key.Binding{keyStrike, keyRemove, keyCopy, keySelect, keyBack}
	default:
		return []key.Binding{keyAdd, keySelect, keyStrike, keySwipe, keyRemove, keyUp, keyDown, keySort, keyCopy, keyUndo, keyQuit}
	}
}

// Model is the bubbletea model over an open session.
type Model struct {
	session *shoplist.Session
	list    list.Model
	theme   Theme
	form    *form
	undo    *shoplist.Removal
	status  string
	failed  bool
	copy    func(string) error
	logger  *slog.Logger
}

// Option customizes a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard sink.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copy = fn }
}

func WithTheme(t Theme) Option {
	return func(m *Model) { m.theme = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

func New(s *shoplist.Session, opts ...Option) Model {
	m := Model{
		session: s,
		theme:   ThemeFor("classic"),
		copy:    clipboard.WriteAll,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	l := list.New(nil, itemDelegate{theme: m.theme}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	m.list = l
	m.refresh()
	return m
}

// Run shows the list until the user quits. The caller closes the session.
func Run(s *shoplist.Session, opts ...Option) error {
	_, err := tea.NewProgram(New(s, opts...), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) refresh() {
	sel := m.session.Selection
	articles := m.session.List.Articles()
	items := make([]list.Item, len(articles))
	for i, a := range articles {
		items[i] = articleItem{Article: a, selected: sel.Contains(a.ID)}
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m *Model) setStatus(msg string) {
	m.status, m.failed = msg, false
}

// fail reports a store failure; the operation is abandoned.
func (m *Model) fail(op string, err error) {
	m.logger.Error(op, "shop", m.session.Shop.Name, "error", err)
	m.status, m.failed = op+": "+err.Error(), true
}

func (m Model) cursorArticle() (model.Article, bool) {
	a, err := m.session.List.At(m.list.Index())
	return a, err == nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		sel := m.session.Selection
		l := m.session.List

		switch {
		case key.Matches(msg, keyQuit):
			return m, tea.Quit

		case key.Matches(msg, keyBack):
			if sel.Empty() {
				return m, tea.Quit
			}
			sel.Clear()
			m.refresh()
			return m, nil

		case key.Matches(msg, keySelect):
			if a, ok := m.cursorArticle(); ok {
				sel.Toggle(a.ID)
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, keyAdd):
			if sel.Mode() == shoplist.ModeNone {
				m.form = newForm("Add article", -1, model.Article{Amount: model.MinAmount})
			}
			return m, nil

		case key.Matches(msg, keyEdit):
			if sel.Mode() == shoplist.ModeOne {
				id := sel.IDs()[0]
				if i := l.IndexOf(id); i >= 0 {
					a, _ := l.At(i)
					m.form = newForm("Edit article", i, a)
				}
			}
			return m, nil

		case key.Matches(msg, keyStrike):
			ids := sel.IDs()
			if len(ids) == 0 {
				if a, ok := m.cursorArticle(); ok {
					ids = []int64{a.ID}
				}
			}
			if err := l.ToggleStrikethrough(ids); err != nil {
				m.fail("toggle done", err)
			}
			sel.Clear()
			m.refresh()
			return m, nil

		case key.Matches(msg, keyRemove):
			r, err := shoplist.RemoveSelectedOrAll(l, sel)
			m.afterRemoval(r, err)
			return m, nil

		case key.Matches(msg, keySwipe):
			if !sel.Empty() || l.Len() == 0 {
				return m, nil
			}
			r, err := shoplist.RemoveOne(l, m.list.Index())
			m.afterRemoval(r, err)
			return m, nil

		case key.Matches(msg, keyUndo):
			if m.undo == nil {
				return m, nil
			}
			restored, err := shoplist.Undo(l, *m.undo)
			m.undo = nil
			if err != nil {
				m.fail("undo", err)
			} else {
				m.setStatus(fmt.Sprintf("Restored %d", len(restored)))
			}
			m.refresh()
			return m, nil

		case key.Matches(msg, keySort):
			if sel.Empty() {
				l.SortByName()
				m.refresh()
				m.setStatus("Sorted by name")
			}
			return m, nil

		case key.Matches(msg, keyCopy):
			text, ok := shoplist.ExportText(l, sel)
			n := 0
			if ok {
				if err := m.copy(text + "\n"); err != nil {
					m.fail("copy", err)
					return m, nil
				}
				n = strings.Count(text, "\n") + 1
			}
			m.setStatus(shoplist.ExportMessage(n))
			sel.Clear()
			m.refresh()
			return m, nil

		case key.Matches(msg, keyUp), key.Matches(msg, keyDown):
			if !sel.Empty() {
				return m, nil
			}
			from := m.list.Index()
			to := from - 1
			if key.Matches(msg, keyDown) {
				to = from + 1
			}
			if err := l.Move(from, to); err == nil {
				m.refresh()
				m.list.Select(to)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) afterRemoval(r shoplist.Removal, err error) {
	if !r.Empty() {
		m.undo = &r
		m.setStatus(r.Message(m.session.Shop.Name) + " (u to undo)")
	} else if err == nil {
		m.setStatus(r.Message(m.session.Shop.Name))
	}
	if err != nil {
		m.fail("remove", err)
	}
	m.refresh()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := m.form
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.form = nil
			return m, nil
		case "tab", "down":
			return m, f.focusNext(1)
		case "shift+tab", "up":
			return m, f.focusNext(-1)
		case "enter":
			return m.submitForm()
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	name, amount, measure := f.values()
	l := m.session.List

	var ok bool
	var err error
	if f.index < 0 {
		_, ok, err = l.AddInput(name, amount, measure)
	} else {
		_, ok, err = l.Edit(f.index, name, amount, measure)
	}
	switch {
	case err != nil:
		m.fail(strings.ToLower(f.title), err)
		m.form = nil
	case !ok:
		f.err = "Name cannot be empty"
		return m, nil
	default:
		m.form = nil
		m.setStatus("Saved " + strings.TrimSpace(name))
		if f.index < 0 {
			m.refresh()
			m.list.Select(l.Len() - 1)
			return m, nil
		}
	}
	m.session.Selection.Clear()
	m.refresh()
	return m, nil
}

func (m Model) View() string {
	t := m.theme
	l := m.session.List
	done := 0
	for _, a := range l.Articles() {
		if a.Strikethrough {
			done++
		}
	}
	mode := m.session.Selection.Mode()

	header := fmt.Sprintf("%s   %s %d/%d",
		t.Title.Render(m.session.Shop.Name),
		t.Success.Render("✔"), done, l.Len(),
	)
	if mode != shoplist.ModeNone {
		header += "   " + t.Accent.Render(strconv.Itoa(m.session.Selection.Len())+" selected")
	}

	body := m.list.View()
	if l.Len() == 0 {
		body = t.Muted.Render("No articles yet. Press a to add one.")
	}

	lines := []string{header, "", body, ""}
	if m.form != nil {
		lines = append(lines, m.form.view(t))
	} else {
		lines = append(lines, m.toolbarView(mode))
	}
	if m.status != "" {
		style := t.Muted
		if m.failed {
			style = t.Error
		}
		lines = append(lines, style.Render(m.status))
	}
	return t.Border.Render(strings.Join(lines, "\n"))
}

func (m Model) toolbarView(mode shoplist.Mode) string {
	var parts []string
	for _, b := range toolbar(mode) {
		h := b.Help()
		parts = append(parts, m.theme.Accent.Render(h.Key)+" "+h.Desc)
	}
	return m.theme.Muted.Render(strings.Join(parts, " • "))
}
