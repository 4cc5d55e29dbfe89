package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
)

// BrowseResult lists the changes made in the browser, in the order applied.
type BrowseResult struct {
	Done    []uint32
	Deleted []uint32
}

// Changed reports whether anything needs to be written back.
func (r BrowseResult) Changed() bool { return len(r.Done) > 0 || len(r.Deleted) > 0 }

// taskItem adapts model.Task to bubbles/list.Item
type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Priority + " " + i.task.Description }

type taskDelegate struct {
	theme Theme
}

func (d taskDelegate) Height() int                               { return 1 }
func (d taskDelegate) Spacing() int                              { return 0 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	line := TaskRow(it.task, d.theme, func(s lipgloss.Style) lipgloss.Style { return s })
	prefix := "  "
	if index == m.Index() {
		prefix = lipgloss.NewStyle().Bold(true).Reverse(true).Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

var (
	doneKey   = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoKey   = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete"))
	quitKey   = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit"))
)

type browser struct {
	list   list.Model
	theme  Theme
	result BrowseResult

	// single-level undo for delete
	undoIndex int
	undoItem  *taskItem
}

func newBrowser(tasks []model.Task, theme Theme) browser {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}

	l := list.New(items, taskDelegate{theme: theme}, 80, 20)
	d, p := Stats(tasks)
	l.Title = fmt.Sprintf("Tasks   done %d  todo %d  total %d", d, p, len(tasks))
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.Title = theme.Title
	l.FilterInput.Prompt = "/ "
	extra := func() []key.Binding { return []key.Binding{doneKey, deleteKey, undoKey} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra
	l.KeyMap.Quit = quitKey

	return browser{list: l, theme: theme}
}

func (m browser) Init() tea.Cmd { return nil }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit

		case key.Matches(msg, doneKey):
			it, i, ok := m.selected()
			if ok && it.task.State != model.Done {
				it.task.State = model.Done
				m.list.SetItem(i, it)
				m.result.Done = append(m.result.Done, it.task.ID)
				m.refilter()
			}
			return m, nil

		case key.Matches(msg, deleteKey):
			if it, i, ok := m.selected(); ok {
				tmp := it
				m.undoItem = &tmp
				m.undoIndex = i
				m.list.RemoveItem(i)
				m.result.Deleted = append(m.result.Deleted, it.task.ID)
				m.refilter()
			}
			return m, nil

		case key.Matches(msg, undoKey):
			if m.undoItem != nil {
				idx := m.undoIndex
				if idx > len(m.list.Items()) {
					idx = len(m.list.Items())
				}
				m.list.InsertItem(idx, *m.undoItem)
				m.result.Deleted = removeID(m.result.Deleted, m.undoItem.task.ID)
				m.undoItem = nil
				m.refilter()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selected returns the highlighted task and its position in the full item
// list. Index() is a position in the filtered view, which SetItem and
// RemoveItem do not use.
func (m browser) selected() (taskItem, int, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return taskItem{}, -1, false
	}
	for i, li := range m.list.Items() {
		if other, ok := li.(taskItem); ok && other.task.ID == it.task.ID {
			return it, i, true
		}
	}
	return taskItem{}, -1, false
}

// refilter recomputes the visible rows after the item list changed under
// an applied filter.
func (m *browser) refilter() {
	if m.list.FilterState() == list.FilterApplied {
		m.list.SetFilterText(m.list.FilterValue())
	}
}

func (m browser) View() string {
	border := lipgloss.NewStyle().
		Border(m.theme.Border).
		BorderForeground(m.theme.BorderColor).
		Padding(0, 1)
	return border.Render(m.list.View())
}

// removeID drops the last occurrence of id.
func removeID(ids []uint32, id uint32) []uint32 {
	for i := len(ids) - 1; i >= 0; i-- {
		if ids[i] == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Browse runs the interactive task browser until the user quits and
// returns the changes to apply.
func Browse(tasks []model.Task, theme Theme, opts ...tea.ProgramOption) (BrowseResult, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(newBrowser(tasks, theme), opts...).Run()
	if err != nil {
		return BrowseResult{}, fmt.Errorf("browser: %w", err)
	}
	b, ok := final.(browser)
	if !ok {
		return BrowseResult{}, nil
	}
	return b.result, nil
}

// Apply writes the browser's changes into s.
func (r BrowseResult) Apply(s *model.Store) {
	for _, id := range r.Done {
		s.MarkDone(id)
	}
	for _, id := range r.Deleted {
		s.Remove(id)
	}
}

func (r BrowseResult) String() string {
	var parts []string
	if n := len(r.Done); n > 0 {
		parts = append(parts, fmt.Sprintf("%d marked done", n))
	}
	if n := len(r.Deleted); n > 0 {
		parts = append(parts, fmt.Sprintf("%d deleted", n))
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}
