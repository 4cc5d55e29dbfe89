package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// prompt is the interactive front end: a single input line, with each
// command's output printed above it.
type prompt struct {
	s     *Session
	buf   *bytes.Buffer
	input textinput.Model

	err  error
	done bool
}

func newPrompt(s *Session, buf *bytes.Buffer) prompt {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type a command, or help"
	ti.CharLimit = MaxLineBytes
	ti.Focus()
	return prompt{s: s, buf: buf, input: ti}
}

func (m prompt) Init() tea.Cmd { return textinput.Blink }

func (m prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.done = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m prompt) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	quit, err := m.s.Exec(line)
	out := strings.TrimRight(m.buf.String(), "\n")
	m.buf.Reset()

	cmds := []tea.Cmd{tea.Println(m.input.Prompt + line)}
	if out != "" {
		cmds = append(cmds, tea.Println(out))
	}
	if IsFatal(err) {
		m.err = err
		quit = true
	}
	if quit {
		m.done = true
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Sequence(cmds...)
}

func (m prompt) View() string {
	if m.done {
		return ""
	}
	return m.input.View()
}

// RunPrompt runs the session as a bubbletea program until quit, ctrl+c or
// ctrl+d. It returns the first fatal error.
func RunPrompt(s *Session, opts ...tea.ProgramOption) error {
	var buf bytes.Buffer
	orig := s.p
	s.p = orig.To(&buf)
	defer func() { s.p = orig }()

	final, err := tea.NewProgram(newPrompt(s, &buf), opts...).Run()
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	if m, ok := final.(prompt); ok {
		return m.err
	}
	return nil
}
