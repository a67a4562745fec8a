package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pageSize = 10

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Abort  key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Choose: key.NewBinding(key.WithKeys("enter")),
	Abort:  key.NewBinding(key.WithKeys("ctrl+c", "esc")),
}

// Terminal задаёт вопросы в терминале через bubbletea
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal создаёт Prompter поверх потоков ввода-вывода
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := program.Run()
	if err != nil {
		if isAbort(err) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}

// isAbort сообщает, что программа остановлена сигналом, а не сбоем.
// Без TTY Ctrl+C приходит как SIGINT и даёт ErrInterrupted.
func isAbort(err error) bool {
	return errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)
}

func (t *Terminal) Select(ctx context.Context, message string, options []Option) (Option, error) {
	if len(options) == 0 {
		return Option{}, ErrNoOptions
	}

	final, err := t.run(ctx, newSelectModel(message, options))
	if err != nil {
		return Option{}, err
	}

	m := final.(selectModel)
	if m.aborted {
		return Option{}, ErrAborted
	}
	return m.options[m.cursor], nil
}

func (t *Terminal) Input(ctx context.Context, message string) (string, error) {
	final, err := t.run(ctx, newInputModel(message))
	if err != nil {
		return "", err
	}

	m := final.(inputModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}

// selectModel - список вариантов с курсором
type selectModel struct {
	message string
	options []Option
	cursor  int
	offset  int
	done    bool
	aborted bool
}

func newSelectModel(message string, options []Option) selectModel {
	return selectModel{message: message, options: options}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Abort):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Choose):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.options) - 1
		}
	case key.Matches(keyMsg, keys.Down):
		m.cursor++
		if m.cursor >= len(m.options) {
			m.cursor = 0
		}
	}

	// Окно прокрутки следует за курсором
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+pageSize {
		m.offset = m.cursor - pageSize + 1
	}

	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return questionStyle.Render("? "+m.message) + " " + answerStyle.Render(m.options[m.cursor].Label) + "\n"
	}
	if m.aborted {
		return questionStyle.Render("? "+m.message) + "\n"
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render("? " + m.message))
	b.WriteString("\n")

	end := min(m.offset+pageSize, len(m.options))
	for i := m.offset; i < end; i++ {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + m.options[i].Label))
		} else {
			b.WriteString("  " + m.options[i].Label)
		}
		b.WriteString("\n")
	}

	if len(m.options) > pageSize {
		b.WriteString(hintStyle.Render("(move up and down to reveal more choices)"))
		b.WriteString("\n")
	}

	return b.String()
}

// inputModel - однострочный ввод
type inputModel struct {
	message string
	input   textinput.Model
	done    bool
	aborted bool
}

func newInputModel(message string) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 100
	ti.Focus()

	return inputModel{message: message, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.Choose):
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return questionStyle.Render("? "+m.message) + " " + answerStyle.Render(m.input.Value()) + "\n"
	}
	return questionStyle.Render("? "+m.message) + " " + m.input.View() + "\n"
}
