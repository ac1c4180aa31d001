package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	prompt       = "λ> "
	historyLimit = 500
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type resultMsg struct {
	out Output
	err error
}

type replModel struct {
	ctx   context.Context
	repl  *Repl
	input textinput.Model

	history []string
	// histPos == len(history) means the line being edited, not a recalled one.
	histPos int
	draft   string

	busy  bool
	width int
	err   error
}

// NewReplModel returns a Bubble Tea model around r. Earlier lines are taken
// from r.History when it is set.
func NewReplModel(ctx context.Context, r *Repl) tea.Model {
	in := textinput.New()
	in.Prompt = promptStyle.Render(prompt)
	in.Placeholder = "Id = x => x;"
	in.Focus()

	var history []string
	if r.History != nil {
		if entries, err := r.History.Recent(historyLimit); err == nil {
			for _, e := range entries {
				history = append(history, e.Text)
			}
		}
	}
	return &replModel{
		ctx:     ctx,
		repl:    r,
		input:   in,
		history: history,
		histPos: len(history),
		width:   80,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			return m, m.submit()
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		}
	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.out.Quit {
			return m, tea.Quit
		}
		text := strings.TrimRight(msg.out.Text, "\n")
		if text == "" {
			return m, nil
		}
		return m, tea.Println(text)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = max(msg.Width-runewidth.StringWidth(prompt)-1, 10)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) != "" {
		if n := len(m.history); n == 0 || m.history[n-1] != line {
			m.history = append(m.history, line)
		}
	}
	m.histPos, m.draft = len(m.history), ""
	m.busy = true

	ctx, r := m.ctx, m.repl
	echo := tea.Println(promptStyle.Render(prompt) + line)
	run := func() tea.Msg {
		out, err := r.Execute(ctx, line)
		return resultMsg{out: out, err: err}
	}
	return tea.Sequence(echo, run)
}

func (m *replModel) recall(delta int) {
	pos := m.histPos + delta
	if pos < 0 || pos > len(m.history) {
		return
	}
	if m.histPos == len(m.history) {
		m.draft = m.input.Value()
	}
	m.histPos = pos
	if pos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[pos])
	}
	m.input.CursorEnd()
}

func (m *replModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	hint := ":help for commands, ctrl+d to quit"
	if m.busy {
		hint = "normalizing..."
	}
	b.WriteString(hintStyle.Render(truncate(hint, m.width)))
	return b.String()
}

// Err is the cancellation error that ended the program, if any.
func Err(m tea.Model) error {
	if rm, ok := m.(*replModel); ok {
		return rm.err
	}
	return nil
}
