package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/darkstorm/cooljigate/internal/clipboard"
	"github.com/mattn/go-runewidth"
)

// Result is what a lookup produces for one verb.
type Result struct {
	Header []string
	Lines  []string
}

// LookupFunc resolves a verb into rendered flashcards.
type LookupFunc func(ctx context.Context, verb string) (Result, error)

// chrome is the number of rows used by everything except the viewport.
const chrome = 6

// Message types
type lookupResultMsg struct {
	verb   string
	result Result
	err    error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// Model is the interactive lookup view.
type Model struct {
	ctx      context.Context
	lookup   LookupFunc
	clip     clipboard.Writer
	input    textinput.Model
	viewport viewport.Model

	verb    string
	result  Result
	err     error
	loading bool
	copied  bool

	width  int
	height int
}

// New creates a lookup model. ctx bounds every lookup it starts.
func New(ctx context.Context, lookup LookupFunc, clip clipboard.Writer) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a Russian verb..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		ctx:      ctx,
		lookup:   lookup,
		clip:     clip,
		input:    ti,
		viewport: viewport.New(80, 20),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			verb := strings.TrimSpace(m.input.Value())
			if verb == "" || m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, m.runLookup(verb)
		case "ctrl+y":
			if len(m.result.Lines) == 0 || m.clip == nil {
				return m, nil
			}
			if err := clipboard.Copy(m.clip, m.result.Lines); err != nil {
				m.err = err
				return m, nil
			}
			m.copied = true
			return m, clearCopiedAfter(2 * time.Second)
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case lookupResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.verb = ""
			m.result = Result{}
			m.refresh()
			return m, nil
		}
		m.verb = msg.verb
		m.result = msg.result
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runLookup(verb string) tea.Cmd {
	ctx, lookup := m.ctx, m.lookup
	return func() tea.Msg {
		res, err := lookup(ctx, verb)
		return lookupResultMsg{verb: verb, result: res, err: err}
	}
}

// refresh re-renders the result lines into the viewport at the current width.
func (m *Model) refresh() {
	lines := make([]string, 0, len(m.result.Lines))
	for _, l := range m.result.Lines {
		l = strings.TrimSuffix(l, "\n")
		if m.width > 0 {
			l = runewidth.Truncate(l, m.width, "…")
		}
		lines = append(lines, CardStyle.Render(l))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(LoadingStyle.Render("Looking up " + strings.TrimSpace(m.input.Value()) + "..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.result.Header) > 0 {
		b.WriteString(RenderHeader(m.result.Header))
		b.WriteString("\n")
	}
	if len(m.result.Lines) > 0 {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.copied {
		b.WriteString(CopiedStyle.Render("Copied to clipboard"))
	} else {
		help := []string{"enter: look up"}
		if len(m.result.Lines) > 0 {
			help = append(help, "↑/↓: scroll", "ctrl+y: copy")
		}
		help = append(help, "esc: quit")
		b.WriteString(HelpStyle.Render(strings.Join(help, " • ")))
	}

	return b.String()
}
