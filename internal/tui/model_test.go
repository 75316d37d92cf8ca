package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []string
}

func (r *recorder) WriteAll(text string) error {
	r.got = append(r.got, text)
	return nil
}

func fakeLookup(calls *[]string) LookupFunc {
	return func(_ context.Context, verb string) (Result, error) {
		*calls = append(*calls, verb)
		if verb == "xyz" {
			return Result{}, errors.New("fetching xyz: 404")
		}
		return Result{
			Header: []string{"to speak (нсв, св)", "говорить / сказать"},
			Lines:  []string{"speak (нсв|pres), я говорю / скажу\n", "speak (нсв|pres), ты говоришь / скажешь\n"},
		}, nil
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestModel_LookupFlow(t *testing.T) {
	var calls []string
	clip := &recorder{}
	m := New(context.Background(), fakeLookup(&calls), clip)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m.input.SetValue("  говорить ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Looking up говорить")

	m, _ = update(t, m, cmd())
	assert.Equal(t, []string{"говорить"}, calls)
	assert.False(t, m.loading)
	assert.Equal(t, "говорить", m.verb)

	view := m.View()
	assert.Contains(t, view, "to speak (нсв, св)")
	assert.Contains(t, view, "speak (нсв|pres), я говорю / скажу")
	assert.Contains(t, view, "ctrl+y: copy")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	assert.True(t, m.copied)
	assert.Equal(t, []string{"speak (нсв|pres), я говорю / скажу\nspeak (нсв|pres), ты говоришь / скажешь"}, clip.got)
	assert.Contains(t, m.View(), "Copied to clipboard")

	m, _ = update(t, m, clearCopiedMsg{})
	assert.False(t, m.copied)
}

func TestModel_LookupError(t *testing.T) {
	var calls []string
	m := New(context.Background(), fakeLookup(&calls), nil)

	m.input.SetValue("xyz")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "fetching xyz: 404")
	assert.Empty(t, m.result.Lines)
}

func TestModel_FailedLookupClearsPreviousResult(t *testing.T) {
	var calls []string
	m := New(context.Background(), fakeLookup(&calls), nil)

	m.input.SetValue("говорить")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	require.NotEmpty(t, m.result.Lines)

	m.input.SetValue("xyz")
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	view := m.View()
	assert.Contains(t, view, "fetching xyz: 404")
	assert.NotContains(t, view, "to speak")
	assert.NotContains(t, view, "говорю")
	assert.Empty(t, m.verb)
	assert.NotContains(t, view, "ctrl+y: copy")
}

func TestModel_EmptyInputIgnored(t *testing.T) {
	var calls []string
	m := New(context.Background(), fakeLookup(&calls), nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.Empty(t, calls)
}

func TestModel_CopyWithoutResult(t *testing.T) {
	var calls []string
	clip := &recorder{}
	m := New(context.Background(), fakeLookup(&calls), clip)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Nil(t, cmd)
	assert.False(t, m.copied)
	assert.Empty(t, clip.got)
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := New(context.Background(), nil, nil)
		_, cmd := update(t, m, tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_TruncatesToWidth(t *testing.T) {
	var calls []string
	m := New(context.Background(), fakeLookup(&calls), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 30})

	m.input.SetValue("говорить")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	assert.Contains(t, m.View(), "…")
	assert.NotContains(t, m.View(), "скажешь")
}

func TestRenderHeader(t *testing.T) {
	assert.Equal(t, "", RenderHeader(nil))
	out := RenderHeader([]string{"to speak (нсв, св)", "говорить / сказать"})
	assert.Contains(t, out, "to speak (нсв, св)")
	assert.Contains(t, out, "говорить / сказать")
}
