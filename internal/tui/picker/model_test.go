package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	model := NewModel("  /music  ", false)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok, "ожидался SubmitMsg")
	assert.Equal(t, SubmitMsg{Path: "/music", Recursive: false}, msg)
}

func TestSubmitEmptyPath(t *testing.T) {
	model := NewModel("", false)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "Путь не может быть пустым")
}

func TestToggleRecursive(t *testing.T) {
	model := NewModel("/music", false)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.True(t, model.Recursive())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitMsg{Path: "/music", Recursive: true}, cmd())
}

func TestCancel(t *testing.T) {
	model := NewModel("/music", true)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, CancelMsg{}, cmd())
}

func TestTyping(t *testing.T) {
	model := NewModel("", false)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/tmp")})
	assert.Equal(t, "/tmp", model.input.Value())
}
