package playlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	model := NewModel()
	require.NotNil(t, model)

	assert.Zero(t, model.Len())
	assert.Equal(t, -1, model.Selected())
	assert.Contains(t, model.View(), "Источник не выбран")
}

func TestSetEntriesFollowsCurrent(t *testing.T) {
	model := NewModel()
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	model.SetEntries("Music", []string{"a.mp3", "b.mp3", "c.mp3"}, 2)

	require.Equal(t, 3, model.Len())
	assert.Equal(t, 2, model.Current())
	assert.Equal(t, 2, model.Selected(), "выбор следует за текущим треком")

	view := model.View()
	assert.Contains(t, view, "♪")
	assert.Contains(t, view, "Music")
}

func TestSelectionMovesWithKeys(t *testing.T) {
	model := NewModel()
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model.SetEntries("Music", []string{"a.mp3", "b.mp3", "c.mp3"}, -1)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, model.Selected())

	// Обновление без смены текущего трека не сбрасывает выбор
	model.SetEntries("Music", []string{"a.mp3", "b.mp3", "c.mp3"}, -1)
	assert.Equal(t, 1, model.Selected())
}
