// Package player содержит панель воспроизведения для TUI
package player

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-shuffler/internal/engine"
	"github.com/hazadus/go-shuffler/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)
)

const (
	defaultProgressWidth = 40
	maxProgressWidth     = 60
)

// State снимок состояния движка для отображения
type State struct {
	Label  string
	Track  string
	Tags   string
	Index  int
	Total  int
	Status engine.Status
}

// Model представляет панель воспроизведения
type Model struct {
	state       State
	progressBar progress.Model
}

// NewModel создает панель воспроизведения
func NewModel() *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = defaultProgressWidth

	return &Model{progressBar: prog}
}

// SetState обновляет отображаемое состояние
func (m *Model) SetState(state State) {
	m.state = state
}

// State возвращает отображаемое состояние
func (m *Model) State() State {
	return m.state
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.progressBar.Width = max(min(maxProgressWidth, msg.Width-10), 10)
	}
	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	title := titleStyle.Render("🎵 Shuffler")

	source := m.state.Label
	if source == "" {
		source = "—"
	}

	track := "Ничего не выбрано"
	if m.state.Track != "" {
		track = fmt.Sprintf("%s (%d/%d)", m.state.Track, m.state.Index+1, m.state.Total)
	}

	info := fmt.Sprintf("📁 %s\n🎵 %s", source, track)
	if m.state.Tags != "" {
		info += "\n🎤 " + m.state.Tags
	}
	trackInfo := trackInfoStyle.Render(info)

	statusIcon := "⏸️"
	if m.state.Status.Playing {
		statusIcon = "▶️"
	}
	statusText := statusStyle.Render(fmt.Sprintf("%s %s", statusIcon, formatStatus(m.state.Status.Playing)))

	timeText := utils.FormatProgress(m.state.Status.Current, m.state.Status.Duration)

	return fmt.Sprintf(
		"%s\n%s\n%s\n\n%s %s",
		title,
		trackInfo,
		statusText,
		m.progressBar.ViewAs(percent(m.state.Status)),
		timeText,
	)
}

// percent вычисляет долю проигранного
func percent(s engine.Status) float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := float64(s.Current) / float64(s.Duration)
	return min(max(p, 0), 1)
}

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}
