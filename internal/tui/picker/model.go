// Package picker содержит экран выбора источника: папки, файла или шаблона файлов
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
)

// SubmitMsg отправляется, когда пользователь выбрал путь
type SubmitMsg struct {
	Path      string
	Recursive bool
}

// CancelMsg отправляется при отмене выбора
type CancelMsg struct{}

// Model представляет экран выбора источника
type Model struct {
	input     textinput.Model
	recursive bool
	err       string
}

// NewModel создает экран выбора с начальным путем
func NewModel(initialPath string, recursive bool) *Model {
	input := textinput.New()
	input.Placeholder = "Путь к папке, файлу или шаблону (*.mp3)"
	input.SetValue(initialPath)
	input.Focus()
	input.PromptStyle = focusedStyle
	input.TextStyle = focusedStyle

	return &Model{
		input:     input,
		recursive: recursive,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, func() tea.Msg {
				return CancelMsg{}
			}

		case "ctrl+r":
			m.recursive = !m.recursive
			return m, nil

		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				m.err = "Путь не может быть пустым"
				return m, nil
			}
			m.err = ""
			recursive := m.recursive
			return m, func() tea.Msg {
				return SubmitMsg{Path: path, Recursive: recursive}
			}
		}

	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-20, 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Recursive сообщает, включен ли обход вложенных папок
func (m *Model) Recursive() bool {
	return m.recursive
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📂 Выбор источника"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	recursive := "нет"
	if m.recursive {
		recursive = "да"
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("Вложенные папки: %s", recursive)))

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("❌ " + m.err))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Enter: открыть • ctrl+r: вложенные папки • esc: отмена"))
	return b.String()
}
