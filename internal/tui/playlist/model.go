// Package playlist содержит модель списка воспроизведения для TUI
package playlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-shuffler/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	currentItemStyle  = lipgloss.NewStyle().PaddingLeft(4).Bold(true).Foreground(lipgloss.Color("205"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
)

const (
	maxNameWidth = 60
	// reservedHeight строки, занятые плеером и справкой
	reservedHeight = 12
)

// entryItem реализует интерфейс list.Item для файла
type entryItem struct {
	position int
	name     string
	current  bool
}

func (i entryItem) FilterValue() string { return i.name }

// entryDelegate реализует отображение элементов списка
type entryDelegate struct{}

func (d entryDelegate) Height() int                             { return 1 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(entryItem)
	if !ok {
		return
	}

	marker := " "
	if i.current {
		marker = "♪"
	}
	str := fmt.Sprintf("%s %3d. %s", marker, i.position+1, utils.TruncateString(i.name, maxNameWidth))

	switch {
	case index == m.Index():
		fmt.Fprint(w, selectedItemStyle.Render("> "+str))
	case i.current:
		fmt.Fprint(w, currentItemStyle.Render(str))
	default:
		fmt.Fprint(w, itemStyle.Render(str))
	}
}

// Model представляет модель списка воспроизведения
type Model struct {
	list    list.Model
	current int
}

// NewModel создает пустой список
func NewModel() *Model {
	l := list.New(nil, entryDelegate{}, 0, 0)
	l.Title = "Плейлист"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	return &Model{list: l, current: -1}
}

// SetEntries заменяет содержимое списка. current < 0 означает, что ничего не играет
func (m *Model) SetEntries(title string, names []string, current int) {
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = entryItem{position: i, name: name, current: i == current}
	}

	m.list.Title = title
	m.list.SetItems(items)

	// Курсор списка следует за играющим треком
	if current >= 0 && current < len(names) && current != m.current {
		m.list.Select(current)
	}
	m.current = current
}

// Len возвращает число элементов
func (m *Model) Len() int {
	return len(m.list.Items())
}

// Selected возвращает позицию выбранного элемента или -1 для пустого списка
func (m *Model) Selected() int {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return -1
	}
	return item.position
}

// Current возвращает позицию подсвеченного элемента
func (m *Model) Current() int {
	return m.current
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(max(msg.Height-reservedHeight, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	if m.Len() == 0 {
		return itemStyle.Render("Источник не выбран. Нажмите 'o', чтобы открыть папку или файлы")
	}
	return strings.TrimRight(m.list.View(), "\n")
}
