// Package app содержит основную логику TUI приложения
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-shuffler/internal/engine"
	"github.com/hazadus/go-shuffler/internal/metadata"
	"github.com/hazadus/go-shuffler/internal/session"
	"github.com/hazadus/go-shuffler/internal/source"
	"github.com/hazadus/go-shuffler/internal/tui/picker"
	"github.com/hazadus/go-shuffler/internal/tui/player"
	"github.com/hazadus/go-shuffler/internal/tui/playlist"
)

var helpStyle = lipgloss.NewStyle().PaddingLeft(2).MarginTop(1)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// PlayerScreen - экран плеера со списком воспроизведения
	PlayerScreen ScreenType = iota
	// SourceScreen - экран выбора источника
	SourceScreen
)

// EngineEventMsg доставляет событие вывода в цикл обновления
type EngineEventMsg struct {
	Event engine.Event
}

// SourceLoadedMsg отправляется после выбора источника
type SourceLoadedMsg struct {
	Selection source.Selection
	Recursive bool
	Updates   <-chan []source.Handle
	StopWatch context.CancelFunc
}

// SourceErrorMsg отправляется, если источник выбрать не удалось
type SourceErrorMsg struct {
	Err error
}

// LibraryChangedMsg отправляется при изменении файлов в отслеживаемом каталоге
type LibraryChangedMsg struct {
	Handles []source.Handle
	Updates <-chan []source.Handle
}

// SessionLoadedMsg содержит загруженное состояние сессии
type SessionLoadedMsg struct {
	Snapshot session.Snapshot
	Found    bool
}

// TagsLoadedMsg содержит теги текущего файла
type TagsLoadedMsg struct {
	Handle source.Handle
	Tags   metadata.Tags
}

// SessionErrorMsg отправляется при ошибке загрузки сессии
type SessionErrorMsg struct {
	Err error
}

// Options зависимости главной модели
type Options struct {
	Context   context.Context
	Engine    *engine.Engine
	Events    <-chan engine.Event
	Selector  *source.Selector
	Session   *session.Manager
	Paths     []string // Источник, открываемый при запуске
	MusicDir  string
	Recursive bool
	SeekStep  time.Duration
	Logger    *slog.Logger
}

// MainModel представляет главную модель TUI
type MainModel struct {
	ctx      context.Context
	engine   *engine.Engine
	events   <-chan engine.Event
	selector *source.Selector
	session  *session.Manager
	logger   *slog.Logger

	initialPaths []string
	musicDir     string
	recursive    bool
	seekStep     time.Duration

	candidates []source.Handle
	label      string
	sourceDir  string
	updates    <-chan []source.Handle
	stopWatch  context.CancelFunc

	tagsHandle source.Handle
	tags       metadata.Tags

	currentScreen ScreenType
	playerModel   *player.Model
	playlistModel *playlist.Model
	pickerModel   *picker.Model
	keys          keyMap
	help          help.Model
}

// NewMainModel создает новую главную модель
func NewMainModel(opts Options) *MainModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = 5 * time.Second
	}

	return &MainModel{
		ctx:           opts.Context,
		engine:        opts.Engine,
		events:        opts.Events,
		selector:      opts.Selector,
		session:       opts.Session,
		logger:        opts.Logger,
		initialPaths:  opts.Paths,
		musicDir:      opts.MusicDir,
		recursive:     opts.Recursive,
		seekStep:      opts.SeekStep,
		currentScreen: PlayerScreen,
		playerModel:   player.NewModel(),
		playlistModel: playlist.NewModel(),
		keys:          defaultKeyMap(),
		help:          help.New(),
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	cmds := []tea.Cmd{listenEvents(m.events)}
	if len(m.initialPaths) > 0 {
		cmds = append(cmds, m.loadSource(m.initialPaths, m.recursive))
	}
	return tea.Batch(cmds...)
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	if tagsCmd := m.refreshTags(); tagsCmd != nil {
		cmd = tea.Batch(cmd, tagsCmd)
	}
	return model, cmd
}

func (m *MainModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EngineEventMsg:
		m.engine.Dispatch(msg.Event)
		m.sync()
		return m, listenEvents(m.events)

	case tea.BlurMsg:
		m.engine.Hide()
		return m, nil

	case tea.FocusMsg:
		m.engine.Show()
		m.sync()
		return m, nil

	case SourceLoadedMsg:
		m.setSource(msg)
		m.currentScreen = PlayerScreen
		m.pickerModel = nil
		m.sync()
		if m.updates != nil {
			return m, listenLibrary(m.updates)
		}
		return m, nil

	case LibraryChangedMsg:
		// Сообщение от прежнего наблюдателя
		if msg.Updates != m.updates {
			return m, nil
		}
		m.candidates = msg.Handles
		m.logger.Debug("список файлов обновлен", "dir", m.sourceDir, "count", len(msg.Handles))
		m.sync()
		return m, listenLibrary(m.updates)

	case SourceErrorMsg:
		m.logger.Error("ошибка выбора источника", "error", msg.Err)
		return m, nil

	case SessionLoadedMsg:
		m.applySession(msg)
		m.sync()
		return m, nil

	case TagsLoadedMsg:
		if msg.Handle == m.tagsHandle {
			m.tags = msg.Tags
			m.sync()
		}
		return m, nil

	case SessionErrorMsg:
		m.logger.Error("ошибка загрузки сессии", "error", msg.Err)
		return m, nil

	case picker.SubmitMsg:
		m.recursive = msg.Recursive
		return m, m.loadSource([]string{msg.Path}, msg.Recursive)

	case picker.CancelMsg:
		m.currentScreen = PlayerScreen
		m.pickerModel = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.playerModel, _ = m.playerModel.Update(msg)
		m.playlistModel, _ = m.playlistModel.Update(msg)
		if m.pickerModel != nil {
			m.pickerModel, _ = m.pickerModel.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.currentScreen == SourceScreen && m.pickerModel != nil {
			var cmd tea.Cmd
			m.pickerModel, cmd = m.pickerModel.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	if m.currentScreen == SourceScreen && m.pickerModel != nil {
		var cmd tea.Cmd
		m.pickerModel, cmd = m.pickerModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey обрабатывает горячие клавиши главного экрана
func (m *MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Open):
		m.pickerModel = picker.NewModel(m.defaultPath(), m.recursive)
		m.currentScreen = SourceScreen
		return m, m.pickerModel.Init()

	case key.Matches(msg, m.keys.Shuffle):
		if len(m.candidates) == 0 {
			m.logger.Info("нет файлов для воспроизведения")
			return m, nil
		}
		m.engine.StartShuffled(m.candidates)

	case key.Matches(msg, m.keys.Restore):
		cmd = m.loadSession()

	case key.Matches(msg, m.keys.Previous):
		m.engine.Previous()

	case key.Matches(msg, m.keys.Next):
		m.engine.Next()

	case key.Matches(msg, m.keys.Toggle):
		m.engine.TogglePause()

	case key.Matches(msg, m.keys.Back):
		m.engine.SeekBy(-m.seekStep)

	case key.Matches(msg, m.keys.Forward):
		m.engine.SeekBy(m.seekStep)

	case key.Matches(msg, m.keys.SeekTo):
		// Пока длительность неизвестна, перемотка вернула бы трек в начало
		if duration := m.engine.Status().Duration; duration > 0 {
			tenths := time.Duration(msg.Runes[0] - '0')
			m.engine.Seek(duration * tenths / 10)
		}

	case key.Matches(msg, m.keys.PlayChosen):
		order := m.engine.Order()
		if chosen := m.playlistModel.Selected(); len(order) > 0 && chosen >= 0 {
			m.engine.PlayAt(order, chosen)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		m.playlistModel, cmd = m.playlistModel.Update(msg)
	}

	m.sync()
	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case SourceScreen:
		if m.pickerModel != nil {
			return m.pickerModel.View()
		}
		return "Ошибка: модель выбора источника не инициализирована"

	case PlayerScreen:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.playerModel.View(),
			"",
			m.playlistModel.View(),
			helpStyle.Render(m.help.View(m.keys)),
		)

	default:
		return "Неизвестный экран"
	}
}

// Close закрывает ресурсы главной модели
func (m *MainModel) Close() {
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
	m.engine.Close()
}

// setSource заменяет набор файлов и наблюдателя каталога
func (m *MainModel) setSource(msg SourceLoadedMsg) {
	if m.stopWatch != nil {
		m.stopWatch()
	}

	m.candidates = msg.Selection.Handles
	m.label = msg.Selection.Label
	m.sourceDir = msg.Selection.Dir
	m.recursive = msg.Recursive
	m.updates = msg.Updates
	m.stopWatch = msg.StopWatch

	m.logger.Info("источник выбран", "label", m.label, "count", len(m.candidates))
}

// applySession применяет загруженное состояние к текущему набору файлов
func (m *MainModel) applySession(msg SessionLoadedMsg) {
	if !msg.Found {
		m.logger.Debug("сохраненная сессия не найдена", "key", m.session.Key())
		return
	}
	if len(m.candidates) == 0 {
		m.logger.Info("сессию нельзя восстановить без выбранного источника")
		return
	}

	res := m.session.Apply(msg.Snapshot, m.candidates, m.engine)
	m.logger.Info("сессия восстановлена", "restored", len(res.Order), "dropped", len(res.Dropped))
}

// sync переносит состояние движка в дочерние модели
func (m *MainModel) sync() {
	order := m.engine.Order()
	cursor := m.engine.Cursor()

	title := "Файлы"
	names := make([]string, 0, len(m.candidates))
	current := -1
	if len(order) > 0 {
		title = "Плейлист"
		names = order.Names()
		if cursor.Handle != nil {
			current = cursor.Index
		}
	} else {
		for _, h := range m.candidates {
			names = append(names, h.Name())
		}
	}
	m.playlistModel.SetEntries(title, names, current)

	state := player.State{
		Label:  m.label,
		Total:  len(order),
		Status: m.engine.Status(),
	}
	if cursor.Handle != nil {
		state.Track = cursor.Handle.Name()
		state.Index = cursor.Index
		if cursor.Handle == m.tagsHandle {
			state.Tags = m.tags.String()
		}
	}
	m.playerModel.SetState(state)
}

// refreshTags начинает чтение тегов, когда сменился текущий файл
func (m *MainModel) refreshTags() tea.Cmd {
	h := m.engine.Cursor().Handle
	if h == nil || h == m.tagsHandle {
		return nil
	}

	m.tagsHandle = h
	m.tags = metadata.FromName(h.Name())
	m.sync()

	return func() tea.Msg {
		return TagsLoadedMsg{Handle: h, Tags: metadata.Read(h)}
	}
}

func (m *MainModel) defaultPath() string {
	if m.sourceDir != "" {
		return m.sourceDir
	}
	return m.musicDir
}

// loadSource выбирает файлы в фоне и, если выбран каталог, начинает следить за ним
func (m *MainModel) loadSource(paths []string, recursive bool) tea.Cmd {
	ctx, selector, logger := m.ctx, m.selector, m.logger

	return func() tea.Msg {
		sel, err := selector.Select(paths, recursive)
		if err != nil {
			return SourceErrorMsg{Err: err}
		}

		msg := SourceLoadedMsg{Selection: sel, Recursive: recursive}
		if sel.Dir == "" {
			return msg
		}

		watchCtx, cancel := context.WithCancel(ctx)
		updates, err := selector.Watch(watchCtx, sel.Dir, recursive)
		if err != nil {
			cancel()
			logger.Warn("не удалось отслеживать каталог", "dir", sel.Dir, "error", err)
			return msg
		}
		msg.Updates, msg.StopWatch = updates, cancel
		return msg
	}
}

// loadSession загружает сохраненную сессию в фоне
func (m *MainModel) loadSession() tea.Cmd {
	ctx, manager := m.ctx, m.session

	return func() tea.Msg {
		snap, found, err := manager.Load(ctx)
		if err != nil {
			return SessionErrorMsg{Err: err}
		}
		return SessionLoadedMsg{Snapshot: snap, Found: found}
	}
}

// listenEvents ждет следующее событие вывода
func listenEvents(events <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return EngineEventMsg{Event: ev}
	}
}

// listenLibrary ждет следующее изменение каталога
func listenLibrary(updates <-chan []source.Handle) tea.Cmd {
	return func() tea.Msg {
		handles, ok := <-updates
		if !ok {
			return nil
		}
		return LibraryChangedMsg{Handles: handles, Updates: updates}
	}
}
