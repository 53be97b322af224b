// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-shuffler/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	options app.Options
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(options app.Options) *App {
	return &App{options: options}
}

// Run запускает TUI приложение и блокируется до выхода из него
func (tuiApp *App) Run(ctx context.Context) error {
	tuiApp.options.Context = ctx
	model := app.NewMainModel(tuiApp.options)

	// Потеря фокуса терминала передается движку как уход в фон
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()

	// Закрываем плеер после завершения программы
	model.Close()

	// Прерывание сигналом считается обычным выходом
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
