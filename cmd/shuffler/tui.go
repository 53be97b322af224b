package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-shuffler/internal/engine"
	"github.com/hazadus/go-shuffler/internal/output"
	"github.com/hazadus/go-shuffler/internal/session"
	"github.com/hazadus/go-shuffler/internal/source"
	"github.com/hazadus/go-shuffler/internal/tui"
	tuiapp "github.com/hazadus/go-shuffler/internal/tui/app"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [folder or files...]",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for shuffling and playing audio files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.launchTUI(cmd.Context(), args)
		},
	}
}

func (app *Application) launchTUI(ctx context.Context, args []string) error {
	manager, err := app.sessionManager()
	if err != nil {
		return err
	}

	// Последнее сохранение должно завершиться и после отмены контекста
	autosaver := session.NewAutosaver(context.WithoutCancel(ctx), manager)
	defer autosaver.Close()

	factory := output.NewFactory(app.Config.SampleRate, app.Logger)
	eng := engine.New(factory.New,
		engine.WithObserver(autosaver),
		engine.WithLogger(app.Logger),
	)

	tuiApp := tui.NewApp(tuiapp.Options{
		Engine:    eng,
		Events:    factory.Events(),
		Selector:  source.NewSelector(app.Config.Extensions, source.WithLogger(app.Logger)),
		Session:   manager,
		Paths:     app.sourcePaths(args),
		MusicDir:  app.Config.MusicDir,
		Recursive: app.Config.Recursive,
		SeekStep:  time.Duration(app.Config.SeekStep) * time.Second,
		Logger:    app.Logger,
	})

	return tuiApp.Run(ctx)
}
