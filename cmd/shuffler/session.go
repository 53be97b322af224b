package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// createSessionCommand создает группу команд для работы с сохраненной сессией
func (app *Application) createSessionCommand(ctx context.Context) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset the saved playback session",
	}

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved play order and current file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.showSession(ctx, cmd.OutOrStdout())
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.clearSession(ctx, cmd.OutOrStdout())
		},
	})

	return sessionCmd
}

func (app *Application) showSession(ctx context.Context, w io.Writer) error {
	manager, err := app.sessionManager()
	if err != nil {
		return err
	}

	snap, found, err := manager.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(w, "💾 Сохраненной сессии нет.")
		return nil
	}

	fmt.Fprintf(w, "💾 Сессия %q (%s)\n", manager.Key(), app.Config.StateBackend)
	fmt.Fprintf(w, "🎵 Текущий файл: %s (позиция %d)\n\n", snap.CurrentFile, snap.CurrentIndex+1)
	for i, name := range snap.Order {
		marker := " "
		if i == snap.CurrentIndex && name == snap.CurrentFile {
			marker = "♪"
		}
		fmt.Fprintf(w, "%s %4d. %s\n", marker, i+1, name)
	}
	return nil
}

func (app *Application) clearSession(ctx context.Context, w io.Writer) error {
	manager, err := app.sessionManager()
	if err != nil {
		return err
	}

	if err := manager.Clear(ctx); err != nil {
		return err
	}

	fmt.Fprintln(w, "✅ Сохраненная сессия удалена")
	return nil
}
