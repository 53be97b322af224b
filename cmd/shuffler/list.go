package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-shuffler/internal/source"
	"github.com/hazadus/go-shuffler/internal/utils"
)

const listNameWidth = 70

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [folder or files...]",
		Short: "List audio files that would be shuffled",
		Long:  `Display the audio files found in a folder or among the given files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listFiles(cmd.OutOrStdout(), args)
		},
	}
}

func (app *Application) listFiles(w io.Writer, args []string) error {
	paths := app.sourcePaths(args)
	if len(paths) == 0 {
		return fmt.Errorf("каталог музыки %s не найден, укажите папку или файлы", app.Config.MusicDir)
	}

	sel, err := source.NewSelector(app.Config.Extensions, source.WithLogger(app.Logger)).Select(paths, app.Config.Recursive)
	if errors.Is(err, source.ErrNoAudio) {
		fmt.Fprintln(w, "📚 Аудиофайлы не найдены.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "📚 %s: найдено файлов: %d\n\n", sel.Label, len(sel.Handles))
	for i, h := range sel.Handles {
		fmt.Fprintf(w, "%4d. %s\n", i+1, utils.TruncateString(h.Name(), listNameWidth))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "💡 Используйте 'shuffler play' для воспроизведения в случайном порядке")
	return nil
}
