package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shuffler [folder or files...]",
		Short: "Shuffle and play local audio files",
		Long: `A terminal music player that plays a folder or a set of files in random order
and remembers the play order between runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.launchTUI(cmd.Context(), args)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.Config.Recursive, "recursive", "r", app.Config.Recursive,
		"Include files from subfolders")

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createTUICommand())
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createSessionCommand(ctx))

	return rootCmd
}
