package main

import "os"

// sourcePaths возвращает пути из аргументов или каталог музыки по умолчанию
func (app *Application) sourcePaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if dirExists(app.Config.MusicDir) {
		return []string{app.Config.MusicDir}
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
