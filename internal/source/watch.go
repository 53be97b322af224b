package source

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce пауза после последнего события файловой системы перед пересканированием
const watchDebounce = 300 * time.Millisecond

// Watch следит за каталогом и присылает актуальный список аудиофайлов после изменений.
// Канал закрывается при отмене контекста
func (s *Selector) Watch(ctx context.Context, dir string, recursive bool) (<-chan []Handle, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания наблюдателя: %w", err)
	}

	if err := addWatchDirs(watcher, dir, recursive); err != nil {
		watcher.Close()
		return nil, err
	}

	updates := make(chan []Handle, 1)
	go s.watchLoop(ctx, watcher, dir, recursive, updates)
	return updates, nil
}

func (s *Selector) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, dir string, recursive bool, updates chan []Handle) {
	defer close(updates)
	defer watcher.Close()

	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if recursive && event.Has(fsnotify.Create) {
				// Новые подкаталоги тоже нужно отслеживать
				_ = addWatchDirs(watcher, event.Name, true)
			}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("ошибка наблюдения за каталогом", "dir", dir, "error", err)

		case <-timer.C:
			handles, err := s.scan(dir, recursive)
			if err != nil {
				s.logger.Warn("ошибка пересканирования каталога", "dir", dir, "error", err)
				continue
			}
			// Старый, еще не прочитанный список заменяется новым
			select {
			case <-updates:
			default:
			}
			updates <- handles
		}
	}
}

// addWatchDirs добавляет каталог (и при recursive все вложенные) в наблюдатель
func addWatchDirs(watcher *fsnotify.Watcher, root string, recursive bool) error {
	if !recursive {
		if err := watcher.Add(root); err != nil {
			return fmt.Errorf("ошибка наблюдения за каталогом %s: %w", root, err)
		}
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("ошибка наблюдения за каталогом %s: %w", path, err)
			}
		}
		return nil
	})
}
