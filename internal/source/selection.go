package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// Selection результат выбора источника
type Selection struct {
	Handles []Handle
	Label   string
	// Dir каталог источника. Пуст, если выбраны отдельные файлы
	Dir string
}

// Select выбирает источник по путям, введенным пользователем. Единственный путь
// к каталогу открывает каталог, иначе пути и шаблоны (*.mp3) раскрываются в список файлов
func (s *Selector) Select(paths []string, recursive bool) (Selection, error) {
	if len(paths) == 0 {
		return Selection{}, ErrNoAudio
	}

	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			handles, label, err := s.SelectDirectory(paths[0], recursive)
			if err != nil {
				return Selection{}, err
			}
			dir, _ := filepath.Abs(paths[0])
			return Selection{Handles: handles, Label: label, Dir: dir}, nil
		}
	}

	files, err := expand(paths)
	if err != nil {
		return Selection{}, err
	}
	handles, label, err := s.SelectFiles(files)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Handles: handles, Label: label}, nil
}

// expand раскрывает шаблоны. Путь без совпадений остается как есть, чтобы ошибку сообщил os.Stat
func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("ошибка разбора шаблона %s: %w", p, err)
		}
		if len(matches) == 0 {
			files = append(files, p)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
