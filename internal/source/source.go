// Package source содержит источники аудиофайлов: выбор отдельных файлов и каталогов
package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/samber/lo"
)

// ErrNoAudio возвращается, когда среди выбранного не нашлось ни одного аудиофайла
var ErrNoAudio = errors.New("аудиофайлы не найдены")

// SelectedFilesLabel подпись источника при выборе отдельных файлов
const SelectedFilesLabel = "Выбранные файлы"

// DefaultExtensions расширения, которые считаются аудиофайлами по умолчанию
var DefaultExtensions = []string{".mp3", ".wav"}

// Handle ссылка на воспроизводимый файл. Имя используется как идентификатор в рамках сессии
type Handle interface {
	Name() string
	Path() string
	Open() (io.ReadCloser, error)
}

// File реализует Handle для файла на диске
type File struct {
	path string
}

// NewFile создает Handle для файла по указанному пути
func NewFile(path string) *File {
	return &File{path: path}
}

// Name возвращает имя файла без каталога
func (f *File) Name() string {
	return filepath.Base(f.path)
}

// Path возвращает полный путь к файлу
func (f *File) Path() string {
	return f.path
}

// Open открывает файл на чтение
func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// Selector отбирает аудиофайлы из выбранных пользователем путей
type Selector struct {
	extensions []string
	logger     *slog.Logger
}

// SelectorOption настраивает Selector
type SelectorOption func(*Selector)

// WithLogger задает логгер для фоновых операций (наблюдение за каталогом)
func WithLogger(logger *slog.Logger) SelectorOption {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSelector создает новый Selector. Пустой список расширений заменяется DefaultExtensions
func NewSelector(extensions []string, opts ...SelectorOption) *Selector {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	s := &Selector{
		extensions: lo.Map(extensions, func(ext string, _ int) string {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			return ext
		}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extensions возвращает нормализованный список расширений
func (s *Selector) Extensions() []string {
	return s.extensions
}

// SelectFiles отбирает аудиофайлы из списка путей
func (s *Selector) SelectFiles(paths []string) ([]Handle, string, error) {
	handles := make([]Handle, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, "", fmt.Errorf("ошибка чтения файла %s: %w", path, err)
		}
		if info.IsDir() || !s.accepts(path) {
			continue
		}
		handles = append(handles, NewFile(path))
	}

	if len(handles) == 0 {
		return nil, "", ErrNoAudio
	}
	return handles, SelectedFilesLabel, nil
}

// SelectDirectory отбирает аудиофайлы из каталога. При recursive обходятся и подкаталоги
func (s *Selector) SelectDirectory(dir string, recursive bool) ([]Handle, string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка разбора пути %s: %w", dir, err)
	}

	handles, err := s.scan(abs, recursive)
	if err != nil {
		return nil, "", err
	}
	if len(handles) == 0 {
		return nil, "", ErrNoAudio
	}
	return handles, filepath.Base(abs), nil
}

// scan собирает аудиофайлы каталога в лексикографическом порядке
func (s *Selector) scan(dir string, recursive bool) ([]Handle, error) {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения каталога %s: %w", dir, err)
		}
		handles := make([]Handle, 0, len(entries))
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.Type().IsRegular() && s.accepts(path) {
				handles = append(handles, NewFile(path))
			}
		}
		return handles, nil
	}

	var handles []Handle
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && s.accepts(path) {
			handles = append(handles, NewFile(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка обхода каталога %s: %w", dir, err)
	}
	return handles, nil
}

// accepts проверяет расширение и сигнатуру файла
func (s *Selector) accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !lo.Contains(s.extensions, ext) {
		return false
	}
	return sniff(path, ext)
}

// expectedFileTypes типы файлов, которые tag.Identify сообщает для известных расширений.
// WAV библиотека не распознает, поэтому для него ожидается UnknownFileType
var expectedFileTypes = map[string]tag.FileType{
	".mp3": tag.MP3,
	".wav": tag.UnknownFileType,
}

// sniff отбрасывает файлы, чья сигнатура явно противоречит расширению
// (например, FLAC, переименованный в .mp3). Нераспознанные файлы пропускаются
func sniff(path, ext string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, fileType, err := tag.Identify(f)
	if err != nil || fileType == tag.UnknownFileType {
		return true
	}

	want, ok := expectedFileTypes[ext]
	return !ok || fileType == want
}
