package engine

import (
	"time"

	"github.com/hazadus/go-shuffler/internal/source"
)

// PlayOrder порядок воспроизведения. Движок никогда не изменяет его на месте,
// а заменяет целиком
type PlayOrder []source.Handle

// Names возвращает имена файлов в порядке воспроизведения
func (o PlayOrder) Names() []string {
	names := make([]string, len(o))
	for i, h := range o {
		names[i] = h.Name()
	}
	return names
}

// sameOrder сравнивает порядки поэлементно по ссылкам на файлы
func sameOrder(a, b PlayOrder) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Cursor текущая позиция в порядке воспроизведения.
// Если Handle != nil, то Handle == order[Index]
type Cursor struct {
	Index  int
	Handle source.Handle
}

// Status отражает фактическое состояние вывода
type Status struct {
	Playing  bool
	Current  time.Duration
	Duration time.Duration
}

// OutputID идентифицирует экземпляр вывода. События от освобожденных выводов игнорируются
type OutputID uint64

// Output объект воспроизведения, привязанный к одному файлу
type Output interface {
	Play()
	Pause()
	Paused() bool
	// Seek перематывает на позицию, ограниченную длительностью трека,
	// и возвращает фактическую позицию
	Seek(pos time.Duration) time.Duration
	Position() time.Duration
	Close() error
}

// OutputFactory создает вывод для файла. События вывод публикует с переданным id
type OutputFactory func(id OutputID, h source.Handle) (Output, error)

// Observer получает уведомления при смене порядка воспроизведения или курсора
type Observer interface {
	StateChanged(order PlayOrder, cursor Cursor)
}
