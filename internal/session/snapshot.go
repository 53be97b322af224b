// Package session сохраняет и восстанавливает минимальное состояние сессии воспроизведения
package session

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-shuffler/internal/engine"
	"github.com/hazadus/go-shuffler/internal/source"
)

// DefaultKey ключ, под которым хранится состояние сессии
const DefaultKey = "musicPlayerState"

// snapshotVersion версия схемы сохраняемого состояния
const snapshotVersion = 1

// ErrInvalidSnapshot возвращается, если сохраненное состояние не соответствует схеме
var ErrInvalidSnapshot = errors.New("некорректное состояние сессии")

// Snapshot единственное, что попадает в хранилище: имена файлов и позиция.
// Содержимое файлов не сохраняется
type Snapshot struct {
	Version      int      `yaml:"version"`
	CurrentFile  string   `yaml:"current_file"`
	CurrentIndex int      `yaml:"current_index"`
	Order        []string `yaml:"order"`
}

// FromState строит Snapshot по состоянию движка
func FromState(order engine.PlayOrder, cursor engine.Cursor) Snapshot {
	snap := Snapshot{
		Version:      snapshotVersion,
		CurrentIndex: cursor.Index,
		Order:        order.Names(),
	}
	if cursor.Handle != nil {
		snap.CurrentFile = cursor.Handle.Name()
	}
	return snap
}

// Complete сообщает, что состояние сформировано полностью и его можно сохранять
func (s Snapshot) Complete() bool {
	return s.CurrentFile != "" && s.CurrentIndex >= 0 && len(s.Order) > 0
}

// Validate проверяет прочитанное из хранилища состояние
func (s Snapshot) Validate() error {
	if s.Version != snapshotVersion {
		return fmt.Errorf("%w: неподдерживаемая версия %d", ErrInvalidSnapshot, s.Version)
	}
	if s.CurrentIndex < 0 {
		return fmt.Errorf("%w: отрицательный индекс %d", ErrInvalidSnapshot, s.CurrentIndex)
	}
	if len(s.Order) == 0 {
		return fmt.Errorf("%w: пустой порядок воспроизведения", ErrInvalidSnapshot)
	}
	if lo.Contains(s.Order, "") {
		return fmt.Errorf("%w: пустое имя файла", ErrInvalidSnapshot)
	}
	return nil
}

// encode сериализует состояние в YAML
func encode(s Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации состояния: %w", err)
	}
	return data, nil
}

// decode разбирает и проверяет состояние
func decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Resolution результат сопоставления сохраненных имен с выбранными файлами
type Resolution struct {
	Order   engine.PlayOrder
	Index   int
	Current source.Handle
	Dropped []string
}

// Resolve сопоставляет сохраненные имена с файлами по точному совпадению имени.
// Порядок сохраняется, ненайденные имена отбрасываются. Если текущий файл не найден,
// Current равен nil
func Resolve(s Snapshot, candidates []source.Handle) Resolution {
	// Как и при выборе, из одноименных файлов берется первый
	byName := make(map[string]source.Handle, len(candidates))
	for _, h := range candidates {
		if _, ok := byName[h.Name()]; !ok {
			byName[h.Name()] = h
		}
	}

	res := Resolution{Order: engine.PlayOrder{}}
	positions := make([]int, len(s.Order))
	for i, name := range s.Order {
		h, ok := byName[name]
		if !ok {
			positions[i] = -1
			res.Dropped = append(res.Dropped, name)
			continue
		}
		positions[i] = len(res.Order)
		res.Order = append(res.Order, h)
	}

	current, ok := byName[s.CurrentFile]
	if !ok {
		return res
	}

	index := -1
	if s.CurrentIndex < len(s.Order) && s.Order[s.CurrentIndex] == s.CurrentFile {
		index = positions[s.CurrentIndex]
	} else {
		// Сохраненный индекс не указывает на текущий файл: берем ближайшее вхождение
		target := lo.Clamp(s.CurrentIndex, 0, max(len(res.Order)-1, 0))
		for i, h := range res.Order {
			if h != current {
				continue
			}
			if index < 0 || abs(i-target) < abs(index-target) {
				index = i
			}
		}
	}
	if index < 0 {
		return res
	}

	res.Index = index
	res.Current = current
	return res
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
