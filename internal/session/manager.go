package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hazadus/go-shuffler/internal/engine"
	"github.com/hazadus/go-shuffler/internal/source"
)

// Player часть движка, которой передается восстановленное состояние
type Player interface {
	PlayAt(order engine.PlayOrder, index int)
	Stage(order engine.PlayOrder)
}

// Manager сохраняет и восстанавливает состояние под одним фиксированным ключом
type Manager struct {
	store  Store
	key    string
	logger *slog.Logger
}

// NewManager создает Manager. Пустой ключ заменяется DefaultKey
func NewManager(store Store, key string, logger *slog.Logger) *Manager {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  store,
		key:    key,
		logger: logger,
	}
}

// Key возвращает ключ состояния
func (m *Manager) Key() string {
	return m.key
}

// Save перезаписывает сохраненное состояние. Неполное состояние не сохраняется
func (m *Manager) Save(ctx context.Context, snap Snapshot) error {
	if !snap.Complete() {
		return nil
	}
	snap.Version = snapshotVersion

	data, err := encode(snap)
	if err != nil {
		return err
	}
	if err := m.store.Put(ctx, m.key, data); err != nil {
		return fmt.Errorf("ошибка сохранения состояния: %w", err)
	}

	m.logger.Debug("состояние сохранено", "file", snap.CurrentFile, "index", snap.CurrentIndex, "tracks", len(snap.Order))
	return nil
}

// Load читает сохраненное состояние. found == false, если состояния нет
func (m *Manager) Load(ctx context.Context) (snap Snapshot, found bool, err error) {
	data, err := m.store.Get(ctx, m.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("ошибка загрузки состояния: %w", err)
	}

	snap, err = decode(data)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

// Clear удаляет сохраненное состояние
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, m.key); err != nil {
		return fmt.Errorf("ошибка удаления состояния: %w", err)
	}
	return nil
}

// Apply сопоставляет состояние с файлами и передает результат плееру:
// воспроизведение начинается с сохраненной позиции, а если текущий файл
// не найден, порядок только выставляется
func (m *Manager) Apply(snap Snapshot, candidates []source.Handle, player Player) Resolution {
	res := Resolve(snap, candidates)
	if len(res.Dropped) > 0 {
		m.logger.Debug("часть сохраненных файлов не найдена", "dropped", res.Dropped)
	}

	switch {
	case res.Current != nil:
		player.PlayAt(res.Order, res.Index)
	case len(res.Order) > 0:
		m.logger.Debug("текущий файл не найден", "file", snap.CurrentFile)
		player.Stage(res.Order)
	}
	return res
}

// Restore загружает состояние и применяет его. Отсутствие состояния не является ошибкой
func (m *Manager) Restore(ctx context.Context, candidates []source.Handle, player Player) (Resolution, bool, error) {
	snap, found, err := m.Load(ctx)
	if err != nil || !found {
		return Resolution{}, false, err
	}
	return m.Apply(snap, candidates, player), true, nil
}
