package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hazadus/go-shuffler/internal/engine"
)

// Autosaver сохраняет состояние при каждом изменении порядка или курсора.
// Запись выполняется в отдельной горутине, из нескольких ожидающих состояний
// сохраняется последнее
type Autosaver struct {
	manager *Manager
	logger  *slog.Logger
	ctx     context.Context

	mu      sync.Mutex
	closed  bool
	pending chan Snapshot
	done    chan struct{}
}

var _ engine.Observer = (*Autosaver)(nil)

// NewAutosaver запускает фоновое сохранение
func NewAutosaver(ctx context.Context, manager *Manager) *Autosaver {
	a := &Autosaver{
		manager: manager,
		logger:  manager.logger,
		ctx:     ctx,
		pending: make(chan Snapshot, 1),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

// StateChanged реализует engine.Observer
func (a *Autosaver) StateChanged(order engine.PlayOrder, cursor engine.Cursor) {
	snap := FromState(order, cursor)
	if !snap.Complete() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	select {
	case <-a.pending:
	default:
	}
	a.pending <- snap
}

// Close дожидается записи последнего состояния и останавливает горутину
func (a *Autosaver) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.pending)
	a.mu.Unlock()

	<-a.done
}

func (a *Autosaver) run() {
	defer close(a.done)
	for snap := range a.pending {
		if err := a.manager.Save(a.ctx, snap); err != nil {
			a.logger.Error("ошибка автосохранения", "error", err)
		}
	}
}
