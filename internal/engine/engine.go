// Package engine содержит движок воспроизведения: порядок треков, курсор и транспорт.
//
// Engine не потокобезопасен: им владеет одна горутина (цикл TUI или консольного плеера),
// которая вызывает транспортные операции и передает события выводов в Dispatch.
package engine

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hazadus/go-shuffler/internal/source"
)

// Engine управляет воспроизведением списка треков
type Engine struct {
	newOutput OutputFactory
	observer  Observer
	rng       *rand.Rand
	logger    *slog.Logger

	output   Output
	outputID OutputID
	order    PlayOrder
	cursor   Cursor
	status   Status

	hidden       bool
	resumeOnShow bool
}

// Option настраивает Engine
type Option func(*Engine)

// WithObserver подписывает наблюдателя на изменения порядка и курсора
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithRand задает источник случайности для перемешивания
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New создает движок, который создает выводы через factory
func New(factory OutputFactory, opts ...Option) *Engine {
	e := &Engine{
		newOutput: factory,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Order возвращает копию текущего порядка воспроизведения
func (e *Engine) Order() PlayOrder {
	return slices.Clone(e.order)
}

// Cursor возвращает текущую позицию
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// Status возвращает состояние воспроизведения
func (e *Engine) Status() Status {
	return e.status
}

// HasOutput сообщает, есть ли активный вывод
func (e *Engine) HasOutput() bool {
	return e.output != nil
}

// StartShuffled перемешивает файлы и начинает воспроизведение с первого.
// Пустой список игнорируется
func (e *Engine) StartShuffled(handles []source.Handle) {
	if len(handles) == 0 {
		return
	}

	order := PlayOrder(slices.Clone(handles))
	e.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	e.PlayAt(order, 0)
}

// PlayAt начинает воспроизведение order[index]. Индекс за пределами порядка
// останавливает воспроизведение без ошибки
func (e *Engine) PlayAt(order PlayOrder, index int) {
	if index < 0 || index >= len(order) {
		e.release()
		e.status.Playing = false
		return
	}

	prevOrder, prevCursor := e.order, e.cursor

	// Предыдущий вывод освобождается до создания нового, чтобы два трека не звучали одновременно
	e.release()

	if !sameOrder(e.order, order) {
		e.order = slices.Clone(order)
	}
	e.cursor = Cursor{Index: index, Handle: e.order[index]}
	e.status = Status{Playing: true}
	e.outputID++

	out, err := e.newOutput(e.outputID, e.cursor.Handle)
	if err != nil {
		// Ошибку воспроизведения сообщает слой вывода, движок просто остается на этом треке
		e.logger.Error("ошибка запуска воспроизведения", "file", e.cursor.Handle.Name(), "error", err)
		e.status.Playing = false
	} else {
		e.output = out
		out.Play()
	}

	e.notify(prevOrder, prevCursor)
}

// Previous переключает на предыдущий трек
func (e *Engine) Previous() {
	if e.cursor.Handle == nil || e.cursor.Index <= 0 {
		return
	}
	e.PlayAt(e.order, e.cursor.Index-1)
}

// Next переключает на следующий трек
func (e *Engine) Next() {
	if e.cursor.Handle == nil || e.cursor.Index >= len(e.order)-1 {
		return
	}
	e.PlayAt(e.order, e.cursor.Index+1)
}

// TogglePause ставит на паузу или продолжает воспроизведение
func (e *Engine) TogglePause() {
	if e.output == nil {
		return
	}

	if e.output.Paused() {
		e.output.Play()
	} else {
		e.output.Pause()
	}
	e.status.Playing = !e.output.Paused()

	// Решение пользователя, принятое в фоне, важнее сохраненного состояния
	e.resumeOnShow = false
}

// Seek перематывает текущий трек. Границы проверяет вывод
func (e *Engine) Seek(pos time.Duration) {
	if e.output == nil {
		return
	}
	e.status.Current = e.clamp(e.output.Seek(pos))
}

// SeekBy перематывает относительно текущей позиции
func (e *Engine) SeekBy(delta time.Duration) {
	if e.output == nil {
		return
	}
	e.Seek(e.output.Position() + delta)
}

// Stage заменяет порядок воспроизведения, ничего не запуская
func (e *Engine) Stage(order PlayOrder) {
	prevOrder, prevCursor := e.order, e.cursor

	e.release()
	e.order = slices.Clone(order)
	e.cursor = Cursor{}
	e.status = Status{}

	e.notify(prevOrder, prevCursor)
}

// Stop останавливает воспроизведение, сохраняя курсор
func (e *Engine) Stop() {
	e.release()
	e.status.Playing = false
}

// Hide вызывается, когда интерфейс уходит в фон
func (e *Engine) Hide() {
	if e.hidden {
		return
	}
	e.hidden = true
	e.resumeOnShow = e.status.Playing
}

// Show вызывается при возвращении интерфейса. Воспроизведение возобновляется,
// только если оно шло до ухода в фон и было приостановлено окружением
func (e *Engine) Show() {
	if !e.hidden {
		return
	}
	e.hidden = false

	resume := e.resumeOnShow
	e.resumeOnShow = false

	if resume && e.output != nil && e.output.Paused() {
		e.output.Play()
		e.status.Playing = true
	}
}

// Dispatch передает событие вывода соответствующему обработчику
func (e *Engine) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case Completed:
		e.OnComplete(ev.Output)
	case Progressed:
		e.OnProgress(ev.Output, ev.Position)
	case MetadataReady:
		e.OnMetadataReady(ev.Output, ev.Duration)
	case PlayStateChanged:
		e.OnPlayStateChange(ev.Output, ev.Playing)
	}
}

// OnComplete переходит к следующему треку после завершения текущего
func (e *Engine) OnComplete(id OutputID) {
	if !e.active(id) {
		return
	}
	e.PlayAt(e.order, e.cursor.Index+1)
}

// OnProgress обновляет текущую позицию
func (e *Engine) OnProgress(id OutputID, pos time.Duration) {
	if !e.active(id) {
		return
	}
	e.status.Current = e.clamp(pos)
}

// OnMetadataReady запоминает длительность трека
func (e *Engine) OnMetadataReady(id OutputID, duration time.Duration) {
	if !e.active(id) {
		return
	}
	e.status.Duration = max(duration, 0)
	e.status.Current = e.clamp(e.status.Current)
}

// OnPlayStateChange синхронизирует статус с фактическим состоянием вывода
func (e *Engine) OnPlayStateChange(id OutputID, playing bool) {
	if !e.active(id) {
		return
	}
	e.status.Playing = playing
}

// Close освобождает активный вывод
func (e *Engine) Close() {
	e.Stop()
}

// active проверяет, что событие пришло от текущего вывода
func (e *Engine) active(id OutputID) bool {
	return e.output != nil && id == e.outputID
}

// release останавливает и освобождает текущий вывод
func (e *Engine) release() {
	if e.output == nil {
		return
	}
	if err := e.output.Close(); err != nil {
		e.logger.Warn("ошибка освобождения вывода", "error", err)
	}
	e.output = nil
}

func (e *Engine) clamp(pos time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if e.status.Duration > 0 && pos > e.status.Duration {
		return e.status.Duration
	}
	return pos
}

// notify сообщает наблюдателю об изменении порядка, индекса или текущего файла
func (e *Engine) notify(prevOrder PlayOrder, prevCursor Cursor) {
	if e.observer == nil {
		return
	}
	if sameOrder(prevOrder, e.order) && prevCursor == e.cursor {
		return
	}
	e.observer.StateChanged(e.order, e.cursor)
}
