// Package output содержит вывод звука на динамики через beep
package output

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/hazadus/go-shuffler/internal/engine"
	"github.com/hazadus/go-shuffler/internal/source"
)

// ErrUnsupportedFormat возвращается для файлов, которые beep не умеет декодировать
var ErrUnsupportedFormat = errors.New("неподдерживаемый формат")

const (
	// DefaultSampleRate частота, с которой инициализируются динамики
	DefaultSampleRate = 44100

	defaultProgressInterval = 500 * time.Millisecond
	eventBuffer             = 64
	pendingBuffer           = 16
	resampleQuality         = 4
)

// Динамики инициализируются один раз на процесс
var (
	speakerOnce sync.Once
	speakerErr  error
)

type decoder func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decoder{
	".mp3": mp3.Decode,
	".wav": func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(r)
	},
}

// decoderFor подбирает декодер по расширению файла
func decoderFor(name string) (decoder, error) {
	ext := strings.ToLower(filepath.Ext(name))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return decode, nil
}

// Factory создает выводы и собирает их события в общий канал
type Factory struct {
	sampleRate       beep.SampleRate
	progressInterval time.Duration
	events           chan engine.Event
	logger           *slog.Logger
}

// NewFactory создает фабрику выводов. sampleRate <= 0 заменяется DefaultSampleRate
func NewFactory(sampleRate int, logger *slog.Logger) *Factory {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		sampleRate:       beep.SampleRate(sampleRate),
		progressInterval: defaultProgressInterval,
		events:           make(chan engine.Event, eventBuffer),
		logger:           logger,
	}
}

// Events возвращает канал событий всех выводов. Его читает владелец движка
func (f *Factory) Events() <-chan engine.Event {
	return f.events
}

// New реализует engine.OutputFactory. Вывод создается на паузе, запускает его движок
func (f *Factory) New(id engine.OutputID, h source.Handle) (engine.Output, error) {
	decode, err := decoderFor(h.Name())
	if err != nil {
		return nil, err
	}

	rc, err := h.Open()
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}

	streamer, format, err := decode(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("ошибка декодирования %s: %w", h.Name(), err)
	}

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(f.sampleRate, f.sampleRate.N(time.Second/5))
	})
	if speakerErr != nil {
		streamer.Close()
		rc.Close()
		return nil, fmt.Errorf("ошибка инициализации динамиков: %w", speakerErr)
	}

	o := f.newOutput(id, h.Name(), rc, streamer, format)

	var playback beep.Streamer = o.ctrl
	if format.SampleRate != f.sampleRate {
		playback = beep.Resample(resampleQuality, format.SampleRate, f.sampleRate, o.ctrl)
	}

	// Динамики играют один трек за раз
	speaker.Clear()
	speaker.Play(beep.Seq(playback, beep.Callback(o.finished)))

	return o, nil
}

// newOutput собирает вывод на паузе, запускает пересылку событий и сообщает длительность
func (f *Factory) newOutput(id engine.OutputID, name string, file io.Closer, streamer beep.StreamSeekCloser, format beep.Format) *Output {
	o := &Output{
		id:       id,
		name:     name,
		file:     file,
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer, Paused: true},
		events:   f.events,
		pending:  make(chan engine.Event, pendingBuffer),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		logger:   f.logger,
	}

	go o.pump()
	go o.monitorProgress(f.progressInterval)

	o.enqueue(engine.MetadataReady{Output: id, Duration: format.SampleRate.D(streamer.Len())})
	return o
}

// Output воспроизводит один файл
type Output struct {
	id       engine.OutputID
	name     string
	file     io.Closer
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl

	events  chan<- engine.Event
	pending chan engine.Event
	stop    chan struct{}
	done    chan struct{}
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Play снимает вывод с паузы
func (o *Output) Play() {
	o.setPaused(false)
}

// Pause ставит вывод на паузу
func (o *Output) Pause() {
	o.setPaused(true)
}

func (o *Output) setPaused(paused bool) {
	if o.isClosed() {
		return
	}
	speaker.Lock()
	o.ctrl.Paused = paused
	speaker.Unlock()

	o.enqueue(engine.PlayStateChanged{Output: o.id, Playing: !paused})
}

// Paused сообщает, стоит ли вывод на паузе
func (o *Output) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return o.ctrl.Paused
}

// Position возвращает текущую позицию
func (o *Output) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return o.format.SampleRate.D(o.streamer.Position())
}

// Seek перематывает на позицию в пределах трека и возвращает фактическую позицию
func (o *Output) Seek(pos time.Duration) time.Duration {
	if o.isClosed() {
		return 0
	}

	speaker.Lock()
	sample := min(max(o.format.SampleRate.N(pos), 0), o.streamer.Len())
	err := o.streamer.Seek(sample)
	speaker.Unlock()

	if err != nil {
		o.logger.Warn("ошибка перемотки", "file", o.name, "error", err)
	}
	return o.Position()
}

// Close останавливает воспроизведение и освобождает файл
func (o *Output) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	close(o.stop)
	o.mu.Unlock()

	// После Close события этого вывода в общий канал не попадают
	<-o.done

	speaker.Clear()

	err := o.streamer.Close()
	// Декодер может уже закрыть файл сам
	_ = o.file.Close()
	return err
}

func (o *Output) isClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// finished вызывается горутиной динамиков по окончании трека
func (o *Output) finished() {
	if o.isClosed() {
		return
	}
	// Колбэк выполняется под блокировкой динамиков, поэтому не ждем очередь здесь
	go o.enqueue(engine.Completed{Output: o.id})
}

// enqueue ставит событие в очередь вывода, сохраняя порядок
func (o *Output) enqueue(ev engine.Event) {
	select {
	case o.pending <- ev:
	case <-o.stop:
	}
}

// pump пересылает события вывода в общий канал фабрики
func (o *Output) pump() {
	defer close(o.done)
	for {
		select {
		case ev := <-o.pending:
			select {
			case o.events <- ev:
			case <-o.stop:
				return
			}
		case <-o.stop:
			return
		}
	}
}

// monitorProgress периодически публикует позицию воспроизведения
func (o *Output) monitorProgress(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			if o.isClosed() {
				return
			}
			ev := engine.Progressed{Output: o.id, Position: o.Position()}
			// Если очередь заполнена, обновление пропускается
			select {
			case o.pending <- ev:
			default:
			}
		}
	}
}
