package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazadus/go-shuffler/internal/engine"
	"github.com/hazadus/go-shuffler/internal/source"
)

const eventTimeout = 2 * time.Second

// testFormat 8 кГц моно, две секунды тишины занимают 16000 сэмплов
var testFormat = beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}

// writeSilence записывает WAV-файл с тишиной заданной длительности
func writeSilence(t *testing.T, duration time.Duration) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, wav.Encode(f, beep.Silence(testFormat.SampleRate.N(duration)), testFormat))
	return path
}

// newTestOutput создает вывод вокруг WAV-файла без инициализации динамиков
func newTestOutput(t *testing.T, progressInterval time.Duration) (*Output, <-chan engine.Event) {
	t.Helper()

	f, err := os.Open(writeSilence(t, 2*time.Second))
	require.NoError(t, err)

	streamer, format, err := wav.Decode(f)
	require.NoError(t, err)

	factory := NewFactory(int(testFormat.SampleRate), nil)
	factory.progressInterval = progressInterval

	o := factory.newOutput(7, "silence.wav", f, streamer, format)
	t.Cleanup(func() { o.Close() })
	return o, factory.Events()
}

// nextEvent ждет следующее событие вывода
func nextEvent(t *testing.T, events <-chan engine.Event) engine.Event {
	t.Helper()

	select {
	case ev := <-events:
		return ev
	case <-time.After(eventTimeout):
		t.Fatal("не дождались события вывода")
		return nil
	}
}

// assertNoEvent проверяет, что событий больше нет
func assertNoEvent(t *testing.T, events <-chan engine.Event) {
	t.Helper()

	select {
	case ev := <-events:
		t.Errorf("неожиданное событие: %#v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDecoderFor(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"song.mp3", false},
		{"SONG.MP3", false},
		{"take.wav", false},
		{"track.flac", true},
		{"no-extension", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoderFor(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewFactoryDefaults(t *testing.T) {
	f := NewFactory(0, nil)

	assert.Equal(t, beep.SampleRate(DefaultSampleRate), f.sampleRate)
	assert.NotNil(t, f.Events())
	assert.NotNil(t, f.logger)
	assertNoEvent(t, f.Events())
}

func TestNewUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.flac")
	require.NoError(t, os.WriteFile(path, []byte("fLaC"), 0644))

	_, err := NewFactory(0, nil).New(1, source.NewFile(path))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewMissingFile(t *testing.T) {
	_, err := NewFactory(0, nil).New(1, source.NewFile(filepath.Join(t.TempDir(), "missing.mp3")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewInvalidAudio(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"broken.mp3", "broken.wav"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("definitely not audio"), 0644))

		_, err := NewFactory(0, nil).New(1, source.NewFile(path))
		assert.Error(t, err, name)
	}
}

func TestOutputReportsDuration(t *testing.T) {
	o, events := newTestOutput(t, time.Hour)

	assert.Equal(t, engine.MetadataReady{Output: 7, Duration: 2 * time.Second}, nextEvent(t, events))
	assert.True(t, o.Paused(), "вывод создается на паузе")
	assert.Equal(t, time.Duration(0), o.Position())
}

func TestOutputPlayPause(t *testing.T) {
	o, events := newTestOutput(t, time.Hour)
	nextEvent(t, events)

	o.Play()
	assert.False(t, o.Paused())
	assert.Equal(t, engine.PlayStateChanged{Output: 7, Playing: true}, nextEvent(t, events))

	o.Pause()
	assert.True(t, o.Paused())
	assert.Equal(t, engine.PlayStateChanged{Output: 7, Playing: false}, nextEvent(t, events))
}

func TestOutputFinished(t *testing.T) {
	o, events := newTestOutput(t, time.Hour)
	nextEvent(t, events)

	o.finished()
	assert.Equal(t, engine.Completed{Output: 7}, nextEvent(t, events))
}

func TestOutputSeekClamps(t *testing.T) {
	o, _ := newTestOutput(t, time.Hour)

	assert.Equal(t, time.Second, o.Seek(time.Second))
	assert.Equal(t, time.Second, o.Position())

	assert.Equal(t, time.Duration(0), o.Seek(-time.Second))
	assert.Equal(t, 2*time.Second, o.Seek(time.Minute))
}

func TestOutputProgress(t *testing.T) {
	o, events := newTestOutput(t, 10*time.Millisecond)
	o.Seek(500 * time.Millisecond)

	assert.Eventually(t, func() bool {
		select {
		case ev := <-events:
			p, ok := ev.(engine.Progressed)
			return ok && p.Output == 7 && p.Position == 500*time.Millisecond
		default:
			return false
		}
	}, eventTimeout, 5*time.Millisecond)
}

func TestOutputSilentAfterClose(t *testing.T) {
	o, events := newTestOutput(t, time.Hour)
	nextEvent(t, events)

	require.NoError(t, o.Close())

	o.Play()
	o.Pause()
	o.finished()
	assertNoEvent(t, events)

	assert.Equal(t, time.Duration(0), o.Seek(time.Second))
	assert.NoError(t, o.Close(), "повторное закрытие безопасно")
}
