package source

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile создает файл с содержимым внутри каталога
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func names(handles []Handle) []string {
	return lo.Map(handles, func(h Handle, _ int) string { return h.Name() })
}

func TestNewSelectorNormalizesExtensions(t *testing.T) {
	s := NewSelector([]string{"MP3", " .Wav "})
	assert.Equal(t, []string{".mp3", ".wav"}, s.Extensions())

	assert.Equal(t, DefaultExtensions, NewSelector(nil).Extensions())
}

func TestFileHandle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "song.mp3", "audio-bytes")

	h := NewFile(path)
	assert.Equal(t, "song.mp3", h.Name())
	assert.Equal(t, path, h.Path())

	rc, err := h.Open()
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))
}

func TestSelectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.mp3", "aaaaaaaaaaaa")
	b := writeFile(t, dir, "notes.txt", "text")
	c := writeFile(t, dir, "C.MP3", "cccccccccccc")

	handles, label, err := NewSelector(nil).SelectFiles([]string{a, b, c, dir})
	require.NoError(t, err)
	assert.Equal(t, SelectedFilesLabel, label)
	assert.Equal(t, []string{"a.mp3", "C.MP3"}, names(handles))
}

func TestSelectFilesNoAudio(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "text")

	_, _, err := NewSelector(nil).SelectFiles([]string{txt})
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestSelectFilesMissing(t *testing.T) {
	_, _, err := NewSelector(nil).SelectFiles([]string{"/definitely/missing.mp3"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoAudio)
}

func TestSelectDirectoryFlat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Album")
	writeFile(t, dir, "b.mp3", "bbbbbbbbbbbb")
	writeFile(t, dir, "a.wav", "RIFFaaaaaaaa")
	writeFile(t, dir, "cover.jpg", "jpeg")
	writeFile(t, dir, "disc2/c.mp3", "cccccccccccc")

	handles, label, err := NewSelector(nil).SelectDirectory(dir, false)
	require.NoError(t, err)
	assert.Equal(t, "Album", label)
	assert.Equal(t, []string{"a.wav", "b.mp3"}, names(handles))
}

func TestSelectDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.mp3", "bbbbbbbbbbbb")
	writeFile(t, dir, "disc2/c.mp3", "cccccccccccc")
	writeFile(t, dir, "disc2/deeper/d.mp3", "dddddddddddd")

	handles, _, err := NewSelector(nil).SelectDirectory(dir, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.mp3", "c.mp3", "d.mp3"}, names(handles))
}

func TestSelectDirectoryErrors(t *testing.T) {
	_, _, err := NewSelector(nil).SelectDirectory(filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)

	empty := t.TempDir()
	_, _, err = NewSelector(nil).SelectDirectory(empty, true)
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestSniffRejectsMismatchedSignature(t *testing.T) {
	dir := t.TempDir()
	flac := writeFile(t, dir, "fake.mp3", "fLaC\x00\x00\x00\x22padding-bytes")
	id3 := writeFile(t, dir, "tagged.mp3", "ID3\x03\x00\x00\x00\x00\x00\x00padding-bytes")
	plain := writeFile(t, dir, "plain.mp3", "\xff\xfbpadding-bytes-without-tags")

	assert.False(t, sniff(flac, ".mp3"))
	assert.True(t, sniff(id3, ".mp3"))
	assert.True(t, sniff(plain, ".mp3"))
	assert.False(t, sniff(id3, ".wav"))
	assert.False(t, sniff(filepath.Join(dir, "missing.mp3"), ".mp3"))
}

func TestWatchReportsNewFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mp3", "aaaaaaaaaaaa")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := NewSelector(nil).Watch(ctx, dir, false)
	require.NoError(t, err)

	writeFile(t, dir, "b.mp3", "bbbbbbbbbbbb")

	select {
	case handles := <-updates:
		assert.Equal(t, []string{"a.mp3", "b.mp3"}, names(handles))
	case <-time.After(5 * time.Second):
		t.Fatal("не дождались обновления списка файлов")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-updates
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

// syncBuffer буфер для логов, безопасный для чтения из теста
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchLogsThroughInjectedLogger(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "music")
	writeFile(t, dir, "a.mp3", "aaaaaaaaaaaa")

	var logs syncBuffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := NewSelector(nil, WithLogger(logger)).Watch(ctx, dir, false)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))

	assert.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "ошибка пересканирования каталога")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	s := NewSelector(nil, WithLogger(nil))
	assert.Same(t, slog.Default(), s.logger)
}
