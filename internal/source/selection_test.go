package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDirectoryPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.mp3", "audio")
	writeFile(t, dir, "a.wav", "audio")
	writeFile(t, dir, "sub/c.mp3", "audio")

	sel, err := NewSelector(nil).Select([]string{dir}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wav", "b.mp3"}, names(sel.Handles))
	assert.Equal(t, filepath.Base(dir), sel.Label)
	assert.Equal(t, dir, sel.Dir)

	sel, err = NewSelector(nil).Select([]string{dir}, true)
	require.NoError(t, err)
	assert.Len(t, sel.Handles, 3)
}

func TestSelectGlobAndFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "one.mp3", "audio")
	writeFile(t, dir, "two.mp3", "audio")
	writeFile(t, dir, "notes.txt", "text")

	sel, err := NewSelector(nil).Select([]string{filepath.Join(dir, "*.mp3")}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"one.mp3", "two.mp3"}, names(sel.Handles))
	assert.Equal(t, SelectedFilesLabel, sel.Label)
	assert.Empty(t, sel.Dir)

	sel, err = NewSelector(nil).Select([]string{first}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"one.mp3"}, names(sel.Handles))
}

func TestSelectErrors(t *testing.T) {
	_, err := NewSelector(nil).Select(nil, false)
	assert.ErrorIs(t, err, ErrNoAudio)

	_, err = NewSelector(nil).Select([]string{filepath.Join(t.TempDir(), "missing.mp3")}, false)
	assert.Error(t, err)

	_, err = NewSelector(nil).Select([]string{"[invalid"}, false)
	assert.Error(t, err)
}
