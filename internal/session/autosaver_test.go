package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazadus/go-shuffler/internal/engine"
)

func TestAutosaverSavesLatestState(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "", nil)
	a := NewAutosaver(ctx, m)

	order := engine.PlayOrder(handles("a.mp3", "b.mp3", "c.mp3"))
	for i := range order {
		a.StateChanged(order, engine.Cursor{Index: i, Handle: order[i]})
	}
	a.Close()

	snap, found, err := m.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "c.mp3", snap.CurrentFile)
	assert.Equal(t, 2, snap.CurrentIndex)
	assert.Equal(t, []string{"a.mp3", "b.mp3", "c.mp3"}, snap.Order)
}

func TestAutosaverIgnoresIncompleteState(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "", nil)
	a := NewAutosaver(ctx, m)

	a.StateChanged(engine.PlayOrder(handles("a.mp3")), engine.Cursor{})
	a.StateChanged(nil, engine.Cursor{})
	a.Close()

	_, found, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAutosaverAfterClose(t *testing.T) {
	m := NewManager(NewMemoryStore(), "", nil)
	a := NewAutosaver(context.Background(), m)
	a.Close()

	order := engine.PlayOrder(handles("a.mp3"))
	assert.NotPanics(t, func() {
		a.StateChanged(order, engine.Cursor{Index: 0, Handle: order[0]})
		a.Close()
	})
}

func TestAutosaverSurvivesStoreErrors(t *testing.T) {
	a := NewAutosaver(context.Background(), NewManager(failingStore{}, "", nil))

	order := engine.PlayOrder(handles("a.mp3"))
	a.StateChanged(order, engine.Cursor{Index: 0, Handle: order[0]})

	assert.NotPanics(t, a.Close)
}
