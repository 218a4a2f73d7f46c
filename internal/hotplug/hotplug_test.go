package hotplug

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEventNode(t *testing.T) {
	assert.True(t, isEventNode("/dev/input/event0"))
	assert.True(t, isEventNode("/dev/input/event17"))
	assert.False(t, isEventNode("/dev/input/event"))
	assert.False(t, isEventNode("/dev/input/mouse0"))
	assert.False(t, isEventNode("/dev/input/js0"))
	assert.False(t, isEventNode("/dev/input/by-id"))
	assert.False(t, isEventNode("/dev/input/event0x"))
}

func waitForEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "event channel closed early")
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for hotplug event")
		return Event{}
	}
}

func TestWatcherSeesAddAndRemove(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)
	defer w.Close()

	node := filepath.Join(dir, "event5")
	require.NoError(t, os.WriteFile(node, nil, 0o600))

	ev := waitForEvent(t, w)
	assert.Equal(t, Add, ev.Op)
	assert.Equal(t, node, ev.Path)

	require.NoError(t, os.Remove(node))
	ev = waitForEvent(t, w)
	assert.Equal(t, Remove, ev.Op)
}

func TestWatcherIgnoresNonEventNodes(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mouse0"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "event9"), nil, 0o600))

	ev := waitForEvent(t, w)
	assert.Equal(t, filepath.Join(dir, "event9"), ev.Path)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
