package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "route.yaml")
	require.NoError(t, os.WriteFile(file, []byte("points: []\n"), 0o644))

	fw, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{file}, func(path string) { changed <- path }))
	fw.Start(t.Context())

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("points: [[0,0,0]]\n"), 0o644))
	}

	want, err := filepath.Abs(file)
	require.NoError(t, err)

	select {
	case got := <-changed:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst of writes collapses into one callback.
	select {
	case <-changed:
		t.Error("burst reported more than once")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "route.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 1)
	require.NoError(t, fw.Watch([]string{file}, func(path string) { changed <- path }))
	fw.Start(t.Context())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), nil, 0o644))

	select {
	case got := <-changed:
		t.Errorf("unexpected callback for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(DefaultDebounce, nil)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "missing", "route.yaml")}, func(string) {})
	assert.Error(t, err)
}
