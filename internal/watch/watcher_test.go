package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func waitForChange(t *testing.T, events <-chan SeedChange, match func(SeedChange) bool) SeedChange {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case change, ok := <-events:
			require.True(t, ok, "Event channel closed unexpectedly")
			if match(change) {
				return change
			}
		case <-timeout:
			t.Fatal("Timeout waiting for seed change")
			return SeedChange{}
		}
	}
}

func TestWatcherSeedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	tempDir := t.TempDir()
	w, err := New(tempDir)
	require.NoError(t, err, "New watcher creation failed")
	require.NoError(t, w.Start(), "Failed to start watcher")
	defer w.Stop()

	assert.True(t, w.IsRunning())
	assert.Equal(t, tempDir, w.Dir())
	assert.Error(t, w.Start(), "second Start should fail")

	events := w.Events()

	// Files that are not seed files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "billing.yaml"), []byte("records: []"), 0o644))

	seed := filepath.Join(tempDir, "activity.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("records: []\n"), 0o644))

	change := waitForChange(t, events, func(c SeedChange) bool { return true })
	assert.Equal(t, seed, change.Path)
	assert.Equal(t, "activity", change.Screen)
	assert.False(t, change.Timestamp.IsZero())

	require.NoError(t, os.Remove(seed))
	change = waitForChange(t, events, func(c SeedChange) bool { return c.Op.Has(fsnotify.Remove) })
	assert.Equal(t, "activity", change.Screen)

	files := filepath.Join(tempDir, "files.yaml")
	require.NoError(t, os.WriteFile(files, []byte("nodes: []\n"), 0o644))
	change = waitForChange(t, events, func(c SeedChange) bool { return c.Path == files })
	assert.Equal(t, "files", change.Screen)

	w.Stop()
	assert.False(t, w.IsRunning())
	w.Stop()

	// The channel is closed once stopped.
	for range events {
	}
	assert.Error(t, w.Start(), "stopped watchers cannot restart")
}

func TestNewRejectsBadDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = New(file)
	assert.Error(t, err)
}

func TestSeedScreen(t *testing.T) {
	tests := []struct {
		path   string
		screen string
		ok     bool
	}{
		{"/data/activity.yaml", "activity", true},
		{"/data/audit.yaml", "audit", true},
		{"/data/contacts.yaml", "contacts", true},
		{"/data/files.yaml", "files", true},
		{"/data/files.yml", "", false},
		{"/data/.activity.yaml.swp", "", false},
		{"/data/billing.yaml", "", false},
	}
	for _, tt := range tests {
		screen, ok := seedScreen(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.screen, screen, tt.path)
	}
}
