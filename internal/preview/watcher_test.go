package preview

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

func TestWatcher_ShouldIgnore(t *testing.T) {
	root := t.TempDir()
	w := NewWatcher(root, filepath.Join(root, "dist"), 0, nil, nil, nil)

	assert.True(t, w.shouldIgnore(filepath.Join(root, "dist")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, "dist", "en", "index.html")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, ".git", "HEAD")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, "en", ".hidden.md")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, "en", "intro.md.swp")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, "en", "#intro.md#")))
	assert.False(t, w.shouldIgnore(filepath.Join(root, "distro", "a.md")))
	assert.False(t, w.shouldIgnore(filepath.Join(root, "en", "guide", "intro.md")))
}

func TestWatcher_RebuildRecordsStatus(t *testing.T) {
	status := &BuildStatus{}
	fail := true
	w := NewWatcher(t.TempDir(), "dist", 0, func(context.Context) error {
		if fail {
			return errors.BuildError("boom").Build()
		}
		return nil
	}, status, nil)

	w.Rebuild(context.Background())
	lastErr, _, good := status.Snapshot()
	require.Error(t, lastErr)
	assert.False(t, good)

	fail = false
	w.Rebuild(context.Background())
	lastErr, _, good = status.Snapshot()
	require.NoError(t, lastErr)
	assert.True(t, good)
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "en"), 0o750))

	var builds atomic.Int32
	w := NewWatcher(root, filepath.Join(root, "dist"), 20*time.Millisecond, func(context.Context) error {
		builds.Add(1)
		return nil
	}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register directories.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "en", "sidebar.json"), []byte("{}"), 0o600))

	assert.Eventually(t, func() bool { return builds.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
}
