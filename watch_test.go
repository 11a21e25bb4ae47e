package shader_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/internal/devicetest"
)

func waitChanged(t *testing.T, w *shader.Watcher) bool {
	t.Helper()
	select {
	case <-w.Changed():
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestWatcherReportsWrite(t *testing.T) {
	vp, fp := writeShaders(t, triangleVertex, triangleFragment)

	w, err := shader.NewWatcher(vp, fp)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(fp, []byte(uniformFragment), 0o644))
	assert.True(t, waitChanged(t, w))
}

func TestWatcherReportsReplace(t *testing.T) {
	vp, fp := writeShaders(t, triangleVertex, triangleFragment)

	w, err := shader.NewWatcher(vp, fp)
	require.NoError(t, err)
	defer w.Close()

	tmp := filepath.Join(filepath.Dir(vp), "VertexShader.txt.swp")
	require.NoError(t, os.WriteFile(tmp, []byte(triangleVertex), 0o644))
	require.NoError(t, os.Rename(tmp, vp))
	assert.True(t, waitChanged(t, w))
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	vp, fp := writeShaders(t, triangleVertex, triangleFragment)

	w, err := shader.NewWatcher(vp, fp)
	require.NoError(t, err)
	defer w.Close()

	other := filepath.Join(filepath.Dir(vp), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.False(t, w.Poll())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := shader.NewWatcher(filepath.Join(t.TempDir(), "nope", "shader.vert"))
	assert.Error(t, err)
}

func TestWatcherClose(t *testing.T) {
	vp, _ := writeShaders(t, triangleVertex, triangleFragment)

	w, err := shader.NewWatcher(vp)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}

// syncBuffer is written by the watcher goroutine and read by the test.
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

func TestManagerWatchUsesManagerLogger(t *testing.T) {
	vp, fp := writeShaders(t, triangleVertex, triangleFragment)

	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mgr := shader.NewManager(devicetest.New(), shader.WithLogger(logger))

	w, err := mgr.Watch(vp, fp)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(fp, []byte(uniformFragment), 0o644))
	require.True(t, waitChanged(t, w))
	assert.Contains(t, out.String(), "shader source changed")
}
