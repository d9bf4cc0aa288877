package fsclient

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/client/clienttest"
)

func TestMemoryConformance(t *testing.T) {
	clienttest.RunConformanceSuite(t, func(t *testing.T) client.Client {
		return NewMemory()
	})
}

func TestLocalConformance(t *testing.T) {
	clienttest.RunConformanceSuite(t, func(t *testing.T) client.Client {
		return NewLocal(t.TempDir())
	})
}

func TestDoubleConnect(t *testing.T) {
	c := NewMemory()
	ctx := t.Context()

	require.NoError(t, c.Connect(ctx))
	err := c.Connect(ctx)
	assert.True(t, client.IsCode(err, client.ErrProtocol))
}

func TestRelativePathsResolveAgainstCwd(t *testing.T) {
	c := NewMemory()
	ctx := t.Context()

	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.MakeDir(ctx, "/workspace"))
	require.NoError(t, c.ChangeDir(ctx, "/workspace"))

	w, err := c.Create(ctx, "notes.txt")
	require.NoError(t, err)
	_, err = io.Copy(w, strings.NewReader("relative"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	entry, err := c.Stat(ctx, "/workspace/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "/workspace/notes.txt", entry.Path())
}

// opRecorder is a ClientMetrics that remembers every observation.
type opRecorder struct {
	mu      sync.Mutex
	ops     []string
	read    int64
	written int64
}

func (r *opRecorder) ObserveOperation(backend, operation string, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, operation)
}

func (r *opRecorder) AddBytesRead(backend string, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.read += n
}

func (r *opRecorder) AddBytesWritten(backend string, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.written += n
}

func TestMetricsRecorded(t *testing.T) {
	rec := &opRecorder{}
	c := NewMemory(WithMetrics(rec))
	ctx := t.Context()

	require.NoError(t, c.Connect(ctx))

	w, err := c.Create(ctx, "/data.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("0123456789"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := c.Open(ctx, "/data.bin")
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Contains(t, rec.ops, "Create")
	assert.Contains(t, rec.ops, "Open")
	assert.EqualValues(t, 10, rec.written)
	assert.EqualValues(t, 10, rec.read)
}

func TestLocalCannotEscapeRoot(t *testing.T) {
	c := NewLocal(t.TempDir())
	ctx := t.Context()

	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.ChangeDir(ctx, "/.."))

	cwd, err := c.Pwd(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/", cwd)
}
