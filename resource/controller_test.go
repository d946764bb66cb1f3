package resource

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	err := c.AcquireMemory(20)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(90), c.MemoryPeak())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
}

func TestController_NilChecks(t *testing.T) {
	var c *Controller
	assert.NoError(t, c.AcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.NoError(t, c.AcquireIO(context.Background(), 10))
	assert.True(t, c.TryAcquireIO(10))
}

func TestController_IOLargerThanBurst(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Larger than the burst; must be split rather than rejected.
	require.NoError(t, c.AcquireIO(ctx, (1<<20)+1))
}

func TestRateLimitedWriterReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	ctx := context.Background()

	var buf bytes.Buffer
	w := NewRateLimitedWriter(ctx, &buf, c)
	n, err := w.Write([]byte("netlist"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	r := NewRateLimitedReader(ctx, &buf, c)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "netlist", string(data))
}

func TestRateLimitedWriter_Canceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewRateLimitedWriter(ctx, io.Discard, c)
	_, err := w.Write([]byte("xx"))
	assert.Error(t, err)
}
