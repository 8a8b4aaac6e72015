package latency

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroup(t *testing.T, delay time.Duration) *Group {
	t.Helper()
	g := NewGroup(delay, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(g.Close)
	return g
}

func TestRun_ZeroDelayRunsInline(t *testing.T) {
	g := newTestGroup(t, 0)
	ran := false

	err := g.Run(context.Background(), "inline", func() { ran = true })
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestRun_WaitsForDelay(t *testing.T) {
	g := newTestGroup(t, 20*time.Millisecond)
	var ran atomic.Bool

	start := time.Now()
	err := g.Run(context.Background(), "apply", func() { ran.Store(true) })

	require.NoError(t, err)
	assert.True(t, ran.Load())
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestTask_CancelPreventsUpdate(t *testing.T) {
	g := newTestGroup(t, time.Hour)
	var ran atomic.Bool

	task, err := g.Go(context.Background(), "apply", func() { ran.Store(true) })
	require.NoError(t, err)

	task.Cancel()
	<-task.Done()

	assert.ErrorIs(t, task.Err(), context.Canceled)
	assert.False(t, ran.Load())
	assert.Equal(t, 0, g.Pending())
}

func TestRun_ContextCancelAbandons(t *testing.T) {
	g := newTestGroup(t, time.Hour)
	var ran atomic.Bool

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := g.Run(ctx, "save-profile", func() { ran.Store(true) })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ran.Load())
}

func TestClose_CancelsPending(t *testing.T) {
	g := NewGroup(time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	var ran atomic.Int32

	var tasks []*Task
	for i := 0; i < 3; i++ {
		task, err := g.Go(context.Background(), "apply", func() { ran.Add(1) })
		require.NoError(t, err)
		tasks = append(tasks, task)
	}
	assert.Equal(t, 3, g.Pending())

	g.Close()

	for _, task := range tasks {
		select {
		case <-task.Done():
		default:
			t.Fatal("task still pending after Close")
		}
	}
	assert.Equal(t, int32(0), ran.Load())

	_, err := g.Go(context.Background(), "late", func() {})
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, g.Run(context.Background(), "late", func() {}), ErrClosed)
}
