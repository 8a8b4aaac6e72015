// Package latency runs store updates behind an artificial delay.
//
// The dashboard flows (apply, sign in, save profile) pause before they commit
// so the client can show a pending state. Each pause is a Task the caller can
// abandon: cancelling the task, cancelling its context, or closing the Group
// that owns it guarantees the update never runs. A session closes its Group
// when it ends, so no update lands on a torn-down session.
package latency

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrClosed is returned when work is scheduled on a closed Group.
var ErrClosed = errors.New("latency: group closed")

// Task is one delayed update.
type Task struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
	err    error // set before done is closed
}

// Cancel abandons the task. It is a no-op once the update has run.
func (t *Task) Cancel() { t.cancel() }

// Done is closed when the task has either run or been abandoned.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err reports why the task finished: nil if the update ran, a context error if
// it was abandoned. Only meaningful after Done is closed.
func (t *Task) Err() error { return t.err }

// Wait blocks until the task finishes or ctx is done. If ctx ends first the
// task is cancelled so the update cannot run afterwards.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		t.cancel()
		<-t.done
		if t.err == nil {
			// the update won the race and ran
			return nil
		}
		return ctx.Err()
	}
}

// Group owns the pending tasks of one session.
type Group struct {
	delay  time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	tasks  map[*Task]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewGroup creates a Group whose tasks wait delay before running.
func NewGroup(delay time.Duration, logger *slog.Logger) *Group {
	return &Group{
		delay:  delay,
		logger: logger,
		tasks:  make(map[*Task]struct{}),
	}
}

// Go schedules fn to run after the group's delay. fn does not run if the
// returned task is cancelled, ctx is done, or the group closes first.
func (g *Group) Go(ctx context.Context, name string, fn func()) (*Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, ErrClosed
	}

	tctx, cancel := context.WithCancel(ctx)
	t := &Task{name: name, cancel: cancel, done: make(chan struct{})}
	g.tasks[t] = struct{}{}
	g.wg.Add(1)

	go g.run(tctx, t, fn)
	return t, nil
}

// Run schedules fn and waits for it. With a zero delay fn runs inline.
func (g *Group) Run(ctx context.Context, name string, fn func()) error {
	if g.delay <= 0 {
		g.mu.Lock()
		closed := g.closed
		g.mu.Unlock()
		if closed {
			return ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fn()
		return nil
	}

	t, err := g.Go(ctx, name, fn)
	if err != nil {
		return err
	}
	return t.Wait(ctx)
}

func (g *Group) run(ctx context.Context, t *Task, fn func()) {
	defer g.wg.Done()
	defer func() {
		g.mu.Lock()
		delete(g.tasks, t)
		g.mu.Unlock()
		t.cancel()
		close(t.done)
	}()

	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		// The group may have closed while the timer fired. Close waits on wg,
		// so an update that passes this check finishes before Close returns.
		g.mu.Lock()
		closed := g.closed
		g.mu.Unlock()
		if closed || ctx.Err() != nil {
			t.err = context.Canceled
			return
		}
		fn()
	case <-ctx.Done():
		t.err = ctx.Err()
		g.logger.Debug("delayed update abandoned", slog.String("task", t.name))
	}
}

// Pending is the number of tasks that have not finished.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tasks)
}

// Close cancels every pending task and waits for their goroutines to exit.
func (g *Group) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	for t := range g.tasks {
		t.cancel()
	}
	g.mu.Unlock()

	g.wg.Wait()
}
