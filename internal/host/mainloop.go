package host

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var ErrLoopStopped = errors.New("main loop stopped")

// MainLoop runs submitted funcs one at a time, in submission order, on a
// single goroutine. Everything that touches the reminder service goes through
// it.
type MainLoop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool

	notify chan struct{}
	done   chan struct{}
}

func NewMainLoop() *MainLoop {
	return &MainLoop{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Run executes queued funcs until ctx is cancelled or Stop is called. Funcs
// still queued at that point are dropped.
func (l *MainLoop) Run(ctx context.Context) {
	defer close(l.done)
	slog.DebugContext(ctx, "main loop started")

	for {
		select {
		case <-ctx.Done():
			l.stop()
			slog.DebugContext(ctx, "main loop stopped")
			return
		case <-l.notify:
		}

		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			l.runSafely(ctx, fn)
		}

		if l.isStopped() {
			slog.DebugContext(ctx, "main loop stopped")
			return
		}
	}
}

func (l *MainLoop) runSafely(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "main loop task panicked", slog.Any("panic", r))
		}
	}()
	fn()
}

func (l *MainLoop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped || len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *MainLoop) enqueue(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
	return true
}

// Post queues fn without waiting. It never blocks, so it is safe to call from
// a func already running on the loop.
func (l *MainLoop) Post(fn func()) {
	if !l.enqueue(fn) {
		slog.Debug("main loop stopped, dropping posted task")
	}
}

// Do queues fn and waits until it has run. It must not be called from a func
// running on the loop.
func (l *MainLoop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.enqueue(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopStopped
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}

// Stop rejects new funcs and ends Run once the func in progress returns.
func (l *MainLoop) Stop() {
	l.stop()
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

func (l *MainLoop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	l.queue = nil
}

func (l *MainLoop) isStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// Done is closed when Run returns.
func (l *MainLoop) Done() <-chan struct{} {
	return l.done
}
