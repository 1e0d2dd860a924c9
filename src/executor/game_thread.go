// Package executor serializes every read of the game client onto one
// goroutine. The host client is not safe for concurrent use, so HTTP
// handlers never touch the source directly: they submit a job and wait for
// its result with a deadline.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"game-data-server/src/helpers"
	"game-data-server/src/interfaces"
	"game-data-server/src/logger"
)

// ErrStopped is returned for jobs submitted after the thread has exited.
var ErrStopped = errors.New("game thread stopped")

const queueSize = 64

// -----------------------------------------------------------------------------

type job struct {
	ctx context.Context
	run func(interfaces.IGameStateSource)
}

// GameThread owns the game state source. Jobs run one at a time in
// submission order.
type GameThread struct {
	Logger *logger.Logger

	source  interfaces.IGameStateSource
	timeout time.Duration
	jobs    chan job
	done    chan struct{}

	executed atomic.Uint64
	skipped  atomic.Uint64
}

// -----------------------------------------------------------------------------

// NewGameThread creates a thread for src. A timeout <= 0 leaves callers bound
// only by their own context.
func NewGameThread(src interfaces.IGameStateSource, timeout time.Duration, log *logger.Logger) *GameThread {
	return &GameThread{
		Logger:  log,
		source:  src,
		timeout: timeout,
		jobs:    make(chan job, queueSize),
		done:    make(chan struct{}),
	}
}

// -----------------------------------------------------------------------------

// Run executes jobs until ctx is cancelled. Jobs whose caller already gave
// up are dropped without touching the source. A refreshable source is
// refreshed before each job and stays fixed while the job runs.
func (g *GameThread) Run(ctx context.Context) {
	defer close(g.done)

	g.Logger.Info("Game thread started")
	for {
		select {
		case <-ctx.Done():
			g.Logger.Info("Game thread stopped (executed=%d, skipped=%d)", g.executed.Load(), g.skipped.Load())
			return

		case j := <-g.jobs:
			if j.ctx.Err() != nil {
				g.skipped.Add(1)
				continue
			}
			if r, ok := g.source.(interfaces.IRefreshable); ok {
				r.Refresh()
			}
			j.run(g.source)
			g.executed.Add(1)
		}
	}
}

// -----------------------------------------------------------------------------

// Done is closed once Run has returned.
func (g *GameThread) Done() <-chan struct{} {
	return g.done
}

func (g *GameThread) Timeout() time.Duration {
	return g.timeout
}

// Executed reports how many jobs have run.
func (g *GameThread) Executed() uint64 {
	return g.executed.Load()
}

// Skipped reports how many jobs were dropped because their caller had
// already timed out.
func (g *GameThread) Skipped() uint64 {
	return g.skipped.Load()
}

// -----------------------------------------------------------------------------

type outcome[T any] struct {
	value T
	err   error
}

// Invoke runs fn on the game thread and waits for its result. When neither
// ctx nor the thread timeout expires first, the result is exactly what fn
// returned; otherwise a SOURCE_TIMEOUT error is returned and fn, if it has
// not started yet, never runs.
func Invoke[T any](ctx context.Context, g *GameThread, fn func(interfaces.IGameStateSource) (T, error)) (T, error) {
	var zero T

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// Buffered so an abandoned job never blocks the thread.
	result := make(chan outcome[T], 1)
	j := job{
		ctx: ctx,
		run: func(src interfaces.IGameStateSource) {
			defer func() {
				if r := recover(); r != nil {
					g.Logger.Error("Game thread job panicked: %v", r)
					result <- outcome[T]{err: fmt.Errorf("game thread job panicked: %v", r)}
				}
			}()
			v, err := fn(src)
			result <- outcome[T]{value: v, err: err}
		},
	}

	select {
	case g.jobs <- j:
	case <-ctx.Done():
		return zero, helpers.NewSourceTimeout(ctx.Err())
	case <-g.done:
		return zero, helpers.NewSourceUnavailable("game thread", ErrStopped)
	}

	select {
	case out := <-result:
		return out.value, out.err
	case <-ctx.Done():
		return zero, helpers.NewSourceTimeout(ctx.Err())
	case <-g.done:
		// Run may have exited right after finishing this job.
		select {
		case out := <-result:
			return out.value, out.err
		default:
			return zero, helpers.NewSourceUnavailable("game thread", ErrStopped)
		}
	}
}
