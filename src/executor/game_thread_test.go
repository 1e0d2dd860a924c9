package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"game-data-server/src/helpers"
	"game-data-server/src/interfaces"
	"game-data-server/src/logger"
	"game-data-server/src/models"
	"game-data-server/src/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietConfig struct{}

func (quietConfig) LoggingLevel() string { return "error" }

func startThread(t *testing.T, src interfaces.IGameStateSource, timeout time.Duration) *GameThread {
	t.Helper()

	thread := NewGameThread(src, timeout, logger.NewLoggerTo(io.Discard, quietConfig{}, "test"))
	ctx, cancel := context.WithCancel(context.Background())
	go thread.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-thread.Done()
	})
	return thread
}

// -----------------------------------------------------------------------------

func TestInvokeReturnsResult(t *testing.T) {
	src := &source.StaticSource{State: models.GameStateLoggedIn}
	thread := startThread(t, src, time.Second)

	state, err := Invoke(context.Background(), thread, func(s interfaces.IGameStateSource) (models.RawGameState, error) {
		return s.GameState()
	})
	require.NoError(t, err)
	assert.Equal(t, models.GameStateLoggedIn, state)

	boom := errors.New("boom")
	_, err = Invoke(context.Background(), thread, func(interfaces.IGameStateSource) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInvokeSerializesJobs(t *testing.T) {
	thread := startThread(t, &source.StaticSource{}, 5*time.Second)

	var inFlight, maxInFlight atomic.Int32
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Invoke(context.Background(), thread, func(interfaces.IGameStateSource) (struct{}, error) {
				n := inFlight.Add(1)
				if n > maxInFlight.Load() {
					maxInFlight.Store(n)
				}
				counter++
				time.Sleep(time.Millisecond)
				inFlight.Add(-1)
				return struct{}{}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load())
	assert.Equal(t, 50, counter)
	assert.Equal(t, uint64(50), thread.Executed())
}

func TestInvokeTimesOut(t *testing.T) {
	thread := startThread(t, &source.StaticSource{}, 30*time.Millisecond)
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := Invoke(context.Background(), thread, func(interfaces.IGameStateSource) (int, error) {
		<-release
		return 1, nil
	})

	require.Error(t, err)
	assert.True(t, helpers.IsKind(err, helpers.KindSourceTimeout))
	assert.Less(t, time.Since(start), time.Second)
}

func TestAbandonedJobIsSkipped(t *testing.T) {
	thread := startThread(t, &source.StaticSource{}, time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = Invoke(context.Background(), thread, func(interfaces.IGameStateSource) (int, error) {
			close(started)
			<-release
			return 0, nil
		})
	}()
	<-started

	var ran atomic.Bool
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Invoke(ctx, thread, func(interfaces.IGameStateSource) (int, error) {
		ran.Store(true)
		return 0, nil
	})
	assert.True(t, helpers.IsKind(err, helpers.KindSourceTimeout))

	close(release)

	// Queued behind the abandoned job, so it only runs after the skip.
	_, err = Invoke(context.Background(), thread, func(interfaces.IGameStateSource) (int, error) {
		return 0, nil
	})
	require.NoError(t, err)

	assert.False(t, ran.Load())
	assert.Equal(t, uint64(1), thread.Skipped())
}

func TestInvokeRecoversPanic(t *testing.T) {
	thread := startThread(t, &source.StaticSource{}, time.Second)

	_, err := Invoke(context.Background(), thread, func(interfaces.IGameStateSource) (int, error) {
		panic("bad read")
	})
	require.Error(t, err)
	assert.Equal(t, helpers.KindInternal, helpers.KindOf(err))

	v, err := Invoke(context.Background(), thread, func(interfaces.IGameStateSource) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestInvokeAfterStop(t *testing.T) {
	thread := NewGameThread(&source.StaticSource{}, time.Second, logger.NewLoggerTo(io.Discard, quietConfig{}, "test"))
	ctx, cancel := context.WithCancel(context.Background())
	go thread.Run(ctx)
	cancel()
	<-thread.Done()

	_, err := Invoke(context.Background(), thread, func(interfaces.IGameStateSource) (int, error) {
		return 1, nil
	})
	require.Error(t, err)
	// Either the stopped thread or the deadline wins; both are reported.
	assert.Contains(t, []helpers.ErrorKind{helpers.KindSourceUnavailable, helpers.KindSourceTimeout}, helpers.KindOf(err))
}

// -----------------------------------------------------------------------------

func TestJobSeesOneSourceState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	write := func(body string, mod time.Time) {
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	write("game_state: LOGIN_SCREEN\nmembers: false\n", time.Unix(1700000000, 0))

	thread := startThread(t, source.NewFileSource(path, nil), time.Second)

	type reads struct {
		state   models.RawGameState
		members bool
	}
	got, err := Invoke(context.Background(), thread, func(s interfaces.IGameStateSource) (reads, error) {
		state, err := s.GameState()
		if err != nil {
			return reads{}, err
		}
		write("game_state: LOGGED_IN\nmembers: true\n", time.Unix(1700000100, 0))
		members, err := s.IsMembersWorld()
		return reads{state, members}, err
	})
	require.NoError(t, err)
	assert.Equal(t, reads{models.GameStateLoginScreen, false}, got)

	got, err = Invoke(context.Background(), thread, func(s interfaces.IGameStateSource) (reads, error) {
		state, err := s.GameState()
		if err != nil {
			return reads{}, err
		}
		members, err := s.IsMembersWorld()
		return reads{state, members}, err
	})
	require.NoError(t, err)
	assert.Equal(t, reads{models.GameStateLoggedIn, true}, got)
}
