package grpc_control

import (
	"context"
	"io"
	"testing"
	"time"

	"game-data-server/src/executor"
	"game-data-server/src/logger"
	"game-data-server/src/models"
	"game-data-server/src/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func newService(t *testing.T, src *source.StaticSource) (*ControlService, context.Context) {
	t.Helper()

	cfg := &models.MConfig{GrpcHost: "127.0.0.1", GrpcPort: 0, HealthProbeIntervalSeconds: 1, LogLevel: "error"}
	log := logger.NewLoggerTo(io.Discard, cfg, "grpc")

	thread := executor.NewGameThread(src, time.Second, log)
	ctx, cancel := context.WithCancel(context.Background())
	go thread.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-thread.Done()
	})

	return NewControlService(cfg, thread, log), ctx
}

func check(t *testing.T, s *ControlService, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

// -----------------------------------------------------------------------------

func TestProbeFollowsLoginState(t *testing.T) {
	src := &source.StaticSource{State: models.GameStateLoading}
	s, ctx := newService(t, src)

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, s, ""))

	assert.False(t, s.Probe(ctx))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, s, ServiceName))

	src.State = models.GameStateLoggedIn
	assert.True(t, s.Probe(ctx))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, s, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, s, ServiceName))

	src.Unreachable = true
	assert.False(t, s.Probe(ctx))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, s, ServiceName))
}

func TestServeOverTheWire(t *testing.T) {
	s, threadCtx := newService(t, &source.StaticSource{State: models.GameStateLoggedIn})
	require.NoError(t, s.Listen())

	ctx, cancel := context.WithCancel(threadCtx)
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	conn, err := grpc.NewClient(s.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client := grpc_health_v1.NewHealthClient(conn)
	assert.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
		return err == nil && resp.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("gRPC server did not stop")
	}
}
