// Package grpc_control exposes the server's readiness over the standard gRPC
// health protocol, so supervisors can watch the game client without polling
// the HTTP API.
package grpc_control

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"game-data-server/src/executor"
	"game-data-server/src/logger"
	"game-data-server/src/mapping"
	"game-data-server/src/models"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// ServiceName is the health service name reported next to the overall status.
const ServiceName = "gamedataserver"

// -----------------------------------------------------------------------------

// ControlService serves grpc.health.v1 and keeps its status in line with the
// game client's login state.
type ControlService struct {
	Config *models.MConfig
	Logger *logger.Logger
	Thread *executor.GameThread

	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	serving    bool
}

// -----------------------------------------------------------------------------

// NewControlService creates the gRPC server. Both statuses start NOT_SERVING
// until the first probe succeeds.
func NewControlService(cfg *models.MConfig, thread *executor.GameThread, log *logger.Logger) *ControlService {
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: 5 * time.Minute,
			Time:              20 * time.Second,
			Timeout:           10 * time.Second,
		}),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &ControlService{
		Config:     cfg,
		Logger:     log,
		Thread:     thread,
		grpcServer: grpcServer,
		health:     healthServer,
	}
}

// -----------------------------------------------------------------------------

// Listen binds the configured address. Separate from Serve so startup errors
// surface before anything runs in the background.
func (s *ControlService) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.Config.GrpcHost, s.Config.GrpcPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or "" before Listen.
func (s *ControlService) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// -----------------------------------------------------------------------------

// Serve runs the probe loop and the gRPC server until ctx is cancelled.
func (s *ControlService) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	go s.probeLoop(ctx)

	s.Logger.Info("Starting gRPC health server on %s", s.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) probeLoop(ctx context.Context) {
	interval := time.Duration(s.Config.HealthProbeIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// -----------------------------------------------------------------------------

// Probe runs the login check on the game thread and publishes the result.
// Only the probe goroutine calls it once serving has started.
func (s *ControlService) Probe(ctx context.Context) bool {
	_, err := executor.Invoke(ctx, s.Thread, mapping.CheckHealth)
	serving := err == nil

	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)

	if serving != s.serving {
		if serving {
			s.Logger.Info("Game client is ready, health is SERVING")
		} else {
			s.Logger.Warning("Game client is not ready, health is NOT_SERVING: %v", err)
		}
		s.serving = serving
	}
	return serving
}
