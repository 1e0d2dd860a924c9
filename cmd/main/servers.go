package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"game-data-server/src/codec"
	"game-data-server/src/config"
	"game-data-server/src/executor"
	"game-data-server/src/grpc_control"
	"game-data-server/src/interfaces"
	"game-data-server/src/logger"
	"game-data-server/src/models"
	"game-data-server/src/server"
)

// -----------------------------------------------------------------------------

// startServers orchestrates the startup of all server components. It returns
// a function that stops them and a channel that receives the first fatal
// server error; main decides how to exit.
func startServers(
	ctx context.Context,
	conf *config.Config,
	thread *executor.GameThread,
	session models.MSession,
	store interfaces.IConfigStore,
	registry *codec.Registry,
	appLogger *logger.Logger,
) (func(), <-chan error, error) {
	var wg sync.WaitGroup
	failed := make(chan error, 2)

	// 1. gRPC health server. Listen first so a taken port fails startup
	// before anything is serving.
	grpcCtx, cancelGrpc := context.WithCancel(ctx)
	var controlService *grpc_control.ControlService
	if conf.GrpcPort != 0 {
		controlService = grpc_control.NewControlService(conf.MConfig, thread, logger.NewLogger(conf, "ControlService"))
		if err := controlService.Listen(); err != nil {
			cancelGrpc()
			return nil, nil, fmt.Errorf("failed to listen for gRPC: %w", err)
		}
	} else {
		appLogger.Info("gRPC health server disabled")
	}

	// 2. HTTP API
	httpLogger := logger.NewLogger(conf, "GameDataServer")
	var srv interfaces.IDataExchanger = server.NewGameDataServer(conf.MConfig, httpLogger, thread, session, store, registry)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Start(); err != nil {
			failed <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if controlService != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := controlService.Serve(grpcCtx); err != nil {
				failed <- fmt.Errorf("gRPC server failed: %w", err)
			}
		}()
	}

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			appLogger.Warning("HTTP server shutdown: %v", err)
		}
		cancelGrpc()
		wg.Wait()
	}
	return stop, failed, nil
}
