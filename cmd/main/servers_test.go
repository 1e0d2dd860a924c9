package main

import (
	"context"
	"net"
	"testing"
	"time"

	"game-data-server/src/codec"
	"game-data-server/src/config"
	"game-data-server/src/executor"
	"game-data-server/src/logger"
	"game-data-server/src/models"
	"game-data-server/src/source"
	"game-data-server/src/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFailureIsReturnedToCaller(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	conf := config.NewDefaultConfig()
	conf.Host = "127.0.0.1"
	conf.Port = taken.Addr().(*net.TCPAddr).Port
	conf.GrpcPort = 0
	conf.LogLevel = "error"
	log := logger.NewLogger(conf, "test")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	thread := executor.NewGameThread(&source.StaticSource{State: models.GameStateLoggedIn}, time.Second, log)
	go thread.Run(ctx)

	registry := codec.DefaultRegistry()
	stop, failed, err := startServers(ctx, conf, thread, models.MSession{}, storage.NewMemoryStore(registry), registry, log)
	require.NoError(t, err)

	select {
	case err := <-failed:
		assert.ErrorContains(t, err, "HTTP server failed")
	case <-time.After(5 * time.Second):
		t.Fatal("expected the HTTP server to report the taken port")
	}
	stop()
}

func TestGrpcListenFailureAbortsStartup(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	conf := config.NewDefaultConfig()
	conf.GrpcHost = "127.0.0.1"
	conf.GrpcPort = taken.Addr().(*net.TCPAddr).Port
	conf.LogLevel = "error"
	log := logger.NewLogger(conf, "test")

	thread := executor.NewGameThread(&source.StaticSource{}, time.Second, log)
	registry := codec.DefaultRegistry()

	stop, failed, err := startServers(context.Background(), conf, thread, models.MSession{}, storage.NewMemoryStore(registry), registry, log)
	assert.ErrorContains(t, err, "failed to listen for gRPC")
	assert.Nil(t, stop)
	assert.Nil(t, failed)
}
