package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"game-data-server/src/codec"
	"game-data-server/src/config"
	"game-data-server/src/executor"
	"game-data-server/src/logger"
)

// -----------------------------------------------------------------------------

func main() {

	// 1. Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	dumpPath := flag.String("dump-config", "", "write the effective config (file, env and defaults applied) to this path and exit")
	flag.Parse()

	// 2. Load config
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *dumpPath != "" {
		if err := conf.Save(*dumpPath); err != nil {
			fmt.Printf("Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Effective config written to %s\n", *dumpPath)
		return
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf, conf.Name)

	if err := run(conf, appLogger); err != nil {
		appLogger.Error("%v", err)
		os.Exit(1)
	}
	appLogger.Info("Shutdown complete.")
}

// -----------------------------------------------------------------------------

// run owns every resource of the process; all cleanup is deferred here so it
// also happens when startup or a server fails.
func run(conf *config.Config, appLogger *logger.Logger) error {

	// 4. Setup Components
	registry := codec.DefaultRegistry()
	appLogger.Info("Registered strategy configs: %v", registry.Names())

	store, err := setupConfigStore(conf, registry, appLogger)
	if err != nil {
		return err
	}
	defer store.Close()

	src, err := setupSource(conf.MConfig, appLogger)
	if err != nil {
		return err
	}

	// Lifecycle Management
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Game Thread: the only goroutine allowed to read the source
	thread := executor.NewGameThread(src, time.Duration(conf.RequestTimeoutMs)*time.Millisecond, appLogger.Named("GameThread"))
	go thread.Run(ctx)
	defer func() {
		cancel()
		<-thread.Done()
	}()
	appLogger.Info("Game reads time out after %s", thread.Timeout())

	// 6. Session, fixed for the life of the process
	session := setupSession(ctx, thread, appLogger)
	appLogger.Info("Session %s started (player=%q, isF2p=%v)", session.ID, session.PlayerName, session.IsF2p)

	// 7. Start Servers
	stopServers, failed, err := startServers(ctx, conf, thread, session, store, registry, appLogger)
	if err != nil {
		return err
	}
	defer stopServers()

	// 8. Wait for a shutdown signal or a server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		appLogger.Info("Shutting down...")
		return nil
	case err := <-failed:
		return err
	}
}
