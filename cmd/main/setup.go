package main

import (
	"context"
	"fmt"
	"time"

	"game-data-server/src/codec"
	"game-data-server/src/config"
	"game-data-server/src/executor"
	"game-data-server/src/interfaces"
	"game-data-server/src/logger"
	"game-data-server/src/mapping"
	"game-data-server/src/models"
	"game-data-server/src/source"
	"game-data-server/src/storage"
)

// -----------------------------------------------------------------------------

// setupConfigStore opens the live config store and seeds it from the config
// file on first start.
func setupConfigStore(conf *config.Config, registry *codec.Registry, appLogger *logger.Logger) (interfaces.IConfigStore, error) {
	storeLogger := logger.NewLogger(conf, "ConfigStore")

	store, err := storage.NewConfigStore(conf.MConfig, registry, storeLogger)
	if err != nil {
		appLogger.Error("Failed to init config store: %v", err)
		return nil, err
	}
	if err := store.Initialize(); err != nil {
		appLogger.Error("Failed to migrate config store: %v", err)
		return nil, err
	}

	seed, err := conf.InitialLiveConfig(registry)
	if err != nil {
		appLogger.Error("Invalid live_config section: %v", err)
		store.Close()
		return nil, err
	}

	seeded, err := store.SeedIfEmpty(context.Background(), seed)
	if err != nil {
		appLogger.Error("Failed to seed live config: %v", err)
		store.Close()
		return nil, err
	}
	if seeded {
		appLogger.Info("Live config seeded from live_config (%d strategies)", len(seed.StratConfigs))
	} else {
		appLogger.Info("Live config already stored, config file seed ignored")
	}

	return store, nil
}

// -----------------------------------------------------------------------------

// setupSource picks the game state source named by source.type.
func setupSource(config *models.MConfig, appLogger *logger.Logger) (interfaces.IGameStateSource, error) {
	switch config.Source.Type {
	case "file":
		appLogger.Info("Reading game state from %s", config.Source.Path)
		return source.NewFileSource(config.Source.Path, logger.NewLogger(config, "FileSource")), nil
	case "static":
		appLogger.Warning("Using the static source: the client will always report the login screen")
		return &source.StaticSource{State: models.GameStateLoginScreen}, nil
	default:
		err := fmt.Errorf("unknown source type %q", config.Source.Type)
		appLogger.Error("%v", err)
		return nil, err
	}
}

// -----------------------------------------------------------------------------

type sessionResult struct {
	session models.MSession
	warn    error
}

// setupSession reads the player identity on the game thread. A client that is
// not logged in yet still gets a session, with an empty name.
func setupSession(ctx context.Context, thread *executor.GameThread, appLogger *logger.Logger) models.MSession {
	start := time.Now()

	res, err := executor.Invoke(ctx, thread, func(src interfaces.IGameStateSource) (sessionResult, error) {
		session, warn := mapping.NewSession(src, start)
		return sessionResult{session: session, warn: warn}, nil
	})
	if err != nil {
		appLogger.Warning("Could not read the session from the game client: %v", err)
		return mapping.BlankSession(start)
	}
	if res.warn != nil {
		appLogger.Warning("Session started without full player data: %v", res.warn)
	}
	return res.session
}
