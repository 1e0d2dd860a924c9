package storage

import (
	"fmt"

	"game-data-server/src/codec"
	"game-data-server/src/interfaces"
	"game-data-server/src/logger"
	"game-data-server/src/models"
)

// NewConfigStore builds the live config store selected by storage.db_type.
// The store is not initialized yet.
func NewConfigStore(cfg *models.MConfig, registry *codec.Registry, log *logger.Logger) (interfaces.IConfigStore, error) {
	switch cfg.Storage.DBType {
	case "postgres":
		return NewPostgresDB(cfg, registry, log)
	case "memory":
		return NewMemoryStore(registry), nil
	case "sqlite", "":
		return NewAsyncSQLiteDB(cfg, registry, log)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.DBType)
	}
}
