package interfaces

import (
	"context"

	"game-data-server/src/models"
)

// -----------------------------------------------------------------------------
// IConfigStore holds the live strategy configuration served by /config.
// -----------------------------------------------------------------------------

type IConfigStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the schema.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SeedIfEmpty writes cfg only when no live config is stored yet.
	// Returns true when cfg was written.
	SeedIfEmpty(ctx context.Context, cfg models.MLiveConfig) (bool, error)

	// -----------------------------------------------------------------------------

	// LoadLiveConfig reads the current live config.
	LoadLiveConfig(ctx context.Context) (models.MLiveConfig, error)

	// -----------------------------------------------------------------------------

	// SaveLiveConfig replaces the stored live config.
	SaveLiveConfig(ctx context.Context, cfg models.MLiveConfig) error

	// -----------------------------------------------------------------------------

	// Close the underlying connection
	Close() error
}
