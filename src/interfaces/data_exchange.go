package interfaces

import "context"

// -----------------------------------------------------------------------------
// IDataExchanger defining the interface for serving game data to the
// automation process.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Start the server; blocks until it stops
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop(ctx context.Context) error
}
