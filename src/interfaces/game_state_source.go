package interfaces

import "game-data-server/src/models"

// -----------------------------------------------------------------------------
// IGameStateSource is the read-only view of the host game client.
// Implementations are NOT safe for concurrent use: only the game thread
// (executor.GameThread) may call them. Every accessor returns an error when
// the client itself cannot be reached.
// -----------------------------------------------------------------------------

type IGameStateSource interface {

	// GameState returns the client's login state.
	GameState() (models.RawGameState, error)

	// -----------------------------------------------------------------------------

	// GrandExchangeOffers returns the trade board; empty before the client
	// has loaded it.
	GrandExchangeOffers() ([]*models.RawOffer, error)

	// -----------------------------------------------------------------------------

	// ItemContainer returns nil when the container is not resolved.
	ItemContainer(id models.RawContainerID) (*models.RawItemContainer, error)

	// -----------------------------------------------------------------------------

	// Camera returns the raw camera parameters.
	Camera() (models.RawCamera, error)

	// -----------------------------------------------------------------------------

	// LocalPlayer returns nil while no player is loaded.
	LocalPlayer() (*models.RawPlayer, error)

	// -----------------------------------------------------------------------------

	// ChatLineBuffer returns nil when the channel has no buffer yet.
	ChatLineBuffer(channel models.RawChatChannel) (*models.RawChatLineBuffer, error)

	// -----------------------------------------------------------------------------

	// IsMembersWorld reports whether the current world is a members world.
	IsMembersWorld() (bool, error)
}

// -----------------------------------------------------------------------------
// IRefreshable is implemented by sources that pick up external changes.
// The game thread calls Refresh once before each job, so every read inside
// one job sees the same state.
// -----------------------------------------------------------------------------

type IRefreshable interface {
	Refresh()
}
