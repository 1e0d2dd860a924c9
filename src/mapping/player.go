package mapping

import (
	"game-data-server/src/helpers"
	"game-data-server/src/interfaces"
	"game-data-server/src/models"
)

// MapPlayer reads the login flag, camera and world location. While the
// client is loading there is no local player or location; that is reported
// as NOT_READY rather than as an unavailable source.
func MapPlayer(src interfaces.IGameStateSource) (models.MPlayer, error) {
	state, err := src.GameState()
	if err != nil {
		return models.MPlayer{}, helpers.NewSourceUnavailable("client", err)
	}

	cam, err := src.Camera()
	if err != nil {
		return models.MPlayer{}, helpers.NewSourceUnavailable("camera", err)
	}

	player, err := src.LocalPlayer()
	if err != nil {
		return models.MPlayer{}, helpers.NewSourceUnavailable("player", err)
	}
	if player == nil || player.WorldLocation == nil {
		return models.MPlayer{}, helpers.NewNotReady("player location")
	}

	return models.MPlayer{
		LoggedIn: state == models.GameStateLoggedIn,
		Location: models.MLocation{
			X: player.WorldLocation.X,
			Y: player.WorldLocation.Y,
		},
		Camera: models.MCamera{
			Z:     cam.Z,
			Yaw:   cam.Yaw,
			Scale: cam.Scale,
		},
	}, nil
}
