package mapping

import (
	"errors"
	"time"

	"game-data-server/src/helpers"
	"game-data-server/src/interfaces"
	"game-data-server/src/models"

	"github.com/google/uuid"
)

// NewSession builds the process session. It always returns a usable session;
// when the player name or membership cannot be read yet the error says so and
// those fields keep their zero values.
func NewSession(src interfaces.IGameStateSource, start time.Time) (models.MSession, error) {
	session := BlankSession(start)

	var errs []error

	player, err := src.LocalPlayer()
	switch {
	case err != nil:
		errs = append(errs, helpers.NewSourceUnavailable("player", err))
	case player == nil:
		errs = append(errs, helpers.NewNotReady("player name"))
	default:
		session.PlayerName = Sanitize(player.Name)
	}

	members, err := src.IsMembersWorld()
	if err != nil {
		errs = append(errs, helpers.NewSourceUnavailable("world type", err))
	} else {
		session.IsF2p = !members
	}

	return session, errors.Join(errs...)
}

// BlankSession is a session with a fresh id and nothing read from the client.
func BlankSession(start time.Time) models.MSession {
	return models.MSession{
		ID:        uuid.NewString(),
		StartTime: start.Unix(),
	}
}

// -----------------------------------------------------------------------------

// CheckHealth passes only when the client is reachable and logged in.
func CheckHealth(src interfaces.IGameStateSource) (models.MHealth, error) {
	state, err := src.GameState()
	if err != nil {
		return models.MHealth{}, helpers.NewSourceUnavailable("client", err)
	}
	if state != models.GameStateLoggedIn {
		return models.MHealth{}, helpers.NewNotLoggedIn(string(state))
	}
	return models.MHealth{Status: models.HealthStatusHealthy}, nil
}
