// Package source provides game state sources usable outside the host
// client: an in-memory one and a YAML fixture file that is re-read when it
// changes on disk.
package source

import (
	"errors"

	"game-data-server/src/models"
)

// ErrUnreachable is returned by every accessor while the client is down.
var ErrUnreachable = errors.New("game client is not reachable")

// -----------------------------------------------------------------------------

// StaticSource is an in-memory game client. Like the real client it is not
// safe for concurrent use.
type StaticSource struct {
	Unreachable bool                                                `yaml:"unreachable"`
	State       models.RawGameState                                 `yaml:"game_state"`
	Members     bool                                                `yaml:"members"`
	Offers      []*models.RawOffer                                  `yaml:"offers"`
	Inventory   *models.RawItemContainer                            `yaml:"inventory"`
	View        models.RawCamera                                    `yaml:"camera"`
	Player      *models.RawPlayer                                   `yaml:"player"`
	Chat        map[models.RawChatChannel]*models.RawChatLineBuffer `yaml:"chat"`
}

// -----------------------------------------------------------------------------

func (s *StaticSource) GameState() (models.RawGameState, error) {
	if s.Unreachable {
		return "", ErrUnreachable
	}
	return s.State, nil
}

func (s *StaticSource) GrandExchangeOffers() ([]*models.RawOffer, error) {
	if s.Unreachable {
		return nil, ErrUnreachable
	}
	return s.Offers, nil
}

func (s *StaticSource) ItemContainer(id models.RawContainerID) (*models.RawItemContainer, error) {
	if s.Unreachable {
		return nil, ErrUnreachable
	}
	if id != models.ContainerInventory {
		return nil, nil
	}
	return s.Inventory, nil
}

func (s *StaticSource) Camera() (models.RawCamera, error) {
	if s.Unreachable {
		return models.RawCamera{}, ErrUnreachable
	}
	return s.View, nil
}

func (s *StaticSource) LocalPlayer() (*models.RawPlayer, error) {
	if s.Unreachable {
		return nil, ErrUnreachable
	}
	return s.Player, nil
}

func (s *StaticSource) ChatLineBuffer(channel models.RawChatChannel) (*models.RawChatLineBuffer, error) {
	if s.Unreachable {
		return nil, ErrUnreachable
	}
	return s.Chat[channel], nil
}

func (s *StaticSource) IsMembersWorld() (bool, error) {
	if s.Unreachable {
		return false, ErrUnreachable
	}
	return s.Members, nil
}
