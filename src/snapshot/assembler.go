// Package snapshot composes the entity mappers into the one document served
// by /snapshot.
package snapshot

import (
	"time"

	"game-data-server/src/interfaces"
	"game-data-server/src/mapping"
	"game-data-server/src/models"
)

// Assembler builds snapshots for one process session.
type Assembler struct {
	Session models.MSession
	Now     func() time.Time
}

func NewAssembler(session models.MSession) *Assembler {
	return &Assembler{Session: session, Now: time.Now}
}

// -----------------------------------------------------------------------------

// Assemble reads every part of the game state. The first failing part aborts
// the whole snapshot with that part's own error, so /snapshot fails exactly
// like the entity endpoint would. It must run on the game thread.
func (a *Assembler) Assemble(src interfaces.IGameStateSource) (models.MSnapshot, error) {
	exchange, err := mapping.MapExchange(src)
	if err != nil {
		return models.MSnapshot{}, err
	}

	inventory, err := mapping.MapInventory(src)
	if err != nil {
		return models.MSnapshot{}, err
	}

	player, err := mapping.MapPlayer(src)
	if err != nil {
		return models.MSnapshot{}, err
	}

	chat, err := mapping.MapChatBox(src)
	if err != nil {
		return models.MSnapshot{}, err
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	return models.MSnapshot{
		Session:      a.Session,
		Exchange:     exchange,
		Inventory:    inventory,
		Player:       player,
		ChatBox:      chat,
		CreationTime: now().UnixMilli(),
	}, nil
}
