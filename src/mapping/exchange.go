package mapping

import (
	"game-data-server/src/helpers"
	"game-data-server/src/interfaces"
	"game-data-server/src/models"
	"game-data-server/src/utils"
)

// slotStates is the complete offer state table. A state missing here is a
// contract violation with the client and is reported, never defaulted.
var slotStates = map[models.RawOfferState]models.MSlotState{
	models.OfferEmpty:         models.SlotEmpty,
	models.OfferCancelledBuy:  models.SlotCancelledBuy,
	models.OfferBuying:        models.SlotBuying,
	models.OfferBought:        models.SlotBought,
	models.OfferCancelledSell: models.SlotCancelledSell,
	models.OfferSelling:       models.SlotSelling,
	models.OfferSold:          models.SlotSold,
}

// MapSlotState translates a raw offer state.
func MapSlotState(state models.RawOfferState) (models.MSlotState, error) {
	s, ok := slotStates[state]
	if !ok {
		return "", helpers.NewUnmappedState(string(state))
	}
	return s, nil
}

// -----------------------------------------------------------------------------

// MapExchange returns exactly one slot per board position. Positions the
// client does not report, and EMPTY offers, become the canonical empty slot.
func MapExchange(src interfaces.IGameStateSource) (models.MExchange, error) {
	offers, err := src.GrandExchangeOffers()
	if err != nil {
		return models.MExchange{}, helpers.NewSourceUnavailable("exchange", err)
	}
	if len(offers) == 0 {
		return models.MExchange{}, helpers.NewSourceUnavailable("exchange", nil)
	}

	slots := make([]models.MSlot, utils.MaxExchangeSlots)
	for i := range slots {
		var offer *models.RawOffer
		if i < len(offers) {
			offer = offers[i]
		}

		slot, err := mapSlot(i, offer)
		if err != nil {
			return models.MExchange{}, err
		}
		slots[i] = slot
	}

	return models.MExchange{Slots: slots}, nil
}

// -----------------------------------------------------------------------------

func mapSlot(position int, offer *models.RawOffer) (models.MSlot, error) {
	if offer == nil || offer.State == models.OfferEmpty {
		return models.EmptySlot(position), nil
	}

	state, err := MapSlotState(offer.State)
	if err != nil {
		return models.MSlot{}, err
	}

	return models.MSlot{
		Position:           position,
		ItemID:             offer.ItemID,
		Price:              offer.Price,
		QuantityTransacted: offer.QuantitySold,
		TotalQuantity:      offer.TotalQuantity,
		State:              state,
	}, nil
}
