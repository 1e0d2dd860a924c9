package mapping

import (
	"game-data-server/src/helpers"
	"game-data-server/src/interfaces"
	"game-data-server/src/models"
	"game-data-server/src/utils"
)

// MapInventory lists the occupied backpack slots in position order. Unlike
// the exchange, empty positions are left out.
func MapInventory(src interfaces.IGameStateSource) (models.MInventory, error) {
	container, err := src.ItemContainer(models.ContainerInventory)
	if err != nil {
		return models.MInventory{}, helpers.NewSourceUnavailable("inventory", err)
	}
	if container == nil {
		return models.MInventory{}, helpers.NewSourceUnavailable("inventory", nil)
	}

	items := make([]models.MItem, 0, utils.MaxInventorySlots)
	for i := 0; i < utils.MaxInventorySlots; i++ {
		item := container.Item(i)
		if item == nil {
			continue
		}
		items = append(items, models.MItem{
			ID:                item.ID,
			Quantity:          item.Quantity,
			InventoryPosition: i,
		})
	}

	return models.MInventory{Items: items}, nil
}
