package models

// MSlotState is the state of one trade-board slot as exposed on the wire.
type MSlotState string

const (
	SlotEmpty         MSlotState = "EMPTY"
	SlotCancelledBuy  MSlotState = "CANCELLED_BUY"
	SlotBuying        MSlotState = "BUYING"
	SlotBought        MSlotState = "BOUGHT"
	SlotCancelledSell MSlotState = "CANCELLED_SELL"
	SlotSelling       MSlotState = "SELLING"
	SlotSold          MSlotState = "SOLD"
)

// EmptySlotValue is the sentinel used for every numeric field of an empty slot.
const EmptySlotValue = -1

// MSlot is one position on the trade board.
type MSlot struct {
	Position           int        `json:"position"`
	ItemID             int        `json:"itemId"`
	Price              int        `json:"price"`
	QuantityTransacted int        `json:"quantityTransacted"`
	TotalQuantity      int        `json:"totalQuantity"`
	State              MSlotState `json:"state"`
}

// EmptySlot returns the canonical empty slot for a position.
func EmptySlot(position int) MSlot {
	return MSlot{
		Position:           position,
		ItemID:             EmptySlotValue,
		Price:              EmptySlotValue,
		QuantityTransacted: EmptySlotValue,
		TotalQuantity:      EmptySlotValue,
		State:              SlotEmpty,
	}
}

// MExchange always holds one slot per board position, ordered by position.
type MExchange struct {
	Slots []MSlot `json:"slots"`
}
