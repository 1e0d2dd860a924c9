package models

type MItem struct {
	ID                int `json:"id"`
	Quantity          int `json:"quantity"`
	InventoryPosition int `json:"inventoryPosition"`
}

// MInventory is sparse: unoccupied positions are not listed.
type MInventory struct {
	Items []MItem `json:"items"`
}
