package models

// -----------------------------------------------------------------------------
// Snapshot document served by /snapshot
// -----------------------------------------------------------------------------

type MSnapshot struct {
	Session      MSession   `json:"session"`
	Exchange     MExchange  `json:"exchange"`
	Inventory    MInventory `json:"inventory"`
	Player       MPlayer    `json:"player"`
	ChatBox      MChatBox   `json:"chatBox"`
	CreationTime int64      `json:"creationTime"` // epoch milliseconds
}
