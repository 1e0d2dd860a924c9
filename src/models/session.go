package models

// MSession identifies one server process. It is built once at startup and
// never changes afterwards.
type MSession struct {
	ID         string `json:"id"`
	StartTime  int64  `json:"startTime"` // epoch seconds
	PlayerName string `json:"playerName"`
	IsF2p      bool   `json:"isF2p"`
}

type MMembership struct {
	IsF2p bool `json:"isF2p"`
}
