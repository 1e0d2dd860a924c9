package models

type MMessage struct {
	Content   string `json:"content"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"` // epoch seconds
}

type MChatBox struct {
	Messages []MMessage `json:"messages"`
}
