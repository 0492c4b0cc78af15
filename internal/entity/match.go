package entity

import "time"

// MatchRecord - the write-once result of a concluded game. Live room state is
// never persisted; this is the only thing that outlives a game.
type MatchRecord struct {
	RoomID     string    `json:"room_id"`
	Winner     string    `json:"winner"`
	Moves      int       `json:"moves"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
