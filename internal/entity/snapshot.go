package entity

// SeatInfo - the externally visible shape of one seated player, including the
// full skill-usage flags.
type SeatInfo struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills SkillSet `json:"skills"`
}

type SpectatorInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot - the full externally visible state of a room at one instant.
// History is truncated to the most recent HistoryTailLen entries for
// transport economy; the room keeps the full log for rewinds.
type Snapshot struct {
	ID          string               `json:"id"`
	Board       [][]string           `json:"board"`
	Turn        string               `json:"turn"`
	Winner      string               `json:"winner,omitempty"`
	History     []HistoryEntry       `json:"history"`
	Players     map[string]*SeatInfo `json:"players"`
	Spectators  []SpectatorInfo      `json:"spectators"`
	PendingSkip map[string]bool      `json:"pending_skip"`
}

// Snapshot - serializes the room. The caller must hold the room lock so the
// copy reflects one fully applied mutation.
func (that *Room) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		ID:      that.ID,
		Board:   that.Board.Grid(),
		Turn:    that.Turn,
		Winner:  that.Winner,
		History: that.History.Tail(HistoryTailLen),
		Players: map[string]*SeatInfo{
			ColorBlack: that.seatInfo(that.Black),
			ColorWhite: that.seatInfo(that.White),
		},
		Spectators: make([]SpectatorInfo, 0, len(that.Spectators)),
		PendingSkip: map[string]bool{
			ColorBlack: that.PendingSkip[ColorBlack],
			ColorWhite: that.PendingSkip[ColorWhite],
		},
	}

	for _, spectator := range that.Spectators {
		snapshot.Spectators = append(snapshot.Spectators, SpectatorInfo{ID: spectator.ID, Name: spectator.Name})
	}

	return snapshot
}

func (that *Room) seatInfo(player *Player) *SeatInfo {
	if player == nil {
		return nil
	}

	info := &SeatInfo{
		ID:     player.ID,
		Name:   player.Name,
		Skills: make(SkillSet, len(SkillIDs)),
	}

	for id, used := range that.Skills[player.ID] {
		info.Skills[id] = used
	}

	return info
}
