package entity

import (
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// Room - one isolated game instance. Every request against a room runs under
// its mutex from validation through broadcast, so two racing placements can
// never both see the same cell empty. Distinct rooms share nothing.
type Room struct {
	sync.Mutex

	ID          string
	Board       Board
	Black       *Player
	White       *Player
	Spectators  []*Spectator
	Skills      map[string]SkillSet
	Turn        string
	Winner      string
	History     History
	PendingSkip map[string]bool
	CreatedAt   time.Time
}

func NewRoom(id string) *Room {
	return &Room{
		ID:          id,
		Skills:      make(map[string]SkillSet),
		Turn:        ColorBlack,
		PendingSkip: map[string]bool{ColorBlack: false, ColorWhite: false},
		CreatedAt:   time.Now(),
	}
}

// AddParticipant - seats the joiner on the first vacant color, or registers a
// spectator when both seats are taken. Every joiner gets a fresh skill set,
// spectators included.
func (that *Room) AddParticipant(id, name string) string {
	var color string

	switch {
	case that.Black == nil:
		color = ColorBlack
		that.Black = &Player{ID: id, Name: name, Color: color}
	case that.White == nil:
		color = ColorWhite
		that.White = &Player{ID: id, Name: name, Color: color}
	default:
		color = ColorSpectator
		that.Spectators = append(that.Spectators, &Spectator{ID: id, Name: name})
	}

	that.Skills[id] = NewSkillSet()

	return color
}

// SeatOf - returns the seated player with the given id, or nil for
// spectators and strangers.
func (that *Room) SeatOf(participantID string) *Player {
	if that.Black != nil && that.Black.ID == participantID {
		return that.Black
	}

	if that.White != nil && that.White.ID == participantID {
		return that.White
	}

	return nil
}

// RemoveSpectator - drops the spectator with the given id. Seated players are
// never removed; a disconnect does not vacate a seat.
func (that *Room) RemoveSpectator(participantID string) (*Spectator, bool) {
	for i, spectator := range that.Spectators {
		if spectator.ID == participantID {
			that.Spectators = append(that.Spectators[:i], that.Spectators[i+1:]...)
			return spectator, true
		}
	}

	return nil, false
}

// ConsumeSkill - burns a one-shot skill charge. This is the single state
// transition per skill per participant and is never reverted, not even by a
// time rewind.
func (that *Room) ConsumeSkill(participantID, skillID string) error {
	if !IsKnownSkill(skillID) {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownSkill, skillID)
	}

	skills, ok := that.Skills[participantID]
	if !ok {
		return fmt.Errorf("%w: participant %s", apperror.ErrUnknownParticipant, participantID)
	}

	if skills[skillID] {
		return fmt.Errorf("%w: %s", apperror.ErrSkillAlreadyUsed, skillID)
	}

	skills[skillID] = true

	return nil
}

func (that *Room) Concluded() bool {
	return that.Winner != ""
}
