package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// MoveOutcome - what a successful placement did to the room, for the caller
// to turn into an event message.
type MoveOutcome struct {
	Player       *entity.Player
	Won          bool
	ExtraTurn    bool // the placement carried the fly skill
	SkipConsumed bool // the opponent's pending skip was spent on this move
}

// SkillOutcome - what a successful standalone skill invocation did.
type SkillOutcome struct {
	Player   *entity.Player
	SkillID  string
	Reverted entity.HistoryEntry // set for time_rewind
	Target   entity.Point        // set for star_pick
}

// Place - applies a stone placement for the seated player whose color holds
// the turn. The only skill that may ride along is fly, which keeps the turn
// with the mover. The caller must hold the room lock.
func Place(room *entity.Room, participantID string, x, y int, skillID string) (MoveOutcome, error) {
	var outcome MoveOutcome

	if room.Concluded() {
		return outcome, apperror.ErrGameConcluded
	}

	player := room.SeatOf(participantID)
	if player == nil {
		return outcome, apperror.ErrNotSeated
	}

	if player.Color != room.Turn {
		return outcome, apperror.ErrOutOfTurn
	}

	if !room.Board.InRange(x, y) {
		return outcome, fmt.Errorf("%w: cell (%d,%d) is out of range", apperror.ErrIllegalMove, x, y)
	}

	if room.Board.At(x, y) != entity.EmptyCell {
		return outcome, fmt.Errorf("%w: cell (%d,%d) is occupied", apperror.ErrIllegalMove, x, y)
	}

	// Consumption is the last check: a placement that fails validation must
	// not burn the charge.
	if skillID != "" {
		if skillID != entity.SkillFly {
			return outcome, fmt.Errorf("%w: %s", apperror.ErrSkillNotAllowed, skillID)
		}

		if err := room.ConsumeSkill(participantID, skillID); err != nil {
			return outcome, fmt.Errorf("failed to consume skill: %w", err)
		}

		outcome.ExtraTurn = true
	}

	if err := room.Board.Place(x, y, player.Color); err != nil {
		return outcome, fmt.Errorf("failed to place stone: %w", err)
	}

	room.History.Push(entity.HistoryEntry{
		Type:    entity.EntryMove,
		X:       x,
		Y:       y,
		Color:   player.Color,
		SkillID: skillID,
	})

	outcome.Player = player

	if room.Board.CheckWin(x, y, player.Color) {
		room.Winner = player.Color
		outcome.Won = true

		// The winner keeps the turn indicator; a time rewind that reverts
		// this move hands it back to them anyway.
		return outcome, nil
	}

	if outcome.ExtraTurn {
		return outcome, nil
	}

	next := entity.OpponentColor(player.Color)
	if room.PendingSkip[next] {
		room.PendingSkip[next] = false
		outcome.SkipConsumed = true

		return outcome, nil
	}

	room.Turn = next

	return outcome, nil
}

// UseSkill - applies a standalone skill. Time rewind is the only skill exempt
// from both the turn check and the concluded check: it may revert a winning
// move and reopen the game. The caller must hold the room lock.
func UseSkill(room *entity.Room, participantID, skillID string, target *entity.Point) (SkillOutcome, error) {
	var outcome SkillOutcome

	if !entity.IsKnownSkill(skillID) {
		return outcome, fmt.Errorf("%w: %q", apperror.ErrUnknownSkill, skillID)
	}

	if room.Concluded() && skillID != entity.SkillTimeRewind {
		return outcome, apperror.ErrGameConcluded
	}

	player := room.SeatOf(participantID)
	if player == nil {
		return outcome, apperror.ErrNotSeated
	}

	if player.Color != room.Turn && skillID != entity.SkillTimeRewind {
		return outcome, apperror.ErrOutOfTurn
	}

	outcome.Player = player
	outcome.SkillID = skillID

	switch skillID {
	case entity.SkillForceSkip:
		return outcome, forceSkip(room, player)
	case entity.SkillTimeRewind:
		return timeRewind(room, player, outcome)
	case entity.SkillStarPick:
		return starPick(room, player, target, outcome)
	case entity.SkillFly:
		return outcome, fmt.Errorf("%w: fly is used together with a placement", apperror.ErrSkillNotAllowed)
	default:
		return outcome, fmt.Errorf("%w: %q", apperror.ErrUnknownSkill, skillID)
	}
}

// forceSkip - marks the opponent's next turn as forfeited. The flag is spent
// silently when the turn would pass to them.
func forceSkip(room *entity.Room, player *entity.Player) error {
	if err := room.ConsumeSkill(player.ID, entity.SkillForceSkip); err != nil {
		return fmt.Errorf("failed to consume skill: %w", err)
	}

	room.PendingSkip[entity.OpponentColor(player.Color)] = true

	return nil
}

// timeRewind - pops the most recent history entry and applies its inverse.
// Reverting a move hands the turn back to its author; reverting a removal
// puts the stone back and hands the turn to the remover's opponent. The
// consumed charge is not refunded when the rewind itself is later reverted.
func timeRewind(room *entity.Room, player *entity.Player, outcome SkillOutcome) (SkillOutcome, error) {
	if room.History.Len() == 0 {
		return outcome, apperror.ErrNoHistory
	}

	if err := room.ConsumeSkill(player.ID, entity.SkillTimeRewind); err != nil {
		return outcome, fmt.Errorf("failed to consume skill: %w", err)
	}

	entry, _ := room.History.Pop()
	outcome.Reverted = entry

	switch entry.Type {
	case entity.EntryMove:
		room.Board.Remove(entry.X, entry.Y)
		room.Winner = ""
		room.Turn = entry.Color
	case entity.EntryRemove:
		room.Board.Restore(entry.X, entry.Y, entry.Color)
		room.Turn = entity.OpponentColor(entry.By)
	}

	return outcome, nil
}

// starPick - removes one opponent stone and always ends the user's turn.
func starPick(room *entity.Room, player *entity.Player, target *entity.Point, outcome SkillOutcome) (SkillOutcome, error) {
	if target == nil {
		return outcome, fmt.Errorf("%w: a target cell is required", apperror.ErrInvalidTarget)
	}

	if !room.Board.InRange(target.X, target.Y) {
		return outcome, fmt.Errorf("%w: cell (%d,%d) is out of range", apperror.ErrInvalidTarget, target.X, target.Y)
	}

	occupant := room.Board.At(target.X, target.Y)
	if occupant == entity.EmptyCell {
		return outcome, fmt.Errorf("%w: cell (%d,%d) is empty", apperror.ErrInvalidTarget, target.X, target.Y)
	}

	if occupant == player.Color {
		return outcome, fmt.Errorf("%w: cannot remove your own stone", apperror.ErrInvalidTarget)
	}

	if err := room.ConsumeSkill(player.ID, entity.SkillStarPick); err != nil {
		return outcome, fmt.Errorf("failed to consume skill: %w", err)
	}

	room.Board.Remove(target.X, target.Y)
	room.History.Push(entity.HistoryEntry{
		Type:  entity.EntryRemove,
		X:     target.X,
		Y:     target.Y,
		Color: occupant,
		By:    player.Color,
	})

	room.Turn = entity.OpponentColor(player.Color)
	outcome.Target = *target

	return outcome, nil
}
