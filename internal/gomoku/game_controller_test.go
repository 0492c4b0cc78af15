package gomoku

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	blackID = "p-black"
	whiteID = "p-white"
)

func newTestRoom(t *testing.T) *entity.Room {
	t.Helper()

	room := entity.NewRoom("r1")
	require.Equal(t, entity.ColorBlack, room.AddParticipant(blackID, "Alice"))
	require.Equal(t, entity.ColorWhite, room.AddParticipant(whiteID, "Bob"))

	return room
}

func mustPlace(t *testing.T, room *entity.Room, participantID string, x, y int) MoveOutcome {
	t.Helper()

	outcome, err := Place(room, participantID, x, y, "")
	require.NoError(t, err)

	return outcome
}

func TestPlace(t *testing.T) {
	t.Run("Valid placement advances the turn", func(t *testing.T) {
		// Given: a fresh room, black to move
		room := newTestRoom(t)

		// When: black places a stone
		outcome := mustPlace(t, room, blackID, 7, 7)

		// Then: the cell holds the stone, history grew, turn passed to white
		assert.Equal(t, entity.ColorBlack, room.Board.At(7, 7))
		assert.Equal(t, 1, room.History.Len())
		assert.Equal(t, entity.ColorWhite, room.Turn)
		assert.False(t, outcome.Won)
	})

	t.Run("Rejects a placement out of turn", func(t *testing.T) {
		// Given: a fresh room, black to move
		room := newTestRoom(t)

		// When: white tries to move first
		_, err := Place(room, whiteID, 7, 7, "")

		// Then: the move fails and nothing changed
		assert.ErrorIs(t, err, apperror.ErrOutOfTurn)
		assert.Equal(t, entity.EmptyCell, room.Board.At(7, 7))
		assert.Equal(t, 0, room.History.Len())
	})

	t.Run("Rejects a spectator placement", func(t *testing.T) {
		room := newTestRoom(t)
		room.AddParticipant("p-watcher", "Carol")

		_, err := Place(room, "p-watcher", 7, 7, "")

		assert.ErrorIs(t, err, apperror.ErrNotSeated)
	})

	t.Run("Rejects an occupied cell without mutating state", func(t *testing.T) {
		// Given: black placed at (7,7), white to move
		room := newTestRoom(t)
		mustPlace(t, room, blackID, 7, 7)

		// When: white targets the same cell
		_, err := Place(room, whiteID, 7, 7, "")

		// Then: the move fails, the stone and turn are untouched
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, entity.ColorBlack, room.Board.At(7, 7))
		assert.Equal(t, entity.ColorWhite, room.Turn)
		assert.Equal(t, 1, room.History.Len())
	})

	t.Run("Rejects any placement once concluded", func(t *testing.T) {
		// Given: a concluded room
		room := newTestRoom(t)
		room.Winner = entity.ColorBlack

		// When: black tries to keep playing
		_, err := Place(room, blackID, 0, 0, "")

		// Then: the move is refused
		assert.ErrorIs(t, err, apperror.ErrGameConcluded)
	})

	t.Run("Winning placement concludes the game and keeps the turn", func(t *testing.T) {
		// Given: black has four in a row, white stones elsewhere
		room := newTestRoom(t)
		for i := 0; i < 4; i++ {
			mustPlace(t, room, blackID, 2+i, 7)
			mustPlace(t, room, whiteID, 2+i, 0)
		}

		// When: black completes the line
		outcome, err := Place(room, blackID, 6, 7, "")

		// Then: black wins and the room is concluded
		require.NoError(t, err)
		assert.True(t, outcome.Won)
		assert.Equal(t, entity.ColorBlack, room.Winner)
		assert.Equal(t, entity.ColorBlack, room.Turn)
	})
}

func TestPlace_Fly(t *testing.T) {
	t.Run("Fly grants an extra turn", func(t *testing.T) {
		// Given: black to move
		room := newTestRoom(t)

		// When: black places with fly
		outcome, err := Place(room, blackID, 7, 7, entity.SkillFly)

		// Then: the stone lands and black keeps the turn
		require.NoError(t, err)
		assert.True(t, outcome.ExtraTurn)
		assert.Equal(t, entity.ColorBlack, room.Turn)
		assert.True(t, room.Skills[blackID][entity.SkillFly])
	})

	t.Run("Fly cannot be used twice", func(t *testing.T) {
		// Given: black already used fly
		room := newTestRoom(t)
		_, err := Place(room, blackID, 7, 7, entity.SkillFly)
		require.NoError(t, err)

		// When: black tries fly again on the extra turn
		_, err = Place(room, blackID, 7, 8, entity.SkillFly)

		// Then: the whole action fails and the board is unchanged
		assert.ErrorIs(t, err, apperror.ErrSkillAlreadyUsed)
		assert.Equal(t, entity.EmptyCell, room.Board.At(7, 8))
		assert.Equal(t, 1, room.History.Len())
	})

	t.Run("A failed placement does not burn the fly charge", func(t *testing.T) {
		// Given: a stone at (7,7), black to move again after white
		room := newTestRoom(t)
		mustPlace(t, room, blackID, 7, 7)
		mustPlace(t, room, whiteID, 0, 0)

		// When: black tries a fly placement onto the occupied cell
		_, err := Place(room, blackID, 7, 7, entity.SkillFly)

		// Then: the move fails before consumption and the charge survives
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.False(t, room.Skills[blackID][entity.SkillFly])
	})

	t.Run("Only fly may ride along with a placement", func(t *testing.T) {
		// Given: black to move
		room := newTestRoom(t)

		// When: black bundles star_pick into a placement
		_, err := Place(room, blackID, 7, 7, entity.SkillStarPick)

		// Then: the request is rejected outright
		assert.ErrorIs(t, err, apperror.ErrSkillNotAllowed)
		assert.Equal(t, entity.EmptyCell, room.Board.At(7, 7))
		assert.False(t, room.Skills[blackID][entity.SkillStarPick])
	})
}

func TestUseSkill_ForceSkip(t *testing.T) {
	t.Run("Force skip marks the opponent and the caster moves twice", func(t *testing.T) {
		// Given: black to move
		room := newTestRoom(t)

		// When: black casts force skip
		_, err := UseSkill(room, blackID, entity.SkillForceSkip, nil)

		// Then: white's skip is pending, turn and board untouched
		require.NoError(t, err)
		assert.True(t, room.PendingSkip[entity.ColorWhite])
		assert.Equal(t, entity.ColorBlack, room.Turn)
		assert.Equal(t, 0, room.History.Len())

		// When: black places a stone
		outcome := mustPlace(t, room, blackID, 7, 7)

		// Then: the skip is consumed silently and black keeps the turn
		assert.True(t, outcome.SkipConsumed)
		assert.False(t, room.PendingSkip[entity.ColorWhite])
		assert.Equal(t, entity.ColorBlack, room.Turn)

		// When: black places again
		outcome = mustPlace(t, room, blackID, 7, 8)

		// Then: the turn finally passes to white
		assert.False(t, outcome.SkipConsumed)
		assert.Equal(t, entity.ColorWhite, room.Turn)
	})

	t.Run("Force skip is refused out of turn", func(t *testing.T) {
		room := newTestRoom(t)

		_, err := UseSkill(room, whiteID, entity.SkillForceSkip, nil)

		assert.ErrorIs(t, err, apperror.ErrOutOfTurn)
		assert.False(t, room.PendingSkip[entity.ColorBlack])
		assert.False(t, room.Skills[whiteID][entity.SkillForceSkip])
	})
}

func TestUseSkill_StarPick(t *testing.T) {
	t.Run("Removes an opponent stone and ends the turn", func(t *testing.T) {
		// Given: a white stone at (3,3), black to move
		room := newTestRoom(t)
		mustPlace(t, room, blackID, 7, 7)
		mustPlace(t, room, whiteID, 3, 3)

		// When: black star-picks it
		outcome, err := UseSkill(room, blackID, entity.SkillStarPick, &entity.Point{X: 3, Y: 3})

		// Then: the cell clears, a remove entry is logged, turn passes to white
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, room.Board.At(3, 3))
		assert.Equal(t, entity.ColorWhite, room.Turn)
		assert.Equal(t, entity.Point{X: 3, Y: 3}, outcome.Target)

		entry, ok := room.History.Pop()
		require.True(t, ok)
		assert.Equal(t, entity.EntryRemove, entry.Type)
		assert.Equal(t, entity.ColorWhite, entry.Color)
		assert.Equal(t, entity.ColorBlack, entry.By)
	})

	t.Run("Refuses an empty cell without burning the charge", func(t *testing.T) {
		room := newTestRoom(t)

		_, err := UseSkill(room, blackID, entity.SkillStarPick, &entity.Point{X: 3, Y: 3})

		assert.ErrorIs(t, err, apperror.ErrInvalidTarget)
		assert.False(t, room.Skills[blackID][entity.SkillStarPick])
		assert.Equal(t, entity.ColorBlack, room.Turn)
	})

	t.Run("Refuses the caster's own stone", func(t *testing.T) {
		// Given: a black stone on the board, black to move again
		room := newTestRoom(t)
		mustPlace(t, room, blackID, 7, 7)
		mustPlace(t, room, whiteID, 0, 0)

		// When: black targets its own stone
		_, err := UseSkill(room, blackID, entity.SkillStarPick, &entity.Point{X: 7, Y: 7})

		// Then: the skill fails and the stone stays
		assert.ErrorIs(t, err, apperror.ErrInvalidTarget)
		assert.Equal(t, entity.ColorBlack, room.Board.At(7, 7))
		assert.False(t, room.Skills[blackID][entity.SkillStarPick])
	})

	t.Run("Refuses a missing target", func(t *testing.T) {
		room := newTestRoom(t)

		_, err := UseSkill(room, blackID, entity.SkillStarPick, nil)

		assert.ErrorIs(t, err, apperror.ErrInvalidTarget)
	})

	t.Run("Refuses an out-of-range target", func(t *testing.T) {
		room := newTestRoom(t)

		_, err := UseSkill(room, blackID, entity.SkillStarPick, &entity.Point{X: entity.BoardSize, Y: 0})

		assert.ErrorIs(t, err, apperror.ErrInvalidTarget)
	})
}

func TestUseSkill_TimeRewind(t *testing.T) {
	t.Run("Is a true inverse for the last move", func(t *testing.T) {
		// Given: black placed at (7,7), turn passed to white
		room := newTestRoom(t)
		mustPlace(t, room, blackID, 7, 7)

		// When: white rewinds (allowed regardless of whose turn it is)
		outcome, err := UseSkill(room, whiteID, entity.SkillTimeRewind, nil)

		// Then: the cell is empty again and black moves again
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, room.Board.At(7, 7))
		assert.Equal(t, entity.ColorBlack, room.Turn)
		assert.Equal(t, 0, room.History.Len())
		assert.Equal(t, entity.EntryMove, outcome.Reverted.Type)
	})

	t.Run("Is a true inverse for the last removal", func(t *testing.T) {
		// Given: black star-picked the white stone at (3,3)
		room := newTestRoom(t)
		mustPlace(t, room, blackID, 7, 7)
		mustPlace(t, room, whiteID, 3, 3)
		_, err := UseSkill(room, blackID, entity.SkillStarPick, &entity.Point{X: 3, Y: 3})
		require.NoError(t, err)

		// When: white rewinds the removal
		outcome, err := UseSkill(room, whiteID, entity.SkillTimeRewind, nil)

		// Then: the white stone is back and the remover's opponent moves
		require.NoError(t, err)
		assert.Equal(t, entity.ColorWhite, room.Board.At(3, 3))
		assert.Equal(t, entity.ColorWhite, room.Turn)
		assert.Equal(t, entity.EntryRemove, outcome.Reverted.Type)
	})

	t.Run("Reverts a winning move and reopens the game", func(t *testing.T) {
		// Given: black just won with five in a row
		room := newTestRoom(t)
		for i := 0; i < 4; i++ {
			mustPlace(t, room, blackID, 2+i, 7)
			mustPlace(t, room, whiteID, 2+i, 0)
		}
		outcome, err := Place(room, blackID, 6, 7, "")
		require.NoError(t, err)
		require.True(t, outcome.Won)

		// When: white rewinds the winning move
		_, err = UseSkill(room, whiteID, entity.SkillTimeRewind, nil)

		// Then: the winner is cleared and black is back on the move
		require.NoError(t, err)
		assert.False(t, room.Concluded())
		assert.Equal(t, entity.EmptyCell, room.Board.At(6, 7))
		assert.Equal(t, entity.ColorBlack, room.Turn)
	})

	t.Run("Fails on empty history without burning the charge", func(t *testing.T) {
		room := newTestRoom(t)

		_, err := UseSkill(room, blackID, entity.SkillTimeRewind, nil)

		assert.ErrorIs(t, err, apperror.ErrNoHistory)
		assert.False(t, room.Skills[blackID][entity.SkillTimeRewind])
	})

	t.Run("Does not refund the skill that caused the reverted action", func(t *testing.T) {
		// Given: black used fly on a placement
		room := newTestRoom(t)
		_, err := Place(room, blackID, 7, 7, entity.SkillFly)
		require.NoError(t, err)

		// When: black rewinds that placement
		_, err = UseSkill(room, blackID, entity.SkillTimeRewind, nil)

		// Then: the stone is gone but the fly charge stays spent
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, room.Board.At(7, 7))
		assert.True(t, room.Skills[blackID][entity.SkillFly])
	})
}

func TestUseSkill_Validation(t *testing.T) {
	t.Run("Unknown skill is rejected", func(t *testing.T) {
		room := newTestRoom(t)

		_, err := UseSkill(room, blackID, "teleport", nil)

		assert.ErrorIs(t, err, apperror.ErrUnknownSkill)
	})

	t.Run("Fly is not a standalone skill", func(t *testing.T) {
		room := newTestRoom(t)

		_, err := UseSkill(room, blackID, entity.SkillFly, nil)

		assert.ErrorIs(t, err, apperror.ErrSkillNotAllowed)
		assert.False(t, room.Skills[blackID][entity.SkillFly])
	})

	t.Run("Concluded game accepts only time rewind", func(t *testing.T) {
		// Given: a concluded room with some history
		room := newTestRoom(t)
		mustPlace(t, room, blackID, 7, 7)
		room.Winner = entity.ColorBlack

		// When: white tries force skip
		_, err := UseSkill(room, whiteID, entity.SkillForceSkip, nil)

		// Then: it is refused
		assert.ErrorIs(t, err, apperror.ErrGameConcluded)

		// When: white rewinds instead
		_, err = UseSkill(room, whiteID, entity.SkillTimeRewind, nil)

		// Then: it is allowed
		assert.NoError(t, err)
	})
}

// TestFullGameScenario walks a complete game: seats, a fly extra turn and a
// five-in-a-row victory on column 7.
func TestFullGameScenario(t *testing.T) {
	room := entity.NewRoom("r1")
	require.Equal(t, entity.ColorBlack, room.AddParticipant(blackID, "Alice"))
	require.Equal(t, entity.ColorWhite, room.AddParticipant(whiteID, "Bob"))

	// black and white open
	mustPlace(t, room, blackID, 7, 7)
	mustPlace(t, room, whiteID, 0, 0)

	// black uses fly and keeps the turn
	outcome, err := Place(room, blackID, 7, 8, entity.SkillFly)
	require.NoError(t, err)
	require.True(t, outcome.ExtraTurn)
	require.Equal(t, entity.ColorBlack, room.Turn)

	// black builds the column while white plays elsewhere
	mustPlace(t, room, blackID, 7, 9)
	mustPlace(t, room, whiteID, 1, 0)
	mustPlace(t, room, blackID, 7, 10)
	mustPlace(t, room, whiteID, 2, 0)

	// the fifth stone in column 7 wins
	outcome = mustPlace(t, room, blackID, 7, 11)
	assert.True(t, outcome.Won)
	assert.Equal(t, entity.ColorBlack, room.Winner)
	assert.True(t, room.Concluded())

	for y := 7; y <= 11; y++ {
		assert.Equal(t, entity.ColorBlack, room.Board.At(7, y))
	}
}
