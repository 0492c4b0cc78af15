package entity

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Place(t *testing.T) {
	t.Run("Places a stone on an empty in-range cell", func(t *testing.T) {
		// Given: an empty board
		board := &Board{}

		// When: placing a black stone
		err := board.Place(7, 7, ColorBlack)

		// Then: only that cell changes
		require.NoError(t, err)
		assert.Equal(t, ColorBlack, board.At(7, 7))

		occupied := 0
		for y := 0; y < BoardSize; y++ {
			for x := 0; x < BoardSize; x++ {
				if board.At(x, y) != EmptyCell {
					occupied++
				}
			}
		}
		assert.Equal(t, 1, occupied)
	})

	t.Run("Rejects an out-of-range cell", func(t *testing.T) {
		// Given: an empty board
		board := &Board{}

		// When: placing outside the grid
		err := board.Place(BoardSize, 0, ColorBlack)

		// Then: it should fail as an illegal move
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: a board with a stone at (3,3)
		board := &Board{}
		require.NoError(t, board.Place(3, 3, ColorWhite))

		// When: placing on the same cell
		err := board.Place(3, 3, ColorBlack)

		// Then: it should fail and the cell keeps its stone
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, ColorWhite, board.At(3, 3))
	})
}

func TestBoard_Remove(t *testing.T) {
	// Given: a board with a stone
	board := &Board{}
	require.NoError(t, board.Place(5, 5, ColorBlack))

	// When: removing it
	board.Remove(5, 5)

	// Then: the cell is empty again
	assert.Equal(t, EmptyCell, board.At(5, 5))
}

func TestBoard_CheckWin(t *testing.T) {
	placeRow := func(t *testing.T, board *Board, color string, cells [][2]int) {
		t.Helper()
		for _, cell := range cells {
			require.NoError(t, board.Place(cell[0], cell[1], color))
		}
	}

	t.Run("Exactly five in a row horizontally wins", func(t *testing.T) {
		// Given: five contiguous black stones on one row
		board := &Board{}
		placeRow(t, board, ColorBlack, [][2]int{{2, 7}, {3, 7}, {4, 7}, {5, 7}, {6, 7}})

		// When: checking from the last placed stone
		won := board.CheckWin(6, 7, ColorBlack)

		// Then: it should report a win
		assert.True(t, won)
	})

	t.Run("Four in a row does not win", func(t *testing.T) {
		// Given: four contiguous black stones
		board := &Board{}
		placeRow(t, board, ColorBlack, [][2]int{{2, 7}, {3, 7}, {4, 7}, {5, 7}})

		// When: checking from the last placed stone
		won := board.CheckWin(5, 7, ColorBlack)

		// Then: it should not report a win
		assert.False(t, won)
	})

	t.Run("Six in a row wins", func(t *testing.T) {
		// Given: six contiguous white stones on one column
		board := &Board{}
		placeRow(t, board, ColorWhite, [][2]int{{4, 2}, {4, 3}, {4, 4}, {4, 5}, {4, 6}, {4, 7}})

		// When: checking from a stone in the middle of the line
		won := board.CheckWin(4, 4, ColorWhite)

		// Then: it should report a win
		assert.True(t, won)
	})

	t.Run("Diagonal line through the anchor wins", func(t *testing.T) {
		// Given: five black stones on the main diagonal
		board := &Board{}
		placeRow(t, board, ColorBlack, [][2]int{{3, 3}, {4, 4}, {5, 5}, {6, 6}, {7, 7}})

		// When: checking from the middle stone
		won := board.CheckWin(5, 5, ColorBlack)

		// Then: it should report a win
		assert.True(t, won)
	})

	t.Run("Opponent stones break the line", func(t *testing.T) {
		// Given: four black stones split by a white one
		board := &Board{}
		placeRow(t, board, ColorBlack, [][2]int{{2, 2}, {3, 2}, {5, 2}, {6, 2}})
		placeRow(t, board, ColorWhite, [][2]int{{4, 2}})

		// When: checking from either side of the gap
		won := board.CheckWin(3, 2, ColorBlack)

		// Then: it should not report a win
		assert.False(t, won)
	})
}

func TestOpponentColor(t *testing.T) {
	assert.Equal(t, ColorWhite, OpponentColor(ColorBlack))
	assert.Equal(t, ColorBlack, OpponentColor(ColorWhite))
}
