package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	BoardSize = 15
	WinLength = 5

	ColorBlack     = "black"
	ColorWhite     = "white"
	ColorSpectator = "spectator"

	EmptyCell = ""
)

// lineDirections - the four axes checked for a winning line.
var lineDirections = [4][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal
	{1, -1}, // anti-diagonal
}

type Board [BoardSize][BoardSize]string

// InRange - reports whether (x, y) is on the board.
func (that *Board) InRange(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func (that *Board) At(x, y int) string {
	return that[y][x]
}

// Place - puts a stone on an empty in-range cell.
func (that *Board) Place(x, y int, color string) error {
	if !that.InRange(x, y) {
		return fmt.Errorf("%w: cell (%d,%d) is out of range", apperror.ErrIllegalMove, x, y)
	}

	if that[y][x] != EmptyCell {
		return fmt.Errorf("%w: cell (%d,%d) is occupied", apperror.ErrIllegalMove, x, y)
	}

	that[y][x] = color

	return nil
}

// Remove - clears a cell unconditionally; the caller has already validated it.
func (that *Board) Remove(x, y int) {
	that[y][x] = EmptyCell
}

// Restore - puts a stone back on a cell reverted from history.
func (that *Board) Restore(x, y int, color string) {
	that[y][x] = color
}

// CheckWin - reports whether the stone just placed at (x, y) completes a line
// of at least WinLength same-color stones. The scan is anchored at the placed
// stone and extends in both directions along each axis, so it never walks the
// whole board.
func (that *Board) CheckWin(x, y int, color string) bool {
	for _, dir := range lineDirections {
		dx, dy := dir[0], dir[1]

		count := 1
		count += that.countLine(x, y, dx, dy, color)
		count += that.countLine(x, y, -dx, -dy, color)

		if count >= WinLength {
			return true
		}
	}

	return false
}

func (that *Board) countLine(x, y, dx, dy int, color string) int {
	count := 0

	nx, ny := x+dx, y+dy
	for that.InRange(nx, ny) && that[ny][nx] == color {
		count++
		nx += dx
		ny += dy
	}

	return count
}

// Grid - copies the board into a serializable slice-of-rows form.
func (that *Board) Grid() [][]string {
	grid := make([][]string, BoardSize)
	for y := range that {
		row := make([]string, BoardSize)
		copy(row, that[y][:])
		grid[y] = row
	}

	return grid
}

// OpponentColor - returns the other playing color.
func OpponentColor(color string) string {
	if color == ColorBlack {
		return ColorWhite
	}

	return ColorBlack
}
