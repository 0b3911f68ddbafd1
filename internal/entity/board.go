package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
)

// Mark identifies the owner of a cell. The two marks are opaque to the session logic.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""
)

// BoardSize is the number of cells on the classic 3x3 grid.
const BoardSize = 9

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome describes whether a round is over and who won it.
// A finished outcome with no winner is a draw.
type Outcome struct {
	Finished bool `json:"finished"`
	Winner   Mark `json:"winner,omitempty"`
}

func (that Outcome) IsDraw() bool {
	return that.Finished && that.Winner == EmptyCell
}

// Board is a value type: Apply returns a new board and never mutates the receiver.
type Board [BoardSize]Mark

func NewBoard() Board {
	return Board{}
}

// Apply - places mark on cell (0-based) and returns the resulting board.
func (that Board) Apply(cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= len(that) {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrInvalidMove, cell)
	}

	if mark == EmptyCell {
		return that, fmt.Errorf("%w: empty mark", apperror.ErrInvalidMove)
	}

	if that.Outcome().Finished {
		return that, apperror.ErrGameFinished
	}

	if that[cell] != EmptyCell {
		return that, apperror.ErrCellOccupied
	}

	that[cell] = mark

	return that, nil
}

// Winner - returns the mark that completed one of the winning lines, or EmptyCell.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) Outcome() Outcome {
	if winner := that.Winner(); winner != EmptyCell {
		return Outcome{Finished: true, Winner: winner}
	}

	return Outcome{Finished: that.IsFull()}
}

func (that Board) Cells() []string {
	cells := make([]string, len(that))
	for i, cell := range that {
		cells[i] = string(cell)
	}

	return cells
}
